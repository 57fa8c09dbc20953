//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/wikidoc"
	mainPkg = "./cmd/wikidoc"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"s":   Test.Samples,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
}

// Namespace types group related targets.
type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles the wikidoc binary with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}

	fmt.Println("Building wikidoc...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs wikidoc to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Deps downloads and tidies module dependencies.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage writes an HTML coverage report to coverage.html.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs all tests with gotestsum, race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Fuzz runs the text decoding fuzz target for a short while.
func (Test) Fuzz() error {
	return sh.RunV("go", "test", "./pkg/fsutil", "-run=^$", "-fuzz=FuzzDecodeText", "-fuzztime=30s")
}

// Samples renders every built-in sample to every target with the built
// binary.
func (Test) Samples() error {
	st.Deps(Build)

	targets := []string{"html", "owiki", "markdown", "creole", "confluence", "codeplex", "text"}
	samples := []string{"basic", "lists", "table", "code", "links", "rich"}

	for _, sample := range samples {
		for _, to := range targets {
			if _, err := sh.Output(binary, "samples", sample, "--to", to); err != nil {
				return fmt.Errorf("render %s as %s: %w", sample, to, err)
			}
		}
	}

	fmt.Printf("✓ %d samples render to %d targets\n", len(samples), len(targets))
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg")
}

// FmtCheck fails when any file needs formatting.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check.
func (CI) Gate() {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Test.Samples,
		CI.ModTidy,
		CI.Cross,
	)
}

// ModTidy fails when 'go mod tidy' changes go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}

	if !bytes.Equal(before, after) {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	return nil
}

// Cross builds for every release platform.
func (CI) Cross() error {
	platforms := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	}

	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build failed for %s: %w", platform, err)
		}
	}
	return nil
}

func gotestsum(format string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

func readModFiles() ([]byte, error) {
	var all []byte
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		all = append(all, data...)
	}
	return all, nil
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
