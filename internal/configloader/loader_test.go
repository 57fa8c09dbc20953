package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/wikidoc/pkg/config"
)

func hermetic(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), hermetic(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.To != "html" {
		t.Errorf("expected to %q, got %q", "html", result.Config.To)
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// jobs is a CLI-only option (yaml:"-"), so it won't be loaded from file
	writeFile(t, filepath.Join(tmpDir, ".wikidoc.yml"), `
from: creole
to: markdown
jobs: 8
template: tmpl/page.html
variables:
  product: wikidoc
`)

	result, err := Load(context.Background(), hermetic(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.From != "creole" || cfg.To != "markdown" {
		t.Errorf("unexpected dialects %q -> %q", cfg.From, cfg.To)
	}
	if cfg.Jobs != 0 {
		t.Errorf("jobs should not load from file, got %d", cfg.Jobs)
	}
	if cfg.Variables["product"] != "wikidoc" {
		t.Errorf("variables not loaded: %v", cfg.Variables)
	}
	if want := filepath.Join(tmpDir, "tmpl", "page.html"); cfg.Template != want {
		t.Errorf("template = %q, want %q", cfg.Template, want)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %v", result.LoadedFrom)
	}
}

func TestLoad_TOMLProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".wikidoc.toml"), `
to = "confluence"
defines = ["DRAFT"]
typography = true
`)

	result, err := Load(context.Background(), hermetic(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.To != "confluence" {
		t.Errorf("to = %q", result.Config.To)
	}
	if !result.Config.TypographyEnabled() {
		t.Error("typography should be enabled")
	}
}

func TestLoad_UpwardSearchStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	nested := filepath.Join(repo, "docs", "guide")

	writeFile(t, filepath.Join(root, ".wikidoc.yml"), "to: text\n")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("search crossed the VCS root and found %q", path)
	}

	writeFile(t, filepath.Join(repo, ".wikidoc.yaml"), "to: creole\n")

	path, err = FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != filepath.Join(repo, ".wikidoc.yaml") {
		t.Errorf("found %q", path)
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".wikidoc.yml"), `
to: markdown
output_dir: project-out
replacements:
  a: b
`)
	explicit := filepath.Join(tmpDir, "ci", "wikidoc.toml")
	writeFile(t, explicit, `
output_dir = "ci-out"

[replacements]
c = "d"
`)

	opts := hermetic(tmpDir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{To: "text", Jobs: 2}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.To != "text" {
		t.Errorf("CLI should win for to, got %q", cfg.To)
	}
	if cfg.OutputDir != "ci-out" {
		t.Errorf("explicit file should win for output_dir, got %q", cfg.OutputDir)
	}
	if cfg.Replacements["a"] != "b" || cfg.Replacements["c"] != "d" {
		t.Errorf("replacements should deep merge, got %v", cfg.Replacements)
	}
	if cfg.Jobs != 2 {
		t.Errorf("jobs = %d", cfg.Jobs)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown target", ".wikidoc.yml", "to: docx\n", "invalid format target"},
		{"unknown source", ".wikidoc.yml", "from: rst\n", "invalid source dialect"},
		{"bad yaml", ".wikidoc.yml", "to: [\n", "parse yaml"},
		{"unknown toml key", ".wikidoc.toml", "flavor = \"gfm\"\n", "unknown keys"},
		{"bad style", ".wikidoc.yml", "styles:\n  footer:\n    bold: true\n", "unknown role"},
		{"bad ignore", ".wikidoc.yml", "ignore: [\"[\"]\n", "invalid glob pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, tt.file), tt.content)

			_, err := Load(context.Background(), hermetic(tmpDir))
			if err == nil {
				t.Fatal("expected error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
			if verr.FilePath == "" {
				t.Error("expected the file path on the error")
			}
		})
	}
}

func TestLoad_CLIValidation(t *testing.T) {
	t.Parallel()

	opts := hermetic(t.TempDir())
	opts.CLIConfig = &config.Config{Format: "sarif"}

	_, err := Load(context.Background(), opts)

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "format" {
		t.Fatalf("expected format validation error, got %v", err)
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	opts := hermetic(t.TempDir())
	opts.CLIConfig = &config.Config{LocalLinkFormat: "page.html"}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "local_link_format") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, hermetic(t.TempDir())); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
