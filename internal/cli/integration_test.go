package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikidoc/internal/cli"
	"github.com/yaklabco/wikidoc/pkg/config"
	"github.com/yaklabco/wikidoc/pkg/fsutil"
	"github.com/yaklabco/wikidoc/pkg/reporter"
)

// execute runs the root command with args and returns its combined output.
// A minimal explicit config keeps user and project files from leaking in.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".wikidoc.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("to: html\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", cfgFile, "--color", "never"))

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestIntegration_ConvertWritesOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.owiki"), "# Title\n")
	writeFile(t, filepath.Join(dir, "docs", "intro.md"), "Hello **world**!\n")

	out, err := execute(t, "", "convert", dir)
	require.NoError(t, err)

	assert.Equal(t, "<h1>Title</h1>\n", readFile(t, filepath.Join(dir, "page.html")))
	assert.Equal(t, "<p>Hello <b>world</b>!</p>\n", readFile(t, filepath.Join(dir, "docs", "intro.html")))
	assert.Contains(t, out, "page.html")
	assert.Contains(t, out, "Converted 2 files to html")
}

func TestIntegration_ConvertToOutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "page.creole")
	outDir := filepath.Join(dir, "out")
	writeFile(t, input, "= Title =\n")

	_, err := execute(t, "", "convert", input, "--to", "markdown", "-o", outDir)
	require.NoError(t, err)

	// Inputs outside the working directory land at the top of the output directory.
	assert.Equal(t, "# Title\n", readFile(t, filepath.Join(outDir, "page.md")))
}

func TestIntegration_DryRunAndDiff(t *testing.T) {
	t.Parallel()

	t.Run("dry run writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "page.owiki"), "# Title\n")

		out, err := execute(t, "", "convert", dir, "--dry-run")
		require.NoError(t, err)

		assert.NoFileExists(t, filepath.Join(dir, "page.html"))
		assert.Contains(t, out, "would write")
	})

	t.Run("diff reports changes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "page.owiki"), "# New\n")
		writeFile(t, filepath.Join(dir, "page.html"), "<h1>Old</h1>\n")

		out, err := execute(t, "", "convert", dir, "--diff")
		require.NoError(t, err)

		assert.Contains(t, out, "-<h1>Old</h1>")
		assert.Contains(t, out, "+<h1>New</h1>")
		assert.Contains(t, out, "1 file changed")
		assert.Equal(t, "<h1>Old</h1>\n", readFile(t, filepath.Join(dir, "page.html")))
	})
}

func TestIntegration_JSONReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.owiki"), "# Title\n")

	out, err := execute(t, "", "convert", dir, "--format", "json", "--dry-run")
	require.NoError(t, err)

	var report reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "html", report.Target)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "owiki", report.Files[0].Source)
	assert.True(t, report.Files[0].Changed)
	assert.False(t, report.Files[0].Written)
	assert.Equal(t, 1, report.Summary.FilesDiscovered)
}

func TestIntegration_VariablesAndDefines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		args  []string
		want  string
	}{
		{
			name:  "var flag",
			files: map[string]string{"page.owiki": "Hello $name!\n"},
			args:  []string{"--var", "name=wikidoc"},
			want:  "<p>Hello wikidoc!</p>\n",
		},
		{
			name: "toml variables file",
			files: map[string]string{
				"page.owiki": "Version $version\n",
				"vars.toml":  "version = \"2.1\"\n",
			},
			args: []string{"--vars", "vars.toml"},
			want: "<p>Version 2.1</p>\n",
		},
		{
			name: "yaml variables file with flag override",
			files: map[string]string{
				"page.owiki": "$a $b\n",
				"vars.yml":   "a: one\nb: two\n",
			},
			args: []string{"--vars", "vars.yml", "--var", "b=three"},
			want: "<p>one three</p>\n",
		},
		{
			name:  "define",
			files: map[string]string{"page.owiki": "@if DRAFT\nShown\n@endif\n"},
			args:  []string{"-D", "DRAFT"},
			want:  "<p>Shown</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}

			args := []string{"convert", filepath.Join(dir, "page.owiki")}
			for _, arg := range tt.args {
				if strings.HasPrefix(arg, "vars.") {
					arg = filepath.Join(dir, arg)
				}
				args = append(args, arg)
			}

			_, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, filepath.Join(dir, "page.html")))
		})
	}
}

func TestIntegration_ConvertStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "# Title\n", "convert", "-")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n", out)

	out, err = execute(t, "# Title\n", "convert", "-", "--from", "gfm", "--to", "creole")
	require.NoError(t, err)
	assert.Equal(t, "= Title\n", out)
}

func TestIntegration_ConvertErrors(t *testing.T) {
	t.Parallel()

	t.Run("failed file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		notes := filepath.Join(dir, "notes.txt")
		writeFile(t, notes, "plain\n")

		out, err := execute(t, "", "convert", notes)
		require.ErrorIs(t, err, cli.ErrConversionFailed)
		assert.Equal(t, cli.ExitConversionErrors, cli.ExitCode(err))
		assert.Contains(t, out, "notes.txt")
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "convert", t.TempDir(), "--to", "pdf")
		require.Error(t, err)
		assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "convert", t.TempDir(), "--format", "xml")
		require.Error(t, err)
		assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	})

	t.Run("stdin mixed with paths", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "convert", "-", t.TempDir())
		require.ErrorIs(t, err, cli.ErrInvalidUsage)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "convert", filepath.Join(t.TempDir(), "missing.owiki"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
		assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
	})
}

func TestIntegration_Formats(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "formats")
	require.NoError(t, err)

	for _, want := range []string{"Sources", "Targets", "Symbols", "Languages", "owiki", "gfm", "confluence", ".html", "smile", ":)", "csharp"} {
		assert.Contains(t, out, want)
	}

	out, err = execute(t, "", "formats", "languages")
	require.NoError(t, err)
	assert.Contains(t, out, "xaml")
	assert.NotContains(t, out, "codeplex")

	out, err = execute(t, "", "formats", "targets")
	require.NoError(t, err)
	assert.Contains(t, out, "codeplex")
	assert.NotContains(t, out, "smile")

	_, err = execute(t, "", "formats", "fonts")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_Samples(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "samples")
	require.NoError(t, err)
	assert.Contains(t, out, "basic")
	assert.Contains(t, out, "rich")

	out, err = execute(t, "", "samples", "basic", "--to", "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Title\n"), out)

	_, err = execute(t, "", "samples", "missing")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		file   string
	}{
		{"yaml", "yaml", "custom.yml"},
		{"toml", "toml", "custom.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)

			_, err := execute(t, "", "init", "--format", tt.format, "--output", path)
			require.NoError(t, err)

			cfg, err := config.FromFile(path, []byte(readFile(t, path)))
			require.NoError(t, err)
			assert.Equal(t, "html", cfg.To)

			_, err = execute(t, "", "init", "--format", tt.format, "--output", path)
			require.ErrorIs(t, err, cli.ErrInvalidUsage)

			_, err = execute(t, "", "init", "--format", tt.format, "--output", path, "--force", "--full")
			require.NoError(t, err)
			assert.Contains(t, readFile(t, path), "header1")
		})
	}

	_, err := execute(t, "", "init", "--format", "json", "--output", filepath.Join(t.TempDir(), "x.json"))
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_Config(t *testing.T) {
	t.Parallel()

	t.Run("env lists variables", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "", "config", "env")
		require.NoError(t, err)
		assert.Contains(t, out, "WIKIDOC_TO")
		assert.Contains(t, out, "WIKIDOC_VAR_<NAME>")
	})

	t.Run("show prints the resolved config", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "", "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "to: html")
		assert.Contains(t, out, "# loaded ")
	})

	t.Run("validate accepts a good file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".wikidoc.toml")
		writeFile(t, path, "to = \"creole\"\n")

		out, err := execute(t, "", "config", "validate", path)
		require.NoError(t, err)
		assert.Contains(t, out, "ok")
	})

	t.Run("validate rejects a bad file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".wikidoc.yml")
		writeFile(t, path, "to: pdf\n")

		out, err := execute(t, "", "config", "validate", path)
		require.Error(t, err)
		assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
		assert.Contains(t, out, "error: ")
	})
}
