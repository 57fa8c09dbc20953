package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikidoc/pkg/reporter"
	"github.com/yaklabco/wikidoc/pkg/runner"
	"github.com/yaklabco/wikidoc/pkg/textdiff"
)

var workDir = filepath.FromSlash("/work")

func abs(rel string) string {
	return filepath.Join(workDir, filepath.FromSlash(rel))
}

// sampleResult has one written file, one unchanged file and one failure.
func sampleResult() *runner.Result {
	return &runner.Result{
		Target: "html",
		Files: []runner.FileOutcome{
			{
				Path: abs("docs/a.owiki"), OutputPath: abs("docs/a.html"),
				Source: "owiki", Bytes: 20, Changed: true, Written: true,
			},
			{
				Path: abs("docs/b.creole"), OutputPath: abs("docs/b.html"),
				Source: "creole", Bytes: 12,
			},
			{
				Path: abs("notes.txt"), Error: errors.New("unknown source dialect"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesConverted:  2,
			FilesChanged:    1,
			FilesWritten:    1,
			FilesFailed:     1,
			BytesWritten:    20,
			BySource:        map[string]int{"owiki": 1, "creole": 1},
		},
	}
}

func diffResult() *runner.Result {
	created := textdiff.Generate("docs/new.html", nil, []byte("<h1>T</h1>\n"))
	modified := textdiff.Generate("docs/old.html", []byte("<h1>Old</h1>\n<p>x</p>\n"), []byte("<h1>New</h1>\n<p>x</p>\n"))

	return &runner.Result{
		Target: "html",
		Files: []runner.FileOutcome{
			{Path: abs("docs/new.owiki"), OutputPath: abs("docs/new.html"), Source: "owiki", Changed: true, Diff: created},
			{Path: abs("docs/old.owiki"), OutputPath: abs("docs/old.html"), Source: "owiki", Changed: true, Diff: modified},
			{Path: abs("docs/same.owiki"), OutputPath: abs("docs/same.html"), Source: "owiki"},
		},
		Stats: runner.Stats{FilesDiscovered: 3, FilesConverted: 3, FilesChanged: 2, BySource: map[string]int{"owiki": 3}},
	}
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	if opts.WorkingDir == "" {
		opts.WorkingDir = workDir
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	return buf.String(), n
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml", Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.False(t, reporter.Format("xml").IsValid())
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, sampleResult())

	assert.Equal(t, 1, failed)
	assert.Equal(t, strings.Join([]string{
		filepath.FromSlash("docs/a.owiki -> docs/a.html  owiki  20 B  written"),
		filepath.FromSlash("docs/b.creole -> docs/b.html  creole  12 B  unchanged"),
		"notes.txt: error: unknown source dialect",
		"Converted 2 files to html: 1 written, 1 unchanged, 1 failed (20 B)",
		"",
	}, "\n"), out)
}

func TestTextReporter_Quiet(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatText, Quiet: true}, sampleResult())
	assert.Equal(t, "notes.txt: error: unknown source dialect\n", out)
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, &runner.Result{Target: "html"})
	assert.Zero(t, failed)
	assert.Equal(t, "No files to convert.\n", out)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatTable, ShowSummary: true}, sampleResult())

	assert.Equal(t, 1, failed)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, filepath.FromSlash("docs/b.creole"))
	assert.Contains(t, out, "unchanged")
	assert.Contains(t, out, "Converted 2 files to html")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatJSON}, sampleResult())
	assert.Equal(t, 1, failed)

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "1.0.0", parsed.Version)
	assert.Equal(t, "html", parsed.Target)
	require.Len(t, parsed.Files, 3)
	assert.Equal(t, reporter.JSONFileResult{
		Path: filepath.FromSlash("docs/a.owiki"), Output: filepath.FromSlash("docs/a.html"),
		Source: "owiki", Bytes: 20, Changed: true, Written: true,
	}, parsed.Files[0])
	assert.Equal(t, "unknown source dialect", parsed.Files[2].Error)
	assert.Equal(t, reporter.JSONSummary{
		FilesDiscovered: 3, FilesConverted: 2, FilesChanged: 1, FilesWritten: 1, FilesFailed: 1,
		BytesWritten: 20, BySource: map[string]int{"owiki": 1, "creole": 1},
	}, parsed.Summary)
}

func TestJSONReporter_CompactAndDiff(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, diffResult())

	assert.Equal(t, 1, strings.Count(out, "\n"))

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Contains(t, parsed.Files[0].Diff, "--- /dev/null")
	assert.Empty(t, parsed.Files[2].Diff)
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON}, nil)

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Empty(t, parsed.Files)
	assert.NotNil(t, parsed.Files)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	out, changed := report(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true}, diffResult())

	assert.Equal(t, 2, changed)
	assert.Equal(t, strings.Join([]string{
		"diff --git a/docs/new.html b/docs/new.html",
		"--- /dev/null",
		"+++ b/docs/new.html",
		"@@ -0,0 +1,1 @@",
		"+<h1>T</h1>",
		"",
		"diff --git a/docs/old.html b/docs/old.html",
		"--- a/docs/old.html",
		"+++ b/docs/old.html",
		"@@ -1,2 +1,2 @@",
		"-<h1>Old</h1>",
		"+<h1>New</h1>",
		" <p>x</p>",
		"",
		"2 files changed, 2 insertions(+), 1 deletion(-)",
		"",
	}, "\n"), out)
}

func TestDiffReporter_NoChanges(t *testing.T) {
	t.Parallel()

	out, changed := report(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true}, &runner.Result{
		Files: []runner.FileOutcome{{Path: abs("a.owiki")}},
	})
	assert.Zero(t, changed)
	assert.Empty(t, out)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatSummary}, sampleResult())

	assert.Equal(t, 1, failed)
	assert.True(t, strings.HasPrefix(out, "notes.txt: error: unknown source dialect\n"))
	assert.Contains(t, out, "Files failed:")
	assert.Contains(t, out, "Conversion finished with errors")
	assert.NotContains(t, out, "docs/a.owiki")
}
