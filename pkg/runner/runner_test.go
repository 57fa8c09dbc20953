package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikidoc/pkg/config"
	"github.com/yaklabco/wikidoc/pkg/runner"
)

func newRunner(t *testing.T, cfg *config.Config) *runner.Runner {
	t.Helper()

	conv, err := runner.NewConverter(context.Background(), cfg, nil)
	require.NoError(t, err)

	return runner.New(conv)
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	r := newRunner(t, config.NewConfig())

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "html", result.Target)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_WritesOutputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.owiki":     "# Title\n",
		"docs/intro.md":   "Hello **world**!\n",
		"docs/legacy.txt": "ignored by the walk\n",
	})

	r := newRunner(t, config.NewConfig())

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 2, result.Stats.FilesConverted)
	assert.Equal(t, 2, result.Stats.FilesWritten)
	assert.Equal(t, 2, result.Stats.FilesChanged)
	assert.Equal(t, map[string]int{"owiki": 1, "markdown": 1}, result.Stats.BySource)

	assert.Equal(t, "<h1>Title</h1>\n", readFile(t, filepath.Join(dir, "index.html")))
	assert.Equal(t, "<p>Hello <b>world</b>!</p>\n", readFile(t, filepath.Join(dir, "docs", "intro.html")))

	var total int64
	for _, f := range result.Files {
		assert.True(t, f.Written, f.Path)
		assert.NoError(t, f.Error)
		total += int64(f.Bytes)
	}
	assert.Equal(t, total, result.Stats.BytesWritten)

	// A second run finds nothing to change.
	again, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Zero(t, again.Stats.FilesWritten)
	assert.False(t, again.HasChanges())
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"page.owiki": "# Title\n"})

	r := newRunner(t, config.NewConfig())

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, DryRun: true})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	f := result.Files[0]
	assert.True(t, f.Changed)
	assert.False(t, f.Written)
	assert.Nil(t, f.Diff)
	assert.Equal(t, filepath.Join(dir, "page.html"), f.OutputPath)
	assert.NoFileExists(t, f.OutputPath)
	assert.Zero(t, result.Stats.BytesWritten)
}

func TestRunner_Run_Diff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"new.owiki":  "# Title\n",
		"old.owiki":  "# Title\n",
		"old.html":   "<h1>Old</h1>\n",
		"same.owiki": "# Same\n",
		"same.html":  "<h1>Same</h1>\n",
	})

	r := newRunner(t, config.NewConfig())

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Diff: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	created, modified, same := result.Files[0], result.Files[1], result.Files[2]

	require.NotNil(t, created.Diff)
	assert.True(t, created.Diff.Created)
	assert.Equal(t, "new.html", created.Diff.Path)
	assert.Equal(t, 1, created.Diff.Additions)

	require.NotNil(t, modified.Diff)
	assert.False(t, modified.Diff.Created)
	assert.Equal(t, 1, modified.Diff.Additions)
	assert.Equal(t, 1, modified.Diff.Deletions)

	assert.False(t, same.Changed)
	assert.Nil(t, same.Diff)

	assert.NoFileExists(t, filepath.Join(dir, "new.html"))
	assert.Equal(t, "<h1>Old</h1>\n", readFile(t, filepath.Join(dir, "old.html")))
	assert.Equal(t, 2, result.Stats.FilesChanged)
	assert.Zero(t, result.Stats.FilesWritten)
}

func TestRunner_Run_OutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"docs/a/page.creole": "= Title =\n"})

	cfg := config.NewConfig()
	cfg.To = "markdown"
	r := newRunner(t, cfg)

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, OutputDir: "site"})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	want := filepath.Join(dir, "site", "docs", "a", "page.md")
	assert.Equal(t, want, result.Files[0].OutputPath)
	assert.Equal(t, "# Title\n", readFile(t, want))
}

func TestRunner_Run_PerFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"readme.md":  "# Readme\n",
		"notes.txt":  "plain\n",
		"page.owiki": "# Page\n",
	})

	cfg := config.NewConfig()
	cfg.To = "markdown"
	r := newRunner(t, cfg)

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"readme.md", "notes.txt", "page.owiki"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	byName := make(map[string]runner.FileOutcome)
	for _, f := range result.Files {
		byName[filepath.Base(f.Path)] = f
	}

	require.ErrorIs(t, byName["notes.txt"].Error, runner.ErrUnknownSource)
	require.ErrorIs(t, byName["readme.md"].Error, runner.ErrOverwritesSource)
	require.NoError(t, byName["page.owiki"].Error)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 2, result.Stats.FilesFailed)
	assert.Equal(t, 1, result.Stats.FilesConverted)
	assert.Equal(t, "plain\n", readFile(t, filepath.Join(dir, "notes.txt")))
}

func TestRunner_Run_FromOverridesExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"notes.txt": "**bold**\n"})

	cfg := config.NewConfig()
	cfg.From = "creole"
	r := newRunner(t, cfg)

	result, err := r.Run(context.Background(), runner.Options{Paths: []string{"notes.txt"}, WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)

	assert.Equal(t, "creole", result.Files[0].Source)
	assert.Equal(t, "<p><b>bold</b></p>\n", readFile(t, filepath.Join(dir, "notes.html")))
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["docs/"+name+".owiki"] = "# " + name + "\n\nText for " + name + ".\n"
	}

	run := func(jobs int) *runner.Result {
		dir := t.TempDir()
		writeTree(t, dir, files)

		result, err := newRunner(t, config.NewConfig()).Run(context.Background(),
			runner.Options{WorkingDir: dir, DryRun: true, Jobs: jobs})
		require.NoError(t, err)

		return result
	}

	serial, parallel := run(1), run(8)
	require.Len(t, parallel.Files, len(serial.Files))

	for i := range serial.Files {
		assert.Equal(t, filepath.Base(serial.Files[i].Path), filepath.Base(parallel.Files[i].Path))
		assert.Equal(t, serial.Files[i].Bytes, parallel.Files[i].Bytes)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.owiki": "# A\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, config.NewConfig()).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasChanges())
}
