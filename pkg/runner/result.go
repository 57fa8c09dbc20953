package runner

import "github.com/yaklabco/wikidoc/pkg/textdiff"

// FileOutcome is the result of converting one file.
type FileOutcome struct {
	// Path is the input file path.
	Path string

	// OutputPath is where the converted document goes.
	OutputPath string

	// Source is the dialect the input was read as.
	Source string

	// Bytes is the size of the converted document.
	Bytes int

	// Changed is true when the output differs from the existing file.
	Changed bool

	// Written is true when the output file was written.
	Written bool

	// Diff is set in diff mode when the output changed.
	Diff *textdiff.Diff

	// Error is set if the file could not be converted or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files converted without error.
	FilesConverted int

	// FilesChanged is the number of outputs that differ from what is on disk.
	FilesChanged int

	// FilesWritten is the number of output files written.
	FilesWritten int

	// FilesFailed is the number of files that encountered errors.
	FilesFailed int

	// BytesWritten is the total size of the written outputs.
	BytesWritten int64

	// BySource counts converted files per source dialect.
	BySource map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Target is the output format of the run.
	Target string

	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// HasChanges reports whether any output differs from what is on disk.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{BySource: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.BySource[outcome.Source]++

	if outcome.Changed {
		r.Stats.FilesChanged++
	}

	if outcome.Written {
		r.Stats.FilesWritten++
		r.Stats.BytesWritten += int64(outcome.Bytes)
	}
}
