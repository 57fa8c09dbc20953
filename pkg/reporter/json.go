package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/yaklabco/wikidoc/pkg/runner"
)

// jsonVersion is the schema version of JSONOutput.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Target  string           `json:"target"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path    string `json:"path"`
	Output  string `json:"output,omitempty"`
	Source  string `json:"source,omitempty"`
	Bytes   int    `json:"bytes"`
	Changed bool   `json:"changed"`
	Written bool   `json:"written"`
	Diff    string `json:"diff,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesConverted  int            `json:"filesConverted"`
	FilesChanged    int            `json:"filesChanged"`
	FilesWritten    int            `json:"filesWritten"`
	FilesFailed     int            `json:"filesFailed"`
	BytesWritten    int64          `json:"bytesWritten"`
	BySource        map[string]int `json:"bySource"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySource: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	output.Target = result.Target
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    r.opts.displayPath(file.Path),
			Output:  r.opts.displayPath(file.OutputPath),
			Source:  file.Source,
			Bytes:   file.Bytes,
			Changed: file.Changed,
			Written: file.Written,
		}

		if file.Diff.HasChanges() {
			fileResult.Diff = file.Diff.String()
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesConverted = stats.FilesConverted
	output.Summary.FilesChanged = stats.FilesChanged
	output.Summary.FilesWritten = stats.FilesWritten
	output.Summary.FilesFailed = stats.FilesFailed
	output.Summary.BytesWritten = stats.BytesWritten
	maps.Copy(output.Summary.BySource, stats.BySource)

	return output
}
