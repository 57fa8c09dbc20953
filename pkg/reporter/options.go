package reporter

import (
	"io"
	"path/filepath"
	"strings"
)

// bufWriterSize is the buffer used by line-oriented reporters.
const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	ShowSummary bool

	// Quiet drops the per-file line for successful conversions.
	Quiet bool

	// Compact applies to JSON only.
	Compact bool

	// WorkingDir, when set, shortens absolute paths beneath it.
	WorkingDir string
}

// displayPath makes path relative to WorkingDir when it lies beneath it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || path == "" || !filepath.IsAbs(path) {
		return path
	}

	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	return rel
}
