package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/wikidoc/internal/ui/pretty"
	"github.com/yaklabco/wikidoc/pkg/runner"
)

// SummaryReporter writes only aggregate statistics and failed files.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	var failed int

	if result != nil {
		for _, file := range result.Files {
			if file.Error == nil {
				continue
			}
			failed++
			if _, err := fmt.Fprint(r.out, r.styles.FormatOutcome(file, r.opts.displayPath)); err != nil {
				return failed, fmt.Errorf("write summary: %w", err)
			}
		}
	}

	if _, err := fmt.Fprint(r.out, r.styles.FormatSummary(result)); err != nil {
		return failed, fmt.Errorf("write summary: %w", err)
	}

	return failed, nil
}
