package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/wikidoc/internal/ui/pretty"
	"github.com/yaklabco/wikidoc/pkg/runner"
)

// TextReporter writes one styled line per file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result))
		}
		return 0, nil
	}

	var failed int

	for _, file := range result.Files {
		if file.Error != nil {
			failed++
		} else if r.opts.Quiet {
			continue
		}

		fmt.Fprint(r.bw, r.styles.FormatOutcome(file, r.opts.displayPath))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result))
	}

	return failed, nil
}
