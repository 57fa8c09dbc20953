package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/wikidoc/internal/ui/pretty"
	"github.com/yaklabco/wikidoc/pkg/runner"
)

// TableReporter formats results as an aligned table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, pretty.TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprint(r.bw, r.formatter.FormatResult(result, r.opts.displayPath))

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result))
	}

	if result == nil {
		return 0, nil
	}

	return result.Stats.FilesFailed, nil
}
