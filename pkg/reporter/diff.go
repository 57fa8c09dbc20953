package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/wikidoc/internal/ui/pretty"
	"github.com/yaklabco/wikidoc/pkg/runner"
	"github.com/yaklabco/wikidoc/pkg/textdiff"
)

// DiffReporter prints a git-style unified diff for every output that
// would change.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var changed, added, removed int

	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render("error: "+file.Error.Error()))
		case file.Diff.HasChanges():
			changed++
			added += file.Diff.Additions
			removed += file.Diff.Deletions
			r.printDiff(file.Diff)
		}
	}

	if changed > 0 && r.opts.ShowSummary {
		r.printTotals(changed, added, removed)
	}

	return changed, nil
}

func (r *DiffReporter) printDiff(diff *textdiff.Diff) {
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(diff.GitHeader()))

	body := strings.TrimSuffix(diff.String(), "\n")
	for line := range strings.SplitSeq(body, "\n") {
		fmt.Fprintln(r.bw, r.lineStyle(line).Render(line))
	}

	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) lineStyle(line string) lipgloss.Style {
	if line == "" {
		return r.styles.DiffContext
	}

	switch line[0] {
	case '@':
		return r.styles.DiffHunk
	case '+':
		return r.styles.DiffAdd
	case '-':
		return r.styles.DiffRemove
	default:
		return r.styles.DiffContext
	}
}

// printTotals writes the "N files changed, X insertions(+), Y deletions(-)"
// footer.
func (r *DiffReporter) printTotals(files, added, removed int) {
	parts := []string{english.Plural(files, "file", "") + " changed"}

	if added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(english.Plural(added, "insertion", "")+"(+)"))
	}
	if removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(english.Plural(removed, "deletion", "")+"(-)"))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
