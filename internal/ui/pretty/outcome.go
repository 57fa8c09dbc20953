package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/wikidoc/pkg/runner"
)

// Outcome status labels.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusChanged   = "would write"
	StatusFailed    = "failed"
)

// OutcomeStatus returns the status label of a file outcome.
func OutcomeStatus(outcome runner.FileOutcome) string {
	switch {
	case outcome.Error != nil:
		return StatusFailed
	case outcome.Written:
		return StatusWritten
	case outcome.Changed:
		return StatusChanged
	default:
		return StatusUnchanged
	}
}

// FormatOutcome formats one converted file as a single line:
//
//	docs/page.owiki -> site/docs/page.html  owiki  1.2 kB  written
//
// display shortens paths for output; nil keeps them as they are.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, display func(string) string) string {
	if display == nil {
		display = func(p string) string { return p }
	}

	if outcome.Error != nil {
		return fmt.Sprintf("%s: %s\n",
			s.FilePath.Render(display(outcome.Path)),
			s.Error.Render(fmt.Sprintf("error: %v", outcome.Error)))
	}

	var builder strings.Builder

	builder.WriteString(s.FilePath.Render(display(outcome.Path)))
	builder.WriteString(s.Arrow.Render(" -> "))
	builder.WriteString(display(outcome.OutputPath))
	builder.WriteString("  ")
	builder.WriteString(s.Source.Render(outcome.Source))
	builder.WriteString("  ")
	builder.WriteString(s.Dim.Render(humanize.Bytes(uint64(max(outcome.Bytes, 0)))))
	builder.WriteString("  ")
	builder.WriteString(s.FormatStatus(OutcomeStatus(outcome)))
	builder.WriteString("\n")

	return builder.String()
}

// FormatStatus returns a styled status label.
func (s *Styles) FormatStatus(status string) string {
	switch status {
	case StatusFailed:
		return s.Error.Render(status)
	case StatusWritten:
		return s.Written.Render(status)
	case StatusChanged:
		return s.Warning.Render(status)
	default:
		return s.Skipped.Render(status)
	}
}
