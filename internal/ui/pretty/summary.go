package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/wikidoc/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 3 files to html: 2 written, 1 unchanged, 1 failed (4.1 kB)".
func (s *Styles) FormatSummaryOneLine(result *runner.Result) string {
	if result == nil || result.Stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to convert.") + "\n"
	}

	stats := result.Stats

	head := fmt.Sprintf("Converted %d %s to %s", stats.FilesConverted, plural(stats.FilesConverted), result.Target)
	if stats.FilesFailed == 0 {
		head = s.Success.Render(head)
	}

	var parts []string

	if stats.FilesWritten > 0 {
		parts = append(parts, s.Written.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if pending := stats.FilesChanged - stats.FilesWritten; pending > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d would change", pending)))
	}
	if unchanged := stats.FilesConverted - stats.FilesChanged; unchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", unchanged)))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	line := head
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, ", ")
	}
	if stats.BytesWritten > 0 {
		line += s.Dim.Render(" (" + humanize.Bytes(uint64(stats.BytesWritten)) + ")")
	}

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(result *runner.Result) string {
	var builder strings.Builder

	stats := runner.Stats{}
	target := ""
	if result != nil {
		stats = result.Stats
		target = result.Target
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	row("Target", s.SummaryValue.Render(target))
	row("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files converted", s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)))

	if stats.FilesChanged > 0 {
		row("Files changed", s.Warning.Render(strconv.Itoa(stats.FilesChanged)))
	}
	if stats.FilesWritten > 0 {
		row("Files written", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
		row("Bytes written", s.SummaryValue.Render(humanize.Bytes(uint64(stats.BytesWritten))))
	}
	if stats.FilesFailed > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}

	if len(stats.BySource) > 0 {
		builder.WriteString("\n")
		sources := make([]string, 0, len(stats.BySource))
		for src := range stats.BySource {
			sources = append(sources, src)
		}
		slices.Sort(sources)
		for _, src := range sources {
			fmt.Fprintf(&builder, "    %-17s%s\n", src+":", s.Source.Render(strconv.Itoa(stats.BySource[src])))
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Conversion finished with errors"))
	case stats.FilesDiscovered == 0:
		builder.WriteString(s.Dim.Render("Nothing to convert"))
	default:
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
