package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/wikidoc/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding    = 2
	minColumnWidth  = 8
	heavySeparator  = "="
	lightSeparator  = "-"
	truncationTail  = "..."
	resultColumns   = 5 // FILE, OUTPUT, SOURCE, SIZE, STATUS
	statusColumnIdx = 4
)

// Row is one table row. Failed rows are rendered with the failure style.
type Row struct {
	Cells  []string
	Failed bool
}

// TableFormatter formats rows as an aligned, styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders headers and rows. Columns are padded by display width;
// the widest column is truncated when the table exceeds the terminal.
func (t *TableFormatter) Format(headers []string, rows []Row) string {
	if len(headers) == 0 {
		return ""
	}

	widths := t.columnWidths(headers, rows)

	var builder strings.Builder

	builder.WriteString(t.styles.TableHeader.Render(t.line(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		style := lipgloss.NewStyle()
		if row.Failed {
			style = t.styles.TableFailedRow
		}
		builder.WriteString(style.Render(t.line(row.Cells, widths)))
		builder.WriteString("\n")
	}

	if len(rows) > 0 {
		builder.WriteString(t.separator(widths, lightSeparator))
		builder.WriteString("\n")
	}

	return builder.String()
}

// FormatResult renders one row per converted file. display shortens
// paths; nil keeps them as they are.
func (t *TableFormatter) FormatResult(result *runner.Result, display func(string) string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}
	if display == nil {
		display = func(p string) string { return p }
	}

	rows := make([]Row, 0, len(result.Files))
	for _, f := range result.Files {
		cells := make([]string, resultColumns)
		cells[0] = display(f.Path)
		cells[statusColumnIdx] = OutcomeStatus(f)
		if f.Error == nil {
			cells[1] = display(f.OutputPath)
			cells[2] = f.Source
			cells[3] = humanize.Bytes(uint64(max(f.Bytes, 0)))
		} else {
			cells[1] = f.Error.Error()
		}
		rows = append(rows, Row{Cells: cells, Failed: f.Error != nil})
	}

	return t.Format([]string{"FILE", "OUTPUT", "SOURCE", "SIZE", "STATUS"}, rows)
}

func (t *TableFormatter) columnWidths(headers []string, rows []Row) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i := 0; i < len(row.Cells) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row.Cells[i]))
		}
	}

	// Shrink the widest column until the table fits.
	for total(widths) > t.termWidth {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		excess := total(widths) - t.termWidth
		next := max(minColumnWidth, widths[widest]-excess)
		if next == widths[widest] {
			break
		}
		widths[widest] = next
	}

	return widths
}

func total(widths []int) int {
	sum := 1
	for _, w := range widths {
		sum += w + tablePadding
	}
	return sum
}

func (t *TableFormatter) line(cells []string, widths []int) string {
	var builder strings.Builder

	builder.WriteString(" ")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if runewidth.StringWidth(cell) > w {
			cell = runewidth.Truncate(cell, w, truncationTail)
		}
		if i == len(widths)-1 {
			builder.WriteString(cell)
			break
		}
		builder.WriteString(runewidth.FillRight(cell, w))
		builder.WriteString(strings.Repeat(" ", tablePadding))
	}

	return strings.TrimRight(builder.String(), " ")
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, total(widths)))
}
