// Package pretty renders styled terminal output: outcome lines, tables
// and summaries.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

// Styles holds the lipgloss styles used by reporters and listings.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Per-file outcome line.
	FilePath lipgloss.Style
	Arrow    lipgloss.Style
	Source   lipgloss.Style
	Written  lipgloss.Style
	Skipped  lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableFailedRow lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI palette indexes.
const (
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
	colorGray    = "8"
	colorSilver  = "7"
)

// NewStyles returns the colored styles, or plain ones when colorEnabled
// is false.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(lipgloss.Color(color))
	}
	bold := plain
	if colorEnabled {
		bold = plain.Bold(true)
	}

	return &Styles{
		Error:   fg(colorRed).Inherit(bold),
		Warning: fg(colorYellow).Inherit(bold),
		Info:    fg(colorBlue).Inherit(bold),

		FilePath: bold,
		Arrow:    fg(colorGray),
		Source:   fg(colorMagenta),
		Written:  fg(colorGreen),
		Skipped:  fg(colorGray),

		DiffHeader:  bold,
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: bold,
		SummaryValue: plain,
		Success:      fg(colorGreen).Inherit(bold),
		Failure:      fg(colorRed).Inherit(bold),

		TableHeader:    fg(colorSilver).Inherit(bold),
		TableFailedRow: fg(colorRed),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled resolves a --color mode of "always", "never" or "auto".
// Auto colors only a terminal, and only while NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// TerminalWidth returns the column count of writer when it is a
// terminal, or a default width otherwise.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTermWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}

	return width
}
