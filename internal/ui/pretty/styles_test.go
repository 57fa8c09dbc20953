package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/wikidoc/internal/ui/pretty"
)

func TestNoColorStylesArePlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	plain := map[string]lipgloss.Style{
		"error":         styles.Error,
		"file path":     styles.FilePath,
		"source":        styles.Source,
		"written":       styles.Written,
		"diff add":      styles.DiffAdd,
		"diff remove":   styles.DiffRemove,
		"summary title": styles.SummaryTitle,
		"table header":  styles.TableHeader,
		"dim":           styles.Dim,
	}

	for name, style := range plain {
		assert.Equal(t, "page.owiki", style.Render("page.owiki"), name)
	}
}

func TestColorStylesKeepText(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)

	// Lipgloss drops escape codes when no color profile is detected, so only
	// the text itself is checked.
	for _, style := range []lipgloss.Style{styles.Error, styles.Written, styles.DiffHunk, styles.Failure, styles.Bold} {
		assert.Contains(t, style.Render("owiki"), "owiki")
	}
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name    string
		mode    string
		writer  io.Writer
		noColor string
		want    bool
	}{
		{"always", "always", &buf, "", true},
		{"always ignores NO_COLOR", "always", &buf, "1", true},
		{"never", "never", os.Stdout, "", false},
		{"auto with buffer", "auto", &buf, "", false},
		{"auto with NO_COLOR", "auto", os.Stdout, "1", false},
		{"empty mode is auto", "", &buf, "", false},
		{"unknown mode is auto", "sometimes", &buf, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)

			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer))
		})
	}
}

func TestTerminalWidthNonTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))
}
