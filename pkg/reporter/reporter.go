// Package reporter writes the outcome of a batch conversion.
package reporter

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/runner"
)

// Reporter writes a conversion result. The returned count is the number of
// failed files, or for FormatDiff the number of files that differ.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Format names a report layout.
type Format string

// Report layouts.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

var constructors = map[Format]func(Options) Reporter{
	FormatText:    func(o Options) Reporter { return NewTextReporter(o) },
	FormatTable:   func(o Options) Reporter { return NewTableReporter(o) },
	FormatJSON:    func(o Options) Reporter { return NewJSONReporter(o) },
	FormatDiff:    func(o Options) Reporter { return NewDiffReporter(o) },
	FormatSummary: func(o Options) Reporter { return NewSummaryReporter(o) },
}

// Formats lists the known layouts in a stable order.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatDiff, FormatSummary}
}

// ParseFormat resolves a layout name. An empty name means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}

	f := Format(name)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, formatList())
	}

	return f, nil
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is one of Formats.
func (f Format) IsValid() bool {
	return slices.Contains(Formats(), f)
}

func formatList() string {
	names := make([]string, 0, len(constructors))
	for _, f := range Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// New builds the reporter for opts.Format, writing to stdout when no
// writer is set.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	format, err := ParseFormat(opts.Format.String())
	if err != nil {
		return nil, err
	}

	return constructors[format](opts), nil
}
