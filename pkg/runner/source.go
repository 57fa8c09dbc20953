package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
	"github.com/yaklabco/wikidoc/pkg/parser"
	"github.com/yaklabco/wikidoc/pkg/parser/goldmark"
)

// ErrUnknownSource is returned when no source dialect can be chosen for
// a file.
var ErrUnknownSource = errors.New("unknown source dialect")

// Source is the syntax a document is read in: one of the wiki dialects,
// or a goldmark Markdown flavor.
type Source struct {
	Dialect parser.Dialect
	Flavor  string
}

// Sources returns every source in listing order.
func Sources() []Source {
	var out []Source
	for _, d := range parser.Dialects() {
		out = append(out, Source{Dialect: d})
	}
	for _, f := range goldmark.Flavors() {
		out = append(out, Source{Flavor: f})
	}

	return out
}

// ParseSource parses a dialect name, a dialect alias or a goldmark flavor.
func ParseSource(name string) (Source, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if goldmark.IsFlavor(key) {
		return Source{Flavor: key}, nil
	}

	d, err := parser.ParseDialect(key)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownSource, name, sourceNames())
	}

	return Source{Dialect: d}, nil
}

// DetectSource returns the source for path. A non-empty from wins over
// the file extension.
func DetectSource(path, from string) (Source, error) {
	if from != "" {
		return ParseSource(from)
	}

	if d, ok := parser.DialectForPath(path); ok {
		return Source{Dialect: d}, nil
	}

	return Source{}, fmt.Errorf("%w for %s; use --from", ErrUnknownSource, path)
}

// String returns the source name.
func (s Source) String() string {
	if s.Flavor != "" {
		return s.Flavor
	}

	return s.Dialect.String()
}

// Description returns a one-line summary of s.
func (s Source) Description() string {
	switch s.Flavor {
	case goldmark.FlavorCommonMark:
		return "CommonMark via goldmark"
	case goldmark.FlavorGFM:
		return "GitHub Flavored Markdown via goldmark"
	}

	return s.Dialect.Description()
}

// Extensions returns the file extensions read as s.
func (s Source) Extensions() []string {
	if s.Flavor != "" {
		return parser.Markdown.Extensions()
	}

	return s.Dialect.Extensions()
}

// Parse reads text as s. Variables, defines and includes in opts only
// apply to the wiki dialects.
func (s Source) Parse(ctx context.Context, text string, opts parser.Options) (*docmodel.Document, error) {
	if s.Flavor != "" {
		doc, err := goldmark.New(s.Flavor).Parse(ctx, []byte(text))
		if err != nil {
			return nil, err
		}
		doc.BaseDirectory = opts.BaseDirectory

		return doc, nil
	}

	opts.Dialect = s.Dialect

	return parser.Parse(ctx, text, opts)
}

func sourceNames() string {
	var names []string
	for _, s := range Sources() {
		names = append(names, s.String())
	}

	return strings.Join(names, ", ")
}

// allExtensions returns the extensions of every wiki dialect.
func allExtensions() []string {
	var exts []string
	for _, d := range parser.Dialects() {
		exts = append(exts, d.Extensions()...)
	}

	return exts
}
