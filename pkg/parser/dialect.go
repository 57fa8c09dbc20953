// Package parser turns wiki markup into a docmodel.Document. One engine
// serves every dialect: a dialect is a table of block rules and inline
// rules plus its escape character.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidDialect is returned for dialect names that are not recognized.
var ErrInvalidDialect = errors.New("invalid dialect")

// Dialect names a wiki markup syntax.
type Dialect string

// Supported dialects.
const (
	// OWiki is the native dialect. It can express every node variant.
	OWiki Dialect = "owiki"

	// Markdown is a CommonMark-like dialect with pipe tables.
	Markdown Dialect = "markdown"

	// Creole is Wiki Creole 1.0 with the common additions.
	Creole Dialect = "creole"
)

// Dialects returns every supported dialect.
func Dialects() []Dialect {
	return []Dialect{OWiki, Markdown, Creole}
}

// String implements fmt.Stringer.
func (d Dialect) String() string { return string(d) }

// IsValid reports whether d is a supported dialect.
func (d Dialect) IsValid() bool {
	switch d {
	case OWiki, Markdown, Creole:
		return true
	}

	return false
}

// Extensions returns the file extensions conventionally used by d.
func (d Dialect) Extensions() []string {
	switch d {
	case OWiki:
		return []string{".owiki", ".wiki"}
	case Markdown:
		return []string{".md", ".markdown", ".mdown"}
	case Creole:
		return []string{".creole"}
	}

	return nil
}

// Description returns a one-line summary of d.
func (d Dialect) Description() string {
	switch d {
	case OWiki:
		return "native wiki syntax covering every construct"
	case Markdown:
		return "CommonMark-style Markdown with pipe tables"
	case Creole:
		return "Wiki Creole 1.0"
	}

	return ""
}

// ParseDialect parses a dialect name. Common aliases are accepted.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "owiki", "wiki", "o":
		return OWiki, nil
	case "markdown", "md":
		return Markdown, nil
	case "creole", "wikicreole":
		return Creole, nil
	}

	return "", fmt.Errorf("%w: %q (valid: owiki, markdown, creole)", ErrInvalidDialect, s)
}

// DialectForPath picks a dialect from a file extension.
func DialectForPath(path string) (Dialect, bool) {
	ext := strings.ToLower(filepath.Ext(path))

	for _, d := range Dialects() {
		for _, candidate := range d.Extensions() {
			if candidate == ext {
				return d, true
			}
		}
	}

	return "", false
}
