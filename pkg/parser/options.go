package parser

import (
	"github.com/charmbracelet/log"
)

// IncludeFunc returns the text of an included document. The path is the
// argument of an @include directive joined with the base directory.
type IncludeFunc func(path string) (string, error)

// Options configures a parse.
type Options struct {
	// Dialect selects the syntax. The zero value means OWiki.
	Dialect Dialect

	// BaseDirectory is recorded on the document and used to resolve
	// @include paths.
	BaseDirectory string

	// Variables are substituted for $name references before parsing.
	// Keys may be given with or without the leading $.
	Variables map[string]string

	// Defines are the names that are true for @if directives.
	Defines []string

	// Include resolves @include directives. Without it they are dropped.
	Include IncludeFunc

	// Logger receives debug and warning messages. Nil discards them.
	Logger *log.Logger
}

func (o Options) dialect() Dialect {
	if o.Dialect == "" {
		return OWiki
	}

	return o.Dialect
}
