package format

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// Options configures rendering. Targets ignore fields they have no use
// for.
type Options struct {
	// SymbolDirectory is the directory or URL prefix of symbol assets.
	SymbolDirectory string

	// StyleSheet supplies the CSS of standalone HTML pages. Nil uses
	// docmodel.DefaultStyleSheet.
	StyleSheet *docmodel.StyleSheet

	// Template wraps the output. It may use the {{content}}, {{title}} and
	// {{css}} placeholders.
	Template string

	// CSSPath is linked from standalone HTML pages and substituted for
	// {{css}} in templates.
	CSSPath string

	// LocalLinkFormat rewrites relative link targets. Its %s verb receives
	// the original target, e.g. "%s.html".
	LocalLinkFormat string

	// Replacements are applied to the final output.
	Replacements map[string]string

	// Typography converts ASCII sequences such as "--" to their
	// typographic glyphs in text.
	Typography bool

	// Standalone renders a complete HTML page instead of a fragment.
	Standalone bool

	// DetectLanguage guesses the language of untagged code blocks for
	// highlighting.
	DetectLanguage bool

	// Logger receives debug messages about dropped content. Nil discards
	// them.
	Logger *log.Logger
}

func (o Options) styleSheet() *docmodel.StyleSheet {
	if o.StyleSheet == nil {
		return docmodel.DefaultStyleSheet()
	}

	return o.StyleSheet
}
