package format

import (
	"strings"
)

// escaper prefixes the characters of literal text that a wiki dialect
// would read as markup with the dialect's escape sequence.
type escaper struct {
	esc string
	// end, when set, closes every escape sequence.
	end string
	// always lists characters that are escaped everywhere.
	always string
	// doubled lists characters that are escaped when the next character
	// is the same or the text ends with them.
	doubled string
	// lineStart lists characters escaped as the first character of a line.
	lineStart string
	// ordered lists the delimiters of numbered list items, escaped after
	// leading digits at the start of a line.
	ordered string
	// cell lists characters escaped inside table cells.
	cell string
	// prefixes are sequences whose first character is escaped.
	prefixes []string
	// equations escapes $$ and $name.
	equations bool
	// symbols escapes the colon of :name:.
	symbols bool
}

func (e escaper) escape(s string, atLineStart, inCell bool) string {
	var sb strings.Builder

	sb.Grow(len(s))

	// Text at a line start counts from its first non-blank character.
	lead := -1
	if atLineStart {
		lead = len(s) - len(strings.TrimLeft(s, " \t"))
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !e.needsEscape(s, i, lead, inCell) {
			sb.WriteByte(ch)
			continue
		}

		sb.WriteString(e.esc)
		sb.WriteByte(ch)
		sb.WriteString(e.end)
	}

	return sb.String()
}

func (e escaper) needsEscape(s string, i, lead int, inCell bool) bool {
	ch := s[i]

	switch {
	case strings.IndexByte(e.always, ch) >= 0:
		return true
	case strings.IndexByte(e.doubled, ch) >= 0 && (i+1 == len(s) || s[i+1] == ch):
		return true
	case inCell && strings.IndexByte(e.cell, ch) >= 0:
		return true
	case i == lead && strings.IndexByte(e.lineStart, ch) >= 0:
		return true
	case lead >= 0 && i > lead && strings.IndexByte(e.ordered, ch) >= 0 && allDigits(s[lead:i]):
		return true
	case e.equations && ch == '$':
		// $$ opens an equation and $name a variable reference.
		return i+1 == len(s) || s[i+1] == '$' || isIdentStart(s[i+1])
	case e.symbols && ch == ':':
		return i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z'
	}

	for _, prefix := range e.prefixes {
		if strings.HasPrefix(s[i:], prefix) {
			return true
		}
	}

	return false
}

func allDigits(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return s != ""
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// escapeWith returns an Escape rule for a wiki dialect. Line breaks in
// literal text become spaces since wiki dialects fold them anyway.
func escapeWith(e escaper) func(c *Context, s string) string {
	return func(c *Context, s string) string {
		return e.escape(singleLine(s), c.AtLineStart(), c.InCell())
	}
}
