// Package textutil holds the character-level helpers shared by parsers and
// formatters: typographic substitution, the symbol table and the code
// highlighters.
package textutil

import (
	"regexp"
	"strings"
)

// substitution pairs an ASCII sequence with its typographic glyph.
type substitution struct {
	ascii string
	glyph string
}

// typography is applied in order by Encode and in reverse by Decode. Longer
// sequences come before their prefixes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var typography = []substitution{
	{"<=>", "⇔"},
	{"<->", "↔"},
	{"->", "→"},
	{"<-", "←"},
	{"=>", "⇒"},
	{"<=", "⇐"},
	{"!=", "≠"},
	{"+-", "±"},
	{"---", "—"},
	{"--", "–"},
	{"...", "…"},
	{"(c)", "©"},
	{"(r)", "®"},
	{"(tm)", "™"},
	{"1/2", "½"},
	{"1/4", "¼"},
	{"3/4", "¾"},
}

//nolint:gochecknoglobals // Compiled once.
var (
	asciiTimes = regexp.MustCompile(`([0-9])x([0-9])`)
	glyphTimes = regexp.MustCompile(`([0-9])\x{00d7}([0-9])`)
)

// Encode replaces ASCII sequences with typographic glyphs, then turns an x
// between two digits into a multiplication sign.
//
// Decode(Encode(s)) == s for every s that contains none of the glyphs.
func Encode(s string) string {
	for _, sub := range typography {
		s = strings.ReplaceAll(s, sub.ascii, sub.glyph)
	}

	return replaceUntilStable(s, asciiTimes, "${1}×${2}")
}

// Decode reverses Encode.
func Decode(s string) string {
	s = replaceUntilStable(s, glyphTimes, "${1}x${2}")

	for i := len(typography) - 1; i >= 0; i-- {
		s = strings.ReplaceAll(s, typography[i].glyph, typography[i].ascii)
	}

	return s
}

// replaceUntilStable reapplies re because matches such as 2x3x4 overlap on
// the shared digit.
func replaceUntilStable(s string, re *regexp.Regexp, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return next
		}
		s = next
	}
}
