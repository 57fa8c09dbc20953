package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// grammar is the complete description of one dialect.
type grammar struct {
	dialect Dialect
	escape  byte
	blocks  []blockRule
	inline  *inlineEngine
	// meta extracts document metadata and returns the remaining lines.
	meta func(lines []string, doc *docmodel.Document) []string
}

//nolint:gochecknoglobals // Built once, read-only afterwards.
var grammars = map[Dialect]*grammar{
	OWiki:    owikiGrammar(),
	Markdown: markdownGrammar(),
	Creole:   creoleGrammar(),
}

func grammarFor(d Dialect) (*grammar, bool) {
	g, ok := grammars[d]
	return g, ok
}

// Shared inline rules.

func equationRule() inlineRule {
	return inlineRule{
		name:    "equation",
		pattern: `\$\$([\s\S]+?)\$\$`,
		build: func(m *inlineMatch) (docmodel.Inline, bool) {
			return &docmodel.Equation{Content: strings.TrimSpace(collapse(m.group(1)))}, true
		},
	}
}

func nbspRule() inlineRule {
	return inlineRule{
		name:    "nbsp",
		pattern: `&nbsp;`,
		build: func(*inlineMatch) (docmodel.Inline, bool) {
			return &docmodel.NonBreakingSpace{}, true
		},
	}
}

func symbolRule() inlineRule {
	return inlineRule{
		name:    "symbol",
		pattern: `:([a-z][a-z0-9_+-]*):`,
		build: func(m *inlineMatch) (docmodel.Inline, bool) {
			if isWordRune(m.before) {
				return nil, false
			}
			return &docmodel.Symbol{Name: m.group(1)}, true
		},
	}
}

func backslashEscapeRule() inlineRule {
	return inlineRule{
		name:    "escape",
		pattern: "\\\\([!-/:-@\\[-`{-~])",
		build: func(m *inlineMatch) (docmodel.Inline, bool) {
			return docmodel.Text(m.group(1)), true
		},
	}
}

// maxCodeTicks is the longest backtick delimiter an inline code span may
// use.
const maxCodeTicks = 8

// backtickCodeRule matches code between equal runs of up to maxCodeTicks
// backticks. With language set, an optional {lang} suffix tags the code.
func backtickCodeRule(language bool) inlineRule {
	alts := make([]string, 0, maxCodeTicks)
	for n := maxCodeTicks; n > 1; n-- {
		ticks := strings.Repeat("`", n)
		alts = append(alts, ticks+"([\\s\\S]+?)"+ticks)
	}
	alts = append(alts, "`([^`]+)`")

	pattern := strings.Join(alts, "|")
	if language {
		pattern = "(?:" + pattern + `)(?:\{([\w+.-][\w#+.-]*)\})?`
	}

	groups := make([]int, len(alts))
	for i := range groups {
		groups[i] = i + 1
	}

	return inlineRule{
		name:    "code",
		pattern: pattern,
		build: func(m *inlineMatch) (docmodel.Inline, bool) {
			return &docmodel.InlineCode{
				Code:     codeSpan(m.firstGroup(groups...)),
				Language: m.group(len(alts) + 1),
			}, true
		},
	}
}

// bracket link rules shared by OWiki and Markdown.

const (
	linkDest  = `(<[^<>\n]*>|[^\s()<>]*)`
	linkTitle = `(?:[ \t]+"([^"\n]*)")?`
)

func linkedImageRule(esc byte) inlineRule {
	alt := unit(esc, "]")

	return inlineRule{
		name: "linked-image",
		pattern: `\[!\[(` + alt + `*)\]\([ \t]*` + linkDest + linkTitle + `[ \t]*\)\]\([ \t]*` +
			linkDest + `[ \t]*\)`,
		build: func(m *inlineMatch) (docmodel.Inline, bool) {
			return &docmodel.Image{
				Alt:    m.unescape(m.group(1)),
				Source: linkTarget(m.group(2)),
				Title:  m.group(3),
				Link:   linkTarget(m.group(4)),
			}, true
		},
	}
}

func imageRule(esc byte) inlineRule {
	alt := unit(esc, "]")

	return inlineRule{
		name:    "image",
		pattern: `!\[(` + alt + `*)\]\([ \t]*` + linkDest + linkTitle + `[ \t]*\)`,
		build: func(m *inlineMatch) (docmodel.Inline, bool) {
			return &docmodel.Image{
				Alt:    m.unescape(m.group(1)),
				Source: linkTarget(m.group(2)),
				Title:  m.group(3),
			}, true
		},
	}
}

func bracketLinkRule(esc byte) inlineRule {
	text := unit(esc, "[]")

	return inlineRule{
		name:    "link",
		pattern: `\[((?:` + text + `|\[` + text + `*\])*)\]\([ \t]*` + linkDest + linkTitle + `[ \t]*\)`,
		build: func(m *inlineMatch) (docmodel.Inline, bool) {
			return &docmodel.Hyperlink{
				URL:     linkTarget(m.group(2)),
				Title:   m.group(3),
				Content: m.parse(m.group(1)),
			}, true
		},
	}
}

func tocDepth(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return docmodel.DefaultTOCDepth
	}

	return n
}

func tocBlock(m []string) docmodel.Block {
	return &docmodel.TableOfContents{Depth: tocDepth(m[1])}
}

func indexBlock([]string) docmodel.Block {
	return &docmodel.Index{}
}

// colonDefinitionRule parses "; term : description" lines, with the
// description optionally on following ": description" lines.
func colonDefinitionRule(esc byte) blockRule {
	term := regexp.MustCompile(`^[ \t]*;[ \t]*(.*)$`)
	desc := regexp.MustCompile(`^[ \t]*:[ \t]*(.*)$`)

	return blockRule{
		name:  "definitions",
		match: lineMatcher(term),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			list := &docmodel.DefinitionList{}

			j := i
			for j < len(b.lines) {
				m := term.FindStringSubmatch(b.lines[j])
				if m == nil {
					break
				}

				termText, descText := splitDefinition(m[1], esc)
				descParts := []string{descText}

				j++
				for ; j < len(b.lines); j++ {
					d := desc.FindStringSubmatch(b.lines[j])
					if d == nil {
						break
					}
					descParts = append(descParts, d[1])
				}

				list.Items = append(list.Items, &docmodel.Definition{
					Term:        b.inlines(termText),
					Description: b.inlines(strings.Join(descParts, "\n")),
				})
			}

			return list, j
		},
	}
}

// splitDefinition splits "term : description" at the first unescaped
// " : " separator.
func splitDefinition(s string, esc byte) (string, string) {
	for i := 0; i+2 < len(s); i++ {
		if s[i] == esc {
			i++
			continue
		}
		if s[i] == ' ' && s[i+1] == ':' && (s[i+2] == ' ' || s[i+2] == '\t') {
			return s[:i], s[i+3:]
		}
	}

	if strings.HasSuffix(s, " :") {
		return strings.TrimSuffix(s, " :"), ""
	}

	return s, ""
}
