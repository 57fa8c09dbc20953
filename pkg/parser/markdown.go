package parser

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Compiled once.
var (
	markdownUnderline = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
	markdownDescLine  = regexp.MustCompile(`^[ \t]*:[ \t]+(.*)$`)
	markdownIndented  = regexp.MustCompile(`^(?: {4}|\t)`)
)

func markdownGrammar() *grammar {
	const esc = '\\'

	fenceOpen := regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \\t]*([\\w#+.-]*)[ \\t]*$")
	fenceClose := regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \\t]*$")

	listSyntax := listSyntax{
		item:     regexp.MustCompile(`^([ \t]*)([*+-]|[0-9]+[.)])[ \t]+(.*)$`),
		relative: true,
		read: func(m []string) listLine {
			ordered := strings.HasSuffix(m[2], ".") || strings.HasSuffix(m[2], ")")
			line := listLine{depth: indentWidth(m[1]) / 2, ordered: ordered, text: m[3]}
			if ordered {
				line.number = atoiDefault(m[2])
			}
			return line
		},
	}

	return &grammar{
		dialect: Markdown,
		escape:  esc,
		meta:    markdownFrontMatter,
		blocks: []blockRule{
			fenceRule(fence{
				open: fenceOpen,
				closes: func(open []string, line string) bool {
					m := fenceClose.FindStringSubmatch(line)
					return m != nil && m[1][0] == open[1][0] && len(m[1]) >= len(open[1])
				},
				language: func(open []string) string { return open[2] },
			}),
			placeholderRule(regexp.MustCompile(`^[ \t]*\[TOC(?::([0-9]+))?\][ \t]*$`), tocBlock),
			placeholderRule(regexp.MustCompile(`^[ \t]*\[INDEX\][ \t]*$`), indexBlock),
			prefixHeader(regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)),
			horizontalRuler(regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)),
			pipeTableRule(cellSplitter{escape: esc, code: '`'}),
			quoteRule(regexp.MustCompile(`^ {0,3}>[ \t]?(.*)$`)),
			indentedCodeRule(),
			listRule(listSyntax),
			markdownDefinitionRule(),
			setextHeaderRule(),
		},
		inline: newInlineEngine(esc, []inlineRule{
			{
				name:    "break",
				pattern: `(?:\\|[ \t]{2,})\n[ \t]*|<br[ \t]*/?>`,
				build:   func(*inlineMatch) (docmodel.Inline, bool) { return &docmodel.LineBreak{}, true },
			},
			backslashEscapeRule(),
			backtickCodeRule(false),
			equationRule(),
			nbspRule(),
			{
				name:    "autolink",
				pattern: `<((?:https?|ftp|mailto):[^\s<>]*)>`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					return docmodel.Link(m.group(1), docmodel.Text(m.group(1))), true
				},
			},
			{
				name:    "anchor",
				pattern: `<a[ \t]+(?:name|id)="([\w-]+)"[ \t]*>[ \t]*</a>`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					return &docmodel.Anchor{Name: m.group(1)}, true
				},
			},
			linkedImageRule(esc),
			imageRule(esc),
			bracketLinkRule(esc),
			{
				name:    "strong",
				pattern: `\*\*(` + unit(esc, "") + `+?)\*\*|__(` + unit(esc, "") + `+?)__`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					if m.group(1) != "" {
						return delimited(1, true, strong)(m)
					}
					return delimited(2, false, strong)(m)
				},
			},
			{
				name:    "emphasis",
				pattern: starEmphasis(esc) + `|_(` + unit(esc, "_") + `+?)_`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					if m.group(1) != "" {
						return delimited(1, true, emphasized)(m)
					}
					return delimited(2, false, emphasized)(m)
				},
			},
			symbolRule(),
		}),
	}
}

// indentedCodeRule reads lines indented by four spaces or a tab. Blank
// lines inside the block are kept; trailing blank lines are not.
func indentedCodeRule() blockRule {
	return blockRule{
		name:  "indented-code",
		match: lineMatcher(markdownIndented),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			var body []string

			j := i
			for ; j < len(b.lines); j++ {
				line := b.lines[j]
				if isBlank(line) {
					body = append(body, "")
					continue
				}
				if !markdownIndented.MatchString(line) {
					break
				}
				if strings.HasPrefix(line, "\t") {
					body = append(body, line[1:])
				} else {
					body = append(body, line[4:])
				}
			}

			for len(body) > 0 && body[len(body)-1] == "" {
				body = body[:len(body)-1]
				j--
			}

			return &docmodel.CodeBlock{Text: strings.Join(body, "\n")}, j
		},
	}
}

// markdownDefinitionRule reads "term" lines each followed by one or more
// ": description" lines.
func markdownDefinitionRule() blockRule {
	starts := func(lines []string, i int) bool {
		return i+1 < len(lines) && !isBlank(lines[i]) &&
			!markdownDescLine.MatchString(lines[i]) && markdownDescLine.MatchString(lines[i+1])
	}

	return blockRule{
		name:  "definitions",
		match: starts,
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			list := &docmodel.DefinitionList{}

			j := i
			for starts(b.lines, j) {
				term := b.lines[j]
				var desc []string

				j++
				for ; j < len(b.lines); j++ {
					m := markdownDescLine.FindStringSubmatch(b.lines[j])
					if m == nil {
						break
					}
					desc = append(desc, m[1])
				}

				list.Items = append(list.Items, &docmodel.Definition{
					Term:        b.inlines(term),
					Description: b.inlines(strings.Join(desc, "\n")),
				})
			}

			return list, j
		},
	}
}

// setextHeaderRule reads a text line underlined with = (level 1) or -
// (level 2). It is checked after every other rule.
func setextHeaderRule() blockRule {
	return blockRule{
		name:       "setext-header",
		interrupts: true,
		match: func(lines []string, i int) bool {
			return i+1 < len(lines) && !isBlank(lines[i]) &&
				!markdownUnderline.MatchString(lines[i]) && markdownUnderline.MatchString(lines[i+1])
		},
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			level := 2
			if strings.HasPrefix(strings.TrimSpace(b.lines[i+1]), "=") {
				level = 1
			}

			return &docmodel.Header{Level: level, Content: b.inlines(b.lines[i])}, i + 2
		},
	}
}

// frontMatter is the YAML metadata block at the top of a Markdown file.
type frontMatter struct {
	Title       string `yaml:"title"`
	Creator     string `yaml:"creator"`
	Author      string `yaml:"author"`
	Date        string `yaml:"date"`
	Keywords    any    `yaml:"keywords"`
	Tags        any    `yaml:"tags"`
	Description string `yaml:"description"`
	Revision    string `yaml:"revision"`
}

// markdownFrontMatter consumes a leading "---" delimited YAML block. A
// block is front matter only when it is a YAML mapping with at least one
// known metadata key; anything else stays in place as content.
func markdownFrontMatter(lines []string, doc *docmodel.Document) []string {
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "---" {
		return lines
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if t := strings.TrimSpace(lines[i]); t == "---" || t == "..." {
			end = i
			break
		}
	}

	if end < 0 {
		return lines
	}

	body := []byte(strings.Join(lines[1:end], "\n"))

	var fields map[string]any
	if err := yaml.Unmarshal(body, &fields); err != nil {
		return lines
	}

	known := []string{"title", "creator", "author", "date", "keywords", "tags", "description", "revision"}
	if !slices.ContainsFunc(known, func(key string) bool { _, ok := fields[key]; return ok }) {
		return lines
	}

	var fm frontMatter
	if err := yaml.Unmarshal(body, &fm); err != nil {
		return lines
	}

	meta := &doc.Metadata
	meta.Title = fm.Title
	meta.Creator = fm.Creator
	if meta.Creator == "" {
		meta.Creator = fm.Author
	}
	meta.Date = fm.Date
	meta.Description = fm.Description
	meta.Revision = fm.Revision
	meta.Keywords = yamlKeywords(fm.Keywords)
	if meta.Keywords == nil {
		meta.Keywords = yamlKeywords(fm.Tags)
	}

	return lines[end+1:]
}

func yamlKeywords(v any) []string {
	switch value := v.(type) {
	case string:
		return splitKeywords(value)
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			out = append(out, strings.TrimSpace(fmt.Sprint(item)))
		}
		return out
	}

	return nil
}
