package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Compiled once.
var (
	owikiAttrs    = regexp.MustCompile(`^[ \t]*\{((?:[ \t]*(?:#[\w-]+|\.[\w-]+|title="[^"]*"))+)[ \t]*\}[ \t]*$`)
	owikiAttrPart = regexp.MustCompile(`#([\w-]+)|\.([\w-]+)|title="([^"]*)"`)
	owikiMeta     = regexp.MustCompile(`^[ \t]*@(title|creator|date|keywords|description|revision)[ \t]+(.*?)[ \t]*$`)
)

func owikiGrammar() *grammar {
	const esc = '\\'

	fenceOpen := regexp.MustCompile("^[ \\t]*(`{3,})[ \\t]*([\\w#+.-]*)[ \\t]*$")
	fenceClose := regexp.MustCompile("^[ \\t]*(`{3,})[ \\t]*$")

	listSyntax := listSyntax{
		item:     regexp.MustCompile(`^([ \t]*)([*-]|[0-9]+\.)[ \t]+(.*)$`),
		relative: true,
		read: func(m []string) listLine {
			ordered := strings.HasSuffix(m[2], ".")
			line := listLine{depth: indentWidth(m[1]) / 2, ordered: ordered, text: m[3]}
			if ordered {
				line.number = atoiDefault(m[2])
			}
			return line
		},
	}

	return &grammar{
		dialect: OWiki,
		escape:  esc,
		meta:    owikiMetadata,
		blocks: []blockRule{
			owikiAttrsRule(),
			fenceRule(fence{
				open: fenceOpen,
				closes: func(open []string, line string) bool {
					m := fenceClose.FindStringSubmatch(line)
					return m != nil && len(m[1]) >= len(open[1])
				},
				language: func(open []string) string { return open[2] },
			}),
			sectionRule(
				regexp.MustCompile(`^[ \t]*(:{3,})[ \t]*([\w-]*(?:[ \t]+[\w-]+)*)[ \t]*$`),
				regexp.MustCompile(`^(:{3,})$`),
			),
			placeholderRule(regexp.MustCompile(`^[ \t]*@toc(?:[ \t]+([0-9]+))?[ \t]*$`), tocBlock),
			placeholderRule(regexp.MustCompile(`^[ \t]*@index[ \t]*$`), indexBlock),
			prefixHeader(regexp.MustCompile(`^[ \t]*(#{1,6})[ \t]+(.*?)[ \t]*$`)),
			horizontalRuler(regexp.MustCompile(`^[ \t]*-{4,}[ \t]*$`)),
			markedTableRule(cellSplitter{escape: esc, code: '`'}),
			quoteRule(regexp.MustCompile(`^[ \t]*>[ \t]?(.*)$`)),
			colonDefinitionRule(esc),
			listRule(listSyntax),
		},
		inline: newInlineEngine(esc, []inlineRule{
			{
				name:    "break",
				pattern: `\\\n[ \t]*`,
				build:   func(*inlineMatch) (docmodel.Inline, bool) { return &docmodel.LineBreak{}, true },
			},
			backslashEscapeRule(),
			backtickCodeRule(true),
			equationRule(),
			nbspRule(),
			linkedImageRule(esc),
			imageRule(esc),
			bracketLinkRule(esc),
			{
				name:    "span",
				pattern: `\[(` + unit(esc, "[]") + `*)\]\{([A-Za-z][\w-]*(?:[ \t]+[A-Za-z][\w-]*)*)\}`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					return &docmodel.Span{Class: m.group(2), Content: m.parse(m.group(1))}, true
				},
			},
			{
				name:    "anchor",
				pattern: `\{#([\w-]+)\}`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					return &docmodel.Anchor{Name: m.group(1)}, true
				},
			},
			{
				name:    "strong",
				pattern: `\*\*(` + unit(esc, "") + `+?)\*\*`,
				build:   delimited(1, true, strong),
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

// owikiAttrsRule reads a {#id .class title="..."} line and holds the
// attributes for the block that follows it.
func owikiAttrsRule() blockRule {
	return blockRule{
		name: "attributes",
		match: func(lines []string, i int) bool {
			return owikiAttrs.MatchString(lines[i]) && i+1 < len(lines) && !isBlank(lines[i+1])
		},
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			attrs := &docmodel.Attrs{}
			var classes []string

			for _, part := range owikiAttrPart.FindAllStringSubmatch(owikiAttrs.FindStringSubmatch(b.lines[i])[1], -1) {
				switch {
				case part[1] != "":
					attrs.ID = part[1]
				case part[2] != "":
					classes = append(classes, part[2])
				default:
					attrs.Title = part[3]
				}
			}

			attrs.Class = strings.Join(classes, " ")
			b.pending = attrs

			return nil, i + 1
		},
	}
}

// owikiMetadata consumes @key value lines at the top of the document.
func owikiMetadata(lines []string, doc *docmodel.Document) []string {
	i := 0
	for ; i < len(lines); i++ {
		if isBlank(lines[i]) {
			continue
		}

		m := owikiMeta.FindStringSubmatch(lines[i])
		if m == nil {
			break
		}

		setMetadata(&doc.Metadata, m[1], m[2])
	}

	return lines[i:]
}

func setMetadata(meta *docmodel.Metadata, key, value string) {
	switch key {
	case "title":
		meta.Title = value
	case "creator", "author":
		meta.Creator = value
	case "date":
		meta.Date = value
	case "keywords", "tags":
		meta.Keywords = splitKeywords(value)
	case "description":
		meta.Description = value
	case "revision":
		meta.Revision = value
	}
}

func splitKeywords(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
