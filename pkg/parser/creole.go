package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Compiled once.
var (
	creoleImageOnly = regexp.MustCompile(`^\{\{([^|}\n]+)(?:\|([^}\n]*))?\}\}$`)
	creoleQuotedEnd = regexp.MustCompile(`^ +\}\}\}[ \t]*$`)
)

func creoleGrammar() *grammar {
	const esc = '~'

	fenceOpen := regexp.MustCompile(`^\{\{\{(?:#!([\w#+.-]+))?[ \t]*$`)
	fenceClose := regexp.MustCompile(`^\}\}\}[ \t]*$`)

	listSyntax := listSyntax{
		item: regexp.MustCompile(`^[ \t]*([*#]+)[ \t]+(.*)$`),
		read: func(m []string) listLine {
			return listLine{depth: len(m[1]) - 1, ordered: m[1][0] == '#', number: 1, text: m[2]}
		},
	}

	return &grammar{
		dialect: Creole,
		escape:  esc,
		meta:    func(lines []string, _ *docmodel.Document) []string { return lines },
		blocks: []blockRule{
			fenceRule(fence{
				open:   fenceOpen,
				closes: func(_ []string, line string) bool { return fenceClose.MatchString(line) },
				language: func(open []string) string {
					return open[1]
				},
				unquote: func(line string) string {
					if creoleQuotedEnd.MatchString(line) {
						return line[1:]
					}
					return line
				},
			}),
			placeholderRule(regexp.MustCompile(`^[ \t]*<<toc(?:[ \t]+([0-9]+))?>>[ \t]*$`), tocBlock),
			placeholderRule(regexp.MustCompile(`^[ \t]*<<index>>[ \t]*$`), indexBlock),
			prefixHeader(regexp.MustCompile(`^[ \t]*(={1,6})[ \t]*(.*?)[ \t]*=*[ \t]*$`)),
			horizontalRuler(regexp.MustCompile(`^[ \t]*-{4,}[ \t]*$`)),
			markedTableRule(cellSplitter{escape: esc, nested: [][2]string{{"[[", "]]"}, {"{{", "}}"}}}),
			quoteRule(regexp.MustCompile(`^[ \t]*>[ \t]?(.*)$`)),
			colonDefinitionRule(esc),
			listRule(listSyntax),
		},
		inline: newInlineEngine(esc, []inlineRule{
			{
				name:    "break",
				pattern: `\\\\(?:[ \t]*\n[ \t]*)?`,
				build:   func(*inlineMatch) (docmodel.Inline, bool) { return &docmodel.LineBreak{}, true },
			},
			{
				name:    "escape",
				pattern: `~(\S)`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					return docmodel.Text(m.group(1)), true
				},
			},
			{
				name:    "code",
				pattern: `\{\{\{([\s\S]+?\}*)\}\}\}`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					return &docmodel.InlineCode{Code: strings.ReplaceAll(m.group(1), "\n", " ")}, true
				},
			},
			equationRule(),
			nbspRule(),
			{
				name:    "anchor",
				pattern: `<<anchor[ \t]+([\w-]+)>>`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					return &docmodel.Anchor{Name: m.group(1)}, true
				},
			},
			{
				name:    "link",
				pattern: `\[\[(` + unit(esc, "|]") + `+?)(?:\|(` + unit(esc, "") + `*?))?\]\]`,
				build:   creoleLink,
			},
			{
				name:    "image",
				pattern: `\{\{([^|}\n]+)(?:\|([^}\n]*))?\}\}`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					return &docmodel.Image{Source: strings.TrimSpace(m.group(1)), Alt: m.group(2)}, true
				},
			},
			{
				name:    "url",
				pattern: `(?:https?|ftp)://[^\s|\[\]{}<>"]*[^\s|\[\]{}<>".,;:!?')]`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					if isWordRune(m.before) {
						return nil, false
					}
					return docmodel.Link(m.group(0), docmodel.Text(m.group(0))), true
				},
			},
			{
				name:    "strong",
				pattern: `\*\*(` + unit(esc, "") + `+?)\*\*`,
				build:   delimited(1, true, strong),
			},
			{
				name:    "emphasis",
				pattern: `//(` + unit(esc, "") + `+?)//`,
				build: func(m *inlineMatch) (docmodel.Inline, bool) {
					// The slashes of an escaped "~http://" are not italics.
					if m.before == ':' {
						return nil, false
					}
					return delimited(1, true, emphasized)(m)
				},
			},
			symbolRule(),
		}),
	}
}

// creoleLink builds [[url|text]]. Text that is exactly an image makes the
// image a link; missing text shows the URL.
func creoleLink(m *inlineMatch) (docmodel.Inline, bool) {
	url := strings.TrimSpace(m.unescape(m.group(1)))
	text := strings.TrimSpace(m.group(2))

	if img := creoleImageOnly.FindStringSubmatch(text); img != nil {
		return &docmodel.Image{Source: strings.TrimSpace(img[1]), Alt: img[2], Link: url}, true
	}

	if text == "" {
		return docmodel.Link(url, docmodel.Text(url)), true
	}

	return docmodel.Link(url, m.parse(text)...), true
}
