package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// blockRule recognizes one block construct at a line.
type blockRule struct {
	name string
	// interrupts is true when the construct may end a paragraph.
	interrupts bool
	match      func(lines []string, i int) bool
	// parse consumes the block starting at line i and returns it with the
	// index of the first line after it. A nil block consumes lines without
	// output.
	parse func(b *blockParser, i int) (docmodel.Block, int)
}

// blockParser splits lines into blocks with a dialect's rules.
type blockParser struct {
	ctx     context.Context
	g       *grammar
	lines   []string
	logger  *log.Logger
	pending *docmodel.Attrs
	// sectionDepth counts enclosing sections.
	sectionDepth int
}

func (b *blockParser) sub(lines []string) *blockParser {
	return &blockParser{
		ctx:          b.ctx,
		g:            b.g,
		lines:        lines,
		logger:       b.logger,
		sectionDepth: b.sectionDepth + 1,
	}
}

// run splits all lines. The only error is the context's.
func (b *blockParser) run() ([]docmodel.Block, error) {
	var blocks []docmodel.Block

	i := 0
	for i < len(b.lines) {
		if err := b.ctx.Err(); err != nil {
			return nil, err
		}

		if isBlank(b.lines[i]) {
			i++
			continue
		}

		block, next := b.next(i)
		if block != nil {
			if b.pending != nil {
				mergeAttrs(block.Attributes(), b.pending)
				b.pending = nil
			}
			blocks = append(blocks, block)
		}

		i = max(next, i+1)
	}

	return blocks, nil
}

// mergeAttrs copies the set fields of src over dst.
func mergeAttrs(dst, src *docmodel.Attrs) {
	if src.ID != "" {
		dst.ID = src.ID
	}
	if src.Class != "" {
		dst.Class = src.Class
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
}

func (b *blockParser) next(i int) (docmodel.Block, int) {
	for _, rule := range b.g.blocks {
		if rule.match(b.lines, i) {
			return rule.parse(b, i)
		}
	}

	return b.paragraph(i)
}

// paragraph collects lines up to a blank line or an interrupting block.
func (b *blockParser) paragraph(i int) (docmodel.Block, int) {
	j := i + 1
	for j < len(b.lines) && !isBlank(b.lines[j]) && !b.interrupted(j) {
		j++
	}

	text := strings.TrimSpace(strings.Join(b.lines[i:j], "\n"))

	return &docmodel.Paragraph{Content: b.g.inline.parse(text)}, j
}

func (b *blockParser) interrupted(i int) bool {
	for _, rule := range b.g.blocks {
		if rule.interrupts && rule.match(b.lines, i) {
			return true
		}
	}

	return false
}

func (b *blockParser) inlines(s string) []docmodel.Inline {
	return b.g.inline.parse(strings.TrimSpace(s))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// lineMatcher adapts a regexp to a rule match function.
func lineMatcher(re *regexp.Regexp) func([]string, int) bool {
	return func(lines []string, i int) bool {
		return re.MatchString(lines[i])
	}
}

// Shared block constructors used by the dialect grammars.

// prefixHeader parses a single-line header whose level is the length of
// group 1 and whose text is group 2.
func prefixHeader(re *regexp.Regexp) blockRule {
	return blockRule{
		name:       "header",
		interrupts: true,
		match:      lineMatcher(re),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			m := re.FindStringSubmatch(b.lines[i])
			return &docmodel.Header{Level: len(m[1]), Content: b.inlines(m[2])}, i + 1
		},
	}
}

// horizontalRuler parses a single-line thematic break.
func horizontalRuler(re *regexp.Regexp) blockRule {
	return blockRule{
		name:       "ruler",
		interrupts: true,
		match:      lineMatcher(re),
		parse: func(_ *blockParser, i int) (docmodel.Block, int) {
			return &docmodel.HorizontalRuler{}, i + 1
		},
	}
}

// quoteRule joins consecutive quote lines into one quote.
func quoteRule(re *regexp.Regexp) blockRule {
	return blockRule{
		name:       "quote",
		interrupts: true,
		match:      lineMatcher(re),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			var parts []string

			j := i
			for ; j < len(b.lines); j++ {
				m := re.FindStringSubmatch(b.lines[j])
				if m == nil {
					break
				}
				parts = append(parts, m[1])
			}

			return &docmodel.Quote{Content: b.inlines(strings.Join(parts, "\n"))}, j
		},
	}
}

// placeholderRule parses a single-line table of contents or index
// directive. Group 1, when present, is the table of contents depth.
func placeholderRule(re *regexp.Regexp, build func(m []string) docmodel.Block) blockRule {
	return blockRule{
		name:       "placeholder",
		interrupts: true,
		match:      lineMatcher(re),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			return build(re.FindStringSubmatch(b.lines[i])), i + 1
		},
	}
}

// fence describes a delimited code block.
type fence struct {
	open *regexp.Regexp
	// closes reports whether line ends the block opened by the open match.
	closes func(open []string, line string) bool
	// language extracts the language tag from the open match.
	language func(open []string) string
	// unquote undoes the escaping of content lines that would close the
	// block.
	unquote func(line string) string
}

func fenceRule(f fence) blockRule {
	return blockRule{
		name:       "fence",
		interrupts: true,
		match:      lineMatcher(f.open),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			open := f.open.FindStringSubmatch(b.lines[i])

			var body []string

			j := i + 1
			for ; j < len(b.lines); j++ {
				if f.closes(open, b.lines[j]) {
					j++
					break
				}

				line := b.lines[j]
				if f.unquote != nil {
					line = f.unquote(line)
				}
				body = append(body, line)
			}

			return &docmodel.CodeBlock{Language: f.language(open), Text: strings.Join(body, "\n")}, j
		},
	}
}

// sectionRule parses ":::" delimited sections with recursively parsed
// content. A nested section with the same colon count must carry a class.
func sectionRule(open, closeRe *regexp.Regexp) blockRule {
	return blockRule{
		name:       "section",
		interrupts: true,
		match:      lineMatcher(open),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			m := open.FindStringSubmatch(b.lines[i])
			colons := m[1]

			depth := 0
			j := i + 1

			for ; j < len(b.lines); j++ {
				line := strings.TrimSpace(b.lines[j])
				if c := closeRe.FindStringSubmatch(line); c != nil && c[1] == colons {
					if depth == 0 {
						break
					}
					depth--
					continue
				}
				if o := open.FindStringSubmatch(line); o != nil && o[1] == colons && strings.TrimSpace(o[2]) != "" {
					depth++
				}
			}

			section := &docmodel.Section{}
			section.Class = strings.TrimSpace(m[2])

			end := min(j, len(b.lines))
			inner, err := b.sub(b.lines[i+1 : end]).run()
			if err != nil {
				b.logger.Debug("section parse interrupted", logging.FieldError, err)
			}
			section.Blocks = inner

			return section, end + 1
		},
	}
}
