package format

import (
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
	"github.com/yaklabco/wikidoc/pkg/textutil"
)

// Rules is the rendering table of one target: one function per node
// variant plus document-level hooks. Targets derive their table from
// another target's table and replace the entries that differ.
type Rules struct {
	// Document renders a whole document.
	Document func(c *Context, doc *docmodel.Document)
	// Gap is written between consecutive blocks.
	Gap string
	// Escape converts literal text to target syntax.
	Escape func(c *Context, s string) string
	// Attributes, when set, writes the attributes of a block before it.
	Attributes func(c *Context, b docmodel.Block)

	Header          func(c *Context, h *docmodel.Header)
	Paragraph       func(c *Context, p *docmodel.Paragraph)
	UnorderedList   func(c *Context, l *docmodel.UnorderedList)
	OrderedList     func(c *Context, l *docmodel.OrderedList)
	DefinitionList  func(c *Context, l *docmodel.DefinitionList)
	Table           func(c *Context, t *docmodel.Table)
	Quote           func(c *Context, q *docmodel.Quote)
	CodeBlock       func(c *Context, b *docmodel.CodeBlock)
	HorizontalRuler func(c *Context, r *docmodel.HorizontalRuler)
	Section         func(c *Context, s *docmodel.Section)
	TableOfContents func(c *Context, t *docmodel.TableOfContents)
	Index           func(c *Context, i *docmodel.Index)

	Run              func(c *Context, r *docmodel.Run)
	Strong           func(c *Context, s *docmodel.Strong)
	Emphasized       func(c *Context, e *docmodel.Emphasized)
	Span             func(c *Context, s *docmodel.Span)
	LineBreak        func(c *Context, b *docmodel.LineBreak)
	InlineCode       func(c *Context, i *docmodel.InlineCode)
	Hyperlink        func(c *Context, h *docmodel.Hyperlink)
	Image            func(c *Context, i *docmodel.Image)
	Anchor           func(c *Context, a *docmodel.Anchor)
	Symbol           func(c *Context, s *docmodel.Symbol)
	Equation         func(c *Context, e *docmodel.Equation)
	NonBreakingSpace func(c *Context, n *docmodel.NonBreakingSpace)
}

func (r *Rules) escapeText(c *Context, s string) string {
	if c.opts.Typography {
		s = textutil.Encode(s)
	}

	return r.Escape(c, s)
}

// defaultRules renders plain text. Containers render their children and
// nodes without a textual form are dropped.
func defaultRules() *Rules {
	return &Rules{
		Document: func(c *Context, doc *docmodel.Document) {
			c.Blocks(doc.Blocks)
		},
		Gap:    "\n",
		Escape: func(_ *Context, s string) string { return s },

		Header: func(c *Context, h *docmodel.Header) {
			c.Write(c.Inlines(h.Content), "\n")
		},
		Paragraph: func(c *Context, p *docmodel.Paragraph) {
			c.Write(c.Inlines(p.Content), "\n")
		},
		UnorderedList: func(c *Context, l *docmodel.UnorderedList) {
			plainList(c, l.Items, func(int) string { return "* " })
		},
		OrderedList: func(c *Context, l *docmodel.OrderedList) {
			plainList(c, l.Items, func(i int) string { return strconv.Itoa(l.FirstNumber()+i) + ". " })
		},
		DefinitionList: func(c *Context, l *docmodel.DefinitionList) {
			for _, def := range l.Items {
				c.Write(c.Inlines(def.Term), "\n")
				if len(def.Description) > 0 {
					c.Write("    ", c.Inlines(def.Description), "\n")
				}
			}
		},
		Table: func(c *Context, t *docmodel.Table) {
			for _, row := range t.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, cell := range row.Cells {
					cells = append(cells, c.Cell(cell, " "))
				}
				c.Write(strings.Join(cells, "\t"), "\n")
			}
		},
		Quote: func(c *Context, q *docmodel.Quote) {
			c.Write(c.Inlines(q.Content), "\n")
		},
		CodeBlock: func(c *Context, b *docmodel.CodeBlock) {
			c.Write(b.Text, "\n")
		},
		HorizontalRuler: func(c *Context, _ *docmodel.HorizontalRuler) {
			c.Write("----------\n")
		},
		Section: func(c *Context, s *docmodel.Section) {
			c.Section(func() { c.Blocks(s.Blocks) })
		},
		TableOfContents: func(c *Context, _ *docmodel.TableOfContents) {
			c.Dropped("table of contents")
		},
		Index: func(c *Context, _ *docmodel.Index) {
			c.Dropped("index")
		},

		Run: func(c *Context, r *docmodel.Run) {
			c.Write(c.Text(r.Text))
		},
		Strong: func(c *Context, s *docmodel.Strong) {
			c.Write(c.Inlines(s.Content))
		},
		Emphasized: func(c *Context, e *docmodel.Emphasized) {
			c.Write(c.Inlines(e.Content))
		},
		Span: func(c *Context, s *docmodel.Span) {
			c.Write(c.Inlines(s.Content))
		},
		LineBreak: func(c *Context, _ *docmodel.LineBreak) {
			c.Write("\n")
		},
		InlineCode: func(c *Context, i *docmodel.InlineCode) {
			c.Write(i.Code)
		},
		Hyperlink: func(c *Context, h *docmodel.Hyperlink) {
			text := c.Inlines(h.Content)
			switch {
			case text == "" || text == h.URL:
				c.Write(c.Link(h.URL))
			default:
				c.Write(text, " <", c.Link(h.URL), ">")
			}
		},
		Image: func(c *Context, i *docmodel.Image) {
			c.Write(c.Text(i.Alt))
		},
		Anchor: func(*Context, *docmodel.Anchor) {},
		Symbol: func(c *Context, s *docmodel.Symbol) {
			if sym, ok := c.Symbol(s.Name); ok {
				c.Write(sym.Text)
			}
		},
		Equation: func(c *Context, e *docmodel.Equation) {
			c.Write(e.Content)
		},
		NonBreakingSpace: func(c *Context, _ *docmodel.NonBreakingSpace) {
			c.Write(" ")
		},
	}
}

// plainList writes items with a marker and two spaces of indentation per
// nesting level.
func plainList(c *Context, items []*docmodel.ListItem, marker func(i int) string) {
	c.List(func() {
		indent := strings.Repeat("  ", c.ListDepth())
		for i, item := range items {
			mark := marker(i)
			text := c.Inlines(item.Content)
			c.Write(indent, mark, indentContinuation(text, indent+strings.Repeat(" ", len(mark))), "\n")
			if item.Nested != nil {
				item.Nested.Accept(c)
			}
		}
	})
}

// indentContinuation indents every line of s after the first.
func indentContinuation(s, indent string) string {
	if !strings.Contains(s, "\n") {
		return s
	}

	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

// prefixLines prefixes every line of s.
func prefixLines(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

// fenceFor returns a run of ch long enough that no line of text starting
// with ch can close it.
func fenceFor(text string, ch byte, minimum int) string {
	longest := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(line, " \t")

		n := 0
		for n < len(line) && line[n] == ch {
			n++
		}
		longest = max(longest, n)
	}

	return strings.Repeat(string(ch), max(minimum, longest+1))
}

// singleLine folds line breaks inside literal text into spaces.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}

	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// onlyText returns the text of inline content made of a single run.
func onlyText(inlines []docmodel.Inline) (string, bool) {
	if len(inlines) != 1 {
		return "", false
	}

	run, ok := inlines[0].(*docmodel.Run)
	if !ok {
		return "", false
	}

	return run.Text, true
}
