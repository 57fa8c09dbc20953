package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// textUnderlines are the header underline characters by level.
const textUnderlines = "=-~"

func textRules() *Rules {
	r := defaultRules()

	r.Header = func(c *Context, h *docmodel.Header) {
		text := c.Inlines(h.Content)
		line := textUnderlines[min(max(h.Level, 1), len(textUnderlines))-1]

		c.Write(text, "\n", strings.Repeat(string(line), max(runewidth.StringWidth(text), 1)), "\n")
	}
	r.Table = func(c *Context, t *docmodel.Table) {
		g := layout(c, t)
		for row := range g.rows {
			cells := make([]string, len(g.rows[row]))
			for col, text := range g.rows[row] {
				cells[col] = g.pad(text, col)
			}
			c.Write(strings.TrimRight(strings.Join(cells, " | "), " "), "\n")

			if row == 0 && t.Rows[0].IsHeader() {
				rules := make([]string, len(g.widths))
				for col, width := range g.widths {
					rules[col] = strings.Repeat("-", width)
				}
				c.Write(strings.Join(rules, "-+-"), "\n")
			}
		}
	}
	r.Quote = func(c *Context, q *docmodel.Quote) {
		c.Write(prefixLines(c.Inlines(q.Content), "> "), "\n")
	}
	r.CodeBlock = func(c *Context, b *docmodel.CodeBlock) {
		for _, line := range strings.Split(b.Text, "\n") {
			if line != "" {
				line = "    " + line
			}
			c.Write(line, "\n")
		}
	}
	r.TableOfContents = func(c *Context, t *docmodel.TableOfContents) {
		textTOC(c, tocTree(tocEntries(c, t)), "")
	}
	r.Index = func(c *Context, _ *docmodel.Index) {
		for _, name := range indexEntries(c.doc) {
			c.Write("* ", name, "\n")
		}
	}

	return r
}

func textTOC(c *Context, nodes []*tocNode, indent string) {
	for _, node := range nodes {
		c.Write(indent, "* ", c.Inlines(node.entry.header.Content), "\n")
		textTOC(c, node.children, indent+"  ")
	}
}
