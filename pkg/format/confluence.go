package format

import (
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Read-only tables.
var (
	confluenceEscaper = escaper{
		esc:       `\`,
		always:    "\\*_{}[]|!^~+",
		doubled:   "-",
		lineStart: "#-",
		cell:      "|",
	}

	confluenceCode = strings.NewReplacer("{", `\{`, "}", `\}`)
)

func confluenceRules() *Rules {
	r := defaultRules()

	r.Escape = escapeWith(confluenceEscaper)
	r.Document = func(c *Context, doc *docmodel.Document) {
		if !doc.Metadata.IsZero() {
			c.Dropped("metadata")
		}
		c.Blocks(doc.Blocks)
	}

	r.Header = func(c *Context, h *docmodel.Header) {
		c.Write("h", strconv.Itoa(min(max(h.Level, 1), 6)), ". ", c.Inlines(h.Content), "\n")
	}
	r.UnorderedList = func(c *Context, l *docmodel.UnorderedList) {
		markedList(c, l.Items, "*")
	}
	r.OrderedList = func(c *Context, l *docmodel.OrderedList) {
		if l.FirstNumber() != 1 {
			c.Dropped("list start number")
		}
		markedList(c, l.Items, "#")
	}
	r.DefinitionList = func(c *Context, l *docmodel.DefinitionList) {
		for _, def := range l.Items {
			c.Write("*", c.Inlines(def.Term), "*\n")
			if len(def.Description) > 0 {
				c.Write("bq. ", c.Inlines(def.Description), "\n")
			}
		}
	}
	r.Table = func(c *Context, t *docmodel.Table) {
		for _, row := range t.Rows {
			marker := "|"
			for _, cell := range row.Cells {
				marker = "|"
				if cell.Header {
					marker = "||"
				}
				c.Write(marker, " ", c.Cell(cell, " "), " ")
			}
			c.Write(marker, "\n")
		}
	}
	r.Quote = func(c *Context, q *docmodel.Quote) {
		c.Write("bq. ", c.Inlines(q.Content), "\n")
	}
	r.CodeBlock = func(c *Context, b *docmodel.CodeBlock) {
		// Both macros end at the first closing tag, wherever it appears.
		if strings.Contains(b.Text, "{code}") {
			if b.Language != "" {
				c.Dropped("code language")
			}
			c.Write("{noformat}\n", breakMacro(b.Text, "{noformat}"), "\n{noformat}\n")
			return
		}

		open := "{code}"
		if b.Language != "" {
			open = "{code:language=" + b.Language + "}"
		}
		c.Write(open, "\n", b.Text, "\n{code}\n")
	}
	r.HorizontalRuler = func(c *Context, _ *docmodel.HorizontalRuler) {
		c.Write("----\n")
	}
	r.Section = func(c *Context, s *docmodel.Section) {
		open := "{panel}"
		if s.Class != "" {
			open = "{panel:title=" + s.Class + "}"
		}

		c.Write(open, "\n")
		c.Section(func() { c.Blocks(s.Blocks) })
		c.Write("{panel}\n")
	}
	r.TableOfContents = func(c *Context, t *docmodel.TableOfContents) {
		c.Write("{toc:maxLevel=", strconv.Itoa(t.MaxLevel()), "}\n")
	}
	r.Index = func(c *Context, _ *docmodel.Index) {
		c.Write("{index}\n")
	}

	r.Strong = func(c *Context, s *docmodel.Strong) {
		c.Write("*", c.Inlines(s.Content), "*")
	}
	r.Emphasized = func(c *Context, e *docmodel.Emphasized) {
		c.Write("_", c.Inlines(e.Content), "_")
	}
	r.LineBreak = func(c *Context, _ *docmodel.LineBreak) {
		c.Write(`\\`, "\n")
	}
	r.InlineCode = func(c *Context, i *docmodel.InlineCode) {
		c.Write("{{", confluenceCode.Replace(singleLine(i.Code)), "}}")
	}
	r.Hyperlink = func(c *Context, h *docmodel.Hyperlink) {
		url := c.Link(h.URL)
		text := c.Inlines(h.Content)

		switch {
		case h.Title != "":
			c.Write("[", text, "|", url, "|", singleLine(h.Title), "]")
		case text == "" || text == h.URL:
			c.Write("[", url, "]")
		default:
			c.Write("[", text, "|", url, "]")
		}
	}
	r.Image = func(c *Context, i *docmodel.Image) {
		img := "!" + i.Source
		if i.Alt != "" {
			img += "|alt=" + strings.ReplaceAll(singleLine(i.Alt), "!", "")
		}
		img += "!"

		if i.Link != "" {
			img = "[" + img + "|" + c.Link(i.Link) + "]"
		}
		c.Write(img)
	}
	r.Anchor = func(c *Context, a *docmodel.Anchor) {
		c.Write("{anchor:", a.Name, "}")
	}
	r.NonBreakingSpace = func(c *Context, _ *docmodel.NonBreakingSpace) {
		c.Write("&nbsp;")
	}

	return r
}

// markedList writes items prefixed with the marker path of their
// enclosing lists.
func markedList(c *Context, items []*docmodel.ListItem, kind string) {
	c.NestedList(kind, func(path string) {
		for _, item := range items {
			c.Write(path, " ", c.Inlines(item.Content), "\n")
			if item.Nested != nil {
				item.Nested.Accept(c)
			}
		}
	})
}

// breakMacro inserts a space after the brace of every tag in text so the
// text cannot close the macro it is wrapped in.
func breakMacro(text, tag string) string {
	return strings.ReplaceAll(text, tag, "{ "+tag[1:])
}
