package format

import (
	"html"
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
	"github.com/yaklabco/wikidoc/pkg/langdetect"
	"github.com/yaklabco/wikidoc/pkg/textutil"
)

func htmlRules() *Rules {
	r := defaultRules()

	r.Gap = ""
	r.Escape = func(_ *Context, s string) string { return html.EscapeString(s) }
	r.Document = func(c *Context, doc *docmodel.Document) {
		if hasTableOfContents(doc) {
			c.ids = headerIDs(doc)
		}

		if !c.opts.Standalone {
			c.Blocks(doc.Blocks)
			return
		}

		htmlPage(c, doc)
	}

	r.Header = func(c *Context, h *docmodel.Header) {
		attrs := h.Attrs
		if id, ok := c.ids[h]; ok {
			attrs.ID = id
		}

		tag := "h" + strconv.Itoa(min(max(h.Level, 1), 6))
		c.Write("<", tag, htmlAttrs(attrs), ">", c.Inlines(h.Content), "</", tag, ">\n")
	}
	r.Paragraph = func(c *Context, p *docmodel.Paragraph) {
		c.Write("<p", htmlAttrs(p.Attrs), ">", c.Inlines(p.Content), "</p>\n")
	}
	r.UnorderedList = func(c *Context, l *docmodel.UnorderedList) {
		c.Write("<ul", htmlAttrs(l.Attrs), ">\n")
		htmlItems(c, l.Items)
		c.Write("</ul>\n")
	}
	r.OrderedList = func(c *Context, l *docmodel.OrderedList) {
		c.Write("<ol", htmlAttrs(l.Attrs))
		if l.FirstNumber() != 1 {
			c.Write(` start="`, strconv.Itoa(l.FirstNumber()), `"`)
		}
		c.Write(">\n")
		htmlItems(c, l.Items)
		c.Write("</ol>\n")
	}
	r.DefinitionList = func(c *Context, l *docmodel.DefinitionList) {
		c.Write("<dl", htmlAttrs(l.Attrs), ">\n")
		for _, def := range l.Items {
			c.Write("<dt>", c.Inlines(def.Term), "</dt>\n")
			c.Write("<dd>", c.Inlines(def.Description), "</dd>\n")
		}
		c.Write("</dl>\n")
	}
	r.Table = func(c *Context, t *docmodel.Table) {
		c.Write("<table", htmlAttrs(t.Attrs), ">\n")
		for _, row := range t.Rows {
			c.Write("<tr>")
			for _, cell := range row.Cells {
				tag := "td"
				if cell.Header {
					tag = "th"
				}
				c.Write("<", tag, htmlCellAttrs(cell), ">", c.Cell(cell, ""), "</", tag, ">")
			}
			c.Write("</tr>\n")
		}
		c.Write("</table>\n")
	}
	r.Quote = func(c *Context, q *docmodel.Quote) {
		c.Write("<blockquote", htmlAttrs(q.Attrs), ">", c.Inlines(q.Content), "</blockquote>\n")
	}
	r.CodeBlock = func(c *Context, b *docmodel.CodeBlock) {
		lang := b.Language
		if lang == "" && c.opts.DetectLanguage {
			lang = langdetect.Detect(b.Text)
		}

		code, _ := textutil.Highlight(lang, b.Text)

		c.Write("<pre", htmlAttrs(b.Attrs), "><code")
		if lang != "" {
			c.Write(` class="language-`, html.EscapeString(lang), `"`)
		}
		c.Write(">", code, "</code></pre>\n")
	}
	r.HorizontalRuler = func(c *Context, h *docmodel.HorizontalRuler) {
		c.Write("<hr", htmlAttrs(h.Attrs), " />\n")
	}
	r.Section = func(c *Context, s *docmodel.Section) {
		c.Write("<div", htmlAttrs(s.Attrs), ">\n")
		c.Section(func() { c.Blocks(s.Blocks) })
		c.Write("</div>\n")
	}
	r.TableOfContents = func(c *Context, t *docmodel.TableOfContents) {
		nodes := tocTree(tocEntries(c, t))
		if len(nodes) == 0 {
			return
		}

		attrs := t.Attrs
		attrs.Class = strings.TrimSpace("toc " + attrs.Class)
		htmlTOC(c, nodes, htmlAttrs(attrs))
	}
	r.Index = func(c *Context, i *docmodel.Index) {
		names := indexEntries(c.doc)
		if len(names) == 0 {
			return
		}

		attrs := i.Attrs
		attrs.Class = strings.TrimSpace("index " + attrs.Class)

		c.Write("<ul", htmlAttrs(attrs), ">\n")
		for _, name := range names {
			c.Write(`<li><a href="#`, html.EscapeString(name), `">`, html.EscapeString(name), "</a></li>\n")
		}
		c.Write("</ul>\n")
	}

	r.Strong = func(c *Context, s *docmodel.Strong) {
		c.Write("<b>", c.Inlines(s.Content), "</b>")
	}
	r.Emphasized = func(c *Context, e *docmodel.Emphasized) {
		c.Write("<i>", c.Inlines(e.Content), "</i>")
	}
	r.Span = func(c *Context, s *docmodel.Span) {
		c.Write("<span", htmlAttrs(docmodel.Attrs{Class: s.Class}), ">", c.Inlines(s.Content), "</span>")
	}
	r.LineBreak = func(c *Context, _ *docmodel.LineBreak) {
		c.Write("<br />")
	}
	r.InlineCode = func(c *Context, i *docmodel.InlineCode) {
		c.Write("<code")
		if i.Language != "" {
			c.Write(` class="language-`, html.EscapeString(i.Language), `"`)
		}
		c.Write(">", html.EscapeString(i.Code), "</code>")
	}
	r.Hyperlink = func(c *Context, h *docmodel.Hyperlink) {
		c.Write(`<a href="`, html.EscapeString(c.Link(h.URL)), `"`)
		if h.Title != "" {
			c.Write(` title="`, html.EscapeString(h.Title), `"`)
		}
		c.Write(">", c.Inlines(h.Content), "</a>")
	}
	r.Image = func(c *Context, i *docmodel.Image) {
		img := `<img src="` + html.EscapeString(i.Source) + `" alt="` + html.EscapeString(i.Alt) + `"`
		if i.Title != "" {
			img += ` title="` + html.EscapeString(i.Title) + `"`
		}
		img += " />"

		if i.Link != "" {
			img = `<a href="` + html.EscapeString(c.Link(i.Link)) + `">` + img + "</a>"
		}
		c.Write(img)
	}
	r.Anchor = func(c *Context, a *docmodel.Anchor) {
		c.Write(`<a id="`, html.EscapeString(a.Name), `"></a>`)
	}
	r.Symbol = func(c *Context, s *docmodel.Symbol) {
		sym, ok := c.Symbol(s.Name)
		if !ok {
			return
		}
		c.Write(`<img class="symbol" src="`, html.EscapeString(c.SymbolPath(sym)),
			`" alt="`, html.EscapeString(sym.Text), `" />`)
	}
	r.Equation = func(c *Context, e *docmodel.Equation) {
		c.Write(`<span class="equation">`, html.EscapeString(e.Content), "</span>")
	}
	r.NonBreakingSpace = func(c *Context, _ *docmodel.NonBreakingSpace) {
		c.Write("&nbsp;")
	}

	return r
}

func htmlItems(c *Context, items []*docmodel.ListItem) {
	c.List(func() {
		for _, item := range items {
			c.Write("<li>", c.Inlines(item.Content))
			if item.Nested != nil {
				c.Write("\n")
				item.Nested.Accept(c)
			}
			c.Write("</li>\n")
		}
	})
}

func htmlTOC(c *Context, nodes []*tocNode, attrs string) {
	c.Write("<ul", attrs, ">\n")
	for _, node := range nodes {
		h := node.entry.header
		c.Write(`<li><a href="#`, html.EscapeString(c.HeaderID(h)), `">`, c.Inlines(h.Content), "</a>")
		if len(node.children) > 0 {
			c.Write("\n")
			htmlTOC(c, node.children, "")
		}
		c.Write("</li>\n")
	}
	c.Write("</ul>\n")
}

// htmlAttrs renders block attributes with a leading space, or "" when
// none is set.
func htmlAttrs(attrs docmodel.Attrs) string {
	var sb strings.Builder

	for _, attr := range [][2]string{{"id", attrs.ID}, {"class", attrs.Class}, {"title", attrs.Title}} {
		if attr[1] != "" {
			sb.WriteString(" " + attr[0] + `="` + html.EscapeString(attr[1]) + `"`)
		}
	}

	return sb.String()
}

func htmlCellAttrs(cell *docmodel.TableCell) string {
	var sb strings.Builder

	if cell.Cols() > 1 {
		sb.WriteString(` colspan="` + strconv.Itoa(cell.Cols()) + `"`)
	}
	if cell.Rows() > 1 {
		sb.WriteString(` rowspan="` + strconv.Itoa(cell.Rows()) + `"`)
	}

	var style []string
	if align := cell.HAlign.String(); align != "" {
		style = append(style, "text-align: "+align)
	}
	if align := cell.VAlign.String(); align != "" {
		style = append(style, "vertical-align: "+align)
	}
	if len(style) > 0 {
		sb.WriteString(` style="` + strings.Join(style, "; ") + `"`)
	}

	return sb.String()
}

// htmlPage writes a complete page around the rendered blocks.
func htmlPage(c *Context, doc *docmodel.Document) {
	meta := doc.Metadata

	c.Write("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n")
	c.Write("<title>", html.EscapeString(documentTitle(doc)), "</title>\n")

	for _, m := range [][2]string{
		{"author", meta.Creator},
		{"date", meta.Date},
		{"keywords", strings.Join(meta.Keywords, ", ")},
		{"description", meta.Description},
		{"revision", meta.Revision},
	} {
		if m[1] != "" {
			c.Write(`<meta name="`, m[0], `" content="`, html.EscapeString(m[1]), "\" />\n")
		}
	}

	if c.opts.CSSPath != "" {
		c.Write(`<link rel="stylesheet" href="`, html.EscapeString(c.opts.CSSPath), "\" />\n")
	}
	if css := StyleSheetCSS(c.opts.styleSheet()); css != "" {
		c.Write("<style>\n", css, "</style>\n")
	}

	c.Write("</head>\n<body>\n")
	c.Blocks(doc.Blocks)
	c.Write("</body>\n</html>\n")
}
