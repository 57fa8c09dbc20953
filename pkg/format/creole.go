package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Read-only tables.
var (
	creoleEscaper = escaper{
		esc:       "~",
		always:    "~*",
		doubled:   "/[]{}\\<",
		lineStart: "=#>;:|-",
		cell:      "|",
		prefixes:  []string{"&nbsp;", "http://", "https://", "ftp://"},
		equations: true,
		symbols:   true,
	}

	creoleFenceEnd = regexp.MustCompile(`^ *\}\}\}[ \t]*$`)
	creoleURL      = strings.NewReplacer("~", "~~", "|", "~|", "]", "~]")
)

func creoleRules() *Rules {
	r := owikiRules()

	r.Escape = escapeWith(creoleEscaper)
	r.Attributes = nil
	r.Document = func(c *Context, doc *docmodel.Document) {
		if !doc.Metadata.IsZero() {
			c.Dropped("metadata")
		}
		c.Blocks(doc.Blocks)
	}

	r.Header = func(c *Context, h *docmodel.Header) {
		c.Write(strings.Repeat("=", min(max(h.Level, 1), 6)), " ", c.Inlines(h.Content), "\n")
	}
	r.UnorderedList = func(c *Context, l *docmodel.UnorderedList) {
		creoleList(c, l.Items, "*")
	}
	r.OrderedList = func(c *Context, l *docmodel.OrderedList) {
		if l.FirstNumber() != 1 {
			c.Dropped("list start number")
		}
		creoleList(c, l.Items, "#")
	}
	r.DefinitionList = colonDefinitions(creoleEscaper.esc)
	r.CodeBlock = func(c *Context, b *docmodel.CodeBlock) {
		c.Write("{{{")
		if b.Language != "" {
			c.Write("#!", b.Language)
		}
		c.Write("\n")

		for _, line := range strings.Split(b.Text, "\n") {
			if creoleFenceEnd.MatchString(line) {
				line = " " + line
			}
			c.Write(line, "\n")
		}

		c.Write("}}}\n")
	}
	r.Section = func(c *Context, s *docmodel.Section) {
		c.Dropped("section")
		c.Section(func() { c.Blocks(s.Blocks) })
	}
	r.TableOfContents = func(c *Context, t *docmodel.TableOfContents) {
		if t.Depth > 0 {
			c.Write("<<toc ", strconv.Itoa(t.Depth), ">>\n")
			return
		}
		c.Write("<<toc>>\n")
	}
	r.Index = func(c *Context, _ *docmodel.Index) {
		c.Write("<<index>>\n")
	}

	r.Emphasized = func(c *Context, e *docmodel.Emphasized) {
		c.Write("//", c.Inlines(e.Content), "//")
	}
	r.Span = func(c *Context, s *docmodel.Span) {
		c.Dropped("span")
		c.Write(c.Inlines(s.Content))
	}
	r.LineBreak = func(c *Context, _ *docmodel.LineBreak) {
		c.Write(`\\`)
	}
	r.InlineCode = func(c *Context, i *docmodel.InlineCode) {
		if i.Language != "" {
			c.Dropped("inline code language")
		}
		c.Write("{{{", singleLine(i.Code), "}}}")
	}
	r.Hyperlink = func(c *Context, h *docmodel.Hyperlink) {
		url := creoleURL.Replace(h.URL)
		if text, ok := onlyText(h.Content); ok && text == h.URL {
			c.Write("[[", url, "]]")
			return
		}
		c.Write("[[", url, "|", c.Inlines(h.Content), "]]")
	}
	r.Image = func(c *Context, i *docmodel.Image) {
		img := "{{" + creoleImageSource(i.Source)
		if i.Alt != "" {
			img += "|" + strings.ReplaceAll(singleLine(i.Alt), "}", "")
		}
		img += "}}"

		if i.Link != "" {
			img = "[[" + creoleURL.Replace(i.Link) + "|" + img + "]]"
		}
		c.Write(img)
	}
	r.Anchor = func(c *Context, a *docmodel.Anchor) {
		c.Write("<<anchor ", a.Name, ">>")
	}

	return r
}

// creoleList writes items with the kind character repeated once per
// nesting level.
func creoleList(c *Context, items []*docmodel.ListItem, kind string) {
	c.List(func() {
		marker := strings.Repeat(kind, c.ListDepth()+1) + " "
		for _, item := range items {
			c.Write(marker, c.Inlines(item.Content), "\n")
			if item.Nested != nil {
				item.Nested.Accept(c)
			}
		}
	})
}

// creoleImageSource removes the characters an image source cannot hold.
func creoleImageSource(src string) string {
	return strings.NewReplacer("|", "%7C", "}", "%7D", "\n", "").Replace(src)
}
