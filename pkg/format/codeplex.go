package format

import (
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Read-only escaping table.
var codeplexEscaper = escaper{
	esc:       `{"`,
	end:       `"}`,
	always:    "*_[]{}|^~+",
	doubled:   "-",
	lineStart: "!#>-",
	cell:      "|",
}

func codeplexRules() *Rules {
	r := confluenceRules()

	r.Escape = escapeWith(codeplexEscaper)

	r.Header = func(c *Context, h *docmodel.Header) {
		c.Write(strings.Repeat("!", min(max(h.Level, 1), 6)), " ", c.Inlines(h.Content), "\n")
	}
	r.DefinitionList = func(c *Context, l *docmodel.DefinitionList) {
		for _, def := range l.Items {
			c.Write("*", c.Inlines(def.Term), "*\n")
			if len(def.Description) > 0 {
				c.Write("{quote:}", c.Inlines(def.Description), "{quote:}\n")
			}
		}
	}
	r.Quote = func(c *Context, q *docmodel.Quote) {
		c.Write("{quote:}", c.Inlines(q.Content), "{quote:}\n")
	}
	r.CodeBlock = func(c *Context, b *docmodel.CodeBlock) {
		lang := b.Language
		if lang == "" {
			lang = "text"
		}
		tag := "{code:" + lang + "}"
		c.Write(tag, "\n", breakMacro(b.Text, tag), "\n", tag, "\n")
	}
	r.Section = func(c *Context, s *docmodel.Section) {
		c.Dropped("section")
		c.Section(func() { c.Blocks(s.Blocks) })
	}
	r.TableOfContents = func(c *Context, _ *docmodel.TableOfContents) {
		c.Dropped("table of contents")
	}
	r.Index = func(c *Context, _ *docmodel.Index) {
		c.Dropped("index")
	}

	r.LineBreak = func(c *Context, _ *docmodel.LineBreak) {
		c.Write("\n")
	}
	r.InlineCode = func(c *Context, i *docmodel.InlineCode) {
		c.Write(`{"`, strings.ReplaceAll(singleLine(i.Code), `"}`, `" }`), `"}`)
	}
	r.Hyperlink = func(c *Context, h *docmodel.Hyperlink) {
		url := c.Link(h.URL)
		if text := c.Inlines(h.Content); text != "" && text != h.URL {
			c.Write("[url:", text, "|", url, "]")
			return
		}
		c.Write("[url:", url, "]")
	}
	r.Image = func(c *Context, i *docmodel.Image) {
		if i.Link != "" {
			c.Dropped("image link")
		}
		c.Write("[image:", strings.NewReplacer("|", "", "]", "").Replace(singleLine(i.Alt)), "|", i.Source, "]")
	}

	return r
}
