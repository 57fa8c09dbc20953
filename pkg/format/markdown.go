package format

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Read-only escaping table.
var markdownEscaper = escaper{
	esc:       `\`,
	always:    "\\*_`[]<",
	lineStart: "#>:|-+=~",
	ordered:   ".)",
	cell:      "|",
	prefixes:  []string{"&nbsp;"},
	equations: true,
	symbols:   true,
}

// markdownFrontMatter is the YAML metadata written before the content.
type markdownFrontMatter struct {
	Title       string   `yaml:"title,omitempty"`
	Creator     string   `yaml:"creator,omitempty"`
	Date        string   `yaml:"date,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty,flow"`
	Description string   `yaml:"description,omitempty"`
	Revision    string   `yaml:"revision,omitempty"`
}

func markdownRules() *Rules {
	r := owikiRules()

	r.Escape = escapeWith(markdownEscaper)
	r.Attributes = nil
	r.Document = func(c *Context, doc *docmodel.Document) {
		if meta := markdownMetadata(c, doc.Metadata); meta != "" {
			c.Write(meta)
			if len(doc.Blocks) > 0 {
				c.Write(c.rules.Gap)
			}
		}
		c.Blocks(doc.Blocks)
	}

	r.UnorderedList = func(c *Context, l *docmodel.UnorderedList) {
		plainList(c, l.Items, func(int) string { return "- " })
	}
	r.DefinitionList = func(c *Context, l *docmodel.DefinitionList) {
		for _, def := range l.Items {
			c.Write(c.Inlines(def.Term), "\n")
			c.Write(": ", strings.ReplaceAll(c.Inlines(def.Description), "\n", "\n: "), "\n")
		}
	}
	r.Table = func(c *Context, t *docmodel.Table) {
		g := layout(c, t)
		for col := range g.widths {
			g.widths[col] = max(g.widths[col], 3)
		}

		for row := range g.rows {
			c.Write(pipeRow(g, row), "\n")
			if row == 0 && t.Rows[0].IsHeader() {
				c.Write(delimiterRow(g, t.Rows[0]), "\n")
			}
		}
	}
	r.HorizontalRuler = func(c *Context, _ *docmodel.HorizontalRuler) {
		c.Write("***\n")
	}
	r.Section = func(c *Context, s *docmodel.Section) {
		if s.Class != "" {
			c.Dropped("section class")
		}
		c.Section(func() { c.Blocks(s.Blocks) })
	}
	r.TableOfContents = func(c *Context, t *docmodel.TableOfContents) {
		if t.Depth > 0 {
			c.Write("[TOC:", strconv.Itoa(t.Depth), "]\n")
			return
		}
		c.Write("[TOC]\n")
	}
	r.Index = func(c *Context, _ *docmodel.Index) {
		c.Write("[INDEX]\n")
	}

	r.Span = func(c *Context, s *docmodel.Span) {
		c.Dropped("span")
		c.Write(c.Inlines(s.Content))
	}
	r.InlineCode = func(c *Context, i *docmodel.InlineCode) {
		if i.Language != "" {
			c.Dropped("inline code language")
		}
		c.Write(backtickCode(i.Code))
	}
	link := r.Hyperlink
	r.Hyperlink = func(c *Context, h *docmodel.Hyperlink) {
		if text, ok := onlyText(h.Content); ok && text == h.URL && isAutolink(h.URL) {
			c.Write("<", h.URL, ">")
			return
		}
		link(c, h)
	}
	r.Anchor = func(c *Context, a *docmodel.Anchor) {
		c.Write(`<a name="`, a.Name, `"></a>`)
	}

	return r
}

func markdownMetadata(c *Context, meta docmodel.Metadata) string {
	if meta.IsZero() {
		return ""
	}

	data, err := yaml.Marshal(markdownFrontMatter{
		Title:       meta.Title,
		Creator:     meta.Creator,
		Date:        meta.Date,
		Keywords:    meta.Keywords,
		Description: meta.Description,
		Revision:    meta.Revision,
	})
	if err != nil {
		c.logger.Debug("front matter dropped", logging.FieldError, err)
		return ""
	}

	return "---\n" + string(data) + "---\n"
}

func isAutolink(url string) bool {
	for _, scheme := range []string{"http://", "https://", "ftp://", "mailto:"} {
		if strings.HasPrefix(url, scheme) {
			return !strings.ContainsAny(url, " \t<>")
		}
	}

	return false
}

func pipeRow(g grid, row int) string {
	var sb strings.Builder

	sb.WriteString("|")
	for col, text := range g.rows[row] {
		sb.WriteString(" " + g.pad(text, col) + " |")
	}

	return sb.String()
}

// delimiterRow writes the alignment row below a header row.
func delimiterRow(g grid, header *docmodel.TableRow) string {
	var sb strings.Builder

	sb.WriteString("|")
	for col, cell := range header.Cells {
		width := g.widths[col]

		switch cell.HAlign {
		case docmodel.AlignLeft:
			sb.WriteString(" :" + strings.Repeat("-", width-1))
		case docmodel.AlignRight:
			sb.WriteString(" " + strings.Repeat("-", width-1) + ":")
		case docmodel.AlignCenter:
			sb.WriteString(" :" + strings.Repeat("-", width-2) + ":")
		case docmodel.AlignDefault:
			sb.WriteString(" " + strings.Repeat("-", width))
		}
		sb.WriteString(" |")
	}

	return sb.String()
}
