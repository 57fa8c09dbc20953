package format

import (
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Read-only escaping table.
var owikiEscaper = escaper{
	esc:       `\`,
	always:    "\\*_`[]{",
	lineStart: "#>;:|@-=",
	ordered:   ".",
	cell:      "|",
	prefixes:  []string{"&nbsp;"},
	equations: true,
	symbols:   true,
}

func owikiRules() *Rules {
	r := defaultRules()

	r.Escape = escapeWith(owikiEscaper)
	r.Document = func(c *Context, doc *docmodel.Document) {
		if meta := owikiMetadata(doc.Metadata); meta != "" {
			c.Write(meta)
			if len(doc.Blocks) > 0 {
				c.Write(c.rules.Gap)
			}
		}
		c.Blocks(doc.Blocks)
	}
	r.Attributes = func(c *Context, b docmodel.Block) {
		attrs := *b.Attributes()
		if _, ok := b.(*docmodel.Section); ok {
			attrs.Class = ""
		}
		if !attrs.IsZero() {
			c.Write(owikiAttrs(attrs), "\n")
		}
	}

	r.Header = func(c *Context, h *docmodel.Header) {
		c.Write(strings.Repeat("#", min(max(h.Level, 1), 6)), " ", c.Inlines(h.Content), "\n")
	}
	r.UnorderedList = func(c *Context, l *docmodel.UnorderedList) {
		plainList(c, l.Items, func(int) string { return "* " })
	}
	r.OrderedList = func(c *Context, l *docmodel.OrderedList) {
		plainList(c, l.Items, func(i int) string { return strconv.Itoa(l.FirstNumber()+i) + ". " })
	}
	r.DefinitionList = colonDefinitions(owikiEscaper.esc)
	r.Table = func(c *Context, t *docmodel.Table) {
		g := layout(c, t)
		for row := range g.rows {
			c.Write(g.markedRow(row, "|", "|="), "\n")
		}
	}
	r.Quote = func(c *Context, q *docmodel.Quote) {
		c.Write(prefixLines(c.Inlines(q.Content), "> "), "\n")
	}
	r.CodeBlock = func(c *Context, b *docmodel.CodeBlock) {
		fence := fenceFor(b.Text, '`', 3)
		c.Write(fence, b.Language, "\n", b.Text, "\n", fence, "\n")
	}
	r.HorizontalRuler = func(c *Context, _ *docmodel.HorizontalRuler) {
		c.Write("----\n")
	}
	r.Section = func(c *Context, s *docmodel.Section) {
		colons := strings.Repeat(":", 3+c.SectionDepth())
		open := colons
		if s.Class != "" {
			open += " " + s.Class
		}

		c.Write(open, "\n")
		c.Section(func() { c.Blocks(s.Blocks) })
		c.Write(colons, "\n")
	}
	r.TableOfContents = func(c *Context, t *docmodel.TableOfContents) {
		if t.Depth > 0 {
			c.Write("@toc ", strconv.Itoa(t.Depth), "\n")
			return
		}
		c.Write("@toc\n")
	}
	r.Index = func(c *Context, _ *docmodel.Index) {
		c.Write("@index\n")
	}

	r.Strong = func(c *Context, s *docmodel.Strong) {
		c.Write("**", c.Inlines(s.Content), "**")
	}
	r.Emphasized = func(c *Context, e *docmodel.Emphasized) {
		// Underscores do not open or close next to a letter or digit.
		delim := "_"
		if c.touchesWord() {
			delim = "*"
		}
		c.Write(delim, c.Inlines(e.Content), delim)
	}
	r.Span = func(c *Context, s *docmodel.Span) {
		if s.Class == "" {
			c.Write(c.Inlines(s.Content))
			return
		}
		c.Write("[", c.Inlines(s.Content), "]{", s.Class, "}")
	}
	r.LineBreak = func(c *Context, _ *docmodel.LineBreak) {
		c.Write("\\\n")
	}
	r.InlineCode = func(c *Context, i *docmodel.InlineCode) {
		c.Write(backtickCode(i.Code))
		if i.Language != "" {
			c.Write("{", i.Language, "}")
		}
	}
	r.Hyperlink = func(c *Context, h *docmodel.Hyperlink) {
		c.Write("[", c.Inlines(h.Content), "](", linkDestination(h.URL), linkTitle(h.Title), ")")
	}
	r.Image = func(c *Context, i *docmodel.Image) {
		img := "![" + escapeBracketText(i.Alt) + "](" + linkDestination(i.Source) + linkTitle(i.Title) + ")"
		if i.Link != "" {
			img = "[" + img + "](" + linkDestination(i.Link) + ")"
		}
		c.Write(img)
	}
	r.Anchor = func(c *Context, a *docmodel.Anchor) {
		c.Write("{#", a.Name, "}")
	}
	r.Symbol = func(c *Context, s *docmodel.Symbol) {
		c.Write(":", s.Name, ":")
	}
	r.Equation = func(c *Context, e *docmodel.Equation) {
		c.Write("$$", singleLine(e.Content), "$$")
	}
	r.NonBreakingSpace = func(c *Context, _ *docmodel.NonBreakingSpace) {
		c.Write("&nbsp;")
	}

	return r
}

// colonDefinitions writes "; term : description" lines. A " : " inside
// the term is escaped so that it does not split the line.
func colonDefinitions(esc string) func(c *Context, l *docmodel.DefinitionList) {
	return func(c *Context, l *docmodel.DefinitionList) {
		for _, def := range l.Items {
			term := strings.ReplaceAll(c.Inlines(def.Term), " : ", " "+esc+": ")
			if strings.HasSuffix(term, " :") {
				term = strings.TrimSuffix(term, ":") + esc + ":"
			}

			c.Write("; ", term)
			if len(def.Description) > 0 {
				c.Write(" : ", strings.ReplaceAll(c.Inlines(def.Description), "\n", "\n: "))
			}
			c.Write("\n")
		}
	}
}

func owikiMetadata(meta docmodel.Metadata) string {
	var sb strings.Builder

	write := func(key, value string) {
		if value != "" {
			sb.WriteString("@" + key + " " + singleLine(value) + "\n")
		}
	}

	write("title", meta.Title)
	write("creator", meta.Creator)
	write("date", meta.Date)
	write("keywords", strings.Join(meta.Keywords, ", "))
	write("description", meta.Description)
	write("revision", meta.Revision)

	return sb.String()
}

func owikiAttrs(attrs docmodel.Attrs) string {
	parts := make([]string, 0, 3)

	if attrs.ID != "" {
		parts = append(parts, "#"+attrs.ID)
	}
	for _, class := range strings.Fields(attrs.Class) {
		parts = append(parts, "."+class)
	}
	if attrs.Title != "" {
		parts = append(parts, `title="`+strings.ReplaceAll(attrs.Title, `"`, "'")+`"`)
	}

	return "{" + strings.Join(parts, " ") + "}"
}

// backtickCode wraps code in a backtick run one longer than the longest
// run inside it. Code that starts or ends with a backtick or is padded
// with spaces gets one space of padding, which parsers remove.
func backtickCode(code string) string {
	code = singleLine(code)

	longest, run := 0, 0
	for _, r := range code {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	delim := strings.Repeat("`", longest+1)

	pad := strings.HasPrefix(code, "`") || strings.HasSuffix(code, "`") ||
		(len(code) > 2 && strings.HasPrefix(code, " ") && strings.HasSuffix(code, " "))
	if pad {
		return delim + " " + code + " " + delim
	}

	return delim + code + delim
}

// linkDestination writes a link target, in angle brackets when it holds
// characters that would end a bare target.
func linkDestination(url string) string {
	if url == "" || strings.ContainsAny(url, " \t()<>") {
		return "<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(url) + ">"
	}

	return url
}

func linkTitle(title string) string {
	if title == "" {
		return ""
	}

	return ` "` + strings.ReplaceAll(singleLine(title), `"`, "'") + `"`
}

// escapeBracketText escapes the characters that end image alt text.
func escapeBracketText(s string) string {
	return strings.NewReplacer(`\`, `\\`, "]", `\]`, "[", `\[`).Replace(singleLine(s))
}
