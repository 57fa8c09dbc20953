package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// mapper converts a goldmark AST into a document tree.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

func (m *mapper) mapDocument(root ast.Node) *docmodel.Document {
	return docmodel.NewDocument(m.mapBlocks(root)...)
}

// mapBlocks maps the block children of parent, skipping nodes without an
// equivalent.
func (m *mapper) mapBlocks(parent ast.Node) []docmodel.Block {
	var blocks []docmodel.Block

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if block := m.mapBlock(child); block != nil {
			blocks = append(blocks, block)
		}
	}

	return blocks
}

//nolint:ireturn // Returns the sealed docmodel.Block interface.
func (m *mapper) mapBlock(node ast.Node) docmodel.Block {
	switch n := node.(type) {
	case *ast.Heading:
		header := &docmodel.Header{Level: n.Level, Content: m.mapInlines(n)}
		header.Attrs = m.attributes(n)
		return header

	case *ast.Paragraph, *ast.TextBlock:
		return &docmodel.Paragraph{Content: m.mapInlines(n)}

	case *ast.List:
		return m.mapList(n)

	case *ast.Blockquote:
		return &docmodel.Quote{Content: m.flatten(n)}

	case *ast.FencedCodeBlock:
		return &docmodel.CodeBlock{Language: string(n.Language(m.content)), Text: m.lines(n)}

	case *ast.CodeBlock:
		return &docmodel.CodeBlock{Text: m.lines(n)}

	case *ast.HTMLBlock:
		return &docmodel.CodeBlock{Language: "html", Text: m.lines(n)}

	case *ast.ThematicBreak:
		return &docmodel.HorizontalRuler{}

	case *east.Table:
		return m.mapTable(n)

	case *east.DefinitionList:
		return m.mapDefinitions(n)
	}

	return nil
}

//nolint:ireturn // Returns the sealed docmodel.List interface.
func (m *mapper) mapList(list *ast.List) docmodel.Block {
	items := make([]*docmodel.ListItem, 0, list.ChildCount())

	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		items = append(items, m.mapItem(child))
	}

	if list.IsOrdered() {
		return &docmodel.OrderedList{Start: max(list.Start, 1), Items: items}
	}

	return &docmodel.UnorderedList{Items: items}
}

// mapItem keeps the text of an item and its first nested list. Other
// nested blocks are flattened into the item text.
func (m *mapper) mapItem(node ast.Node) *docmodel.ListItem {
	item := &docmodel.ListItem{}

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if list, ok := child.(*ast.List); ok {
			if item.Nested == nil {
				item.Nested, _ = m.mapList(list).(docmodel.List)
			}
			continue
		}

		inlines := m.flattenBlock(child)
		if len(inlines) == 0 {
			continue
		}
		if len(item.Content) > 0 {
			item.Content = append(item.Content, &docmodel.LineBreak{})
		}
		item.Content = append(item.Content, inlines...)
	}

	return item
}

func (m *mapper) mapTable(table *east.Table) *docmodel.Table {
	out := &docmodel.Table{}

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		_, header := row.(*east.TableHeader)
		tr := &docmodel.TableRow{}

		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			tc := docmodel.NewTableCell(header)
			if inlines := m.mapInlines(cell); len(inlines) > 0 {
				tc.Blocks = []docmodel.Block{docmodel.Para(inlines...)}
			}
			if c, ok := cell.(*east.TableCell); ok {
				tc.HAlign = alignment(c.Alignment)
			}
			tr.Cells = append(tr.Cells, tc)
		}

		out.Rows = append(out.Rows, tr)
	}

	return out
}

func alignment(a east.Alignment) docmodel.HAlign {
	switch a {
	case east.AlignLeft:
		return docmodel.AlignLeft
	case east.AlignCenter:
		return docmodel.AlignCenter
	case east.AlignRight:
		return docmodel.AlignRight
	case east.AlignNone:
	}

	return docmodel.AlignDefault
}

func (m *mapper) mapDefinitions(list *east.DefinitionList) *docmodel.DefinitionList {
	out := &docmodel.DefinitionList{}

	var current *docmodel.Definition

	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *east.DefinitionTerm:
			current = &docmodel.Definition{Term: m.mapInlines(n)}
			out.Items = append(out.Items, current)
		case *east.DefinitionDescription:
			if current == nil {
				current = &docmodel.Definition{}
				out.Items = append(out.Items, current)
			}
			if len(current.Description) > 0 {
				current.Description = append(current.Description, &docmodel.LineBreak{})
			}
			current.Description = append(current.Description, m.flatten(n)...)
		}
	}

	return out
}

// flatten joins the inline content of the blocks under node with line
// breaks.
func (m *mapper) flatten(node ast.Node) []docmodel.Inline {
	var out []docmodel.Inline

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		inlines := m.flattenBlock(child)
		if len(inlines) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, &docmodel.LineBreak{})
		}
		out = append(out, inlines...)
	}

	return out
}

func (m *mapper) flattenBlock(node ast.Node) []docmodel.Inline {
	switch node.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		return m.mapInlines(node)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return []docmodel.Inline{&docmodel.InlineCode{Code: strings.ReplaceAll(m.lines(node), "\n", " ")}}
	}

	return m.flatten(node)
}

// lines returns the raw text lines of a block without the final newline.
func (m *mapper) lines(node ast.Node) string {
	var buf bytes.Buffer

	segments := node.Lines()
	for i := range segments.Len() {
		segment := segments.At(i)
		buf.Write(segment.Value(m.content))
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

func (m *mapper) attributes(node ast.Node) docmodel.Attrs {
	var attrs docmodel.Attrs

	if v, ok := node.AttributeString("id"); ok {
		attrs.ID = attrString(v)
	}
	if v, ok := node.AttributeString("class"); ok {
		attrs.Class = attrString(v)
	}
	if v, ok := node.AttributeString("title"); ok {
		attrs.Title = attrString(v)
	}

	return attrs
}

func attrString(v any) string {
	switch s := v.(type) {
	case []byte:
		return string(s)
	case string:
		return s
	}

	return ""
}

// mapInlines maps the inline children of parent.
func (m *mapper) mapInlines(parent ast.Node) []docmodel.Inline {
	var out []docmodel.Inline

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, m.mapInline(child)...)
	}

	return out
}

func (m *mapper) mapInline(node ast.Node) []docmodel.Inline {
	switch n := node.(type) {
	case *ast.Text:
		return m.mapText(n)

	case *ast.String:
		return []docmodel.Inline{docmodel.Text(string(n.Value))}

	case *ast.Emphasis:
		if n.Level >= 2 {
			return []docmodel.Inline{docmodel.Bold(m.mapInlines(n)...)}
		}
		return []docmodel.Inline{docmodel.Italic(m.mapInlines(n)...)}

	case *ast.CodeSpan:
		return []docmodel.Inline{&docmodel.InlineCode{Code: m.codeSpan(n)}}

	case *ast.Link:
		return []docmodel.Inline{&docmodel.Hyperlink{
			URL:     string(n.Destination),
			Title:   string(n.Title),
			Content: m.mapInlines(n),
		}}

	case *ast.Image:
		return []docmodel.Inline{&docmodel.Image{
			Source: string(n.Destination),
			Title:  string(n.Title),
			Alt:    docmodel.PlainText(m.mapInlines(n)),
		}}

	case *ast.AutoLink:
		url := string(n.URL(m.content))
		return []docmodel.Inline{docmodel.Link(url, docmodel.Text(string(n.Label(m.content))))}

	case *ast.RawHTML:
		return m.mapRawHTML(n)

	case *east.Strikethrough:
		return []docmodel.Inline{&docmodel.Span{Class: "strike", Content: m.mapInlines(n)}}

	case *east.TaskCheckBox:
		if n.IsChecked {
			return []docmodel.Inline{docmodel.Text("[x] ")}
		}
		return []docmodel.Inline{docmodel.Text("[ ] ")}
	}

	return m.mapInlines(node)
}

func (m *mapper) mapText(t *ast.Text) []docmodel.Inline {
	out := []docmodel.Inline{docmodel.Text(string(t.Segment.Value(m.content)))}

	switch {
	case t.HardLineBreak():
		out = append(out, &docmodel.LineBreak{})
	case t.SoftLineBreak():
		out = append(out, docmodel.Text(" "))
	}

	return out
}

func (m *mapper) codeSpan(span *ast.CodeSpan) string {
	var buf bytes.Buffer

	for child := span.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(m.content))
		case *ast.String:
			buf.Write(n.Value)
		}
	}

	return buf.String()
}

// mapRawHTML keeps line breaks and named anchors and drops other markup.
func (m *mapper) mapRawHTML(raw *ast.RawHTML) []docmodel.Inline {
	var buf bytes.Buffer

	for i := range raw.Segments.Len() {
		segment := raw.Segments.At(i)
		buf.Write(segment.Value(m.content))
	}

	tag := strings.ToLower(buf.String())

	switch {
	case strings.HasPrefix(tag, "<br"):
		return []docmodel.Inline{&docmodel.LineBreak{}}
	case strings.HasPrefix(tag, "<a "):
		if name := htmlAttr(buf.String(), "name"); name != "" {
			return []docmodel.Inline{&docmodel.Anchor{Name: name}}
		}
		if id := htmlAttr(buf.String(), "id"); id != "" {
			return []docmodel.Inline{&docmodel.Anchor{Name: id}}
		}
	}

	return nil
}

// htmlAttr extracts a double-quoted attribute value from a tag.
func htmlAttr(tag, name string) string {
	key := name + `="`

	start := strings.Index(tag, key)
	if start < 0 {
		return ""
	}

	rest := tag[start+len(key):]
	if end := strings.IndexByte(rest, '"'); end >= 0 {
		return rest[:end]
	}

	return ""
}
