package docmodel

// Header is a section heading. Level starts at 1.
type Header struct {
	Attrs

	Level   int
	Content []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Attrs

	Content []Inline
}

// ListItem is one entry of a list: inline content plus an optional nested list.
type ListItem struct {
	Content []Inline
	Nested  List
}

// UnorderedList is a bulleted list.
type UnorderedList struct {
	Attrs

	Items []*ListItem
}

// ListItems implements List.
func (l *UnorderedList) ListItems() []*ListItem { return l.Items }

// Ordered implements List.
func (l *UnorderedList) Ordered() bool { return false }

// OrderedList is a numbered list. Start is the number of the first item;
// zero is treated as 1.
type OrderedList struct {
	Attrs

	Start int
	Items []*ListItem
}

// ListItems implements List.
func (l *OrderedList) ListItems() []*ListItem { return l.Items }

// Ordered implements List.
func (l *OrderedList) Ordered() bool { return true }

// FirstNumber returns the number of the first item.
func (l *OrderedList) FirstNumber() int {
	if l.Start < 1 {
		return 1
	}

	return l.Start
}

// Definition is a term with its description.
type Definition struct {
	Term        []Inline
	Description []Inline
}

// DefinitionList is a list of term/description pairs.
type DefinitionList struct {
	Attrs

	Items []*Definition
}

// Table is a grid of rows. Rows may have different cell counts.
type Table struct {
	Attrs

	Rows []*TableRow
}

// Columns returns the largest cell count of any row.
func (t *Table) Columns() int {
	columns := 0
	for _, row := range t.Rows {
		columns = max(columns, len(row.Cells))
	}

	return columns
}

// TableRow is an ordered list of cells.
type TableRow struct {
	Cells []*TableCell
}

// IsHeader reports whether every cell of the row is a header cell.
func (r *TableRow) IsHeader() bool {
	if len(r.Cells) == 0 {
		return false
	}

	for _, cell := range r.Cells {
		if !cell.Header {
			return false
		}
	}

	return true
}

// TableCell holds block content. Header marks the emphasized header subtype.
type TableCell struct {
	Header  bool
	Blocks  []Block
	HAlign  HAlign
	VAlign  VAlign
	RowSpan int
	ColSpan int
}

// NewTableCell returns a cell with spans of 1 holding blocks.
func NewTableCell(header bool, blocks ...Block) *TableCell {
	return &TableCell{Header: header, Blocks: blocks, RowSpan: 1, ColSpan: 1}
}

// Rows returns the row span, never less than 1.
func (c *TableCell) Rows() int { return max(c.RowSpan, 1) }

// Cols returns the column span, never less than 1.
func (c *TableCell) Cols() int { return max(c.ColSpan, 1) }

// Inlines returns the inline content of a cell that holds a single
// paragraph, and ok=false for any other shape.
func (c *TableCell) Inlines() ([]Inline, bool) {
	switch len(c.Blocks) {
	case 0:
		return nil, true
	case 1:
		if p, isPara := c.Blocks[0].(*Paragraph); isPara {
			return p.Content, true
		}
	}

	return nil, false
}

// Quote is a quotation of inline content.
type Quote struct {
	Attrs

	Content []Inline
}

// CodeBlock is preformatted text with an optional language tag.
type CodeBlock struct {
	Attrs

	Language string
	Text     string
}

// HorizontalRuler is a thematic break.
type HorizontalRuler struct {
	Attrs
}

// Section groups nested blocks.
type Section struct {
	Attrs

	Blocks []Block
}

// DefaultTOCDepth is the depth used when a table of contents gives none.
const DefaultTOCDepth = 3

// TableOfContents is a placeholder expanded from the document headers.
// Depth is the deepest header level listed.
type TableOfContents struct {
	Attrs

	Depth int
}

// MaxLevel returns Depth, or DefaultTOCDepth when Depth is not positive.
func (t *TableOfContents) MaxLevel() int {
	if t.Depth < 1 {
		return DefaultTOCDepth
	}

	return t.Depth
}

// Index is a placeholder expanded from the document anchors.
type Index struct {
	Attrs
}

func (*Header) blockNode()          {}
func (*Paragraph) blockNode()       {}
func (*UnorderedList) blockNode()   {}
func (*OrderedList) blockNode()     {}
func (*DefinitionList) blockNode()  {}
func (*Table) blockNode()           {}
func (*Quote) blockNode()           {}
func (*CodeBlock) blockNode()       {}
func (*HorizontalRuler) blockNode() {}
func (*Section) blockNode()         {}
func (*TableOfContents) blockNode() {}
func (*Index) blockNode()           {}
