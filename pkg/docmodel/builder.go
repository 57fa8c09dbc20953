package docmodel

// Shorthand constructors for building trees in code.

// Text returns a run.
func Text(s string) *Run { return &Run{Text: s} }

// Para returns a paragraph.
func Para(content ...Inline) *Paragraph { return &Paragraph{Content: content} }

// Heading returns a header of the given level.
func Heading(level int, content ...Inline) *Header {
	return &Header{Level: level, Content: content}
}

// Bold returns strongly emphasized content.
func Bold(content ...Inline) *Strong { return &Strong{Content: content} }

// Italic returns emphasized content.
func Italic(content ...Inline) *Emphasized { return &Emphasized{Content: content} }

// Link returns a hyperlink.
func Link(url string, content ...Inline) *Hyperlink {
	return &Hyperlink{URL: url, Content: content}
}

// Item returns a list item without a nested list.
func Item(content ...Inline) *ListItem { return &ListItem{Content: content} }

// Bullets returns an unordered list.
func Bullets(items ...*ListItem) *UnorderedList { return &UnorderedList{Items: items} }

// Numbered returns an ordered list starting at 1.
func Numbered(items ...*ListItem) *OrderedList { return &OrderedList{Start: 1, Items: items} }

// Row returns a table row.
func Row(cells ...*TableCell) *TableRow { return &TableRow{Cells: cells} }

// Cell returns a data cell holding one paragraph of content, or no blocks
// when content is empty.
func Cell(content ...Inline) *TableCell {
	if len(content) == 0 {
		return NewTableCell(false)
	}

	return NewTableCell(false, Para(content...))
}

// HeaderCell returns a header cell holding one paragraph of content.
func HeaderCell(content ...Inline) *TableCell {
	if len(content) == 0 {
		return NewTableCell(true)
	}

	return NewTableCell(true, Para(content...))
}
