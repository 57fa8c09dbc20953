package docmodel

// Metadata describes a document as a whole.
type Metadata struct {
	Title       string
	Creator     string
	Date        string
	Keywords    []string
	Description string
	Revision    string
}

// IsZero reports whether no metadata field is set.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Creator == "" && m.Date == "" &&
		len(m.Keywords) == 0 && m.Description == "" && m.Revision == ""
}

// Document is the root of the tree. BaseDirectory is the directory the
// source was read from, if any.
type Document struct {
	Metadata      Metadata
	BaseDirectory string
	Blocks        []Block
}

// NewDocument returns a document holding blocks.
func NewDocument(blocks ...Block) *Document {
	return &Document{Blocks: blocks}
}

// Append adds blocks to the end of the document.
func (d *Document) Append(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}
