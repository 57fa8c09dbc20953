// Package docmodel defines the dialect-neutral document tree shared by the
// wiki parsers and the output formatters.
//
// A Document is an ordered sequence of Blocks. Blocks hold either Inline
// content or nested Blocks. The set of variants is closed: every Block and
// Inline type implements an unexported marker method, so only this package
// can add new variants, and a Visitor covers all of them.
package docmodel

// Node is implemented by every Block and Inline variant.
type Node interface {
	// Accept dispatches to the Visitor method for the concrete variant.
	Accept(v Visitor)
}

// Block is a block-level element.
type Block interface {
	Node
	// Attributes returns the cross-cutting attributes of the block. The
	// returned pointer aliases the block, so callers may modify it.
	Attributes() *Attrs
	blockNode()
}

// Inline is an inline-level element.
type Inline interface {
	Node
	inlineNode()
}

// Container is an Inline that holds nested inline content.
type Container interface {
	Inline
	Children() []Inline
	SetChildren(children []Inline)
}

// List is implemented by UnorderedList and OrderedList.
type List interface {
	Block
	ListItems() []*ListItem
	Ordered() bool
}

// Attrs carries the optional attributes every block may have.
type Attrs struct {
	ID    string
	Class string
	Title string
}

// Attributes implements Block for every variant that embeds Attrs.
func (a *Attrs) Attributes() *Attrs { return a }

// IsZero reports whether no attribute is set.
func (a Attrs) IsZero() bool {
	return a.ID == "" && a.Class == "" && a.Title == ""
}

// HAlign is the horizontal alignment of a table cell.
type HAlign int

// Horizontal alignments.
const (
	AlignDefault HAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the CSS name of the alignment, or "" for AlignDefault.
func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignDefault:
		return ""
	}

	return ""
}

// VAlign is the vertical alignment of a table cell.
type VAlign int

// Vertical alignments.
const (
	VAlignDefault VAlign = iota
	VAlignTop
	VAlignMiddle
	VAlignBottom
)

// String returns the CSS name of the alignment, or "" for VAlignDefault.
func (a VAlign) String() string {
	switch a {
	case VAlignTop:
		return "top"
	case VAlignMiddle:
		return "middle"
	case VAlignBottom:
		return "bottom"
	case VAlignDefault:
		return ""
	}

	return ""
}
