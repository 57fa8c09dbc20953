package docmodel

// Run is literal text.
type Run struct {
	Text string
}

// Strong is strongly emphasized content.
type Strong struct {
	Content []Inline
}

// Emphasized is emphasized content.
type Emphasized struct {
	Content []Inline
}

// Span is content with a style class.
type Span struct {
	Class   string
	Content []Inline
}

// LineBreak is a forced line break.
type LineBreak struct{}

// InlineCode is a code fragment inside running text.
type InlineCode struct {
	Code     string
	Language string
}

// Hyperlink links its content to URL.
type Hyperlink struct {
	URL     string
	Title   string
	Content []Inline
}

// Image references an image. Link, when set, makes the image a hyperlink.
type Image struct {
	Source string
	Alt    string
	Title  string
	Link   string
}

// Anchor is a named link target.
type Anchor struct {
	Name string
}

// Symbol is a named glyph, resolved by formatters through the symbol table.
type Symbol struct {
	Name string
}

// Equation is inline math in source notation.
type Equation struct {
	Content string
}

// NonBreakingSpace is a space that must not break a line.
type NonBreakingSpace struct{}

// Children implements Container.
func (s *Strong) Children() []Inline { return s.Content }

// SetChildren implements Container.
func (s *Strong) SetChildren(children []Inline) { s.Content = children }

// Children implements Container.
func (e *Emphasized) Children() []Inline { return e.Content }

// SetChildren implements Container.
func (e *Emphasized) SetChildren(children []Inline) { e.Content = children }

// Children implements Container.
func (s *Span) Children() []Inline { return s.Content }

// SetChildren implements Container.
func (s *Span) SetChildren(children []Inline) { s.Content = children }

// Children implements Container.
func (h *Hyperlink) Children() []Inline { return h.Content }

// SetChildren implements Container.
func (h *Hyperlink) SetChildren(children []Inline) { h.Content = children }

func (*Run) inlineNode()              {}
func (*Strong) inlineNode()           {}
func (*Emphasized) inlineNode()       {}
func (*Span) inlineNode()             {}
func (*LineBreak) inlineNode()        {}
func (*InlineCode) inlineNode()       {}
func (*Hyperlink) inlineNode()        {}
func (*Image) inlineNode()            {}
func (*Anchor) inlineNode()           {}
func (*Symbol) inlineNode()           {}
func (*Equation) inlineNode()         {}
func (*NonBreakingSpace) inlineNode() {}
