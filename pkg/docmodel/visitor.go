package docmodel

// Visitor has one method per concrete node variant. Node.Accept calls the
// method matching the receiver's type.
type Visitor interface {
	VisitHeader(h *Header)
	VisitParagraph(p *Paragraph)
	VisitUnorderedList(l *UnorderedList)
	VisitOrderedList(l *OrderedList)
	VisitDefinitionList(l *DefinitionList)
	VisitTable(t *Table)
	VisitQuote(q *Quote)
	VisitCodeBlock(c *CodeBlock)
	VisitHorizontalRuler(r *HorizontalRuler)
	VisitSection(s *Section)
	VisitTableOfContents(t *TableOfContents)
	VisitIndex(i *Index)

	VisitRun(r *Run)
	VisitStrong(s *Strong)
	VisitEmphasized(e *Emphasized)
	VisitSpan(s *Span)
	VisitLineBreak(b *LineBreak)
	VisitInlineCode(c *InlineCode)
	VisitHyperlink(h *Hyperlink)
	VisitImage(i *Image)
	VisitAnchor(a *Anchor)
	VisitSymbol(s *Symbol)
	VisitEquation(e *Equation)
	VisitNonBreakingSpace(n *NonBreakingSpace)
}

// Accept implements Node.
func (h *Header) Accept(v Visitor) { v.VisitHeader(h) }

// Accept implements Node.
func (p *Paragraph) Accept(v Visitor) { v.VisitParagraph(p) }

// Accept implements Node.
func (l *UnorderedList) Accept(v Visitor) { v.VisitUnorderedList(l) }

// Accept implements Node.
func (l *OrderedList) Accept(v Visitor) { v.VisitOrderedList(l) }

// Accept implements Node.
func (l *DefinitionList) Accept(v Visitor) { v.VisitDefinitionList(l) }

// Accept implements Node.
func (t *Table) Accept(v Visitor) { v.VisitTable(t) }

// Accept implements Node.
func (q *Quote) Accept(v Visitor) { v.VisitQuote(q) }

// Accept implements Node.
func (c *CodeBlock) Accept(v Visitor) { v.VisitCodeBlock(c) }

// Accept implements Node.
func (r *HorizontalRuler) Accept(v Visitor) { v.VisitHorizontalRuler(r) }

// Accept implements Node.
func (s *Section) Accept(v Visitor) { v.VisitSection(s) }

// Accept implements Node.
func (t *TableOfContents) Accept(v Visitor) { v.VisitTableOfContents(t) }

// Accept implements Node.
func (i *Index) Accept(v Visitor) { v.VisitIndex(i) }

// Accept implements Node.
func (r *Run) Accept(v Visitor) { v.VisitRun(r) }

// Accept implements Node.
func (s *Strong) Accept(v Visitor) { v.VisitStrong(s) }

// Accept implements Node.
func (e *Emphasized) Accept(v Visitor) { v.VisitEmphasized(e) }

// Accept implements Node.
func (s *Span) Accept(v Visitor) { v.VisitSpan(s) }

// Accept implements Node.
func (b *LineBreak) Accept(v Visitor) { v.VisitLineBreak(b) }

// Accept implements Node.
func (c *InlineCode) Accept(v Visitor) { v.VisitInlineCode(c) }

// Accept implements Node.
func (h *Hyperlink) Accept(v Visitor) { v.VisitHyperlink(h) }

// Accept implements Node.
func (i *Image) Accept(v Visitor) { v.VisitImage(i) }

// Accept implements Node.
func (a *Anchor) Accept(v Visitor) { v.VisitAnchor(a) }

// Accept implements Node.
func (s *Symbol) Accept(v Visitor) { v.VisitSymbol(s) }

// Accept implements Node.
func (e *Equation) Accept(v Visitor) { v.VisitEquation(e) }

// Accept implements Node.
func (n *NonBreakingSpace) Accept(v Visitor) { v.VisitNonBreakingSpace(n) }
