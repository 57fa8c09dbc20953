package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/pkg/docmodel"
	"github.com/yaklabco/wikidoc/pkg/textutil"
)

// Compile-time interface check.
var _ docmodel.Visitor = (*Context)(nil)

// Context carries the state of one rendering pass and dispatches visitor
// calls to the target's rules. Output goes to the buffer on top of a
// stack so that a list item or table cell can collect its own text.
type Context struct {
	opts    Options
	doc     *docmodel.Document
	rules   *Rules
	logger  *log.Logger
	buffers []*strings.Builder
	next    docmodel.Inline

	cells     int
	listDepth int
	listPath  string
	sections  int
	ids       map[*docmodel.Header]string
}

func newContext(doc *docmodel.Document, rules *Rules, opts Options) *Context {
	return &Context{
		opts:   opts,
		doc:    doc,
		rules:  rules,
		logger: logging.OrDiscard(opts.Logger),
	}
}

func (c *Context) render() string {
	return c.Capture(func() {
		c.rules.Document(c, c.doc)
	})
}

// Options returns the rendering options.
func (c *Context) Options() Options { return c.opts }

// Document returns the document being rendered.
func (c *Context) Document() *docmodel.Document { return c.doc }

// Write appends text to the current buffer.
func (c *Context) Write(parts ...string) {
	buf := c.buffers[len(c.buffers)-1]
	for _, part := range parts {
		buf.WriteString(part)
	}
}

// AtLineStart reports whether the next write starts a line of the current
// buffer.
func (c *Context) AtLineStart() bool {
	s := c.buffers[len(c.buffers)-1].String()
	return s == "" || strings.HasSuffix(s, "\n")
}

// Capture runs fn with a fresh buffer and returns what it wrote.
func (c *Context) Capture(fn func()) string {
	c.buffers = append(c.buffers, &strings.Builder{})
	fn()

	top := c.buffers[len(c.buffers)-1]
	c.buffers = c.buffers[:len(c.buffers)-1]

	return top.String()
}

// Inlines renders inline content and returns it.
func (c *Context) Inlines(inlines []docmodel.Inline) string {
	saved := c.next
	defer func() { c.next = saved }()

	return c.Capture(func() {
		for i, inline := range inlines {
			c.next = nil
			if i+1 < len(inlines) {
				c.next = inlines[i+1]
			}
			inline.Accept(c)
		}
	})
}

// touchesWord reports whether the inline being rendered sits directly
// between word characters: the last one written to the current buffer or
// the first one of the sibling that follows it.
func (c *Context) touchesWord() bool {
	last, _ := utf8.DecodeLastRuneInString(c.buffers[len(c.buffers)-1].String())
	if isWordRune(last) {
		return true
	}

	run, ok := c.next.(*docmodel.Run)
	if !ok {
		return false
	}
	first, _ := utf8.DecodeRuneInString(run.Text)

	return isWordRune(first)
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Blocks writes blocks to the current buffer, separated by the target's
// block gap.
func (c *Context) Blocks(blocks []docmodel.Block) {
	for i, block := range blocks {
		if i > 0 {
			c.Write(c.rules.Gap)
		}
		if c.rules.Attributes != nil {
			c.rules.Attributes(c, block)
		}
		block.Accept(c)
	}
}

// Text converts literal text to the target's syntax.
func (c *Context) Text(s string) string {
	return c.rules.escapeText(c, s)
}

// InCell reports whether rendering is inside a table cell.
func (c *Context) InCell() bool { return c.cells > 0 }

// Cell renders the content of a table cell. A cell holding one paragraph
// renders as inline text; other cells render their blocks joined by sep.
func (c *Context) Cell(cell *docmodel.TableCell, sep string) string {
	c.cells++
	defer func() { c.cells-- }()

	if inlines, ok := cell.Inlines(); ok {
		return c.Inlines(inlines)
	}

	parts := make([]string, 0, len(cell.Blocks))
	for _, block := range cell.Blocks {
		parts = append(parts, strings.TrimRight(c.Capture(func() { block.Accept(c) }), "\n"))
	}

	return strings.Join(parts, sep)
}

// ListDepth returns the nesting depth of the list being rendered, 0 for
// a top-level list.
func (c *Context) ListDepth() int { return c.listDepth - 1 }

// List runs fn one list level deeper.
func (c *Context) List(fn func()) {
	c.listDepth++
	defer func() { c.listDepth-- }()

	fn()
}

// NestedList runs fn one list level deeper with kind appended to the
// marker path of the enclosing lists, e.g. "*#" for a numbered list inside
// a bulleted one.
func (c *Context) NestedList(kind string, fn func(path string)) {
	saved := c.listPath
	c.listPath += kind
	defer func() { c.listPath = saved }()

	c.List(func() { fn(c.listPath) })
}

// SectionDepth returns the number of sections enclosing the current
// block.
func (c *Context) SectionDepth() int { return c.sections }

// Section runs fn one section level deeper.
func (c *Context) Section(fn func()) {
	c.sections++
	defer func() { c.sections-- }()

	fn()
}

// Symbol resolves a symbol through the symbol table. Unknown names are
// logged and report false.
func (c *Context) Symbol(name string) (textutil.Symbol, bool) {
	sym, ok := textutil.LookupSymbol(name)
	if !ok {
		c.logger.Debug("unknown symbol dropped", logging.FieldSymbol, name)
	}

	return sym, ok
}

// SymbolPath returns the asset path of sym below the symbol directory.
func (c *Context) SymbolPath(sym textutil.Symbol) string {
	return textutil.SymbolPath(c.opts.SymbolDirectory, sym)
}

// Link applies LocalLinkFormat to relative link targets.
func (c *Context) Link(url string) string {
	if c.opts.LocalLinkFormat == "" || !isLocalLink(url) {
		return url
	}

	return fmt.Sprintf(c.opts.LocalLinkFormat, url)
}

// Dropped logs content a target cannot express.
func (c *Context) Dropped(what string) {
	c.logger.Debug("content not supported by target", logging.FieldName, what)
}

func isLocalLink(url string) bool {
	if url == "" || strings.HasPrefix(url, "#") || strings.HasPrefix(url, "/") {
		return false
	}

	if colon := strings.IndexByte(url, ':'); colon > 0 {
		scheme := url[:colon]
		if !strings.ContainsAny(scheme, "/?#.") {
			return false
		}
	}

	return true
}

// Visitor dispatch.

func (c *Context) VisitHeader(h *docmodel.Header) {
	c.rules.Header(c, h)
}

func (c *Context) VisitParagraph(p *docmodel.Paragraph) {
	c.rules.Paragraph(c, p)
}

func (c *Context) VisitUnorderedList(l *docmodel.UnorderedList) {
	c.rules.UnorderedList(c, l)
}

func (c *Context) VisitOrderedList(l *docmodel.OrderedList) {
	c.rules.OrderedList(c, l)
}

func (c *Context) VisitDefinitionList(l *docmodel.DefinitionList) {
	c.rules.DefinitionList(c, l)
}

func (c *Context) VisitTable(t *docmodel.Table) {
	c.rules.Table(c, t)
}

func (c *Context) VisitQuote(q *docmodel.Quote) {
	c.rules.Quote(c, q)
}

func (c *Context) VisitCodeBlock(b *docmodel.CodeBlock) {
	c.rules.CodeBlock(c, b)
}

func (c *Context) VisitHorizontalRuler(r *docmodel.HorizontalRuler) {
	c.rules.HorizontalRuler(c, r)
}

func (c *Context) VisitSection(s *docmodel.Section) {
	c.rules.Section(c, s)
}

func (c *Context) VisitTableOfContents(t *docmodel.TableOfContents) {
	c.rules.TableOfContents(c, t)
}

func (c *Context) VisitIndex(i *docmodel.Index) {
	c.rules.Index(c, i)
}

func (c *Context) VisitRun(r *docmodel.Run) {
	c.rules.Run(c, r)
}

func (c *Context) VisitStrong(s *docmodel.Strong) {
	c.rules.Strong(c, s)
}

func (c *Context) VisitEmphasized(e *docmodel.Emphasized) {
	c.rules.Emphasized(c, e)
}

func (c *Context) VisitSpan(s *docmodel.Span) {
	c.rules.Span(c, s)
}

func (c *Context) VisitLineBreak(b *docmodel.LineBreak) {
	c.rules.LineBreak(c, b)
}

func (c *Context) VisitInlineCode(i *docmodel.InlineCode) {
	c.rules.InlineCode(c, i)
}

func (c *Context) VisitHyperlink(h *docmodel.Hyperlink) {
	c.rules.Hyperlink(c, h)
}

func (c *Context) VisitImage(i *docmodel.Image) {
	c.rules.Image(c, i)
}

func (c *Context) VisitAnchor(a *docmodel.Anchor) {
	c.rules.Anchor(c, a)
}

func (c *Context) VisitSymbol(s *docmodel.Symbol) {
	c.rules.Symbol(c, s)
}

func (c *Context) VisitEquation(e *docmodel.Equation) {
	c.rules.Equation(c, e)
}

func (c *Context) VisitNonBreakingSpace(n *docmodel.NonBreakingSpace) {
	c.rules.NonBreakingSpace(c, n)
}
