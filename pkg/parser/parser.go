package parser

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// Parser parses one dialect with fixed options. It is safe for concurrent
// use.
type Parser struct {
	opts    Options
	grammar *grammar
	logger  *log.Logger
}

// New returns a parser for opts.Dialect.
func New(opts Options) (*Parser, error) {
	g, ok := grammarFor(opts.dialect())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDialect, opts.Dialect)
	}

	return &Parser{opts: opts, grammar: g, logger: logging.OrDiscard(opts.Logger)}, nil
}

// Dialect returns the dialect the parser reads.
func (p *Parser) Dialect() Dialect {
	return p.grammar.dialect
}

// Parse parses text into a document. Malformed markup never fails: it
// degrades to literal text. The only error is ctx's, checked between
// blocks.
func (p *Parser) Parse(ctx context.Context, text string) (*docmodel.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := &docmodel.Document{BaseDirectory: p.opts.BaseDirectory}

	lines := newPreprocessor(p.opts, p.grammar.escape).run(text)
	lines = p.grammar.meta(lines, doc)

	blocks, err := (&blockParser{
		ctx:    ctx,
		g:      p.grammar,
		lines:  lines,
		logger: p.logger,
	}).run()
	if err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc.Blocks = blocks

	p.logger.Debug("parsed document",
		logging.FieldDialect, p.grammar.dialect,
		"blocks", len(doc.Blocks))

	return docmodel.Normalize(doc), nil
}

// Parse is a convenience wrapper that parses text in one call.
func Parse(ctx context.Context, text string, opts Options) (*docmodel.Document, error) {
	p, err := New(opts)
	if err != nil {
		return nil, err
	}

	return p.Parse(ctx, text)
}

// ParseString parses text in dialect with default options. An unknown
// dialect is read as OWiki.
func ParseString(text string, dialect Dialect) *docmodel.Document {
	p, err := New(Options{Dialect: dialect})
	if err != nil {
		p, _ = New(Options{})
	}

	doc, _ := p.Parse(context.Background(), text)

	return doc
}
