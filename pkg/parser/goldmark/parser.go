// Package goldmark imports CommonMark and GitHub Flavored Markdown into
// the document model using the goldmark library.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Flavors returns the supported flavors.
func Flavors() []string {
	return []string{FlavorCommonMark, FlavorGFM}
}

// IsFlavor reports whether name is a supported flavor.
func IsFlavor(name string) bool {
	return name == FlavorCommonMark || name == FlavorGFM
}

// Parser converts Markdown into a docmodel.Document using goldmark.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a document.
//
// Constructs goldmark knows but the document model does not, such as
// HTML blocks and footnotes, are mapped to their closest equivalent or
// dropped. The only errors come from ctx.
func (p *Parser) Parse(ctx context.Context, content []byte) (*docmodel.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	source := copyContent(content)
	root := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := newMapper(source).mapDocument(root)

	return docmodel.Normalize(doc), nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	if IsFlavor(flavor) {
		return flavor
	}

	return FlavorCommonMark
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAttribute()),
	}

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM, extension.DefinitionList))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// copyContent creates a copy of the content slice so the caller may reuse it.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
