package runner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/pkg/config"
	"github.com/yaklabco/wikidoc/pkg/format"
	"github.com/yaklabco/wikidoc/pkg/fsutil"
	"github.com/yaklabco/wikidoc/pkg/parser"
)

// Converter parses one document and renders it for a fixed target. It is
// safe for concurrent use.
type Converter struct {
	from       string
	target     format.Target
	variables  map[string]string
	defines    []string
	formatOpts format.Options
	logger     *log.Logger
}

// NewConverter builds a converter from a resolved configuration. The
// template file named by the configuration is read here.
func NewConverter(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Converter, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger = logging.OrDiscard(logger)

	target, err := format.ParseTarget(cfg.To)
	if err != nil {
		return nil, err
	}

	if cfg.From != "" {
		if _, err := ParseSource(cfg.From); err != nil {
			return nil, err
		}
	}

	sheet, err := cfg.StyleSheet()
	if err != nil {
		return nil, fmt.Errorf("style sheet: %w", err)
	}

	var template string
	if cfg.Template != "" {
		template, _, err = fsutil.ReadText(ctx, cfg.Template)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
	}

	return &Converter{
		from:      cfg.From,
		target:    target,
		variables: cfg.Variables,
		defines:   cfg.Defines,
		formatOpts: format.Options{
			SymbolDirectory: cfg.SymbolDirectory,
			StyleSheet:      sheet,
			Template:        template,
			CSSPath:         cfg.CSS,
			LocalLinkFormat: cfg.LocalLinkFormat,
			Replacements:    cfg.Replacements,
			Typography:      cfg.TypographyEnabled(),
			Standalone:      cfg.StandaloneEnabled(),
			DetectLanguage:  cfg.DetectLanguageEnabled(),
			Logger:          logger,
		},
		logger: logger,
	}, nil
}

// Target returns the output target.
func (c *Converter) Target() format.Target {
	return c.target
}

// Convert parses text read from path and renders it. The path selects
// the source dialect unless one was configured, and its directory
// resolves @include directives. An empty path means standard input,
// which defaults to OWiki.
func (c *Converter) Convert(ctx context.Context, path, text string) (string, Source, error) {
	src, err := c.source(path)
	if err != nil {
		return "", Source{}, err
	}

	opts := parser.Options{
		Variables: c.variables,
		Defines:   c.defines,
		Logger:    c.logger,
	}
	if path != "" {
		opts.BaseDirectory = filepath.Dir(path)
		opts.Include = func(include string) (string, error) {
			text, _, err := fsutil.ReadText(ctx, include)
			return text, err
		}
	}

	doc, err := src.Parse(ctx, text, opts)
	if err != nil {
		return "", src, fmt.Errorf("parse %s: %w", displayPath(path), err)
	}

	out, err := format.Format(doc, c.target, c.formatOpts)
	if err != nil {
		return "", src, err
	}

	c.logger.Debug("converted document",
		logging.FieldPath, displayPath(path),
		logging.FieldDialect, src,
		logging.FieldTarget, c.target)

	return out, src, nil
}

func (c *Converter) source(path string) (Source, error) {
	if path == "" && c.from == "" {
		return Source{Dialect: parser.OWiki}, nil
	}

	return DetectSource(path, c.from)
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}

	return path
}
