package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every style role with its built-in values.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch strings.ToLower(opts.Format) {
	case "", "yaml", "yml":
		return generateYAMLTemplate(opts), nil
	case "toml":
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q; must be yaml or toml", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader() + `

# Source dialect: owiki, markdown, creole, commonmark or gfm.
# Empty picks the dialect from each file extension.
# from: owiki

# Target format: html, owiki, markdown, creole, confluence, codeplex or text
to: html

# Directory for converted files (default: next to each input)
# output_dir: out

# Values substituted for $name references
# variables:
#   version: "1.0"

# Names that are true for @if directives
# defines:
#   - DRAFT

# Directory or URL prefix of symbol images
# symbol_directory: images/symbols

# Output template with {{content}}, {{title}} and {{css}} placeholders
# template: page.tmpl

# Stylesheet linked from HTML output
# css: style.css

# Rewrite relative links, e.g. "%s.html"
# local_link_format: "%s.html"

# Literal replacements applied to the output
# replacements:
#   "(c)": "©"

# Convert -- and ... to typographic glyphs
# typography: false

# Render complete HTML pages
# standalone: false

# Guess the language of untagged code blocks
# detect_language: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"
`)

	if opts.Full {
		buf.WriteString("\n# Style overrides for standalone HTML pages\nstyles:\n")
		writeYAMLStyles(&buf, docmodel.DefaultStyleSheet())
	} else {
		buf.WriteString(`
# Style overrides for standalone HTML pages
# styles:
#   paragraph:
#     font_size: 12
`)
	}

	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader() + `

# Source dialect: owiki, markdown, creole, commonmark or gfm.
# Empty picks the dialect from each file extension.
# from = "owiki"

# Target format: html, owiki, markdown, creole, confluence, codeplex or text
to = "html"

# output_dir = "out"
# defines = ["DRAFT"]
# symbol_directory = "images/symbols"
# template = "page.tmpl"
# css = "style.css"
# local_link_format = "%s.html"
# typography = false
# standalone = false
# detect_language = false
# ignore = ["drafts/**"]

# [variables]
# version = "1.0"

# [replacements]
# "(c)" = "©"
`)

	if opts.Full {
		writeTOMLStyles(&buf, docmodel.DefaultStyleSheet())
	}

	return buf.Bytes()
}

func writeYAMLStyles(buf *bytes.Buffer, sheet *docmodel.StyleSheet) {
	for _, role := range docmodel.Roles() {
		style, _ := sheet.Lookup(role)
		fmt.Fprintf(buf, "  %s:\n", role)
		for _, field := range styleFields(style) {
			fmt.Fprintf(buf, "    %s: %s\n", field.key, field.value)
		}
		if style.IsZero() {
			buf.WriteString("    {}\n")
		}
	}
}

func writeTOMLStyles(buf *bytes.Buffer, sheet *docmodel.StyleSheet) {
	for _, role := range docmodel.Roles() {
		style, _ := sheet.Lookup(role)
		fmt.Fprintf(buf, "\n[styles.%s]\n", role)
		for _, field := range styleFields(style) {
			fmt.Fprintf(buf, "%s = %s\n", field.key, field.value)
		}
	}
}

type styleField struct {
	key, value string
}

// styleFields lists the set fields of style with values quoted for both
// YAML and TOML.
func styleFields(style docmodel.Style) []styleField {
	var fields []styleField

	add := func(key, value string) {
		fields = append(fields, styleField{key, value})
	}

	if family := style.FontFamily(); family != "" {
		add("font_family", strconv.Quote(family))
	}
	if size := style.FontSize(); size != 0 {
		add("font_size", number(size))
	}
	if style.Bold() {
		add("bold", "true")
	}
	if style.Italic() {
		add("italic", "true")
	}
	if fg := style.Foreground(); fg != "" {
		add("color", strconv.Quote(fg))
	}
	if bg := style.Background(); bg != "" {
		add("background", strconv.Quote(bg))
	}
	if m := style.Margin(); !m.IsZero() {
		add("margin", boxList(m))
	}
	if p := style.Padding(); !p.IsZero() {
		add("padding", boxList(p))
	}
	if width, color := style.Border(); width != 0 {
		add("border_width", number(width))
		if color != "" {
			add("border_color", strconv.Quote(color))
		}
	}
	if align := style.Align(); align != docmodel.AlignDefault {
		add("align", strconv.Quote(align.String()))
	}

	return fields
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boxList(b docmodel.Box) string {
	return "[" + strings.Join([]string{number(b.Top), number(b.Right), number(b.Bottom), number(b.Left)}, ", ") + "]"
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# wikidoc configuration
# See: https://github.com/yaklabco/wikidoc`
}
