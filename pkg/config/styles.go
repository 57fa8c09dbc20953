package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// StyleSheet returns the built-in style sheet with the configured
// overrides applied. Unknown roles and malformed values are errors.
func (c *Config) StyleSheet() (*docmodel.StyleSheet, error) {
	sheet := docmodel.DefaultStyleSheet()
	if c == nil || len(c.Styles) == 0 {
		return sheet, nil
	}

	names := make([]string, 0, len(c.Styles))
	for name := range c.Styles {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		role, ok := docmodel.ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("styles.%s: unknown role", name)
		}

		base, _ := sheet.Lookup(role)
		style, err := c.Styles[name].apply(base)
		if err != nil {
			return nil, fmt.Errorf("styles.%s: %w", name, err)
		}
		sheet.Set(role, style)
	}

	return sheet, nil
}

func (sc StyleConfig) apply(style docmodel.Style) (docmodel.Style, error) {
	if sc.FontFamily != "" || sc.FontSize != 0 {
		family, size := style.FontFamily(), style.FontSize()
		if sc.FontFamily != "" {
			family = sc.FontFamily
		}
		if sc.FontSize != 0 {
			size = sc.FontSize
		}
		style = style.WithFont(family, size)
	}

	if sc.Bold != nil {
		style = style.WithBold(*sc.Bold)
	}
	if sc.Italic != nil {
		style = style.WithItalic(*sc.Italic)
	}

	if sc.Color != "" || sc.Background != "" {
		fg, bg := style.Foreground(), style.Background()
		if sc.Color != "" {
			fg = sc.Color
		}
		if sc.Background != "" {
			bg = sc.Background
		}
		style = style.WithColors(fg, bg)
	}

	if sc.Margin != nil {
		box, err := parseBox(sc.Margin)
		if err != nil {
			return style, fmt.Errorf("margin: %w", err)
		}
		style = style.WithMargin(box)
	}
	if sc.Padding != nil {
		box, err := parseBox(sc.Padding)
		if err != nil {
			return style, fmt.Errorf("padding: %w", err)
		}
		style = style.WithPadding(box)
	}

	if sc.BorderWidth != 0 || sc.BorderColor != "" {
		width, color := style.Border()
		if sc.BorderWidth != 0 {
			width = sc.BorderWidth
		}
		if sc.BorderColor != "" {
			color = sc.BorderColor
		}
		style = style.WithBorder(width, color)
	}

	if sc.Align != "" {
		align, err := ParseAlign(sc.Align)
		if err != nil {
			return style, err
		}
		style = style.WithAlign(align)
	}

	return style, nil
}

// parseBox reads CSS shorthand: one value for all edges, two for
// vertical and horizontal, or four clockwise from the top.
func parseBox(values []float64) (docmodel.Box, error) {
	for _, v := range values {
		if v < 0 {
			return docmodel.Box{}, fmt.Errorf("negative value %g", v)
		}
	}

	switch len(values) {
	case 1:
		return docmodel.Box{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}, nil
	case 2:
		return docmodel.Box{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 4:
		return docmodel.Box{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return docmodel.Box{}, fmt.Errorf("expected 1, 2 or 4 values, got %d", len(values))
	}
}

// ParseAlign parses a horizontal alignment name.
func ParseAlign(s string) (docmodel.HAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return docmodel.AlignDefault, nil
	case "left":
		return docmodel.AlignLeft, nil
	case "center", "centre":
		return docmodel.AlignCenter, nil
	case "right":
		return docmodel.AlignRight, nil
	}

	return docmodel.AlignDefault, fmt.Errorf("invalid align %q; must be one of: left, center, right", s)
}
