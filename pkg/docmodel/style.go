package docmodel

import "strings"

// Box holds four edge measurements in points.
type Box struct {
	Top, Right, Bottom, Left float64
}

// IsZero reports whether all edges are zero.
func (b Box) IsZero() bool {
	return b.Top == 0 && b.Right == 0 && b.Bottom == 0 && b.Left == 0
}

// Style is an immutable set of presentation properties. The zero value is
// an empty style; With* methods return modified copies.
type Style struct {
	fontFamily  string
	fontSize    float64
	bold        bool
	italic      bool
	foreground  string
	background  string
	margin      Box
	padding     Box
	borderWidth float64
	borderColor string
	align       HAlign
}

// NewStyle returns an empty style.
func NewStyle() Style { return Style{} }

// WithFont sets family and size in points.
func (s Style) WithFont(family string, size float64) Style {
	s.fontFamily = family
	s.fontSize = size

	return s
}

// WithBold sets the bold flag.
func (s Style) WithBold(bold bool) Style {
	s.bold = bold
	return s
}

// WithItalic sets the italic flag.
func (s Style) WithItalic(italic bool) Style {
	s.italic = italic
	return s
}

// WithColors sets foreground and background colors, as CSS color strings.
func (s Style) WithColors(foreground, background string) Style {
	s.foreground = foreground
	s.background = background

	return s
}

// WithMargin sets the margins.
func (s Style) WithMargin(margin Box) Style {
	s.margin = margin
	return s
}

// WithPadding sets the padding.
func (s Style) WithPadding(padding Box) Style {
	s.padding = padding
	return s
}

// WithBorder sets border width in points and color.
func (s Style) WithBorder(width float64, color string) Style {
	s.borderWidth = width
	s.borderColor = color

	return s
}

// WithAlign sets the horizontal text alignment.
func (s Style) WithAlign(align HAlign) Style {
	s.align = align
	return s
}

// FontFamily returns the font family.
func (s Style) FontFamily() string { return s.fontFamily }

// FontSize returns the font size in points.
func (s Style) FontSize() float64 { return s.fontSize }

// Bold reports the bold flag.
func (s Style) Bold() bool { return s.bold }

// Italic reports the italic flag.
func (s Style) Italic() bool { return s.italic }

// Foreground returns the text color.
func (s Style) Foreground() string { return s.foreground }

// Background returns the background color.
func (s Style) Background() string { return s.background }

// Margin returns the margins.
func (s Style) Margin() Box { return s.margin }

// Padding returns the padding.
func (s Style) Padding() Box { return s.padding }

// Border returns border width and color.
func (s Style) Border() (float64, string) { return s.borderWidth, s.borderColor }

// Align returns the horizontal alignment.
func (s Style) Align() HAlign { return s.align }

// IsZero reports whether no property is set.
func (s Style) IsZero() bool { return s == Style{} }

// Role names the element class a style applies to.
type Role string

// Style roles.
const (
	RoleHeader1   Role = "header1"
	RoleHeader2   Role = "header2"
	RoleHeader3   Role = "header3"
	RoleHeader4   Role = "header4"
	RoleHeader5   Role = "header5"
	RoleParagraph Role = "paragraph"
	RoleCode      Role = "code"
	RoleQuote     Role = "quote"
	RoleTable     Role = "table"
	RoleHyperlink Role = "hyperlink"
	RoleImage     Role = "image"
)

// maxHeaderStyle is the deepest header level with its own role.
const maxHeaderStyle = 5

// Roles returns every role in a fixed order.
func Roles() []Role {
	return []Role{
		RoleHeader1, RoleHeader2, RoleHeader3, RoleHeader4, RoleHeader5,
		RoleParagraph, RoleCode, RoleQuote, RoleTable, RoleHyperlink, RoleImage,
	}
}

// ParseRole returns the role named s, case-insensitively.
func ParseRole(s string) (Role, bool) {
	want := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, role := range Roles() {
		if role == want {
			return role, true
		}
	}

	return "", false
}

// HeaderRole returns the role for a header level. Levels below 1 map to
// header1 and levels above 5 to header5.
func HeaderRole(level int) Role {
	level = min(max(level, 1), maxHeaderStyle)
	return Roles()[level-1]
}

// StyleSheet maps roles to styles.
type StyleSheet struct {
	styles map[Role]Style
}

// NewStyleSheet returns an empty style sheet.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{styles: make(map[Role]Style)}
}

// Set assigns the style for role.
func (s *StyleSheet) Set(role Role, style Style) {
	if s.styles == nil {
		s.styles = make(map[Role]Style)
	}
	s.styles[role] = style
}

// Lookup returns the style for role.
func (s *StyleSheet) Lookup(role Role) (Style, bool) {
	if s == nil {
		return Style{}, false
	}

	style, ok := s.styles[role]

	return style, ok
}

// Header returns the style of a header level.
func (s *StyleSheet) Header(level int) Style {
	style, _ := s.Lookup(HeaderRole(level))
	return style
}

// Merge returns a new sheet with the styles of s overridden by other.
func (s *StyleSheet) Merge(other *StyleSheet) *StyleSheet {
	merged := NewStyleSheet()

	for _, sheet := range []*StyleSheet{s, other} {
		if sheet == nil {
			continue
		}
		for role, style := range sheet.styles {
			merged.styles[role] = style
		}
	}

	return merged
}

// DefaultStyleSheet returns the built-in styles.
func DefaultStyleSheet() *StyleSheet {
	const body = "Helvetica, Arial, sans-serif"

	sheet := NewStyleSheet()
	sizes := []float64{24, 20, 16, 14, 12}

	for level, size := range sizes {
		sheet.Set(HeaderRole(level+1), NewStyle().
			WithFont(body, size).
			WithBold(true).
			WithMargin(Box{Top: size / 2, Bottom: size / 4}))
	}

	sheet.Set(RoleParagraph, NewStyle().WithFont(body, 11).WithMargin(Box{Bottom: 6}))
	sheet.Set(RoleCode, NewStyle().
		WithFont("Consolas, monospace", 10).
		WithColors("#1f2328", "#f6f8fa").
		WithPadding(Box{Top: 4, Right: 8, Bottom: 4, Left: 8}))
	sheet.Set(RoleQuote, NewStyle().
		WithItalic(true).
		WithColors("#57606a", "").
		WithMargin(Box{Left: 16}))
	sheet.Set(RoleTable, NewStyle().WithBorder(1, "#d0d7de").WithPadding(Box{Top: 2, Right: 6, Bottom: 2, Left: 6}))
	sheet.Set(RoleHyperlink, NewStyle().WithColors("#0969da", ""))
	sheet.Set(RoleImage, NewStyle().WithAlign(AlignCenter))

	return sheet
}
