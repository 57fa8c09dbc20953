package format

import (
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Read-only lookup table.
var roleSelectors = map[docmodel.Role]string{
	docmodel.RoleHeader1:   "h1",
	docmodel.RoleHeader2:   "h2",
	docmodel.RoleHeader3:   "h3",
	docmodel.RoleHeader4:   "h4",
	docmodel.RoleHeader5:   "h5, h6",
	docmodel.RoleParagraph: "p",
	docmodel.RoleCode:      "pre, code",
	docmodel.RoleQuote:     "blockquote",
	docmodel.RoleTable:     "table, th, td",
	docmodel.RoleHyperlink: "a",
	docmodel.RoleImage:     "img",
}

// StyleSheetCSS renders the styles of sheet as CSS rules, one per role in
// docmodel.Roles order. Roles without a style are skipped.
func StyleSheetCSS(sheet *docmodel.StyleSheet) string {
	var sb strings.Builder

	for _, role := range docmodel.Roles() {
		style, ok := sheet.Lookup(role)
		if !ok || style.IsZero() {
			continue
		}

		sb.WriteString(roleSelectors[role] + " {\n")
		for _, decl := range cssDeclarations(style) {
			sb.WriteString("  " + decl + ";\n")
		}
		sb.WriteString("}\n")
	}

	return sb.String()
}

func cssDeclarations(s docmodel.Style) []string {
	var decls []string

	if s.FontFamily() != "" {
		decls = append(decls, "font-family: "+s.FontFamily())
	}
	if s.FontSize() > 0 {
		decls = append(decls, "font-size: "+points(s.FontSize()))
	}
	if s.Bold() {
		decls = append(decls, "font-weight: bold")
	}
	if s.Italic() {
		decls = append(decls, "font-style: italic")
	}
	if s.Foreground() != "" {
		decls = append(decls, "color: "+s.Foreground())
	}
	if s.Background() != "" {
		decls = append(decls, "background-color: "+s.Background())
	}
	if m := s.Margin(); !m.IsZero() {
		decls = append(decls, "margin: "+box(m))
	}
	if p := s.Padding(); !p.IsZero() {
		decls = append(decls, "padding: "+box(p))
	}
	if width, color := s.Border(); width > 0 {
		border := points(width) + " solid"
		if color != "" {
			border += " " + color
		}
		decls = append(decls, "border: "+border)
	}
	if align := s.Align().String(); align != "" {
		decls = append(decls, "text-align: "+align)
	}

	return decls
}

func points(v float64) string {
	if v == 0 {
		return "0"
	}

	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}

func box(b docmodel.Box) string {
	return strings.Join([]string{points(b.Top), points(b.Right), points(b.Bottom), points(b.Left)}, " ")
}
