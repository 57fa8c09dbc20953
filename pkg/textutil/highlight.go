package textutil

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

// Highlight CSS classes.
const (
	ClassComment      = "comment"
	ClassString       = "string"
	ClassKeyword      = "keyword"
	ClassNumber       = "number"
	ClassPreprocessor = "preprocessor"
	ClassTag          = "tag"
	ClassAttribute    = "attribute"
	ClassValue        = "value"
	ClassEntity       = "entity"
	ClassCData        = "cdata"
)

// highlighter tokenizes source with one alternation whose named groups are
// the CSS classes of the tokens. Text between tokens is escaped as is.
type highlighter struct {
	re       *regexp.Regexp
	decorate map[string]func(sb *strings.Builder, token string)
}

func (h *highlighter) highlight(code string) string {
	var sb strings.Builder

	names := h.re.SubexpNames()
	last := 0

	for _, loc := range h.re.FindAllStringSubmatchIndex(code, -1) {
		if loc[0] == loc[1] {
			continue
		}

		sb.WriteString(html.EscapeString(code[last:loc[0]]))

		class := ""
		for group := 1; group < len(names); group++ {
			if loc[2*group] >= 0 && names[group] != "" {
				class = names[group]
				break
			}
		}

		token := code[loc[0]:loc[1]]
		if decorate, ok := h.decorate[class]; ok {
			decorate(&sb, token)
		} else {
			writeSpan(&sb, class, token)
		}

		last = loc[1]
	}

	sb.WriteString(html.EscapeString(code[last:]))

	return sb.String()
}

func writeSpan(sb *strings.Builder, class, token string) {
	if class == "" {
		sb.WriteString(html.EscapeString(token))
		return
	}

	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	sb.WriteString(`">`)
	sb.WriteString(html.EscapeString(token))
	sb.WriteString(`</span>`)
}

const cLikeKeywords = `abstract|as|async|await|base|bool|break|byte|case|catch|char|checked|class|const|continue|` +
	`decimal|default|delegate|do|double|else|enum|event|explicit|extern|false|finally|fixed|float|for|foreach|` +
	`func|function|get|goto|if|implicit|import|in|int|interface|internal|is|let|lock|long|namespace|new|null|` +
	`object|operator|out|override|package|params|private|protected|public|readonly|ref|return|sbyte|sealed|set|` +
	`short|sizeof|stackalloc|static|string|struct|switch|this|throw|true|try|typeof|uint|ulong|unchecked|` +
	`unsafe|ushort|using|var|virtual|void|volatile|while|yield`

//nolint:gochecknoglobals // Compiled once.
var cLike = &highlighter{
	re: regexp.MustCompile(strings.Join([]string{
		`(?P<comment>//[^\n]*|/\*[\s\S]*?\*/)`,
		`(?P<string>@"(?:[^"]|"")*"|"(?:\\.|[^"\\\n])*"|'(?:\\.|[^'\\\n])*')`,
		`(?P<preprocessor>(?m:^[ \t]*#[a-z]+\b[^\n]*))`,
		`(?P<keyword>\b(?:` + cLikeKeywords + `)\b)`,
		`(?P<number>\b0[xX][0-9a-fA-F]+\b|\b[0-9]+(?:\.[0-9]+)?[fFdDmMlLuU]?\b)`,
	}, "|")),
}

//nolint:gochecknoglobals // Compiled once.
var (
	xmlTagParts = regexp.MustCompile(`(?P<attribute>[\w:.-]+)(\s*=\s*)(?P<value>"[^"]*"|'[^']*')`)
	xmlTagName  = regexp.MustCompile(`^(</?)([\w:.-]+)`)
)

//nolint:gochecknoglobals // Compiled once.
var xmlLike = &highlighter{
	re: regexp.MustCompile(strings.Join([]string{
		`(?P<comment><!--[\s\S]*?-->)`,
		`(?P<cdata><!\[CDATA\[[\s\S]*?\]\]>)`,
		`(?P<preprocessor><\?[\s\S]*?\?>)`,
		`(?P<tag></?[\w:.-]+(?:\s+[\w:.-]+\s*=\s*(?:"[^"]*"|'[^']*'))*\s*/?>)`,
		`(?P<entity>&(?:[A-Za-z]+|#[0-9]+|#x[0-9a-fA-F]+);)`,
	}, "|")),
	decorate: map[string]func(sb *strings.Builder, token string){
		ClassTag: writeXMLTag,
	},
}

// writeXMLTag splits a tag into its name, attributes and values.
func writeXMLTag(sb *strings.Builder, token string) {
	name := xmlTagName.FindStringSubmatchIndex(token)
	if name == nil {
		writeSpan(sb, ClassTag, token)
		return
	}

	sb.WriteString(html.EscapeString(token[:name[4]]))
	writeSpan(sb, ClassTag, token[name[4]:name[5]])

	rest := token[name[5]:]
	last := 0

	for _, loc := range xmlTagParts.FindAllStringSubmatchIndex(rest, -1) {
		sb.WriteString(html.EscapeString(rest[last:loc[0]]))
		writeSpan(sb, ClassAttribute, rest[loc[2]:loc[3]])
		sb.WriteString(html.EscapeString(rest[loc[4]:loc[5]]))
		writeSpan(sb, ClassValue, rest[loc[6]:loc[7]])
		last = loc[1]
	}

	sb.WriteString(html.EscapeString(rest[last:]))
}

//nolint:gochecknoglobals // Read-only lookup table.
var highlighters = map[string]*highlighter{
	"csharp":     cLike,
	"cs":         cLike,
	"c#":         cLike,
	"java":       cLike,
	"javascript": cLike,
	"js":         cLike,
	"typescript": cLike,
	"c":          cLike,
	"cpp":        cLike,
	"c++":        cLike,
	"go":         cLike,
	"xml":        xmlLike,
	"html":       xmlLike,
	"xaml":       xmlLike,
	"svg":        xmlLike,
	"xhtml":      xmlLike,
}

// Highlight returns code as HTML with tokens wrapped in classed spans. When
// no highlighter exists for lang it returns the escaped code and false.
func Highlight(lang, code string) (string, bool) {
	h, ok := highlighters[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return html.EscapeString(code), false
	}

	return h.highlight(code), true
}

// HighlightLanguages returns the sorted language tags with a highlighter.
func HighlightLanguages() []string {
	langs := make([]string, 0, len(highlighters))
	for lang := range highlighters {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	return langs
}
