package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// maxInlineDepth bounds recursive re-expansion of construct contents.
// Deeper content is kept as literal text.
const maxInlineDepth = 16

// inlineRule is one alternative of a dialect's inline alternation.
type inlineRule struct {
	name    string
	pattern string
	build   func(m *inlineMatch) (docmodel.Inline, bool)
}

// inlineMatch is a candidate match handed to a rule's build function.
type inlineMatch struct {
	engine *inlineEngine
	groups []string // groups[0] is the whole match
	before rune     // rune preceding the match, or 0
	after  rune     // rune following the match, or 0
	depth  int
}

// group returns submatch i, or "" when it did not participate.
func (m *inlineMatch) group(i int) string {
	if i < len(m.groups) {
		return m.groups[i]
	}

	return ""
}

// firstGroup returns the first non-empty submatch among idx.
func (m *inlineMatch) firstGroup(idx ...int) string {
	for _, i := range idx {
		if s := m.group(i); s != "" {
			return s
		}
	}

	return ""
}

// parse re-expands s as nested inline content.
func (m *inlineMatch) parse(s string) []docmodel.Inline {
	return m.engine.parseDepth(s, m.depth+1)
}

// unescape removes escape characters from s.
func (m *inlineMatch) unescape(s string) string {
	return m.engine.unescape(s)
}

// inlineEngine scans text with one alternation compiled from all rules of a
// dialect. At each position the leftmost match wins and, at equal
// positions, the earlier rule. A rule may reject a candidate; the opening
// character is then kept as literal text and scanning resumes after it.
type inlineEngine struct {
	re     *regexp.Regexp
	rules  []inlineRule
	groups []int // outer group index of each rule
	widths []int // number of groups of each rule, including the outer one
	escape byte
}

//nolint:gochecknoglobals // Compiled once.
var softBreak = regexp.MustCompile(`[ \t]*\n[ \t]*`)

func newInlineEngine(escape byte, rules []inlineRule) *inlineEngine {
	engine := &inlineEngine{rules: rules, escape: escape}

	parts := make([]string, 0, len(rules))
	next := 1

	for _, rule := range rules {
		sub := regexp.MustCompile(rule.pattern).NumSubexp()
		engine.groups = append(engine.groups, next)
		engine.widths = append(engine.widths, sub+1)
		next += sub + 1

		parts = append(parts, "("+rule.pattern+")")
	}

	engine.re = regexp.MustCompile("(?s)" + strings.Join(parts, "|"))

	return engine
}

func (e *inlineEngine) parse(s string) []docmodel.Inline {
	return e.parseDepth(s, 0)
}

func (e *inlineEngine) parseDepth(s string, depth int) []docmodel.Inline {
	if depth > maxInlineDepth {
		return []docmodel.Inline{docmodel.Text(collapse(s))}
	}

	out := &inlineBuilder{}
	pos := 0

	for pos < len(s) {
		loc := e.re.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			out.text(s[pos:])
			break
		}

		start, end := pos+loc[0], pos+loc[1]
		out.text(s[pos:start])

		node, ok := e.build(s, pos, loc, depth)
		if !ok || start == end {
			_, size := utf8.DecodeRuneInString(s[start:])
			out.literal(s[start : start+size])
			pos = start + size
			continue
		}

		out.node(node)
		pos = end
	}

	return out.finish()
}

func (e *inlineEngine) build(s string, offset int, loc []int, depth int) (docmodel.Inline, bool) {
	for k, rule := range e.rules {
		outer := e.groups[k]
		if loc[2*outer] < 0 {
			continue
		}

		groups := make([]string, e.widths[k])
		for i := range groups {
			lo, hi := loc[2*(outer+i)], loc[2*(outer+i)+1]
			if lo >= 0 {
				groups[i] = s[offset+lo : offset+hi]
			}
		}

		match := &inlineMatch{engine: e, groups: groups, depth: depth}

		if start := offset + loc[0]; start > 0 {
			match.before, _ = utf8.DecodeLastRuneInString(s[:start])
		}
		if end := offset + loc[1]; end < len(s) {
			match.after, _ = utf8.DecodeRuneInString(s[end:])
		}

		return rule.build(match)
	}

	return nil, false
}

func (e *inlineEngine) unescape(s string) string {
	if strings.IndexByte(s, e.escape) < 0 {
		return s
	}

	var sb strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == e.escape && i+1 < len(s) && e.escapable(s[i+1]) {
			sb.WriteByte(s[i+1])
			i++
			continue
		}
		sb.WriteByte(c)
	}

	return sb.String()
}

func (e *inlineEngine) escapable(c byte) bool {
	if e.escape == '\\' {
		return isASCIIPunct(c)
	}

	return c != ' ' && c != '\t' && c != '\n'
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

// inlineBuilder accumulates nodes, merging adjacent text into one run.
type inlineBuilder struct {
	out []docmodel.Inline
	buf strings.Builder
}

// text appends source text, folding soft line breaks into single spaces.
func (b *inlineBuilder) text(s string) {
	if s != "" {
		b.buf.WriteString(collapse(s))
	}
}

// literal appends text verbatim.
func (b *inlineBuilder) literal(s string) {
	b.buf.WriteString(s)
}

func (b *inlineBuilder) node(n docmodel.Inline) {
	if run, ok := n.(*docmodel.Run); ok {
		b.buf.WriteString(run.Text)
		return
	}

	b.flush()
	b.out = append(b.out, n)
}

func (b *inlineBuilder) flush() {
	if b.buf.Len() > 0 {
		b.out = append(b.out, docmodel.Text(b.buf.String()))
		b.buf.Reset()
	}
}

func (b *inlineBuilder) finish() []docmodel.Inline {
	b.flush()
	return b.out
}

func collapse(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}

	return softBreak.ReplaceAllString(s, " ")
}

// Shared build helpers.

// unit returns a pattern matching one source character of a dialect with
// escape character esc, treating an escape pair as a single unit. Bytes in
// exclude are not matched unescaped.
func unit(esc byte, exclude string) string {
	e := regexp.QuoteMeta(string(esc))
	class := `\` + string(esc)

	for _, c := range exclude {
		switch c {
		case ']', '[', '\\', '^', '-':
			class += `\` + string(c)
		default:
			class += string(c)
		}
	}

	return `(?:` + e + `[\s\S]|[^` + class + `])`
}

// trimmedContent reports whether s is non-empty and neither starts nor ends
// with whitespace.
func trimmedContent(s string) bool {
	if s == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)

	return !unicode.IsSpace(first) && !unicode.IsSpace(last)
}

func isWordRune(r rune) bool {
	return r != 0 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// delimited builds a container from a trimmed inner group, optionally
// requiring the delimiters not to touch word characters.
func delimited(group int, intraword bool, wrap func([]docmodel.Inline) docmodel.Inline) func(*inlineMatch) (docmodel.Inline, bool) {
	return func(m *inlineMatch) (docmodel.Inline, bool) {
		inner := m.group(group)
		if !trimmedContent(inner) {
			return nil, false
		}

		if !intraword && (isWordRune(m.before) || isWordRune(m.after)) {
			return nil, false
		}

		return wrap(m.parse(inner)), true
	}
}

// starEmphasis matches *text*, where text may hold **strong**
// runs and must end on a non-space character.
func starEmphasis(esc byte) string {
	char := unit(esc, "*")
	nested := `\*\*` + char + `+?\*\*`
	last := `(?:` + nested + `|` + regexp.QuoteMeta(string(esc)) + `[\s\S]|[^\s\` + string(esc) + `*])`

	return `\*((?:` + nested + `|` + char + `)*?` + last + `)\*`
}

func strong(children []docmodel.Inline) docmodel.Inline { return &docmodel.Strong{Content: children} }

func emphasized(children []docmodel.Inline) docmodel.Inline {
	return &docmodel.Emphasized{Content: children}
}

// codeSpan trims one space of padding on each side, the form formatters
// use when the code itself starts or ends with a backtick.
func codeSpan(code string) string {
	code = strings.ReplaceAll(code, "\n", " ")
	if len(code) > 2 && code[0] == ' ' && code[len(code)-1] == ' ' && strings.TrimSpace(code) != "" {
		return code[1 : len(code)-1]
	}

	return code
}

// linkTarget strips the angle brackets of <url> destinations.
func linkTarget(s string) string {
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		return s[1 : len(s)-1]
	}

	return s
}
