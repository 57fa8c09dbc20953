package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikidoc/internal/logging"
)

const maxIncludeDepth = 8

//nolint:gochecknoglobals // Compiled once.
var (
	includeDirective = regexp.MustCompile(`^[ \t]*@include[ \t]+(\S.*?)[ \t]*$`)
	ifDirective      = regexp.MustCompile(`^[ \t]*@if[ \t]+(!?)[ \t]*([\w.-]+)[ \t]*$`)
	elseDirective    = regexp.MustCompile(`^[ \t]*@else[ \t]*$`)
	endifDirective   = regexp.MustCompile(`^[ \t]*@endif[ \t]*$`)
	variableRef      = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// preprocessor applies the text-level passes that run before block
// splitting: includes, variable substitution and conditional directives.
type preprocessor struct {
	opts   Options
	escape byte
	logger *log.Logger
}

func (p *preprocessor) run(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = p.expandIncludes(text, 0)
	text = substituteVariables(text, p.opts.Variables, p.escape)

	return applyDefines(strings.Split(text, "\n"), p.opts.Defines)
}

func (p *preprocessor) expandIncludes(text string, depth int) string {
	if !strings.Contains(text, "@include") {
		return text
	}

	lines := strings.Split(text, "\n")
	out := lines[:0:0]

	for _, line := range lines {
		m := includeDirective.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}

		path := m[1]
		if !filepath.IsAbs(path) && p.opts.BaseDirectory != "" {
			path = filepath.Join(p.opts.BaseDirectory, path)
		}

		switch {
		case p.opts.Include == nil:
			p.logger.Warn("include dropped, no resolver configured", logging.FieldInclude, path)
		case depth >= maxIncludeDepth:
			p.logger.Warn("include dropped, nesting too deep", logging.FieldInclude, path, logging.FieldDepth, depth)
		default:
			included, err := p.opts.Include(path)
			if err != nil {
				p.logger.Warn("include dropped", logging.FieldInclude, path, logging.FieldError, err)
				continue
			}
			included = strings.ReplaceAll(included, "\r\n", "\n")
			out = append(out, p.expandIncludes(strings.TrimSuffix(included, "\n"), depth+1))
		}
	}

	return strings.Join(out, "\n")
}

// substituteVariables replaces $name with vars[name]. Unknown names and
// references preceded by the escape character are left untouched.
func substituteVariables(text string, vars map[string]string, escape byte) string {
	if len(vars) == 0 || !strings.Contains(text, "$") {
		return text
	}

	lookup := make(map[string]string, len(vars))
	for key, value := range vars {
		lookup[strings.TrimPrefix(key, "$")] = value
	}

	var sb strings.Builder
	last := 0

	for _, loc := range variableRef.FindAllStringSubmatchIndex(text, -1) {
		value, ok := lookup[text[loc[2]:loc[3]]]
		if !ok || (loc[0] > 0 && text[loc[0]-1] == escape) {
			continue
		}

		sb.WriteString(text[last:loc[0]])
		sb.WriteString(value)
		last = loc[1]
	}

	sb.WriteString(text[last:])

	return sb.String()
}

// condition is one open @if block.
type condition struct {
	taking bool
	cond   bool
}

// applyDefines drops directive lines and the lines of inactive @if
// branches. Unclosed blocks end at the end of input; a stray @endif or
// @else is ignored.
func applyDefines(lines []string, defines []string) []string {
	defined := make(map[string]bool, len(defines))
	for _, name := range defines {
		defined[strings.TrimSpace(name)] = true
	}

	var stack []condition

	active := func() bool {
		for _, c := range stack {
			if !c.taking {
				return false
			}
		}
		return true
	}

	out := lines[:0:0]

	for _, line := range lines {
		if m := ifDirective.FindStringSubmatch(line); m != nil {
			cond := defined[m[2]]
			if m[1] == "!" {
				cond = !cond
			}
			stack = append(stack, condition{taking: cond, cond: cond})
			continue
		}

		if elseDirective.MatchString(line) {
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				top.taking = !top.cond
			}
			continue
		}

		if endifDirective.MatchString(line) {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if active() {
			out = append(out, line)
		}
	}

	return out
}

func newPreprocessor(opts Options, escape byte) *preprocessor {
	return &preprocessor{opts: opts, escape: escape, logger: logging.OrDiscard(opts.Logger)}
}
