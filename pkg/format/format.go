// Package format renders documents to wiki, markup and text targets.
//
// Each target is a Rules table with one function per node variant. A
// Context dispatches the visitor calls of a document walk to the table of
// the selected target.
package format

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// ErrInvalidTarget is returned for unknown target names.
var ErrInvalidTarget = errors.New("invalid format target")

// Target names an output format.
type Target string

// Output targets.
const (
	TargetHTML       Target = "html"
	TargetOWiki      Target = "owiki"
	TargetMarkdown   Target = "markdown"
	TargetCreole     Target = "creole"
	TargetConfluence Target = "confluence"
	TargetCodeplex   Target = "codeplex"
	TargetText       Target = "text"
)

type targetInfo struct {
	target      Target
	extension   string
	description string
	aliases     []string
	rules       *Rules
}

//nolint:gochecknoglobals // Read-only registry built at startup.
var registry = []targetInfo{
	{TargetHTML, ".html", "HTML fragment or standalone page", []string{"htm", "xhtml"}, htmlRules()},
	{TargetOWiki, ".owiki", "OWiki markup", []string{"wiki", "o"}, owikiRules()},
	{TargetMarkdown, ".md", "Markdown", []string{"md"}, markdownRules()},
	{TargetCreole, ".creole", "Creole 1.0 wiki markup", []string{"wikicreole"}, creoleRules()},
	{TargetConfluence, ".confluence", "Confluence wiki markup", []string{"jira"}, confluenceRules()},
	{TargetCodeplex, ".codeplex", "Codeplex wiki markup", nil, codeplexRules()},
	{TargetText, ".txt", "Plain text", []string{"txt", "plain"}, textRules()},
}

func lookup(t Target) (targetInfo, bool) {
	for _, info := range registry {
		if info.target == t {
			return info, true
		}
	}

	return targetInfo{}, false
}

// Targets returns every target in registry order.
func Targets() []Target {
	out := make([]Target, 0, len(registry))
	for _, info := range registry {
		out = append(out, info.target)
	}

	return out
}

// ParseTarget parses a target name or alias, case-insensitively.
func ParseTarget(name string) (Target, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	for _, info := range registry {
		if string(info.target) == key || slices.Contains(info.aliases, key) {
			return info.target, nil
		}
	}

	return "", fmt.Errorf("%w %q; valid targets: %s", ErrInvalidTarget, name, joinTargets())
}

func joinTargets() string {
	names := make([]string, 0, len(registry))
	for _, info := range registry {
		names = append(names, string(info.target))
	}

	return strings.Join(names, ", ")
}

// String returns the target name.
func (t Target) String() string {
	return string(t)
}

// IsValid reports whether t is a known target.
func (t Target) IsValid() bool {
	_, ok := lookup(t)
	return ok
}

// Extension returns the file extension of output written for t.
func (t Target) Extension() string {
	info, _ := lookup(t)
	return info.extension
}

// Description returns a human readable description of t.
func (t Target) Description() string {
	info, _ := lookup(t)
	return info.description
}

// Format renders doc for target. The only error is ErrInvalidTarget;
// content a target cannot express is approximated or dropped.
func Format(doc *docmodel.Document, target Target, opts Options) (string, error) {
	info, ok := lookup(target)
	if !ok {
		return "", fmt.Errorf("%w %q; valid targets: %s", ErrInvalidTarget, target, joinTargets())
	}

	if doc == nil {
		doc = docmodel.NewDocument()
	}

	ctx := newContext(doc, info.rules, opts)
	out := ctx.render()

	if opts.Template != "" {
		out = applyTemplate(opts.Template, out, ctx)
	}

	return applyReplacements(out, opts.Replacements), nil
}

// Template placeholders.
const (
	PlaceholderContent = "{{content}}"
	PlaceholderTitle   = "{{title}}"
	PlaceholderCSS     = "{{css}}"
)

func applyTemplate(template, content string, c *Context) string {
	title := c.Capture(func() { c.Write(c.Text(documentTitle(c.doc))) })

	return strings.NewReplacer(
		PlaceholderContent, content,
		PlaceholderTitle, title,
		PlaceholderCSS, c.opts.CSSPath,
	).Replace(template)
}

// documentTitle returns the metadata title, or the text of the first
// header.
func documentTitle(doc *docmodel.Document) string {
	if doc.Metadata.Title != "" {
		return doc.Metadata.Title
	}

	if headers := docmodel.Headers(doc); len(headers) > 0 {
		return docmodel.PlainText(headers[0].Content)
	}

	return ""
}

// applyReplacements substitutes tokens in out, trying longer keys first
// where keys overlap.
func applyReplacements(out string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return out
	}

	keys := make([]string, 0, len(replacements))
	for key := range replacements {
		if key != "" {
			keys = append(keys, key)
		}
	}

	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), strings.Compare(a, b))
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, key, replacements[key])
	}

	return strings.NewReplacer(pairs...).Replace(out)
}
