package format_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	dm "github.com/yaklabco/wikidoc/pkg/docmodel"
	"github.com/yaklabco/wikidoc/pkg/format"
	"github.com/yaklabco/wikidoc/pkg/parser"
)

// wikiTarget pairs a wiki target with the dialect that reads it back and
// the samples it reproduces without loss.
type wikiTarget struct {
	target   format.Target
	dialect  parser.Dialect
	lossless map[string]bool
}

func wikiTargets() []wikiTarget {
	core := map[string]bool{"basic": true, "lists": true, "table": true, "code": true, "links": true}

	return []wikiTarget{
		{
			target:   format.TargetOWiki,
			dialect:  parser.OWiki,
			lossless: map[string]bool{"basic": true, "lists": true, "table": true, "code": true, "links": true, "rich": true},
		},
		{target: format.TargetMarkdown, dialect: parser.Markdown, lossless: core},
		{
			// Creole cannot write an ordered list's start number.
			target:   format.TargetCreole,
			dialect:  parser.Creole,
			lossless: map[string]bool{"basic": true, "table": true, "code": true, "links": true},
		},
	}
}

func TestRoundTripIsStable(t *testing.T) {
	t.Parallel()

	for _, wt := range wikiTargets() {
		for _, sample := range dm.Samples() {
			t.Run(wt.target.String()+"/"+sample.Name, func(t *testing.T) {
				t.Parallel()

				first := render(t, sample.Build(), wt.target, format.Options{})
				reparsed := parser.ParseString(first, wt.dialect)
				second := render(t, reparsed, wt.target, format.Options{})

				assert.Equal(t, first, second)
			})
		}
	}
}

func TestRoundTripPreservesStructure(t *testing.T) {
	t.Parallel()

	for _, wt := range wikiTargets() {
		for _, sample := range dm.Samples() {
			if !wt.lossless[sample.Name] {
				continue
			}

			t.Run(wt.target.String()+"/"+sample.Name, func(t *testing.T) {
				t.Parallel()

				want := dm.Normalize(sample.Build())
				got := parser.ParseString(render(t, sample.Build(), wt.target, format.Options{}), wt.dialect)

				if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("document mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestRoundTripInlineEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		para    *dm.Paragraph
		targets []format.Target
	}{
		{
			name: "emphasis inside a word",
			para: dm.Para(dm.Text("ab"), dm.Italic(dm.Text("cd")), dm.Text("ef")),
		},
		{
			name: "emphasis before a digit",
			para: dm.Para(dm.Italic(dm.Text("x")), dm.Text("1 and "), dm.Italic(dm.Text("y"))),
		},
		{
			name:    "code holding a double backtick",
			para:    dm.Para(dm.Text("x "), &dm.InlineCode{Code: "a``b"}),
			targets: []format.Target{format.TargetOWiki, format.TargetMarkdown},
		},
		{
			name:    "code holding a triple backtick",
			para:    dm.Para(dm.Text("x "), &dm.InlineCode{Code: "`a```b"}),
			targets: []format.Target{format.TargetOWiki, format.TargetMarkdown},
		},
	}

	for _, wt := range wikiTargets() {
		for _, tt := range tests {
			if tt.targets != nil && !slices.Contains(tt.targets, wt.target) {
				continue
			}

			t.Run(wt.target.String()+"/"+tt.name, func(t *testing.T) {
				t.Parallel()

				doc := dm.NewDocument(tt.para)
				first := render(t, doc, wt.target, format.Options{})
				reparsed := parser.ParseString(first, wt.dialect)

				if diff := cmp.Diff(dm.Normalize(doc), reparsed, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("document mismatch for %q (-want +got):\n%s", first, diff)
				}
				assert.Equal(t, first, render(t, reparsed, wt.target, format.Options{}))
			})
		}
	}
}

func TestCreoleDropsListStart(t *testing.T) {
	t.Parallel()

	doc := dm.NewDocument(&dm.OrderedList{Start: 5, Items: []*dm.ListItem{dm.Item(dm.Text("five"))}})

	out := render(t, doc, format.TargetCreole, format.Options{})
	assert.Equal(t, "# five\n", out)

	want := []dm.Block{&dm.OrderedList{Start: 1, Items: []*dm.ListItem{dm.Item(dm.Text("five"))}}}
	if diff := cmp.Diff(want, parser.ParseString(out, parser.Creole).Blocks, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripEscapedText(t *testing.T) {
	t.Parallel()

	texts := []string{
		"Special * and _ and ` characters",
		"# not a header",
		"- not a list",
		"1. not numbered",
		"> not a quote",
		"[not](a link) and ![no](image)",
		"costs $5 and $$x$$ and $var",
		"a :smile: face and &nbsp; literal",
		"back\\slash and {braces} and |bars|",
		"**not strong** //not italic//",
		"http://plain.example.com/path",
		"~tilde~ and <<macro>>",
	}

	for _, wt := range wikiTargets() {
		for _, text := range texts {
			t.Run(wt.target.String()+"/"+text, func(t *testing.T) {
				t.Parallel()

				doc := dm.NewDocument(dm.Para(dm.Text(text)))
				out := render(t, doc, wt.target, format.Options{})
				got := parser.ParseString(out, wt.dialect)

				assert.Equal(t, []dm.Block{dm.Para(dm.Text(text))}, got.Blocks, "formatted as %q", out)
			})
		}
	}
}
