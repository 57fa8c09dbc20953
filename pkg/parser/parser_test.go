package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dm "github.com/yaklabco/wikidoc/pkg/docmodel"
	"github.com/yaklabco/wikidoc/pkg/parser"
)

func parse(t *testing.T, dialect parser.Dialect, text string) *dm.Document {
	t.Helper()

	doc, err := parser.Parse(context.Background(), text, parser.Options{Dialect: dialect})
	require.NoError(t, err)

	return doc
}

func assertBlocks(t *testing.T, want []dm.Block, got *dm.Document) {
	t.Helper()

	if diff := cmp.Diff(want, got.Blocks, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHeaderAndStrong(t *testing.T) {
	t.Parallel()

	for _, dialect := range []parser.Dialect{parser.OWiki, parser.Markdown} {
		t.Run(dialect.String(), func(t *testing.T) {
			t.Parallel()

			doc := parse(t, dialect, "# Title\n\nHello **world**!")

			assertBlocks(t, []dm.Block{
				dm.Heading(1, dm.Text("Title")),
				dm.Para(dm.Text("Hello "), dm.Bold(dm.Text("world")), dm.Text("!")),
			}, doc)
		})
	}
}

func TestEscapedDelimitersStayLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dialect parser.Dialect
		input   string
	}{
		{parser.OWiki, `\*\*not strong\*\*`},
		{parser.Markdown, `\*\*not strong\*\*`},
		{parser.Creole, `~*~*not strong~*~*`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			t.Parallel()

			doc := parse(t, tt.dialect, tt.input)
			assertBlocks(t, []dm.Block{dm.Para(dm.Text("**not strong**"))}, doc)
		})
	}
}

func TestNestedInlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dialect parser.Dialect
		input   string
	}{
		{parser.OWiki, "**_nested_**"},
		{parser.Markdown, "**_nested_**"},
		{parser.Markdown, "***nested*** "},
		{parser.Creole, "**//nested//**"},
	}

	for _, tt := range tests {
		doc := parse(t, tt.dialect, tt.input)
		want := []dm.Block{dm.Para(dm.Bold(dm.Italic(dm.Text("nested"))))}

		if tt.input == "***nested*** " {
			// The leftmost ** opens first, leaving the inner * pair.
			want = []dm.Block{dm.Para(dm.Bold(dm.Text("*nested")), dm.Text("*"))}
		}

		assertBlocks(t, want, doc)
	}
}

func TestUnterminatedConstructsAreLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dialect parser.Dialect
		input   string
		want    string
	}{
		{parser.OWiki, "**bold without end", "**bold without end"},
		{parser.OWiki, "a [link](without end", "a [link](without end"},
		{parser.Markdown, "`code", "`code"},
		{parser.Creole, "[[broken link", "[[broken link"},
		{parser.OWiki, "snake_case_name", "snake_case_name"},
		{parser.Markdown, "** spaced **", "** spaced **"},
	}

	for _, tt := range tests {
		doc := parse(t, tt.dialect, tt.input)
		assertBlocks(t, []dm.Block{dm.Para(dm.Text(tt.want))}, doc)
	}
}

func TestRaggedTable(t *testing.T) {
	t.Parallel()

	doc := parse(t, parser.OWiki, "|= A |= B |\n| 1 | 2 | 3 |")

	assertBlocks(t, []dm.Block{
		&dm.Table{Rows: []*dm.TableRow{
			dm.Row(dm.HeaderCell(dm.Text("A")), dm.HeaderCell(dm.Text("B"))),
			dm.Row(dm.Cell(dm.Text("1")), dm.Cell(dm.Text("2")), dm.Cell(dm.Text("3"))),
		}},
	}, doc)
}

func TestMarkdownTableAlignment(t *testing.T) {
	t.Parallel()

	doc := parse(t, parser.Markdown, "| Name | Qty |\n|:-----|----:|\n| a | `x|y` |")

	table, ok := doc.Blocks[0].(*dm.Table)
	require.True(t, ok)
	require.Len(t, table.Rows, 2)

	assert.True(t, table.Rows[0].IsHeader())
	assert.False(t, table.Rows[1].IsHeader())
	assert.Equal(t, dm.AlignLeft, table.Rows[1].Cells[0].HAlign)
	assert.Equal(t, dm.AlignRight, table.Rows[1].Cells[1].HAlign)

	inlines, ok := table.Rows[1].Cells[1].Inlines()
	require.True(t, ok)
	assert.Equal(t, []dm.Inline{&dm.InlineCode{Code: "x|y"}}, inlines)
}

func TestListDepthIsClamped(t *testing.T) {
	t.Parallel()

	doc := parse(t, parser.OWiki, "- a\n      - b\n  - c\n- d")

	assertBlocks(t, []dm.Block{
		dm.Bullets(
			&dm.ListItem{
				Content: []dm.Inline{dm.Text("a")},
				Nested:  dm.Bullets(dm.Item(dm.Text("b")), dm.Item(dm.Text("c"))),
			},
			dm.Item(dm.Text("d")),
		),
	}, doc)
}

func TestListKindChangeStartsNewList(t *testing.T) {
	t.Parallel()

	doc := parse(t, parser.OWiki, "- a\n3. b\n4. c")

	assertBlocks(t, []dm.Block{
		dm.Bullets(dm.Item(dm.Text("a"))),
		&dm.OrderedList{Start: 3, Items: []*dm.ListItem{dm.Item(dm.Text("b")), dm.Item(dm.Text("c"))}},
	}, doc)
}

func TestNestedListKindChangeEndsList(t *testing.T) {
	t.Parallel()

	for _, dialect := range []parser.Dialect{parser.OWiki, parser.Markdown} {
		t.Run(dialect.String(), func(t *testing.T) {
			t.Parallel()

			doc := parse(t, dialect, "- a\n  1. b\n  2. c\n  - d")

			assertBlocks(t, []dm.Block{
				dm.Bullets(&dm.ListItem{
					Content: []dm.Inline{dm.Text("a")},
					Nested:  &dm.OrderedList{Start: 1, Items: []*dm.ListItem{dm.Item(dm.Text("b")), dm.Item(dm.Text("c"))}},
				}),
				dm.Bullets(dm.Item(dm.Text("d"))),
			}, doc)
		})
	}
}

func TestOWikiEmphasisInsideWord(t *testing.T) {
	t.Parallel()

	doc := parse(t, parser.OWiki, "ab*cd*ef and _gh_ but snake_case")

	assertBlocks(t, []dm.Block{
		dm.Para(
			dm.Text("ab"), dm.Italic(dm.Text("cd")), dm.Text("ef and "),
			dm.Italic(dm.Text("gh")), dm.Text(" but snake_case"),
		),
	}, doc)
}

func TestInlineCodeLongDelimiters(t *testing.T) {
	t.Parallel()

	for _, dialect := range []parser.Dialect{parser.OWiki, parser.Markdown} {
		t.Run(dialect.String(), func(t *testing.T) {
			t.Parallel()

			doc := parse(t, dialect, "x ```a``b``` and ```` `c``` ````")

			assertBlocks(t, []dm.Block{
				dm.Para(
					dm.Text("x "), &dm.InlineCode{Code: "a``b"},
					dm.Text(" and "), &dm.InlineCode{Code: "`c```"},
				),
			}, doc)
		})
	}
}

func TestMarkdownFrontMatterNeedsKnownKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []dm.Block
	}{
		{
			name:  "heading between rulers",
			input: "---\n# Title\n---\ntext",
			want: []dm.Block{
				&dm.HorizontalRuler{},
				dm.Heading(1, dm.Text("Title")),
				&dm.HorizontalRuler{},
				dm.Para(dm.Text("text")),
			},
		},
		{
			name:  "unknown keys",
			input: "---\nfoo: bar\n---\ntext",
			want: []dm.Block{
				&dm.HorizontalRuler{},
				dm.Heading(2, dm.Text("foo: bar")),
				dm.Para(dm.Text("text")),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parse(t, parser.Markdown, tt.input)

			assert.True(t, doc.Metadata.IsZero())
			assertBlocks(t, tt.want, doc)
		})
	}
}

func TestListContinuationLines(t *testing.T) {
	t.Parallel()

	doc := parse(t, parser.Markdown, "- first\n  continued\n- second")

	assertBlocks(t, []dm.Block{
		dm.Bullets(dm.Item(dm.Text("first continued")), dm.Item(dm.Text("second"))),
	}, doc)
}

func TestDefines(t *testing.T) {
	t.Parallel()

	doc, err := parser.Parse(context.Background(),
		"@if A\nX\n@endif\n@if B\nY\n@endif\n@if !B\nZ\n@else\nW\n@endif",
		parser.Options{Defines: []string{"A"}})
	require.NoError(t, err)

	assertBlocks(t, []dm.Block{dm.Para(dm.Text("X Z"))}, doc)
}

func TestUnclosedDefineEndsAtEOF(t *testing.T) {
	t.Parallel()

	doc := parse(t, parser.OWiki, "before\n\n@if MISSING\nhidden\n\nstill hidden")

	assertBlocks(t, []dm.Block{dm.Para(dm.Text("before"))}, doc)
}

func TestVariables(t *testing.T) {
	t.Parallel()

	doc, err := parser.Parse(context.Background(),
		"Hello $name, $unknown and \\$name. $title",
		parser.Options{Variables: map[string]string{"name": "World", "$title": "**bold**"}})
	require.NoError(t, err)

	assertBlocks(t, []dm.Block{
		dm.Para(dm.Text("Hello World, $unknown and $name. "), dm.Bold(dm.Text("bold"))),
	}, doc)
}

func TestIncludes(t *testing.T) {
	t.Parallel()

	var requested string

	doc, err := parser.Parse(context.Background(), "@include part.owiki\n\ntail", parser.Options{
		BaseDirectory: "/base",
		Include: func(path string) (string, error) {
			requested = path
			return "## Included\n", nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/base/part.owiki", requested)
	assert.Equal(t, "/base", doc.BaseDirectory)
	assertBlocks(t, []dm.Block{dm.Heading(2, dm.Text("Included")), dm.Para(dm.Text("tail"))}, doc)
}

func TestIncludeErrorDropsLine(t *testing.T) {
	t.Parallel()

	doc, err := parser.Parse(context.Background(), "@include missing\nbody", parser.Options{
		Include: func(string) (string, error) { return "", errors.New("not found") },
	})
	require.NoError(t, err)

	assertBlocks(t, []dm.Block{dm.Para(dm.Text("body"))}, doc)
}

func TestParseHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, "# a\n\nb", parser.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestInvalidDialect(t *testing.T) {
	t.Parallel()

	_, err := parser.New(parser.Options{Dialect: "rst"})
	require.ErrorIs(t, err, parser.ErrInvalidDialect)

	_, err = parser.ParseDialect("textile")
	require.ErrorIs(t, err, parser.ErrInvalidDialect)

	d, err := parser.ParseDialect("MD")
	require.NoError(t, err)
	assert.Equal(t, parser.Markdown, d)

	d, ok := parser.DialectForPath("docs/readme.markdown")
	assert.True(t, ok)
	assert.Equal(t, parser.Markdown, d)
}

func TestEmptyInput(t *testing.T) {
	t.Parallel()

	for _, dialect := range parser.Dialects() {
		doc := parse(t, dialect, "\n\n  \n")
		assert.Empty(t, doc.Blocks, dialect.String())
	}
}
