package docmodel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

func sampleTree() *docmodel.Document {
	nested := docmodel.Bullets(docmodel.Item(docmodel.Text("deep")))

	return docmodel.NewDocument(
		docmodel.Heading(1, docmodel.Text("One")),
		docmodel.Bullets(&docmodel.ListItem{
			Content: []docmodel.Inline{docmodel.Bold(docmodel.Text("item"))},
			Nested:  nested,
		}),
		&docmodel.Table{Rows: []*docmodel.TableRow{
			docmodel.Row(docmodel.Cell(&docmodel.Anchor{Name: "cell"})),
		}},
		&docmodel.Section{Blocks: []docmodel.Block{
			docmodel.Heading(2, docmodel.Text("Two")),
		}},
	)
}

func TestWalkOrder(t *testing.T) {
	t.Parallel()

	var kinds []string

	err := docmodel.Walk(sampleTree(), func(n docmodel.Node) error {
		switch node := n.(type) {
		case *docmodel.Header:
			kinds = append(kinds, "header")
		case *docmodel.UnorderedList:
			kinds = append(kinds, "ul")
		case *docmodel.Strong:
			kinds = append(kinds, "strong")
		case *docmodel.Run:
			kinds = append(kinds, "run:"+node.Text)
		case *docmodel.Table:
			kinds = append(kinds, "table")
		case *docmodel.Paragraph:
			kinds = append(kinds, "p")
		case *docmodel.Anchor:
			kinds = append(kinds, "anchor")
		case *docmodel.Section:
			kinds = append(kinds, "section")
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"header", "run:One",
		"ul", "strong", "run:item", "ul", "run:deep",
		"table", "p", "anchor",
		"section", "header", "run:Two",
	}, kinds)
}

func TestWalkStopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0

	err := docmodel.Walk(sampleTree(), func(docmodel.Node) error {
		count++
		if count == 3 {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, count)
}

func TestHeadersAndAnchors(t *testing.T) {
	t.Parallel()

	doc := sampleTree()

	headers := docmodel.Headers(doc)
	require.Len(t, headers, 2)
	assert.Equal(t, 1, headers[0].Level)
	assert.Equal(t, 2, headers[1].Level)

	anchors := docmodel.Anchors(doc)
	require.Len(t, anchors, 1)
	assert.Equal(t, "cell", anchors[0].Name)

	assert.Nil(t, docmodel.FindFirst(doc, func(n docmodel.Node) bool {
		_, ok := n.(*docmodel.CodeBlock)
		return ok
	}))
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	inlines := []docmodel.Inline{
		docmodel.Text("a "),
		docmodel.Bold(docmodel.Italic(docmodel.Text("b"))),
		&docmodel.LineBreak{},
		&docmodel.Image{Source: "x.png", Alt: "pic"},
		&docmodel.InlineCode{Code: "c()"},
		&docmodel.Symbol{Name: "smile"},
		&docmodel.Anchor{Name: "ignored"},
	}

	assert.Equal(t, "a b picc():smile:", docmodel.PlainText(inlines))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	doc := docmodel.NewDocument(docmodel.Para(
		docmodel.Text("a"),
		docmodel.Text(""),
		docmodel.Text("b"),
		docmodel.Bold(docmodel.Text("c"), docmodel.Text("d")),
		docmodel.Text("e"),
	))

	docmodel.Normalize(doc)

	para, ok := doc.Blocks[0].(*docmodel.Paragraph)
	require.True(t, ok)
	assert.Equal(t, []docmodel.Inline{
		docmodel.Text("ab"),
		docmodel.Bold(docmodel.Text("cd")),
		docmodel.Text("e"),
	}, para.Content)
}

func TestTableHelpers(t *testing.T) {
	t.Parallel()

	table := &docmodel.Table{Rows: []*docmodel.TableRow{
		docmodel.Row(docmodel.HeaderCell(docmodel.Text("a")), docmodel.HeaderCell(docmodel.Text("b"))),
		docmodel.Row(docmodel.Cell(), docmodel.Cell(), docmodel.Cell()),
	}}

	assert.Equal(t, 3, table.Columns())
	assert.True(t, table.Rows[0].IsHeader())
	assert.False(t, table.Rows[1].IsHeader())

	cell := &docmodel.TableCell{}
	assert.Equal(t, 1, cell.Rows())
	assert.Equal(t, 1, cell.Cols())

	inlines, ok := table.Rows[0].Cells[0].Inlines()
	require.True(t, ok)
	assert.Equal(t, []docmodel.Inline{docmodel.Text("a")}, inlines)
}
