package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// grid is a rendered table with the display width of every column.
type grid struct {
	rows   [][]string
	cells  [][]*docmodel.TableCell
	widths []int
}

// layout renders the cells of t as inline text. Ragged rows keep their
// own cell counts.
func layout(c *Context, t *docmodel.Table) grid {
	g := grid{widths: make([]int, t.Columns())}

	for _, row := range t.Rows {
		texts := make([]string, 0, len(row.Cells))
		for col, cell := range row.Cells {
			text := c.Cell(cell, " ")
			texts = append(texts, text)
			g.widths[col] = max(g.widths[col], runewidth.StringWidth(text))
		}

		g.rows = append(g.rows, texts)
		g.cells = append(g.cells, row.Cells)
	}

	return g
}

// pad fills text with spaces to the display width of column col.
func (g grid) pad(text string, col int) string {
	return runewidth.FillRight(text, g.widths[col])
}

// markedRow renders a row of a table whose header cells carry a marker,
// e.g. "|= Name |  1 |".
func (g grid) markedRow(row int, cell, header string) string {
	var sb strings.Builder

	for col, text := range g.rows[row] {
		marker := cell
		if g.cells[row][col].Header {
			marker = header
		}
		sb.WriteString(marker + " " + g.pad(text, col) + " ")
	}
	sb.WriteString("|")

	return sb.String()
}
