package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

//nolint:gochecknoglobals // Compiled once.
var (
	tableLine     = regexp.MustCompile(`^[ \t]*\|`)
	delimiterRow  = regexp.MustCompile(`^[ \t]*\|?[ \t]*:?-+:?[ \t]*(?:\|[ \t]*:?-+:?[ \t]*)*\|?[ \t]*$`)
	delimiterCell = regexp.MustCompile(`^(:?)-+(:?)$`)
)

// cellSplitter splits a table row into raw cell texts.
type cellSplitter struct {
	escape byte
	// code is the inline code delimiter whose content may hold bars.
	code byte
	// nested lists opening and closing pairs inside which bars do not
	// separate cells, such as "[[" and "]]".
	nested [][2]string
}

// split returns the cells of a row. Leading and trailing bars are
// delimiters; rows may be ragged.
func (c cellSplitter) split(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")

	var (
		cells []string
		cur   strings.Builder
		depth int
		code  bool
		ended bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		ended = false

		switch {
		case ch == c.escape && i+1 < len(line):
			cur.WriteByte(ch)
			cur.WriteByte(line[i+1])
			i++
			continue
		case c.code != 0 && ch == c.code:
			code = !code
		case !code && c.opens(line[i:]) != "":
			tok := c.opens(line[i:])
			depth++
			cur.WriteString(tok)
			i += len(tok) - 1
			continue
		case !code && depth > 0 && c.closes(line[i:]) != "":
			tok := c.closes(line[i:])
			depth--
			cur.WriteString(tok)
			i += len(tok) - 1
			continue
		case ch == '|' && !code && depth == 0:
			cells = append(cells, cur.String())
			cur.Reset()
			ended = true
			continue
		}

		cur.WriteByte(ch)
	}

	if !ended {
		cells = append(cells, cur.String())
	}

	return cells
}

func (c cellSplitter) opens(s string) string {
	for _, pair := range c.nested {
		if strings.HasPrefix(s, pair[0]) {
			return pair[0]
		}
	}

	return ""
}

func (c cellSplitter) closes(s string) string {
	for _, pair := range c.nested {
		if strings.HasPrefix(s, pair[1]) {
			return pair[1]
		}
	}

	return ""
}

// markedTableRule parses tables whose header cells start with "=".
func markedTableRule(splitter cellSplitter) blockRule {
	return blockRule{
		name:       "table",
		interrupts: true,
		match:      lineMatcher(tableLine),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			table := &docmodel.Table{}

			j := i
			for ; j < len(b.lines) && tableLine.MatchString(b.lines[j]); j++ {
				row := &docmodel.TableRow{}
				for _, raw := range splitter.split(b.lines[j]) {
					text := strings.TrimSpace(raw)
					header := strings.HasPrefix(text, "=")
					if header {
						text = strings.TrimSpace(text[1:])
					}
					row.Cells = append(row.Cells, b.cell(header, text))
				}
				table.Rows = append(table.Rows, row)
			}

			return table, j
		},
	}
}

// pipeTableRule parses tables whose first row is a header row when a
// delimiter row follows it. The delimiter row sets column alignment.
func pipeTableRule(splitter cellSplitter) blockRule {
	return blockRule{
		name:       "table",
		interrupts: true,
		match:      lineMatcher(tableLine),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			table := &docmodel.Table{}

			var aligns []docmodel.HAlign

			j := i
			for ; j < len(b.lines) && tableLine.MatchString(b.lines[j]); j++ {
				header := false
				if j == i && j+1 < len(b.lines) && delimiterRow.MatchString(b.lines[j+1]) {
					header = true
					aligns = parseAlignments(splitter.split(b.lines[j+1]))
				}

				row := &docmodel.TableRow{}
				for col, raw := range splitter.split(b.lines[j]) {
					cell := b.cell(header, strings.TrimSpace(raw))
					if col < len(aligns) {
						cell.HAlign = aligns[col]
					}
					row.Cells = append(row.Cells, cell)
				}
				table.Rows = append(table.Rows, row)

				if header {
					j++
				}
			}

			return table, j
		},
	}
}

func parseAlignments(cells []string) []docmodel.HAlign {
	aligns := make([]docmodel.HAlign, 0, len(cells))

	for _, cell := range cells {
		m := delimiterCell.FindStringSubmatch(strings.TrimSpace(cell))

		switch {
		case m == nil:
			aligns = append(aligns, docmodel.AlignDefault)
		case m[1] != "" && m[2] != "":
			aligns = append(aligns, docmodel.AlignCenter)
		case m[2] != "":
			aligns = append(aligns, docmodel.AlignRight)
		case m[1] != "":
			aligns = append(aligns, docmodel.AlignLeft)
		default:
			aligns = append(aligns, docmodel.AlignDefault)
		}
	}

	return aligns
}

func (b *blockParser) cell(header bool, text string) *docmodel.TableCell {
	if text == "" {
		return docmodel.NewTableCell(header)
	}

	return docmodel.NewTableCell(header, &docmodel.Paragraph{Content: b.inlines(text)})
}
