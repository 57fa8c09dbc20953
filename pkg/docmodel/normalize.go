package docmodel

// Normalize merges adjacent runs and removes empty runs throughout doc.
// Parsers that produce text in fragments call it before returning, and
// structural comparisons use it to ignore run boundaries.
func Normalize(doc *Document) *Document {
	if doc == nil {
		return nil
	}

	normalizeBlocks(doc.Blocks)

	return doc
}

// NormalizeInlines returns inlines with adjacent runs merged and empty runs
// dropped. Container children are normalized in place.
func NormalizeInlines(inlines []Inline) []Inline {
	if len(inlines) == 0 {
		return inlines
	}

	out := make([]Inline, 0, len(inlines))

	for _, inline := range inlines {
		switch node := inline.(type) {
		case *Run:
			if node.Text == "" {
				continue
			}
			if len(out) > 0 {
				if prev, ok := out[len(out)-1].(*Run); ok {
					out[len(out)-1] = &Run{Text: prev.Text + node.Text}
					continue
				}
			}
		case Container:
			node.SetChildren(NormalizeInlines(node.Children()))
		}

		out = append(out, inline)
	}

	return out
}

func normalizeBlocks(blocks []Block) {
	for _, block := range blocks {
		switch node := block.(type) {
		case *Header:
			node.Content = NormalizeInlines(node.Content)
		case *Paragraph:
			node.Content = NormalizeInlines(node.Content)
		case *Quote:
			node.Content = NormalizeInlines(node.Content)
		case List:
			normalizeItems(node.ListItems())
		case *DefinitionList:
			for _, item := range node.Items {
				item.Term = NormalizeInlines(item.Term)
				item.Description = NormalizeInlines(item.Description)
			}
		case *Table:
			for _, row := range node.Rows {
				for _, cell := range row.Cells {
					normalizeBlocks(cell.Blocks)
				}
			}
		case *Section:
			normalizeBlocks(node.Blocks)
		}
	}
}

func normalizeItems(items []*ListItem) {
	for _, item := range items {
		item.Content = NormalizeInlines(item.Content)
		if item.Nested != nil {
			normalizeItems(item.Nested.ListItems())
		}
	}
}
