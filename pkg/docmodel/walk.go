package docmodel

import (
	"errors"
	"strings"
)

// errStopWalk is used internally to stop walking early.
var errStopWalk = errors.New("stop walk")

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal of every block and inline of doc.
// List items, definition terms and table cells are traversed in document
// order. If walkFunc returns a non-nil error the walk stops and returns it.
func Walk(doc *Document, walkFunc WalkFunc) error {
	if doc == nil {
		return nil
	}

	return WalkBlocks(doc.Blocks, walkFunc)
}

// WalkBlocks walks a block sequence and everything below it.
func WalkBlocks(blocks []Block, walkFunc WalkFunc) error {
	for _, block := range blocks {
		if err := walkBlock(block, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkInlines walks an inline sequence and everything below it.
func WalkInlines(inlines []Inline, walkFunc WalkFunc) error {
	for _, inline := range inlines {
		if err := walkFunc(inline); err != nil {
			return err
		}

		if container, ok := inline.(Container); ok {
			if err := WalkInlines(container.Children(), walkFunc); err != nil {
				return err
			}
		}
	}

	return nil
}

func walkBlock(block Block, walkFunc WalkFunc) error {
	if err := walkFunc(block); err != nil {
		return err
	}

	switch node := block.(type) {
	case *Header:
		return WalkInlines(node.Content, walkFunc)
	case *Paragraph:
		return WalkInlines(node.Content, walkFunc)
	case *Quote:
		return WalkInlines(node.Content, walkFunc)
	case List:
		return walkItems(node.ListItems(), walkFunc)
	case *DefinitionList:
		for _, item := range node.Items {
			if err := WalkInlines(item.Term, walkFunc); err != nil {
				return err
			}
			if err := WalkInlines(item.Description, walkFunc); err != nil {
				return err
			}
		}
	case *Table:
		for _, row := range node.Rows {
			for _, cell := range row.Cells {
				if err := WalkBlocks(cell.Blocks, walkFunc); err != nil {
					return err
				}
			}
		}
	case *Section:
		return WalkBlocks(node.Blocks, walkFunc)
	}

	return nil
}

func walkItems(items []*ListItem, walkFunc WalkFunc) error {
	for _, item := range items {
		if err := WalkInlines(item.Content, walkFunc); err != nil {
			return err
		}

		if item.Nested != nil {
			if err := walkBlock(item.Nested, walkFunc); err != nil {
				return err
			}
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate.
func FindAll(doc *Document, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(doc, func(node Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(doc *Document, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(doc, func(node Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// Headers returns every header of doc in document order, including headers
// nested in sections and table cells.
func Headers(doc *Document) []*Header {
	var headers []*Header

	for _, node := range FindAll(doc, func(n Node) bool { _, ok := n.(*Header); return ok }) {
		headers = append(headers, node.(*Header)) //nolint:forcetypeassert // filtered above
	}

	return headers
}

// Anchors returns every anchor of doc in document order.
func Anchors(doc *Document) []*Anchor {
	var anchors []*Anchor

	for _, node := range FindAll(doc, func(n Node) bool { _, ok := n.(*Anchor); return ok }) {
		anchors = append(anchors, node.(*Anchor)) //nolint:forcetypeassert // filtered above
	}

	return anchors
}

// PlainText flattens inline content to its visible text. Images contribute
// their alt text, symbols their name in colons, line breaks a space.
func PlainText(inlines []Inline) string {
	var sb strings.Builder
	writePlain(&sb, inlines)

	return sb.String()
}

func writePlain(sb *strings.Builder, inlines []Inline) {
	for _, inline := range inlines {
		switch node := inline.(type) {
		case *Run:
			sb.WriteString(node.Text)
		case Container:
			writePlain(sb, node.Children())
		case *InlineCode:
			sb.WriteString(node.Code)
		case *Image:
			sb.WriteString(node.Alt)
		case *Symbol:
			sb.WriteString(":" + node.Name + ":")
		case *Equation:
			sb.WriteString(node.Content)
		case *LineBreak, *NonBreakingSpace:
			sb.WriteByte(' ')
		case *Anchor:
		}
	}
}
