package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// listLine is one recognized list item line.
type listLine struct {
	depth   int
	ordered bool
	number  int
	text    string
}

// listSyntax recognizes list item lines of a dialect.
type listSyntax struct {
	item *regexp.Regexp
	// read converts a match of item into a listLine with an absolute
	// depth; indentation is measured from the line start.
	read func(m []string) listLine
	// relative is true when depth comes from indentation and must be
	// measured from the first item of the list.
	relative bool
}

// listFrame is one open list level while building.
type listFrame struct {
	list docmodel.List
}

func (f *listFrame) items() []*docmodel.ListItem {
	return f.list.ListItems()
}

func (f *listFrame) add(item *docmodel.ListItem) {
	switch l := f.list.(type) {
	case *docmodel.UnorderedList:
		l.Items = append(l.Items, item)
	case *docmodel.OrderedList:
		l.Items = append(l.Items, item)
	}
}

func newList(line listLine) docmodel.List {
	if line.ordered {
		return &docmodel.OrderedList{Start: max(line.number, 1)}
	}

	return &docmodel.UnorderedList{}
}

// indentWidth counts leading indentation with a tab worth two spaces.
func indentWidth(s string) int {
	width := 0
	for _, c := range s {
		switch c {
		case ' ':
			width++
		case '\t':
			width += 2
		default:
			return width
		}
	}

	return width
}

func listRule(syntax listSyntax) blockRule {
	return blockRule{
		name:       "list",
		interrupts: true,
		match:      lineMatcher(syntax.item),
		parse: func(b *blockParser, i int) (docmodel.Block, int) {
			return buildList(b, syntax, i)
		},
	}
}

// buildList reads items starting at line i. An item deeper than the
// current depth plus one is clamped to the current depth plus one. An
// item whose kind differs from the list it would join ends the list at
// any depth; the item then starts the next block.
func buildList(b *blockParser, syntax listSyntax, i int) (docmodel.Block, int) {
	first := syntax.read(syntax.item.FindStringSubmatch(b.lines[i]))
	base := 0
	if syntax.relative {
		base = first.depth
	}

	root := newList(first)
	stack := []*listFrame{{list: root}}

	var (
		current *docmodel.ListItem
		texts   = map[*docmodel.ListItem][]string{}
		order   []*docmodel.ListItem
	)

	j := i
	for ; j < len(b.lines); j++ {
		line := b.lines[j]
		if isBlank(line) {
			break
		}

		m := syntax.item.FindStringSubmatch(line)
		if m == nil {
			// Indented lines continue the current item.
			if current != nil && indentWidth(line) > 0 && !b.interrupted(j) {
				texts[current] = append(texts[current], strings.TrimSpace(line))
				continue
			}
			break
		}

		item := syntax.read(m)
		depth := max(item.depth-base, 0)
		depth = min(depth, len(stack))
		if len(stack[len(stack)-1].items()) == 0 {
			depth = min(depth, len(stack)-1)
		}

		if joined := listAt(stack, depth); joined != nil && item.ordered != joined.Ordered() {
			break
		}

		switch {
		case depth == len(stack):
			parentItems := stack[len(stack)-1].items()
			parent := parentItems[len(parentItems)-1]
			if parent.Nested == nil {
				parent.Nested = newList(item)
			}
			stack = append(stack, &listFrame{list: parent.Nested})
		case depth < len(stack)-1:
			stack = stack[:depth+1]
		}

		current = &docmodel.ListItem{}
		stack[len(stack)-1].add(current)
		texts[current] = []string{item.text}
		order = append(order, current)
	}

	for _, item := range order {
		item.Content = b.inlines(strings.Join(texts[item], "\n"))
	}

	return root, j
}

// listAt returns the open list an item at depth joins, or nil when the
// item opens a new nested list.
func listAt(stack []*listFrame, depth int) docmodel.List {
	if depth < len(stack) {
		return stack[depth].list
	}

	items := stack[len(stack)-1].items()
	if nested := items[len(items)-1].Nested; nested != nil {
		return nested
	}

	return nil
}

// atoiDefault parses a list number, returning 1 on failure.
func atoiDefault(s string) int {
	n, err := strconv.Atoi(strings.TrimRight(s, ".)"))
	if err != nil {
		return 1
	}

	return n
}
