package format

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/yaklabco/wikidoc/pkg/docmodel"
)

// Slug converts header text to an identifier: accents are removed, letters
// lowercased and runs of other characters collapsed into single hyphens.
func Slug(text string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		folded = text
	}

	var sb strings.Builder

	hyphen := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			hyphen = false
			sb.WriteRune(r)
			continue
		}
		hyphen = true
	}

	if sb.Len() == 0 {
		return "section"
	}

	return sb.String()
}

// headerIDs returns the identifier of every header of doc: its own ID, or
// a unique slug of its text.
func headerIDs(doc *docmodel.Document) map[*docmodel.Header]string {
	headers := docmodel.Headers(doc)
	ids := make(map[*docmodel.Header]string, len(headers))
	used := map[string]bool{}

	for _, h := range headers {
		if h.ID != "" {
			used[h.ID] = true
		}
	}

	for _, h := range headers {
		if h.ID != "" {
			ids[h] = h.ID
			continue
		}

		base := Slug(docmodel.PlainText(h.Content))
		id := base
		for n := 2; used[id]; n++ {
			id = base + "-" + strconv.Itoa(n)
		}

		used[id] = true
		ids[h] = id
	}

	return ids
}

// HeaderID returns the identifier of h within the rendered document.
func (c *Context) HeaderID(h *docmodel.Header) string {
	if c.ids == nil {
		c.ids = headerIDs(c.doc)
	}

	if id, ok := c.ids[h]; ok {
		return id
	}

	return h.ID
}

// tocEntry is one header listed by a table of contents.
type tocEntry struct {
	level  int
	header *docmodel.Header
}

// tocEntries returns the headers of the document up to the table's depth.
func tocEntries(c *Context, toc *docmodel.TableOfContents) []tocEntry {
	var entries []tocEntry

	for _, h := range docmodel.Headers(c.doc) {
		if h.Level <= toc.MaxLevel() {
			entries = append(entries, tocEntry{level: h.Level, header: h})
		}
	}

	return entries
}

// hasTableOfContents reports whether doc contains a table of contents.
func hasTableOfContents(doc *docmodel.Document) bool {
	return docmodel.FindFirst(doc, func(n docmodel.Node) bool {
		_, ok := n.(*docmodel.TableOfContents)
		return ok
	}) != nil
}

// indexEntries returns the anchor names of the document, sorted and
// without duplicates.
func indexEntries(doc *docmodel.Document) []string {
	seen := map[string]bool{}

	var names []string
	for _, anchor := range docmodel.Anchors(doc) {
		if !seen[anchor.Name] {
			seen[anchor.Name] = true
			names = append(names, anchor.Name)
		}
	}

	slices.Sort(names)

	return names
}

// tocNode is a table of contents entry with the entries nested below it.
type tocNode struct {
	entry    tocEntry
	children []*tocNode
}

// tocTree nests entries under the closest preceding entry of a lower
// level.
func tocTree(entries []tocEntry) []*tocNode {
	var (
		roots []*tocNode
		stack []*tocNode
	)

	for _, entry := range entries {
		node := &tocNode{entry: entry}

		for len(stack) > 0 && stack[len(stack)-1].entry.level >= entry.level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
		}

		stack = append(stack, node)
	}

	return roots
}
