package textutil

import (
	"slices"
	"strings"
)

// Symbol describes a named glyph: the asset file formatters link to and the
// textual emoticon that plain-text targets print.
type Symbol struct {
	Name  string
	Asset string
	Text  string
}

//nolint:gochecknoglobals // Read-only lookup table.
var symbols = []Symbol{
	{Name: "smile", Asset: "smile.png", Text: ":)"},
	{Name: "sad", Asset: "sad.png", Text: ":("},
	{Name: "wink", Asset: "wink.png", Text: ";)"},
	{Name: "grin", Asset: "grin.png", Text: ":D"},
	{Name: "tongue", Asset: "tongue.png", Text: ":P"},
	{Name: "surprised", Asset: "surprised.png", Text: ":O"},
	{Name: "info", Asset: "info.png", Text: "(i)"},
	{Name: "warning", Asset: "warning.png", Text: "(!)"},
	{Name: "error", Asset: "error.png", Text: "(x)"},
	{Name: "question", Asset: "question.png", Text: "(?)"},
	{Name: "ok", Asset: "ok.png", Text: "(/)"},
	{Name: "yes", Asset: "thumbs-up.png", Text: "(y)"},
	{Name: "no", Asset: "thumbs-down.png", Text: "(n)"},
	{Name: "star", Asset: "star.png", Text: "(*)"},
	{Name: "idea", Asset: "lightbulb.png", Text: "(on)"},
	{Name: "heart", Asset: "heart.png", Text: "<3"},
}

// LookupSymbol returns the symbol called name.
func LookupSymbol(name string) (Symbol, bool) {
	name = strings.ToLower(name)
	for _, sym := range symbols {
		if sym.Name == name {
			return sym, true
		}
	}

	return Symbol{}, false
}

// Symbols returns every symbol sorted by name.
func Symbols() []Symbol {
	out := slices.Clone(symbols)
	slices.SortFunc(out, func(a, b Symbol) int { return strings.Compare(a.Name, b.Name) })

	return out
}

// SymbolNames returns the sorted symbol names.
func SymbolNames() []string {
	names := make([]string, 0, len(symbols))
	for _, sym := range Symbols() {
		names = append(names, sym.Name)
	}

	return names
}

// SymbolPath joins an asset directory and the symbol's asset file with a
// forward slash, the separator URLs use.
func SymbolPath(dir string, sym Symbol) string {
	if dir == "" {
		return sym.Asset
	}

	return strings.TrimRight(dir, "/") + "/" + sym.Asset
}
