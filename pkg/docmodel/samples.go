package docmodel

// Sample is a named document used for demonstrations and round-trip tests.
// Core samples only use constructs every wiki dialect can express.
type Sample struct {
	Name        string
	Description string
	Core        bool
	Build       func() *Document
}

// Samples returns the sample registry in a fixed order. Each call builds
// fresh values, so callers may modify the documents they build.
func Samples() []Sample {
	return []Sample{
		{Name: "basic", Description: "headers and formatted paragraphs", Core: true, Build: basicSample},
		{Name: "lists", Description: "nested ordered and unordered lists", Core: true, Build: listSample},
		{Name: "table", Description: "table with header row and ragged rows", Core: true, Build: tableSample},
		{Name: "code", Description: "code blocks and inline code", Core: true, Build: codeSample},
		{Name: "links", Description: "hyperlinks, images and line breaks", Core: true, Build: linkSample},
		{Name: "rich", Description: "sections, anchors, symbols, equations and metadata", Build: richSample},
	}
}

// LookupSample returns the sample called name.
func LookupSample(name string) (Sample, bool) {
	for _, sample := range Samples() {
		if sample.Name == name {
			return sample, true
		}
	}

	return Sample{}, false
}

func basicSample() *Document {
	return NewDocument(
		Heading(1, Text("Title")),
		Para(Text("Hello "), Bold(Text("world")), Text("!")),
		Heading(2, Text("Details")),
		Para(Text("Some "), Italic(Text("emphasized")), Text(" and "), Bold(Italic(Text("nested"))), Text(" text.")),
		&Quote{Content: []Inline{Text("Quoted words.")}},
		&HorizontalRuler{},
		Para(Text("Special characters like * and _ stay literal.")),
	)
}

func listSample() *Document {
	nested := Bullets(Item(Text("child one")), Item(Text("child two")))

	return NewDocument(
		Bullets(
			Item(Text("first")),
			&ListItem{Content: []Inline{Text("second")}, Nested: nested},
			Item(Text("third")),
		),
		&OrderedList{Start: 3, Items: []*ListItem{Item(Text("three")), Item(Bold(Text("four")))}},
		&DefinitionList{Items: []*Definition{
			{Term: []Inline{Text("term")}, Description: []Inline{Text("what it means")}},
		}},
	)
}

func tableSample() *Document {
	return NewDocument(
		&Table{Rows: []*TableRow{
			Row(HeaderCell(Text("Name")), HeaderCell(Text("Value"))),
			Row(Cell(Text("alpha")), Cell(Text("1")), Cell(Text("extra"))),
			Row(Cell(Bold(Text("beta"))), Cell(Text("2"))),
		}},
	)
}

func codeSample() *Document {
	return NewDocument(
		Para(Text("Call "), &InlineCode{Code: "Format(doc)"}, Text(" to render.")),
		&CodeBlock{Language: "csharp", Text: "public class Demo\n{\n    // comment\n    int x = 42;\n}"},
		&CodeBlock{Text: "plain text\n  indented"},
	)
}

func linkSample() *Document {
	return NewDocument(
		Para(
			Text("See "),
			Link("https://example.com/docs", Text("the docs")),
			Text(" or "),
			&Image{Source: "logo.png", Alt: "logo"},
			Text("."),
			&LineBreak{},
			Text("Second line with "),
			&Image{Source: "badge.svg", Alt: "badge", Link: "https://example.com"},
		),
	)
}

func richSample() *Document {
	intro := Heading(1, Text("Overview"))
	intro.ID = "overview"

	section := &Section{Blocks: []Block{
		Para(&Anchor{Name: "start"}, Text("Inside a section "), &Symbol{Name: "smile"}, Text(".")),
		Para(Text("Energy "), &Equation{Content: "E = mc^2"}, &NonBreakingSpace{}, Text("holds.")),
	}}
	section.Class = "note"

	return &Document{
		Metadata: Metadata{
			Title:    "Rich Sample",
			Creator:  "wikidoc",
			Keywords: []string{"sample", "wiki"},
		},
		Blocks: []Block{
			&TableOfContents{Depth: 2},
			intro,
			section,
			Para(&Span{Class: "tag", Content: []Inline{Text("tagged")}}, Text(" words")),
			Heading(2, Text("Index")),
			&Index{},
		},
	}
}
