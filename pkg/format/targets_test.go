package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	dm "github.com/yaklabco/wikidoc/pkg/docmodel"
	"github.com/yaklabco/wikidoc/pkg/format"
)

func sample(t *testing.T, name string) *dm.Document {
	t.Helper()

	s, ok := dm.LookupSample(name)
	if !ok {
		t.Fatalf("no sample %q", name)
	}

	return s.Build()
}

func TestBasicSampleOutputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target format.Target
		want   string
	}{
		{
			target: format.TargetHTML,
			want: "<h1>Title</h1>\n<p>Hello <b>world</b>!</p>\n<h2>Details</h2>\n" +
				"<p>Some <i>emphasized</i> and <b><i>nested</i></b> text.</p>\n" +
				"<blockquote>Quoted words.</blockquote>\n<hr />\n" +
				"<p>Special characters like * and _ stay literal.</p>\n",
		},
		{
			target: format.TargetOWiki,
			want: "# Title\n\nHello **world**!\n\n## Details\n\nSome _emphasized_ and **_nested_** text.\n\n" +
				"> Quoted words.\n\n----\n\nSpecial characters like \\* and \\_ stay literal.\n",
		},
		{
			target: format.TargetMarkdown,
			want: "# Title\n\nHello **world**!\n\n## Details\n\nSome _emphasized_ and **_nested_** text.\n\n" +
				"> Quoted words.\n\n***\n\nSpecial characters like \\* and \\_ stay literal.\n",
		},
		{
			target: format.TargetCreole,
			want: "= Title\n\nHello **world**!\n\n== Details\n\nSome //emphasized// and **//nested//** text.\n\n" +
				"> Quoted words.\n\n----\n\nSpecial characters like ~* and _ stay literal.\n",
		},
		{
			target: format.TargetConfluence,
			want: "h1. Title\n\nHello *world*\\!\n\nh2. Details\n\nSome _emphasized_ and *_nested_* text.\n\n" +
				"bq. Quoted words.\n\n----\n\nSpecial characters like \\* and \\_ stay literal.\n",
		},
		{
			target: format.TargetCodeplex,
			want: "! Title\n\nHello *world*!\n\n!! Details\n\nSome _emphasized_ and *_nested_* text.\n\n" +
				"{quote:}Quoted words.{quote:}\n\n----\n\nSpecial characters like {\"*\"} and {\"_\"} stay literal.\n",
		},
		{
			target: format.TargetText,
			want: "Title\n=====\n\nHello world!\n\nDetails\n-------\n\nSome emphasized and nested text.\n\n" +
				"> Quoted words.\n\n----------\n\nSpecial characters like * and _ stay literal.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, render(t, sample(t, "basic"), tt.target, format.Options{}))
		})
	}
}

func TestListSampleOutputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target format.Target
		want   string
	}{
		{
			target: format.TargetHTML,
			want: "<ul>\n<li>first</li>\n<li>second\n<ul>\n<li>child one</li>\n<li>child two</li>\n</ul>\n</li>\n" +
				"<li>third</li>\n</ul>\n<ol start=\"3\">\n<li>three</li>\n<li><b>four</b></li>\n</ol>\n" +
				"<dl>\n<dt>term</dt>\n<dd>what it means</dd>\n</dl>\n",
		},
		{
			target: format.TargetOWiki,
			want: "* first\n* second\n  * child one\n  * child two\n* third\n\n3. three\n4. **four**\n\n" +
				"; term : what it means\n",
		},
		{
			target: format.TargetMarkdown,
			want: "- first\n- second\n  - child one\n  - child two\n- third\n\n3. three\n4. **four**\n\n" +
				"term\n: what it means\n",
		},
		{
			target: format.TargetCreole,
			want: "* first\n* second\n** child one\n** child two\n* third\n\n# three\n# **four**\n\n" +
				"; term : what it means\n",
		},
		{
			target: format.TargetConfluence,
			want: "* first\n* second\n** child one\n** child two\n* third\n\n# three\n# *four*\n\n" +
				"*term*\nbq. what it means\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, render(t, sample(t, "lists"), tt.target, format.Options{}))
		})
	}
}

func TestTableSampleOutputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target format.Target
		want   string
	}{
		{
			target: format.TargetHTML,
			want: "<table>\n<tr><th>Name</th><th>Value</th></tr>\n" +
				"<tr><td>alpha</td><td>1</td><td>extra</td></tr>\n" +
				"<tr><td><b>beta</b></td><td>2</td></tr>\n</table>\n",
		},
		{
			target: format.TargetOWiki,
			want:   "|= Name     |= Value |\n| alpha    | 1     | extra |\n| **beta** | 2     |\n",
		},
		{
			target: format.TargetMarkdown,
			want: "| Name     | Value |\n| -------- | ----- |\n" +
				"| alpha    | 1     | extra |\n| **beta** | 2     |\n",
		},
		{
			target: format.TargetConfluence,
			want:   "|| Name || Value ||\n| alpha | 1 | extra |\n| *beta* | 2 |\n",
		},
		{
			target: format.TargetText,
			want: "Name  | Value\n" + strings.Join([]string{"-----", "-----", "-----"}, "-+-") + "\n" +
				"alpha | 1     | extra\nbeta  | 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, render(t, sample(t, "table"), tt.target, format.Options{}))
		})
	}
}

func TestRichSampleOWiki(t *testing.T) {
	t.Parallel()

	want := "@title Rich Sample\n@creator wikidoc\n@keywords sample, wiki\n\n" +
		"@toc 2\n\n{#overview}\n# Overview\n\n" +
		"::: note\n{#start}Inside a section :smile:.\n\nEnergy $$E = mc^2$$&nbsp;holds.\n:::\n\n" +
		"[tagged]{tag} words\n\n## Index\n\n@index\n"

	assert.Equal(t, want, render(t, sample(t, "rich"), format.TargetOWiki, format.Options{}))
}

func TestRichSampleHTML(t *testing.T) {
	t.Parallel()

	out := render(t, sample(t, "rich"), format.TargetHTML, format.Options{})

	assert.Equal(t,
		"<ul class=\"toc\">\n<li><a href=\"#overview\">Overview</a>\n<ul>\n"+
			"<li><a href=\"#index\">Index</a></li>\n</ul>\n</li>\n</ul>\n"+
			"<h1 id=\"overview\">Overview</h1>\n"+
			"<div class=\"note\">\n"+
			"<p><a id=\"start\"></a>Inside a section <img class=\"symbol\" src=\"smile.png\" alt=\":)\" />.</p>\n"+
			"<p>Energy <span class=\"equation\">E = mc^2</span>&nbsp;holds.</p>\n"+
			"</div>\n"+
			"<p><span class=\"tag\">tagged</span> words</p>\n"+
			"<h2 id=\"index\">Index</h2>\n"+
			"<ul class=\"index\">\n<li><a href=\"#start\">start</a></li>\n</ul>\n",
		out)
}

func TestHTMLTableOfContentsNesting(t *testing.T) {
	t.Parallel()

	doc := dm.NewDocument(
		&dm.TableOfContents{Depth: 2},
		dm.Heading(1, dm.Text("A")),
		dm.Heading(2, dm.Text("B")),
		dm.Heading(3, dm.Text("C")),
		dm.Heading(1, dm.Text("A")),
	)

	assert.Equal(t,
		"<ul class=\"toc\">\n"+
			"<li><a href=\"#a\">A</a>\n<ul>\n<li><a href=\"#b\">B</a></li>\n</ul>\n</li>\n"+
			"<li><a href=\"#a-2\">A</a></li>\n"+
			"</ul>\n"+
			"<h1 id=\"a\">A</h1>\n<h2 id=\"b\">B</h2>\n<h3 id=\"c\">C</h3>\n<h1 id=\"a-2\">A</h1>\n",
		render(t, doc, format.TargetHTML, format.Options{}))
}

func TestHTMLCode(t *testing.T) {
	t.Parallel()

	doc := dm.NewDocument(
		&dm.CodeBlock{Language: "csharp", Text: "int x;"},
		&dm.CodeBlock{Text: "a < b"},
		dm.Para(&dm.InlineCode{Code: "<tag>", Language: "xml"}),
	)

	assert.Equal(t,
		"<pre><code class=\"language-csharp\"><span class=\"keyword\">int</span> x;</code></pre>\n"+
			"<pre><code>a &lt; b</code></pre>\n"+
			"<p><code class=\"language-xml\">&lt;tag&gt;</code></p>\n",
		render(t, doc, format.TargetHTML, format.Options{}))
}

func TestHTMLCellAttributes(t *testing.T) {
	t.Parallel()

	cell := dm.Cell(dm.Text("x"))
	cell.ColSpan = 2
	cell.HAlign = dm.AlignRight
	cell.VAlign = dm.VAlignTop

	doc := dm.NewDocument(&dm.Table{Rows: []*dm.TableRow{dm.Row(cell)}})

	assert.Equal(t,
		"<table>\n<tr><td colspan=\"2\" style=\"text-align: right; vertical-align: top\">x</td></tr>\n</table>\n",
		render(t, doc, format.TargetHTML, format.Options{}))
}

func TestHTMLStandalone(t *testing.T) {
	t.Parallel()

	doc := &dm.Document{
		Metadata: dm.Metadata{Title: "Doc <1>", Creator: "me", Keywords: []string{"a", "b"}},
		Blocks:   []dm.Block{dm.Para(dm.Text("body"))},
	}

	out := render(t, doc, format.TargetHTML, format.Options{Standalone: true, CSSPath: "site.css"})

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html>\n<head>\n"))
	assert.Contains(t, out, "<title>Doc &lt;1&gt;</title>\n")
	assert.Contains(t, out, `<meta name="author" content="me" />`)
	assert.Contains(t, out, `<meta name="keywords" content="a, b" />`)
	assert.Contains(t, out, `<link rel="stylesheet" href="site.css" />`)
	assert.Contains(t, out, "h1 {\n  font-family: Helvetica, Arial, sans-serif;\n  font-size: 24pt;\n  font-weight: bold;\n")
	assert.Contains(t, out, "<body>\n<p>body</p>\n</body>\n</html>\n")
}

func TestStyleSheetCSS(t *testing.T) {
	t.Parallel()

	sheet := dm.NewStyleSheet()
	sheet.Set(dm.RoleQuote, dm.NewStyle().WithItalic(true).WithMargin(dm.Box{Left: 16}))
	sheet.Set(dm.RoleTable, dm.NewStyle().WithBorder(1, "#ccc"))

	assert.Equal(t,
		"blockquote {\n  font-style: italic;\n  margin: 0 0 0 16pt;\n}\n"+
			"table, th, td {\n  border: 1pt solid #ccc;\n}\n",
		format.StyleSheetCSS(sheet))
}

func TestMarkdownSpecifics(t *testing.T) {
	t.Parallel()

	doc := &dm.Document{
		Metadata: dm.Metadata{Title: "T", Keywords: []string{"a", "b"}},
		Blocks: []dm.Block{
			dm.Para(
				dm.Link("https://x.org", dm.Text("https://x.org")),
				dm.Text(" "),
				&dm.Anchor{Name: "n"},
				&dm.Span{Class: "c", Content: []dm.Inline{dm.Text("span")}},
			),
			&dm.Table{Rows: []*dm.TableRow{
				dm.Row(
					&dm.TableCell{Header: true, HAlign: dm.AlignLeft, Blocks: []dm.Block{dm.Para(dm.Text("l"))}},
					&dm.TableCell{Header: true, HAlign: dm.AlignCenter, Blocks: []dm.Block{dm.Para(dm.Text("c"))}},
					&dm.TableCell{Header: true, HAlign: dm.AlignRight, Blocks: []dm.Block{dm.Para(dm.Text("r"))}},
				),
			}},
		},
	}

	assert.Equal(t,
		"---\ntitle: T\nkeywords: [a, b]\n---\n\n"+
			"<https://x.org> <a name=\"n\"></a>span\n\n"+
			"| l   | c   | r   |\n| :-- | :-: | --: |\n",
		render(t, doc, format.TargetMarkdown, format.Options{}))
}

func TestInlineCodeDelimiters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"plain", "`plain`"},
		{"a`b", "``a`b``"},
		{"`x", "`` `x ``"},
		{"  padded  ", "`   padded   `"},
		{"a``b", "```a``b```"},
		{"``", "``` `` ```"},
	}

	for _, tt := range tests {
		doc := dm.NewDocument(dm.Para(&dm.InlineCode{Code: tt.code}))
		assert.Equal(t, tt.want+"\n", render(t, doc, format.TargetMarkdown, format.Options{}), tt.code)
	}
}

func TestCreoleSpecifics(t *testing.T) {
	t.Parallel()

	doc := dm.NewDocument(
		dm.Para(
			dm.Link("https://x.org/a|b", dm.Text("https://x.org/a|b")),
			dm.Text(" "),
			&dm.Image{Source: "p.png", Alt: "pic", Link: "page"},
			&dm.LineBreak{},
			&dm.Anchor{Name: "here"},
		),
		&dm.CodeBlock{Language: "go", Text: "a\n}}}\nb"},
		&dm.TableOfContents{},
	)

	assert.Equal(t,
		"[[https://x.org/a~|b]] [[page|{{p.png|pic}}]]\\\\<<anchor here>>\n\n"+
			"{{{#!go\na\n }}}\nb\n}}}\n\n<<toc>>\n",
		render(t, doc, format.TargetCreole, format.Options{}))
}

func TestCodeplexSpecifics(t *testing.T) {
	t.Parallel()

	doc := dm.NewDocument(
		dm.Para(
			dm.Link("https://x.org", dm.Text("site")),
			dm.Text(" "),
			&dm.Image{Source: "p.png", Alt: "pic"},
			dm.Text(" "),
			&dm.InlineCode{Code: "x*y"},
		),
		&dm.CodeBlock{Text: "raw"},
		&dm.TableOfContents{},
	)

	assert.Equal(t,
		"[url:site|https://x.org] [image:pic|p.png] {\"x*y\"}\n\n{code:text}\nraw\n{code:text}\n\n",
		render(t, doc, format.TargetCodeplex, format.Options{}))
}

func TestConfluenceSpecifics(t *testing.T) {
	t.Parallel()

	section := &dm.Section{Blocks: []dm.Block{dm.Para(dm.Text("in"))}}
	section.Class = "Note"

	doc := dm.NewDocument(
		dm.Para(&dm.Image{Source: "p.png", Alt: "pic", Link: "https://x.org"}, &dm.InlineCode{Code: "{x}"}),
		&dm.CodeBlock{Language: "java", Text: "int a;"},
		section,
		&dm.TableOfContents{Depth: 2},
	)

	assert.Equal(t,
		"[!p.png|alt=pic!|https://x.org]{{\\{x\\}}}\n\n"+
			"{code:language=java}\nint a;\n{code}\n\n"+
			"{panel:title=Note}\nin\n{panel}\n\n"+
			"{toc:maxLevel=2}\n",
		render(t, doc, format.TargetConfluence, format.Options{}))
}

func TestMacroCodeBlocksCannotBeClosedByContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target format.Target
		block  *dm.CodeBlock
		want   string
	}{
		{
			format.TargetConfluence,
			&dm.CodeBlock{Language: "java", Text: "a\n{code}\n*b*"},
			"{noformat}\na\n{code}\n*b*\n{noformat}\n",
		},
		{
			format.TargetConfluence,
			&dm.CodeBlock{Text: "{code}{noformat}"},
			"{noformat}\n{code}{ noformat}\n{noformat}\n",
		},
		{
			format.TargetCodeplex,
			&dm.CodeBlock{Language: "go", Text: "a\n{code:go}\nb"},
			"{code:go}\na\n{ code:go}\nb\n{code:go}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, render(t, dm.NewDocument(tt.block), tt.target, format.Options{}))
		})
	}
}

func TestTextSpecifics(t *testing.T) {
	t.Parallel()

	doc := dm.NewDocument(
		&dm.TableOfContents{},
		dm.Heading(1, dm.Text("Top")),
		dm.Heading(2, dm.Text("Sub")),
		dm.Para(dm.Link("https://x.org", dm.Text("site")), dm.Text(" "), &dm.Image{Source: "p.png", Alt: "pic"}),
		&dm.CodeBlock{Text: "a\n\nb"},
	)

	assert.Equal(t,
		"* Top\n  * Sub\n\nTop\n===\n\nSub\n---\n\nsite <https://x.org> pic\n\n    a\n\n    b\n",
		render(t, doc, format.TargetText, format.Options{}))
}
