// Package langdetect guesses the language of untagged code blocks so that
// formatters can pick a highlighter. Detection uses go-enry, preceded by a
// small table of highly indicative patterns for the languages wiki pages
// most often embed.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language tags returned by Detect.
const (
	CSharp     = "csharp"
	XML        = "xml"
	HTML       = "html"
	Go         = "go"
	Python     = "python"
	JavaScript = "javascript"
	JSON       = "json"
	YAML       = "yaml"
	SQL        = "sql"
	Bash       = "bash"
)

// patternRule maps a content test to a language tag.
type patternRule struct {
	lang  string
	match func(content []byte) bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var (
	csharpUsing     = regexp.MustCompile(`(?m)^\s*using\s+System(\.\w+)*\s*;`)
	csharpNamespace = regexp.MustCompile(`(?m)^\s*namespace\s+[\w.]+\s*(\{|;)`)
	csharpMember    = regexp.MustCompile(`\b(public|private|protected|internal)\s+(static\s+)?(class|void|string|int|bool|async|override)\b`)
	xmlProlog       = regexp.MustCompile(`^\s*<\?xml\s`)
	xmlElement      = regexp.MustCompile(`^\s*<([A-Za-z_][\w:.-]*)[^>]*>[\s\S]*</([A-Za-z_][\w:.-]*)>\s*$`)
	sqlStatement    = regexp.MustCompile(`(?i)^\s*(select|insert|update|delete|create)\s`)
)

// patterns are checked in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []patternRule{
	{Go, func(c []byte) bool { return bytes.HasPrefix(bytes.TrimSpace(c), []byte("package ")) }},
	{CSharp, func(c []byte) bool {
		return csharpUsing.Match(c) || csharpNamespace.Match(c) ||
			(csharpMember.Match(c) && bytes.Contains(c, []byte(";")))
	}},
	{HTML, func(c []byte) bool {
		lower := bytes.ToLower(c)
		return bytes.Contains(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{XML, func(c []byte) bool { return xmlProlog.Match(c) || xmlElement.Match(c) }},
	{Python, func(c []byte) bool {
		s := string(c)
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) || strings.Contains(s, "__main__")
	}},
	{JSON, func(c []byte) bool {
		trimmed := bytes.TrimSpace(c)
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`":`))
	}},
	{SQL, sqlStatement.Match},
	{JavaScript, func(c []byte) bool {
		s := string(c)
		return strings.Contains(s, "console.log") || strings.Contains(s, "=> {") || strings.Contains(s, "function ")
	}},
}

// classifierCandidates limits the go-enry classifier to likely languages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"C#", "Java", "JavaScript", "TypeScript", "Go", "Python", "Ruby", "C", "C++",
	"Shell", "SQL", "XML", "HTML", "CSS", "JSON", "YAML",
}

// Detect returns the language tag for code content, or "" when no language
// can be determined with confidence.
func Detect(content string) string {
	data := []byte(content)
	if len(bytes.TrimSpace(data)) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(data); safe {
		return Normalize(lang)
	}

	for _, rule := range patterns {
		if rule.match(data) {
			return rule.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(data, classifierCandidates); safe && lang != "" {
		return Normalize(lang)
	}

	return ""
}

// Normalize converts a go-enry language name or a user-written fence tag
// into the tag used throughout wikidoc.
func Normalize(lang string) string {
	lower := strings.ToLower(strings.TrimSpace(lang))

	switch lower {
	case "c#", "cs", "c-sharp":
		return CSharp
	case "shell", "sh", "zsh":
		return Bash
	case "js", "node":
		return JavaScript
	case "py":
		return Python
	case "yml":
		return YAML
	case "golang":
		return Go
	}

	return lower
}
