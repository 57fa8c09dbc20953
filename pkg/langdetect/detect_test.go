package langdetect_test

import (
	"testing"

	"github.com/yaklabco/wikidoc/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "shebang python",
			content:  "#!/usr/bin/env python3\nprint('hello')",
			expected: "python",
		},
		{
			name:     "go code",
			content:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			expected: "go",
		},
		{
			name:     "csharp using",
			content:  "using System.Text;\n\nvar sb = new StringBuilder();",
			expected: "csharp",
		},
		{
			name:     "csharp class",
			content:  "public class Demo\n{\n    private int x = 1;\n}",
			expected: "csharp",
		},
		{
			name:     "xml prolog",
			content:  "<?xml version=\"1.0\"?>\n<root/>",
			expected: "xml",
		},
		{
			name:     "xml element",
			content:  "<config>\n  <item key=\"a\">1</item>\n</config>",
			expected: "xml",
		},
		{
			name:     "html page",
			content:  "<!DOCTYPE html>\n<html><body></body></html>",
			expected: "html",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "sql statement",
			content:  "SELECT id FROM users WHERE name = 'x'",
			expected: "sql",
		},
		{
			name:     "empty",
			content:  "  \n ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.Detect(tt.content); got != tt.expected {
				t.Errorf("Detect() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"C#":     "csharp",
		"cs":     "csharp",
		"Shell":  "bash",
		"js":     "javascript",
		" XML ":  "xml",
		"golang": "go",
		"Ruby":   "ruby",
	}

	for input, want := range tests {
		if got := langdetect.Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}
