// Package textdiff renders unified diffs between an existing output file
// and freshly converted content.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextLines is the number of unchanged lines shown around changes.
const ContextLines = 3

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Created is true when there was no original file.
	Created bool

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk represents a single hunk in a unified diff.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []Line
}

// Line represents a single line in a diff hunk.
type Line struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind LineKind

	// Content is the line content (without the diff prefix).
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// Generate creates a unified diff between original and modified content.
// A nil original marks a file that does not exist yet. Returns nil if
// there are no changes.
func Generate(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	matcher := difflib.NewMatcher(origLines, modLines)

	diff := &Diff{Path: path, Created: original == nil}
	for _, group := range matcher.GetGroupedOpCodes(ContextLines) {
		diff.Hunks = append(diff.Hunks, diff.buildHunk(group, origLines, modLines))
	}

	if len(diff.Hunks) == 0 {
		return nil
	}

	return diff
}

func (d *Diff) buildHunk(group []difflib.OpCode, orig, mod []string) Hunk {
	first, last := group[0], group[len(group)-1]

	hunk := Hunk{
		OriginalStart: rangeStart(first.I1, last.I2),
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: rangeStart(first.J1, last.J2),
		ModifiedCount: last.J2 - first.J1,
	}

	for _, op := range group {
		if op.Tag == 'e' {
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Content: line})
			}
			continue
		}

		if op.Tag == 'r' || op.Tag == 'd' {
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineRemove, Content: line})
				d.Deletions++
			}
		}

		if op.Tag == 'r' || op.Tag == 'i' {
			for _, line := range mod[op.J1:op.J2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineAdd, Content: line})
				d.Additions++
			}
		}
	}

	return hunk
}

// rangeStart returns the 1-based start of a hunk range. Empty ranges
// point at the line before them.
func rangeStart(start, stop int) int {
	if stop == start {
		return start
	}

	return start + 1
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	if d.Created {
		builder.WriteString("--- /dev/null\n")
	} else {
		fmt.Fprintf(&builder, "--- a/%s\n", path)
	}
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case LineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case LineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines, removing the trailing newline if present.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
