// Package runner converts many wiki documents concurrently.
package runner

import (
	"github.com/charmbracelet/log"
)

// Options controls a batch conversion.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// converted when walking directories. Defaults to the extensions of
	// every wiki dialect via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// OutputDir receives the converted files, mirroring their location
	// relative to WorkingDir. Empty writes next to each input.
	OutputDir string

	// DryRun converts without writing.
	DryRun bool

	// Diff computes a unified diff against each existing output file.
	// Nothing is written.
	Diff bool

	// Logger receives per-file debug messages. Nil discards them.
	Logger *log.Logger
}

// DefaultExtensions returns the extensions of every wiki dialect.
func DefaultExtensions() []string {
	return allExtensions()
}

// ExtensionsFor returns the extensions read by the named source, or the
// defaults when from is empty or unknown.
func ExtensionsFor(from string) []string {
	if from == "" {
		return DefaultExtensions()
	}

	src, err := ParseSource(from)
	if err != nil {
		return DefaultExtensions()
	}

	return src.Extensions()
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// writes reports whether converted files are written.
func (o Options) writes() bool {
	return !o.DryRun && !o.Diff
}
