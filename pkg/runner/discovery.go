package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/wikidoc/pkg/fsutil"
)

// Discover returns the sorted, de-duplicated absolute paths of the
// documents named by opts. Explicit files are kept whatever their
// extension and only the exclude patterns apply to them; directories are
// walked for files with one of the effective extensions.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
	}

	var files []string

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %w", fsutil.ErrNotFound, err)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("%w: %w", fsutil.ErrPermissionDenied, err)
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !w.excluded(path) {
				files = append(files, path)
			}
			continue
		}

		found, err := w.walk(ctx, path)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir != "" {
		return filepath.Abs(workDir)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

type walker struct {
	workDir    string
	extensions []string
	excludes   []glob.Glob
	follow     bool
}

// walk recursively walks a directory and returns matching documents.
func (w *walker) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && w.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped
			}
			if info.IsDir() {
				if !w.follow {
					return nil
				}
				// Walk the target, not the link: WalkDir uses Lstat on its root.
				subFiles, err := w.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if hasMatchingExtension(path, w.extensions) && !w.excluded(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// excluded reports whether path, taken relative to the working directory,
// matches an exclude pattern.
func (w *walker) excluded(path string) bool {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		relPath = path
	}

	return matchAny(w.excludes, filepath.ToSlash(relPath))
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// compileGlobs compiles exclude patterns with '/' as the separator.
// "dir/**" also matches dir itself, "**/name" also matches name at the
// top level, and a pattern without a slash matches the base name.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var globs []glob.Glob

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if pattern == "" {
			continue
		}

		variants := []string{pattern}
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && prefix != "" {
			variants = append(variants, prefix)
		}
		if suffix, ok := strings.CutPrefix(pattern, "**/"); ok && suffix != "" {
			variants = append(variants, suffix)
		}
		if !strings.Contains(pattern, "/") {
			variants = append(variants, "**/"+pattern)
		}

		for _, variant := range variants {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			globs = append(globs, g)
		}
	}

	return globs, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
