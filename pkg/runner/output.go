package runner

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrOverwritesSource is returned when a converted file would replace its
// own input.
var ErrOverwritesSource = errors.New("output would overwrite the source file")

// OutputPath returns where the conversion of input is written. The input
// extension is replaced by ext. With an outputDir the file keeps its
// location relative to workDir; inputs outside workDir are placed at the
// top of outputDir.
func OutputPath(input, workDir, outputDir, ext string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ext

	if outputDir == "" {
		out := filepath.Join(filepath.Dir(input), name)
		if filepath.Clean(out) == filepath.Clean(input) {
			return "", ErrOverwritesSource
		}
		return out, nil
	}

	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(workDir, outputDir)
	}

	relDir := "."
	if rel, err := filepath.Rel(workDir, filepath.Dir(input)); err == nil && !escapes(rel) {
		relDir = rel
	}

	out := filepath.Join(outputDir, relDir, name)
	if filepath.Clean(out) == filepath.Clean(input) {
		return "", ErrOverwritesSource
	}

	return out, nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
