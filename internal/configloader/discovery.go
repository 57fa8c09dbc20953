package configloader

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for one run. An empty
// field means no file exists at that level.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Candidate file names, most preferred first.
var (
	projectNames = []string{".wikidoc.yml", ".wikidoc.yaml", ".wikidoc.toml"}
	dirNames     = []string{"config.yaml", "config.yml", "config.toml"}
	vcsMarkers   = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths looks for the system config (/etc/wikidoc, or
// %ProgramData%\wikidoc on Windows), the user config in UserConfigDir and
// the nearest project config above workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirNames),
		User:    firstFile(UserConfigDir(), dirNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/wikidoc"
	}

	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "wikidoc")
}

// UserConfigDir is $XDG_CONFIG_HOME/wikidoc, falling back to
// ~/.config/wikidoc. It is empty when neither is known.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wikidoc")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wikidoc")
}

// FindProjectConfig walks from startDir towards the root and returns the
// first project config file. The walk ends without a match at a VCS
// root, the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if path := firstFile(dir, projectNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || hasVCSMarker(dir) {
			return "", nil
		}
		dir = parent
	}
}

func hasVCSMarker(dir string) bool {
	for _, marker := range vcsMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
