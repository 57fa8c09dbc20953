// Package configloader resolves the wikidoc configuration from config
// files, WIKIDOC_* environment variables and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/wikidoc/pkg/config"
	"github.com/yaklabco/wikidoc/pkg/fsutil"
)

// LoadOptions controls Load.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Empty means
	// the process working directory.
	WorkingDir string

	// ExplicitPath comes from --config and is always read when set.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig is the flag layer, applied last.
	CLIConfig *config.Config
}

// LoadResult is a resolved configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

// Load merges, from lowest to highest precedence: defaults, the system,
// user, project and explicit config files, the environment and the CLI
// layer. The merged result is validated once more before it is returned.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover config files: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	files := map[string]string{}
	if !opts.IgnoreSystemConfig {
		files["system"] = paths.System
	}
	if !opts.IgnoreUserConfig {
		files["user"] = paths.User
	}
	if !opts.IgnoreProjectConfig {
		files["project"] = paths.Project
	}
	files["explicit"] = paths.Explicit

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, level := range []string{"system", "user", "project", "explicit"} {
		path := files[level]
		if path == "" {
			continue
		}

		layer, err := loadConfigFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", level, err)
		}

		cfg = merge(cfg, layer)
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile parses and validates one config file. A relative
// template path is taken relative to the file.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromFile(path, content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	if cfg.Template != "" && !filepath.IsAbs(cfg.Template) {
		cfg.Template = filepath.Join(filepath.Dir(path), cfg.Template)
	}

	if validation := ValidateWithFile(cfg, path); !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	return cfg, nil
}
