package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/config"
)

// envVarPrefix is the prefix for all wikidoc environment variables.
const envVarPrefix = "WIKIDOC_"

// envVarVariablePrefix introduces a substitution variable, e.g.
// WIKIDOC_VAR_VERSION=1.2 sets $version.
const envVarVariablePrefix = envVarPrefix + "VAR_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FROM":              {"from", envTypeString, "Source dialect: owiki, markdown, creole, commonmark or gfm"},
	"TO":                {"to", envTypeString, "Target format, e.g. html or markdown"},
	"OUTPUT_DIR":        {"output_dir", envTypeString, "Directory for converted files"},
	"SYMBOL_DIRECTORY":  {"symbol_directory", envTypeString, "Directory or URL prefix of symbol images"},
	"TEMPLATE":          {"template", envTypeString, "Output template file"},
	"CSS":               {"css", envTypeString, "Stylesheet linked from HTML output"},
	"LOCAL_LINK_FORMAT": {"local_link_format", envTypeString, "Format for relative links, e.g. %s.html"},
	"FORMAT":            {"format", envTypeString, "Report format: text, table, json, diff or summary"},
	"TYPOGRAPHY":        {"typography", envTypeBool, "Convert ASCII sequences to typographic glyphs: true or false"},
	"STANDALONE":        {"standalone", envTypeBool, "Render complete HTML pages: true or false"},
	"DETECT_LANGUAGE":   {"detect_language", envTypeBool, "Guess the language of untagged code blocks: true or false"},
	"DRY_RUN":           {"dry_run", envTypeBool, "Convert without writing files: true or false"},
	"JOBS":              {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"DEFINES":           {"defines", envTypeSlice, "Comma-separated names that are true for @if"},
	"IGNORE":            {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with WIKIDOC_ (e.g., WIKIDOC_TO).
func LoadFromEnv(cfg *config.Config) error {
	return applyEnv(cfg, os.Environ())
}

// applyEnv applies the WIKIDOC_ entries of environ, a list of KEY=value
// pairs, to cfg.
func applyEnv(cfg *config.Config, environ []string) error {
	if cfg == nil {
		return nil
	}

	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" || !strings.HasPrefix(key, envVarPrefix) {
			continue
		}

		if name, isVar := strings.CutPrefix(key, envVarVariablePrefix); isVar {
			if name == "" {
				continue
			}
			if cfg.Variables == nil {
				cfg.Variables = make(map[string]string)
			}
			cfg.Variables[strings.ToLower(name)] = value
			continue
		}

		mapping, known := envMappings[strings.TrimPrefix(key, envVarPrefix)]
		if !known {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, key); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "from":
		cfg.From = value
	case "to":
		cfg.To = value
	case "output_dir":
		cfg.OutputDir = value
	case "symbol_directory":
		cfg.SymbolDirectory = value
	case "template":
		cfg.Template = value
	case "css":
		cfg.CSS = value
	case "local_link_format":
		cfg.LocalLinkFormat = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "typography":
		cfg.Typography = config.Bool(value)
	case "standalone":
		cfg.Standalone = config.Bool(value)
	case "detect_language":
		cfg.DetectLanguage = config.Bool(value)
	case "dry_run":
		cfg.DryRun = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "defines":
		cfg.Defines = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings)+1)
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	vars = append(vars, EnvVar{
		Name:        envVarVariablePrefix + "<NAME>",
		Description: "Value substituted for $name references",
	})

	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	return vars
}
