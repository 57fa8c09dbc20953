package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/wikidoc/pkg/config"
)

// loadVariablesFile reads substitution variables from a flat TOML or YAML
// table. Non-string values are formatted with fmt.
func loadVariablesFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read variables file: %w", err)
	}

	raw := make(map[string]any)
	if config.IsTOMLPath(path) {
		if _, err := toml.Decode(string(content), &raw); err != nil {
			return nil, fmt.Errorf("parse variables file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse variables file %s: %w", path, err)
	}

	vars := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("variables file %s: %q must be a scalar", path, name)
		case nil:
			vars[name] = ""
		default:
			vars[name] = fmt.Sprint(v)
		}
	}

	return vars, nil
}

// parseVariables parses name=value pairs. A bare name is set to the empty
// string.
func parseVariables(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, _ := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: variable %q has no name", ErrInvalidUsage, pair)
		}
		vars[name] = value
	}

	return vars, nil
}
