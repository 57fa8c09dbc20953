package config

import (
	"bytes"
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes. Unknown keys are
// rejected.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("parse toml: unknown keys: %s", strings.Join(keys, ", "))
	}

	return cfg, nil
}

// FromFile parses configuration bytes, choosing TOML or YAML by the
// extension of path.
func FromFile(path string, data []byte) (*Config, error) {
	if IsTOMLPath(path) {
		return FromTOML(data)
	}

	return FromYAML(data)
}

// IsTOMLPath reports whether path names a TOML file.
func IsTOMLPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	yamlBytes, err := c.ToYAML()
	if err != nil {
		return c.deepCopy()
	}

	clone, err := FromYAML(yamlBytes)
	if err != nil {
		return c.deepCopy()
	}

	c.copyCLIFields(clone)

	return clone
}

// copyCLIFields copies CLI-only fields (yaml:"-") to the target config.
func (c *Config) copyCLIFields(target *Config) {
	target.Jobs = c.Jobs
	target.DryRun = c.DryRun
	target.Diff = c.Diff
	target.Format = c.Format
}

// deepCopy creates a manual deep copy of the configuration.
// This is used as a fallback when YAML round-trip fails.
func (c *Config) deepCopy() *Config {
	clone := *c

	clone.Variables = maps.Clone(c.Variables)
	clone.Replacements = maps.Clone(c.Replacements)
	clone.Defines = cloneStrings(c.Defines)
	clone.Ignore = cloneStrings(c.Ignore)
	clone.Typography = cloneBool(c.Typography)
	clone.Standalone = cloneBool(c.Standalone)
	clone.DetectLanguage = cloneBool(c.DetectLanguage)

	if c.Styles != nil {
		clone.Styles = make(map[string]StyleConfig, len(c.Styles))
		for role, style := range c.Styles {
			clone.Styles[role] = style.clone()
		}
	}

	return &clone
}

func (sc StyleConfig) clone() StyleConfig {
	clone := sc
	clone.Bold = cloneBool(sc.Bold)
	clone.Italic = cloneBool(sc.Italic)
	if sc.Margin != nil {
		clone.Margin = append([]float64(nil), sc.Margin...)
	}
	if sc.Padding != nil {
		clone.Padding = append([]float64(nil), sc.Padding...)
	}

	return clone
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}

	return append([]string(nil), s...)
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}

	v := *b

	return &v
}
