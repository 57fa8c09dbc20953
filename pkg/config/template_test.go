package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikidoc/pkg/config"
)

func TestGenerateTemplateParses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts config.TemplateOptions
	}{
		{"minimal yaml", config.TemplateOptions{}},
		{"full yaml", config.TemplateOptions{Full: true, Format: "yaml"}},
		{"minimal toml", config.TemplateOptions{Format: "toml"}},
		{"full toml", config.TemplateOptions{Full: true, Format: "toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(tt.opts)
			require.NoError(t, err)
			assert.Contains(t, string(data), "# wikidoc configuration")

			path := ".wikidoc.yml"
			if tt.opts.Format == "toml" {
				path = ".wikidoc.toml"
			}

			cfg, err := config.FromFile(path, data)
			require.NoError(t, err)
			assert.Equal(t, "html", cfg.To)

			if tt.opts.Full {
				_, err := cfg.StyleSheet()
				require.NoError(t, err)
				assert.Contains(t, cfg.Styles, "header1")
				assert.Contains(t, cfg.Styles, "hyperlink")
			}
		})
	}
}

func TestGenerateTemplateFullMatchesDefaults(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	sheet, err := cfg.StyleSheet()
	require.NoError(t, err)

	defaults, err := (&config.Config{}).StyleSheet()
	require.NoError(t, err)

	assert.Equal(t, defaults, sheet)
}

func TestGenerateTemplateRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.Error(t, err)
}
