package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikidoc/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()

		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies maps and slices", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Variables: map[string]string{"version": "1.0"},
			Defines:   []string{"DRAFT"},
			Ignore:    []string{"drafts/**"},
			Styles: map[string]config.StyleConfig{
				"paragraph": {FontSize: 12, Margin: []float64{1, 2}},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		clone.Variables["version"] = "2.0"
		clone.Defines[0] = "FINAL"
		clone.Ignore[0] = "changed"
		clone.Styles["paragraph"].Margin[0] = 9

		assert.Equal(t, "1.0", original.Variables["version"])
		assert.Equal(t, "DRAFT", original.Defines[0])
		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.InDelta(t, 1.0, original.Styles["paragraph"].Margin[0], 0)
	})

	t.Run("preserves all fields", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			From:            "markdown",
			To:              "confluence",
			OutputDir:       "out",
			SymbolDirectory: "img",
			Template:        "page.tmpl",
			CSS:             "site.css",
			LocalLinkFormat: "%s.html",
			Replacements:    map[string]string{"(c)": "©"},
			Typography:      config.Bool(true),
			Standalone:      config.Bool(false),
			DetectLanguage:  config.Bool(true),
			Jobs:            4,
			DryRun:          true,
			Diff:            true,
			Format:          config.FormatJSON,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)
		assert.NotSame(t, original.Typography, clone.Typography)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{From: "creole", To: "markdown", Jobs: 3}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "from: creole")
		assert.Contains(t, string(data), "to: markdown")
		assert.NotContains(t, string(data), "jobs")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{To: "html"}

		data, err := cfg.ToYAMLWithHeader("# header")
		require.NoError(t, err)
		assert.Equal(t, "# header\n\nto: html\n", string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
from: owiki
to: text
variables:
  name: wikidoc
defines: [A, B]
typography: true
styles:
  header1:
    font_size: 30
    bold: false
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "owiki", cfg.From)
	assert.Equal(t, "text", cfg.To)
	assert.Equal(t, map[string]string{"name": "wikidoc"}, cfg.Variables)
	assert.Equal(t, []string{"A", "B"}, cfg.Defines)
	assert.True(t, cfg.TypographyEnabled())
	assert.False(t, cfg.StandaloneEnabled())
	require.Contains(t, cfg.Styles, "header1")
	require.NotNil(t, cfg.Styles["header1"].Bold)
	assert.False(t, *cfg.Styles["header1"].Bold)

	_, err = config.FromYAML([]byte("to: [unterminated"))
	require.Error(t, err)
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid TOML", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
from = "markdown"
to = "html"
standalone = true
ignore = ["drafts/**"]

[variables]
version = "2.1"

[styles.code]
font_family = "Fira Code"
padding = [2, 4]
`)

		cfg, err := config.FromTOML(data)
		require.NoError(t, err)

		assert.Equal(t, "markdown", cfg.From)
		assert.True(t, cfg.StandaloneEnabled())
		assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
		assert.Equal(t, "2.1", cfg.Variables["version"])
		assert.Equal(t, "Fira Code", cfg.Styles["code"].FontFamily)
		assert.Equal(t, []float64{2, 4}, cfg.Styles["code"].Padding)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromTOML([]byte("flavour = \"gfm\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flavour")
	})

	t.Run("round trips through ToTOML", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			To:         "creole",
			Defines:    []string{"X"},
			Typography: config.Bool(true),
		}

		data, err := original.ToTOML()
		require.NoError(t, err)

		parsed, err := config.FromTOML(data)
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromFile("site/.wikidoc.toml", []byte(`to = "text"`))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.To)

	cfg, err = config.FromFile("site/.wikidoc.yml", []byte(`to: markdown`))
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.To)
}
