// Package config defines the configuration types of wikidoc.
// These types are plain data; discovery, merging and validation live in
// internal/configloader.
package config

// OutputFormat specifies the format of the conversion report.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats returns every report format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatDiff, FormatSummary}
}

// IsValid reports whether f is a known report format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// StyleConfig overrides the presentation of one style role. Unset fields
// keep the built-in value.
type StyleConfig struct {
	FontFamily  string    `yaml:"font_family,omitempty" toml:"font_family,omitempty"`
	FontSize    float64   `yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	Bold        *bool     `yaml:"bold,omitempty" toml:"bold,omitempty"`
	Italic      *bool     `yaml:"italic,omitempty" toml:"italic,omitempty"`
	Color       string    `yaml:"color,omitempty" toml:"color,omitempty"`
	Background  string    `yaml:"background,omitempty" toml:"background,omitempty"`
	Margin      []float64 `yaml:"margin,omitempty,flow" toml:"margin,omitempty"`
	Padding     []float64 `yaml:"padding,omitempty,flow" toml:"padding,omitempty"`
	BorderWidth float64   `yaml:"border_width,omitempty" toml:"border_width,omitempty"`
	BorderColor string    `yaml:"border_color,omitempty" toml:"border_color,omitempty"`
	Align       string    `yaml:"align,omitempty" toml:"align,omitempty"`
}

// Config is the root configuration structure for wikidoc.
type Config struct {
	// From is the source dialect. Empty picks it from each file extension.
	From string `yaml:"from,omitempty" toml:"from,omitempty"`

	// To is the target format.
	To string `yaml:"to,omitempty" toml:"to,omitempty"`

	// OutputDir receives converted files. Empty writes next to the input.
	OutputDir string `yaml:"output_dir,omitempty" toml:"output_dir,omitempty"`

	// Variables are substituted for $name references before parsing.
	Variables map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty"`

	// Defines are the names that are true for @if directives.
	Defines []string `yaml:"defines,omitempty" toml:"defines,omitempty"`

	// SymbolDirectory is the directory or URL prefix of symbol images.
	SymbolDirectory string `yaml:"symbol_directory,omitempty" toml:"symbol_directory,omitempty"`

	// Template is the path of an output template file.
	Template string `yaml:"template,omitempty" toml:"template,omitempty"`

	// CSS is the stylesheet path linked from HTML output.
	CSS string `yaml:"css,omitempty" toml:"css,omitempty"`

	// LocalLinkFormat rewrites relative links, e.g. "%s.html".
	LocalLinkFormat string `yaml:"local_link_format,omitempty" toml:"local_link_format,omitempty"`

	// Replacements are applied to the rendered output.
	Replacements map[string]string `yaml:"replacements,omitempty" toml:"replacements,omitempty"`

	// Typography converts ASCII sequences to typographic glyphs.
	Typography *bool `yaml:"typography,omitempty" toml:"typography,omitempty"`

	// Standalone renders complete HTML pages.
	Standalone *bool `yaml:"standalone,omitempty" toml:"standalone,omitempty"`

	// DetectLanguage guesses the language of untagged code blocks.
	DetectLanguage *bool `yaml:"detect_language,omitempty" toml:"detect_language,omitempty"`

	// Styles override the built-in style sheet, keyed by role name.
	Styles map[string]StyleConfig `yaml:"styles,omitempty" toml:"styles,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// DryRun converts without writing any file.
	DryRun bool `yaml:"-" toml:"-"`

	// Diff shows a unified diff against existing output files.
	Diff bool `yaml:"-" toml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		To:     "html",
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// TypographyEnabled reports whether typography is switched on.
func (c *Config) TypographyEnabled() bool { return isTrue(c.Typography) }

// StandaloneEnabled reports whether standalone pages are switched on.
func (c *Config) StandaloneEnabled() bool { return isTrue(c.Standalone) }

// DetectLanguageEnabled reports whether language detection is switched on.
func (c *Config) DetectLanguageEnabled() bool { return isTrue(c.DetectLanguage) }

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool { return &b }

func isTrue(b *bool) bool { return b != nil && *b }
