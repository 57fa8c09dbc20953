package configloader

import (
	"maps"

	"github.com/yaklabco/wikidoc/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	mergeString(&result.From, override.From)
	mergeString(&result.To, override.To)
	mergeString(&result.OutputDir, override.OutputDir)
	mergeString(&result.SymbolDirectory, override.SymbolDirectory)
	mergeString(&result.Template, override.Template)
	mergeString(&result.CSS, override.CSS)
	mergeString(&result.LocalLinkFormat, override.LocalLinkFormat)

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// CLI-only switches can only be turned on.
	if override.DryRun {
		result.DryRun = true
	}
	if override.Diff {
		result.Diff = true
	}

	if override.Typography != nil {
		result.Typography = override.Typography
	}
	if override.Standalone != nil {
		result.Standalone = override.Standalone
	}
	if override.DetectLanguage != nil {
		result.DetectLanguage = override.DetectLanguage
	}

	result.Variables = mergeMap(base.Variables, override.Variables)
	result.Replacements = mergeMap(base.Replacements, override.Replacements)
	result.Styles = mergeStyles(base.Styles, override.Styles)

	if override.Defines != nil {
		result.Defines = override.Defines
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeString(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}

// mergeMap returns a new map holding base overlaid with override.
func mergeMap(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)

	return result
}

// mergeStyles performs deep merge of style overrides per role.
func mergeStyles(base, override map[string]config.StyleConfig) map[string]config.StyleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.StyleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for role, val := range override {
		if existing, ok := result[role]; ok {
			result[role] = mergeStyleConfig(existing, val)
		} else {
			result[role] = val
		}
	}

	return result
}

// mergeStyleConfig merges individual style overrides.
// override's values take precedence over base's values.
func mergeStyleConfig(base, override config.StyleConfig) config.StyleConfig {
	result := base

	mergeString(&result.FontFamily, override.FontFamily)
	mergeString(&result.Color, override.Color)
	mergeString(&result.Background, override.Background)
	mergeString(&result.BorderColor, override.BorderColor)
	mergeString(&result.Align, override.Align)

	if override.FontSize != 0 {
		result.FontSize = override.FontSize
	}
	if override.BorderWidth != 0 {
		result.BorderWidth = override.BorderWidth
	}
	if override.Bold != nil {
		result.Bold = override.Bold
	}
	if override.Italic != nil {
		result.Italic = override.Italic
	}
	if override.Margin != nil {
		result.Margin = override.Margin
	}
	if override.Padding != nil {
		result.Padding = override.Padding
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
