package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/wikidoc/pkg/config"
	"github.com/yaklabco/wikidoc/pkg/format"
	"github.com/yaklabco/wikidoc/pkg/parser"
	"github.com/yaklabco/wikidoc/pkg/parser/goldmark"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

// Error renders "file: field: message", omitting unknown parts.
func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult collects errors, which stop a run, and warnings, which
// do not.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages lists errors then warnings, each with its severity prefix.
func (r *ValidationResult) AllMessages() []string {
	var messages []string
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks names, counts, styles and ignore patterns in cfg. A nil
// cfg is valid.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.From != "" && !IsValidSource(cfg.From) {
		result.fail("from", cfg.From, "invalid source dialect %q; must be one of: %s",
			cfg.From, strings.Join(SourceNames(), ", "))
	}

	if cfg.To != "" {
		if _, err := format.ParseTarget(cfg.To); err != nil {
			result.fail("to", cfg.To, "%v", err)
		}
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, diff, summary", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	// The link format is applied with a single %s; anything else drops or
	// repeats the target.
	if f := cfg.LocalLinkFormat; f != "" {
		if n := strings.Count(f, "%s"); n != 1 {
			result.warn("local_link_format", f, "expected exactly one %%s verb, found %d", n)
		}
	}

	if _, err := cfg.StyleSheet(); err != nil {
		result.fail("styles", nil, "%v", err)
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// ValidateWithFile is Validate with filePath recorded on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSource reports whether name is a wiki dialect or a goldmark
// flavor.
func IsValidSource(name string) bool {
	if goldmark.IsFlavor(strings.ToLower(name)) {
		return true
	}

	_, err := parser.ParseDialect(name)

	return err == nil
}

// SourceNames lists the accepted source dialect names.
func SourceNames() []string {
	var names []string
	for _, d := range parser.Dialects() {
		names = append(names, d.String())
	}

	return append(names, goldmark.Flavors()...)
}
