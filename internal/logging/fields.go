// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Conversion fields.
	FieldDialect = "dialect"
	FieldTarget  = "target"
	FieldDryRun  = "dry_run"
	FieldJobs    = "jobs"
	FieldSymbol  = "symbol"
	FieldInclude = "include"
	FieldDepth   = "depth"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesWritten    = "files_written"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Listing fields.
	FieldName        = "name"
	FieldExtensions  = "extensions"
	FieldDescription = "description"
)
