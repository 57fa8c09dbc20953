package cli

import (
	"errors"

	"github.com/yaklabco/wikidoc/internal/configloader"
	"github.com/yaklabco/wikidoc/pkg/format"
	"github.com/yaklabco/wikidoc/pkg/fsutil"
	"github.com/yaklabco/wikidoc/pkg/parser"
	"github.com/yaklabco/wikidoc/pkg/runner"
)

// Exit codes for wikidoc.
const (
	// ExitSuccess indicates every file converted.
	ExitSuccess = 0

	// ExitConversionErrors indicates at least one file failed to convert.
	ExitConversionErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrConversionFailed is returned when one or more files failed to
	// convert. The failures have already been reported.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrInvalidUsage marks errors in flags or arguments.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code of a batch run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitConversionErrors
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError

	switch {
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionErrors
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrInvalidUsage),
		errors.Is(err, format.ErrInvalidTarget),
		errors.Is(err, parser.ErrInvalidDialect),
		errors.Is(err, runner.ErrUnknownSource),
		errors.Is(err, runner.ErrOverwritesSource):
		return ExitInvalidUsage
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
