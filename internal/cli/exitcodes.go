package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gosmf/pkg/fsutil"
	"github.com/yaklabco/gosmf/pkg/runner"
)

var (
	// ErrDiagnosticsFound is returned when a command reports error findings.
	ErrDiagnosticsFound = errors.New("diagnostics found")

	// ErrWarningsFound is returned in strict mode when only warnings were found.
	ErrWarningsFound = errors.New("warnings found")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("invalid configuration")

	// ErrInvalidUsage marks bad flag or argument combinations.
	ErrInvalidUsage = errors.New("invalid usage")
)

// Exit codes for gosmf.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitCheckErrors indicates the check completed but found errors or
	// unreadable files.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates the check found warnings (strict mode only).
	ExitCheckWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitCheckErrors
	}

	if strict && result.Stats.FindingsBySeverity[runner.SeverityWarning] > 0 {
		return ExitCheckWarnings
	}

	return ExitSuccess
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrWarningsFound):
		return ExitCheckWarnings
	case errors.Is(err, ErrDiagnosticsFound), errors.Is(err, ErrNotFormatted), errors.Is(err, ErrSyntax):
		return ExitCheckErrors
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrModified), errors.Is(err, fsutil.ErrIsDirectory), errors.Is(err, ErrNoSource):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
