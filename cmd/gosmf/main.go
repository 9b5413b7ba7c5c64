// Package main is the entry point for the gosmf CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gosmf/internal/cli"
	"github.com/yaklabco/gosmf/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil && !isExitSignal(err) {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCodeFromError(err)
}

// isExitSignal reports errors that only select the exit code; the command
// has already reported the details.
func isExitSignal(err error) bool {
	return errors.Is(err, cli.ErrDiagnosticsFound) ||
		errors.Is(err, cli.ErrWarningsFound) ||
		errors.Is(err, cli.ErrNotFormatted)
}
