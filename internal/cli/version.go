package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/logging"
)

// develVersion is the version of binaries built without release ldflags.
const develVersion = "dev"

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash and build date of gosmf, together with
the Go toolchain and platform it was built for.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Level: log.InfoLevel})
			logger.Info(logging.Prefix,
				logging.FieldVersion, info.version(),
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGo, runtime.Version(),
				logging.FieldPlatform, runtime.GOOS+"/"+runtime.GOARCH,
			)
		},
	}
}

// version prefers the linked-in release version and falls back to the module
// version recorded by "go install".
func (b BuildInfo) version() string {
	if b.Version != "" && b.Version != develVersion {
		return b.Version
	}
	if build, ok := debug.ReadBuildInfo(); ok && build.Main.Version != "" && build.Main.Version != "(devel)" {
		return build.Main.Version
	}
	return develVersion
}
