package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/logging"
	"github.com/yaklabco/gosmf/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gosmf command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gosmf",
		Short: "Parse, check, lay out and render smf user interface documents",
		Long: `gosmf is a toolchain for smf, a small declarative language for user
interfaces built from nested views, text and reusable styles.

It parses .smf files (and smf code fences inside Markdown), resolves names
across scopes and imports, computes styles with inheritance and lays every
element out with a box model. Results can be checked, inspected as trees,
rendered to PNG, or served to editors over the Language Server Protocol.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
				logging.SetLevel(level)
			}
			logger := logging.ForCommand(cmd.ErrOrStderr(), level, cmd.Name())
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand(info))
	rootCmd.AddCommand(newSymbolsCommand())
	rootCmd.AddCommand(newLayoutCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newLSPCommand(info))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
