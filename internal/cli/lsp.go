package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/logging"
	"github.com/yaklabco/gosmf/pkg/lsp"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

func newLSPCommand(info BuildInfo) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the smf language server on stdio",
		Long: `Serve the Language Server Protocol on standard input and output.

Editors get diagnostics as they type, completion of style properties and
visible names, hover, go to definition, a document outline, semantic
highlighting and formatting. Markdown files are served too: every smf fence
is analysed in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			logger := commandLogger(cmd)
			logger.Debug("starting language server",
				logging.FieldVersion, info.version(),
			)

			srv := lsp.NewServer(lsp.Options{
				Name:    "gosmf",
				Version: info.version(),
				Format:  syntax.FormatOptions{Indent: cfg.Formatter.Indent},
				Debug:   trace,
				Logger:  logger,
			})
			return srv.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "log protocol messages to stderr")

	return cmd
}
