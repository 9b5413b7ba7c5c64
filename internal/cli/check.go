package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/logging"
	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/reporter"
	"github.com/yaklabco/gosmf/pkg/runner"
)

type checkFlags struct {
	format         string
	ignore         []string
	include        []string
	extensions     []string
	strict         bool
	noContext      bool
	noSummary      bool
	compact        bool
	followSymlinks bool
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check smf sources for errors",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags, info)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Parse, build and lay out smf sources, reporting every problem found.

By default, checks all .smf files and the smf code fences inside .md files in
the current directory and subdirectories. Specify paths to check specific
files or directories.

Examples:
  gosmf check                    # Check current directory
  gosmf check screens/           # Check one directory
  gosmf check main.smf           # Check a single file
  gosmf check --format json      # Output as JSON for CI
  gosmf check --format sarif     # Output SARIF for code scanning
  gosmf check --format summary   # Totals by finding kind and file
  gosmf check --strict           # Treat warnings as errors`

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags, info BuildInfo) error {
	logger := commandLogger(cmd)
	ctx := commandContext(cmd)

	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	cliCfg.Ignore = flags.ignore
	cliCfg.Extensions = flags.extensions

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMeasurer, cfg.Layout.Measurer,
	)

	checkRunner := runner.New(runner.NewChecker(cfg, registry.Default()))

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	logger.Debug("check run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldBlocksChecked, result.Stats.BlocksChecked,
		logging.FieldFindingsTotal, result.Stats.FindingsTotal,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		GroupByFile: true,
		Compact:     flags.compact,
		ToolVersion: info.version(),
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitCheckErrors:
		return ErrDiagnosticsFound
	case ExitCheckWarnings:
		return ErrWarningsFound
	default:
		return nil
	}
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(reporter.FormatText), "output format: "+reporter.FormatList())
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only check files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to check (default .smf, .md)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	addLayoutFlags(cmd, &cfg.Layout)
}

// addLayoutFlags registers the flags that override layout configuration.
func addLayoutFlags(cmd *cobra.Command, layout *config.LayoutConfig) {
	cmd.Flags().Float64Var(&layout.Width, "width", 0, "viewport width in pixels (default from config)")
	cmd.Flags().Float64Var(&layout.Height, "height", 0, "viewport height in pixels (default from config)")
	cmd.Flags().Float64Var(&layout.Scale, "scale", 0, "global scale for text and spacing (default from config)")
	cmd.Flags().StringVar(&layout.Measurer, "measurer", "", "text measurer: face or cells (default from config)")
}
