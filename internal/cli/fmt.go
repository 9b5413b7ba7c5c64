package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/logging"
	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/diff"
	"github.com/yaklabco/gosmf/pkg/fsutil"
	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/source"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// ErrNotFormatted is returned by fmt --check when a file would change.
var ErrNotFormatted = errors.New("files are not formatted")

// ErrSyntax is returned when a source cannot be formatted because it does not parse.
var ErrSyntax = errors.New("source has syntax errors")

type fmtFlags struct {
	write  bool
	list   bool
	check  bool
	backup bool
	diff   bool
	indent int
}

func newFmtCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format smf sources",
		Long: `Re-emit smf sources in canonical form: one statement per line, blocks
indented, style properties as "key: value". Sources with syntax errors are
left untouched. With no arguments, formats standard input.

Examples:
  gosmf fmt main.smf             # Print formatted source
  gosmf fmt -w screens/*.smf     # Rewrite files in place
  gosmf fmt -w --backup main.smf # Keep main.smf.gosmf.bak
  gosmf fmt -l .                 # List files that would change
  gosmf fmt -d main.smf          # Show the changes as a unified diff
  gosmf fmt --check main.smf     # Exit non-zero when not formatted`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write result to the source file instead of stdout")
	cmd.Flags().BoolVarP(&flags.list, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero when any file is not formatted")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "with --write, keep the original as <file>"+fsutil.BackupSuffix)
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "print a unified diff instead of the formatted source")
	cmd.Flags().IntVar(&flags.indent, "indent", 0, "spaces per indent level (default from config)")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, flags *fmtFlags) error {
	cfg, _, err := loadConfig(cmd, &config.Config{Formatter: config.FormatterConfig{Indent: flags.indent}})
	if err != nil {
		return err
	}
	opts := syntax.FormatOptions{Indent: cfg.Formatter.Indent}

	if len(args) == 0 {
		args = []string{stdioPath}
	}

	paths, err := expandFmtPaths(args)
	if err != nil {
		return err
	}

	var unformatted int
	var errs []error
	for _, path := range paths {
		changed, err := formatOne(cmd, path, opts, flags)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if changed {
			unformatted++
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if flags.check && unformatted > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrNotFormatted, unformatted)
	}
	return nil
}

// expandFmtPaths replaces directories with the .smf files below them.
func expandFmtPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if arg == stdioPath {
			paths = append(paths, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, entry os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() && path != arg && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if !entry.IsDir() && strings.EqualFold(filepath.Ext(path), source.Extension) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return paths, nil
}

// formatOne formats a single source and reports whether it changed.
func formatOne(cmd *cobra.Command, path string, opts syntax.FormatOptions, flags *fmtFlags) (bool, error) {
	var (
		content []byte
		snap    *fsutil.Snapshot
		err     error
	)
	if path == stdioPath {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return false, fmt.Errorf("read stdin: %w", err)
		}
	} else {
		if !strings.EqualFold(filepath.Ext(path), source.Extension) {
			return false, fmt.Errorf("%w: %s is not a %s file", ErrInvalidUsage, path, source.Extension)
		}
		content, snap, err = fsutil.ReadFile(commandContext(cmd), path)
		if err != nil {
			return false, err
		}
	}

	module, diags := smf.ParseFile(path, string(content))
	if len(diags) > 0 {
		return false, fmt.Errorf("%s: %w: %s", path, ErrSyntax, diags[0].Error())
	}

	formatted, err := module.FormatChecked(opts)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	changed := formatted != string(content)
	out := cmd.OutOrStdout()

	if flags.diff && changed {
		if _, err := io.WriteString(out, diff.Unified(path, string(content), formatted).String()); err != nil {
			return false, fmt.Errorf("write diff: %w", err)
		}
	}

	switch {
	case flags.list || flags.check:
		if changed {
			fmt.Fprintln(out, path)
		}
	case flags.write && snap != nil:
		if !changed {
			break
		}
		written, err := fsutil.Replace(commandContext(cmd), snap, []byte(formatted),
			fsutil.ReplaceOptions{Backup: flags.backup})
		if err != nil {
			return false, fmt.Errorf("write %s: %w", path, err)
		}
		if written {
			commandLogger(cmd).Debug("formatted", logging.FieldPath, path)
		}
	case flags.diff:
	default:
		if _, err := io.WriteString(out, formatted); err != nil {
			return false, fmt.Errorf("write output: %w", err)
		}
	}

	return changed, nil
}
