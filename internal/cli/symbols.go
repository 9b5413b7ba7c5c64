package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/ui/pretty"
	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

type symbolsFlags struct {
	block    int
	builtins bool
}

func newSymbolsCommand() *cobra.Command {
	flags := &symbolsFlags{}

	cmd := &cobra.Command{
		Use:   "symbols FILE",
		Short: "Print the symbol tree of a source",
		Long: `Parse one source and print its scope tree: elements, named and anonymous
styles with their properties, text leaves and imports. Use "-" to read
from standard input.

Examples:
  gosmf symbols main.smf
  gosmf symbols README.md --block 2
  gosmf symbols main.smf --builtins`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := readBlock(cmd, args[0], flags.block)
			if err != nil {
				return err
			}
			module, diags := smf.ParseFile(block.Path, block.Content)
			for _, diag := range diags {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", args[0], diag.Error())
			}
			return writeSymbols(cmd.OutOrStdout(), colorMode(cmd), module.Symbols, flags.builtins)
		},
	}

	cmd.Flags().IntVar(&flags.block, "block", 1, "which smf fence to read from a Markdown file (1-based)")
	cmd.Flags().BoolVar(&flags.builtins, "builtins", false, "include builtin functions")

	return cmd
}

func writeSymbols(w io.Writer, color string, table *symbols.Table, builtins bool) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, w))
	tree := symbolTree(table, table.Root(), builtins)
	if _, err := io.WriteString(w, styles.FormatTree(tree)); err != nil {
		return fmt.Errorf("write symbols: %w", err)
	}
	return nil
}

// symbolTree converts the scope tree under sym for display.
func symbolTree(table *symbols.Table, sym *symbols.Symbol, builtins bool) pretty.TreeNode {
	node := pretty.TreeNode{Label: symbolLabel(sym), Detail: symbolDetail(sym)}

	if kind, ok := sym.Kind.(symbols.StyleKind); ok && kind.Properties != nil {
		for _, prop := range kind.Properties.All() {
			node.Children = append(node.Children, pretty.TreeNode{
				Label: prop.Key + ": " + syntax.FormatValue(prop.Value),
			})
		}
	}

	for _, child := range table.Children(sym.ID) {
		if _, isBuiltin := child.Kind.(symbols.FunctionKind); isBuiltin && !builtins {
			continue
		}
		node.Children = append(node.Children, symbolTree(table, child, builtins))
	}
	return node
}

func symbolLabel(sym *symbols.Symbol) string {
	switch {
	case sym.ID == symbols.RootID:
		return "root"
	case sym.IsIndexed() && sym.Name != "":
		return "[" + sym.Key + "] " + sym.Name
	default:
		return sym.Key
	}
}

func symbolDetail(sym *symbols.Symbol) string {
	var details []string
	switch kind := sym.Kind.(type) {
	case symbols.RootKind:
		return ""
	case symbols.TextKind:
		details = append(details, "text", strconv.Quote(kind.Value))
	case symbols.UseKind:
		details = append(details, "use", strings.Join(kind.Path, "."))
	case symbols.FunctionKind:
		details = append(details, symbols.Signature(sym.Key, kind))
	default:
		details = append(details, symbols.KindName(sym.Kind))
	}
	if sym.HasRange {
		details = append(details, fmt.Sprintf("@%d:%d", sym.Range.Start.Line+1, sym.Range.Start.Column+1))
	}
	return strings.Join(details, " ")
}
