package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/logging"
	"github.com/yaklabco/gosmf/internal/ui/pretty"
	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/geom"
)

type layoutFlags struct {
	block  int
	format string
	boxes  bool
	watch  bool
}

func newLayoutCommand() *cobra.Command {
	var cliCfg config.Config
	flags := &layoutFlags{}

	cmd := &cobra.Command{
		Use:   "layout FILE",
		Short: "Lay out a source and print the display tree",
		Long: `Build the display tree of one source, run the layout engine on the
configured viewport and print every displayed node with its border rect.

Examples:
  gosmf layout main.smf
  gosmf layout main.smf --width 320 --height 480
  gosmf layout main.smf --boxes          # also print padding and content rects
  gosmf layout main.smf --format json
  gosmf layout main.smf --watch          # re-run on every save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, args[0], &cliCfg, flags)
		},
	}

	cmd.Flags().IntVar(&flags.block, "block", 1, "which smf fence to read from a Markdown file (1-based)")
	cmd.Flags().StringVar(&flags.format, "format", "tree", "output format: tree or json")
	cmd.Flags().BoolVar(&flags.boxes, "boxes", false, "print padding and content rects as well")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "re-run the layout whenever the file changes")
	addLayoutFlags(cmd, &cliCfg.Layout)

	return cmd
}

func runLayout(cmd *cobra.Command, path string, cliCfg *config.Config, flags *layoutFlags) error {
	if flags.format != "tree" && flags.format != "json" {
		return fmt.Errorf("%w: unknown layout format %q", ErrInvalidUsage, flags.format)
	}
	if flags.watch && path == stdioPath {
		return fmt.Errorf("%w: --watch needs a file", ErrInvalidUsage)
	}

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	once := func() error {
		block, err := readBlock(cmd, path, flags.block)
		if err != nil {
			return err
		}
		result := buildAndLayout(block, cfg)
		result.warnDiagnostics(cmd, path)
		return writeLayout(cmd.OutOrStdout(), colorMode(cmd), result, flags)
	}

	if err := once(); err != nil {
		return err
	}
	if !flags.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	logger.Info("watching for changes")
	return watchFile(ctx, path, defaultDebounce, func() {
		logger.Debug("file changed")
		if err := once(); err != nil {
			logger.Error("layout failed", logging.FieldError, err)
		}
	})
}

// layoutNode is the JSON form of one displayed node.
type layoutNode struct {
	ID       uint64       `json:"id"`
	Type     string       `json:"type"`
	Classes  []string     `json:"classes,omitempty"`
	Text     string       `json:"text,omitempty"`
	Border   [4]float64   `json:"border"`
	Padding  [4]float64   `json:"padding"`
	Content  [4]float64   `json:"content"`
	Children []layoutNode `json:"children,omitempty"`
}

func writeLayout(w io.Writer, color string, result *laidOut, flags *layoutFlags) error {
	doc := result.doc
	if flags.format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(layoutJSON(doc, doc.Root())); err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(color, w))
	tree := layoutTree(doc, doc.Root(), flags.boxes)
	tree.Detail = fmt.Sprintf("viewport %s", result.viewport)
	if _, err := io.WriteString(w, styles.FormatTree(tree)); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

func layoutTree(doc *document.Document, n *document.Node, boxes bool) pretty.TreeNode {
	rects := doc.Layout(n)
	node := pretty.TreeNode{Label: nodeLabel(doc, n), Detail: "border " + rects.Border.String()}
	if boxes {
		node.Detail += "  padding " + rects.Padding.String() + "  content " + rects.Content.String()
	}
	for _, child := range doc.Children(n) {
		if !child.Type.IsDisplayed() {
			continue
		}
		node.Children = append(node.Children, layoutTree(doc, child, boxes))
	}
	return node
}

func nodeLabel(doc *document.Document, n *document.Node) string {
	switch n.Type {
	case document.TypeText:
		return strconv.Quote(doc.Text(n))
	case document.TypeView:
		label := doc.Name(n)
		for _, class := range doc.Classes(n) {
			label += "." + class
		}
		return label
	default:
		return doc.Name(n)
	}
}

func layoutJSON(doc *document.Document, n *document.Node) layoutNode {
	rects := doc.Layout(n)
	node := layoutNode{
		ID:      uint64(n.Element.ID),
		Type:    n.Type.String(),
		Classes: doc.Classes(n),
		Border:  rectArray(rects.Border),
		Padding: rectArray(rects.Padding),
		Content: rectArray(rects.Content),
	}
	if n.Type == document.TypeText {
		node.Text = doc.Text(n)
	}
	for _, child := range doc.Children(n) {
		if child.Type.IsDisplayed() {
			node.Children = append(node.Children, layoutJSON(doc, child))
		}
	}
	return node
}

func rectArray(r geom.Rect) [4]float64 {
	return [4]float64{r.X0, r.Y0, r.Width(), r.Height()}
}
