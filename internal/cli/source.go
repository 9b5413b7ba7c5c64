package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/logging"
	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/layout"
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/source"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// ErrNoSource is returned when a file holds no smf source.
var ErrNoSource = errors.New("no smf source")

// stdioPath names standard input for sources and standard output for images.
const stdioPath = "-"

// readBlock loads the index-th smf block (1-based) of path. Markdown files
// contribute one block per smf fence; .smf files and stdin are one block.
func readBlock(cmd *cobra.Command, path string, index int) (source.Block, error) {
	var (
		content []byte
		err     error
	)
	if path == stdioPath {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return source.Block{}, fmt.Errorf("read stdin: %w", err)
		}
		return source.Block{Path: path, Content: string(content)}, nil
	}

	content, err = os.ReadFile(path)
	if err != nil {
		return source.Block{}, fmt.Errorf("read %s: %w", path, err)
	}

	blocks := source.Extract(path, content)
	if len(blocks) == 0 {
		return source.Block{}, fmt.Errorf("%s: %w", path, ErrNoSource)
	}
	if index < 1 || index > len(blocks) {
		return source.Block{}, errors.Join(ErrInvalidUsage,
			fmt.Errorf("%s has %d smf block(s); --block %d is out of range", path, len(blocks), index))
	}
	return blocks[index-1], nil
}

// laidOut is one source taken through parse, build and layout.
type laidOut struct {
	module   *smf.Module
	diags    []syntax.Diagnostic
	doc      *document.Document
	bounds   geom.Rect
	viewport geom.Rect
}

// buildAndLayout runs the single-document pipeline on a private registry.
func buildAndLayout(block source.Block, cfg *config.Config) *laidOut {
	module, diags := smf.ParseFile(block.Path, block.Content)
	doc := document.Build(module, registry.New())
	viewport := layout.Viewport(cfg.Layout)
	engine := layout.New(doc, layout.MeasurerFor(cfg.Layout.Measurer), layout.OptionsFromConfig(cfg.Layout))
	return &laidOut{
		module:   module,
		diags:    diags,
		doc:      doc,
		bounds:   engine.Layout(viewport),
		viewport: viewport,
	}
}

// warnDiagnostics logs parse and document problems without failing the command.
func (l *laidOut) warnDiagnostics(cmd *cobra.Command, path string) {
	out := cmd.ErrOrStderr()
	for _, diag := range l.diags {
		fmt.Fprintf(out, "%s: %s\n", path, diag.Error())
	}
	for _, docErr := range l.doc.Errors() {
		fmt.Fprintf(out, "%s: %s\n", path, docErr.Error())
	}
	commandLogger(cmd).Debug("laid out",
		logging.FieldPath, path,
		logging.FieldViewport, l.viewport.String(),
		logging.FieldNodes, len(l.doc.Nodes()),
	)
}
