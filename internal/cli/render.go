package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosmf/internal/logging"
	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/fsutil"
	"github.com/yaklabco/gosmf/pkg/layout"
	"github.com/yaklabco/gosmf/pkg/render"
	"github.com/yaklabco/gosmf/pkg/text"
)

type renderFlags struct {
	block      int
	output     string
	format     string
	background string
}

func newRenderCommand() *cobra.Command {
	var cliCfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a source to PNG or a draw list",
		Long: `Lay out one source and paint it. PNG output rasterises borders,
backgrounds and text; JSON output prints the draw list in paint order.

Examples:
  gosmf render main.smf -o main.png
  gosmf render main.smf -o - > main.png
  gosmf render main.smf --format json
  gosmf render main.smf -o dark.png --background "#1e1e1e"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], &cliCfg, flags)
		},
	}

	cmd.Flags().IntVar(&flags.block, "block", 1, "which smf fence to read from a Markdown file (1-based)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "PNG output path, or - for stdout")
	cmd.Flags().StringVar(&flags.format, "format", "png", "output format: png or json")
	cmd.Flags().StringVar(&flags.background, "background", "", "canvas colour as #rrggbb (default from config)")
	addLayoutFlags(cmd, &cliCfg.Layout)

	return cmd
}

func runRender(cmd *cobra.Command, path string, cliCfg *config.Config, flags *renderFlags) error {
	switch {
	case flags.format != "png" && flags.format != "json":
		return fmt.Errorf("%w: unknown render format %q", ErrInvalidUsage, flags.format)
	case flags.format == "png" && flags.output == "":
		return fmt.Errorf("%w: png output needs --output", ErrInvalidUsage)
	}
	cliCfg.Render.Background = flags.background

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	block, err := readBlock(cmd, path, flags.block)
	if err != nil {
		return err
	}
	result := buildAndLayout(block, cfg)
	result.warnDiagnostics(cmd, path)

	drawOpts := render.Options{TextSize: layout.OptionsFromConfig(cfg.Layout).TextPixels()}

	if flags.format == "json" {
		recorder := &render.Recorder{}
		render.Draw(result.doc, recorder, drawOpts)
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(recorder.Ops); err != nil {
			return fmt.Errorf("encode draw list: %w", err)
		}
		return nil
	}

	background, err := render.ParseHex(cfg.Render.Background)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	face := text.DefaultFace()
	if cfg.Layout.Measurer == config.MeasurerCells {
		commandLogger(cmd).Warn("rasterising with the bitmap font; cell measurements may not match")
	}

	width := int(math.Ceil(result.viewport.Width()))
	height := int(math.Ceil(result.viewport.Height()))
	raster := render.NewRaster(width, height, background, face)
	render.Draw(result.doc, raster, drawOpts)

	var buf bytes.Buffer
	if err := raster.WritePNG(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	if flags.output == stdioPath {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		return nil
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), flags.output, buf.Bytes(), 0); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	commandLogger(cmd).Info("rendered", logging.FieldPath, path, logging.FieldOutput, flags.output,
		logging.FieldNodes, len(result.doc.Nodes()))
	return nil
}
