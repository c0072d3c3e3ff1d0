package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/render"
	"github.com/matzehuels/stadump/pkg/render/dot"
	"github.com/matzehuels/stadump/pkg/timing"
)

// Render output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input    inputOpts
	output   string  // output file path (stdout when empty)
	format   string  // dot, svg, pdf, png
	detailed bool    // show data tags in node labels
	hold     bool    // label with hold tags instead of setup tags
	scale    float64 // PNG scale factor
}

// renderCommand creates the render command for timing graph diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatDOT, scale: 2.0}

	cmd := &cobra.Command{
		Use:   "render [snapshot]",
		Short: "Render a snapshot's timing graph as a Graphviz diagram",
		Example: `  stadump render alu.json > alu.dot
  stadump render alu.json -f svg -o alu.svg --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd, inputArg(args), &opts)
		},
	}

	addInputFlags(cmd, &opts.input)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg, pdf, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show data tags in node labels")
	cmd.Flags().BoolVar(&opts.hold, "hold", false, "label nodes with hold tags instead of setup tags")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func validateRenderFormat(format string) error {
	switch format {
	case formatDOT, formatSVG, formatPDF, formatPNG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be dot, svg, pdf, or png)", format)
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	po, err := c.pipelineOptions(cmd, input, opts.input)
	if err != nil {
		return err
	}
	snap, err := c.loadSnapshot(ctx, c.localRunner(), po)
	if err != nil {
		return err
	}

	source := dot.ToDOT(snap.Graph, dotOptions(snap, opts))
	data, err := c.renderFormat(ctx, source, opts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	printSuccess("Rendered %s", opts.format)
	printFile(opts.output)
	return nil
}

func (c *CLI) renderFormat(ctx context.Context, source string, opts *renderOpts) ([]byte, error) {
	if opts.format == formatDOT {
		return []byte(source), nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering svg...")
	spinner.Start()
	defer spinner.Stop()

	svg, err := dot.RenderSVG(ctx, source)
	if err != nil || opts.format == formatSVG {
		return svg, err
	}

	spinner.Update(fmt.Sprintf("Converting to %s...", opts.format))
	if opts.format == formatPDF {
		return render.ToPDF(ctx, svg)
	}
	return render.ToPNG(ctx, svg, opts.scale)
}

// dotOptions picks the tag view and domain names shown in detailed labels.
func dotOptions(snap *timing.Snapshot, opts *renderOpts) dot.Options {
	o := dot.Options{Detailed: opts.detailed}
	if !opts.detailed || snap.Result == nil {
		return o
	}

	view, ok := snap.Result.SetupView()
	if opts.hold {
		view, ok = snap.Result.HoldView()
	}
	if ok {
		o.Tags = view
	}
	if c := snap.Constraints; c != nil {
		o.DomainName = func(d timing.DomainID) string {
			if d.Valid() && int(d) < c.DomainCount() {
				return c.ClockDomainName(d)
			}
			return d.String()
		}
	}
	return o
}
