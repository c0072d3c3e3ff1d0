package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/pipeline"
	"github.com/matzehuels/stadump/pkg/snapshot"
	"github.com/matzehuels/stadump/pkg/timing"
)

// inputOpts holds the flags shared by commands that read a snapshot.
type inputOpts struct {
	format string // snapshot format override: json, yaml, toml
	legacy bool   // legacy dump format
	sort   bool   // sort constraint groups
}

// addInputFlags registers the snapshot and dump format flags on cmd.
func addInputFlags(cmd *cobra.Command, opts *inputOpts) {
	cmd.Flags().StringVar(&opts.format, "input-format", "", "snapshot format: json, yaml, toml (default: from extension, json for stdin)")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "write the legacy dump format (trailing spaces, legacy tag gating)")
	cmd.Flags().BoolVar(&opts.sort, "sort", false, "sort constraint groups by key")
}

// dumpOptions merges the command flags over the [dump] config section.
// A flag wins only when the user set it.
func (c *CLI) dumpOptions(cmd *cobra.Command, opts inputOpts) dump.Options {
	o := c.Config.Dump
	if cmd.Flags().Changed("legacy") {
		o.Legacy = opts.legacy
	}
	if cmd.Flags().Changed("sort") {
		o.SortConstraints = opts.sort
	}
	return o
}

// pipelineOptions builds runner options for the snapshot at path.
func (c *CLI) pipelineOptions(cmd *cobra.Command, path string, opts inputOpts) (pipeline.Options, error) {
	po := pipeline.Options{Input: path, Dump: c.dumpOptions(cmd, opts)}
	if opts.format != "" {
		f, err := snapshot.ParseFormat(opts.format)
		if err != nil {
			return po, err
		}
		po.Format = f
	}
	return po, nil
}

// loadSnapshot reads the snapshot at path, or standard input for "-".
func (c *CLI) loadSnapshot(ctx context.Context, r *pipeline.Runner, po pipeline.Options) (*timing.Snapshot, error) {
	if po.Input != stdinArg {
		return r.Load(ctx, po)
	}
	format := po.Format
	if format == "" {
		format = snapshot.FormatJSON
	}
	return r.Decode(ctx, os.Stdin, format, "stdin")
}

// inputArg returns the snapshot argument, defaulting to standard input.
func inputArg(args []string) string {
	if len(args) == 0 {
		return stdinArg
	}
	return args[0]
}
