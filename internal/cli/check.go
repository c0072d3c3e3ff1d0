package cli

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/errors"
)

// checkCommand creates the check command for regression comparison.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		opts   inputOpts
		name   string
		update bool
	)

	cmd := &cobra.Command{
		Use:   "check <snapshot>",
		Short: "Compare a snapshot's dump with its stored baseline",
		Long: `Compare a snapshot's dump with its stored baseline.

The baseline name defaults to the snapshot file name without extension.
A difference is printed as a unified diff and the command exits non-zero.
The dump is written in the format the baseline was saved with.`,
		Example: `  stadump check alu.json
  stadump check alu.json --baseline designs/alu
  stadump check alu.json --update`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = defaultBaselineName(args[0])
			}
			return c.runCheck(cmd, args[0], name, update, opts)
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&name, "baseline", "b", "", "baseline name (default: snapshot file name)")
	cmd.Flags().BoolVar(&update, "update", false, "replace the baseline when it differs")
	_ = cmd.RegisterFlagCompletionFunc("baseline", c.completeBaselineNames)

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, input, name string, update bool, opts inputOpts) error {
	ctx := cmd.Context()
	if err := errors.ValidateBaselineName(name); err != nil {
		return err
	}

	po, err := c.pipelineOptions(cmd, input, opts)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	snap, err := c.loadSnapshot(ctx, runner, po)
	if err != nil {
		return err
	}

	res, err := runner.CheckSnapshot(ctx, name, snap, po.Dump)
	if res != nil && cmd.Flags().Changed("legacy") && res.Dump.Legacy != po.Dump.Legacy {
		printWarning("Baseline %s uses the %s format; --legacy ignored", name, formatName(res.Dump.Legacy))
	}
	if res != nil && cmd.Flags().Changed("sort") && res.Dump.SortConstraints != po.Dump.SortConstraints {
		printWarning("Baseline %s stores sorted=%t; --sort ignored", name, res.Dump.SortConstraints)
	}
	var mm *errors.MismatchError
	switch {
	case err == nil:
		printSuccess("Baseline %s matches", StyleHighlight.Render(name))
		return nil
	case stderrors.As(err, &mm):
		printDiff(cmd.OutOrStdout(), mm.Diff)
		if !update {
			printError("Baseline %s differs", StyleHighlight.Render(name))
			return err
		}
		rec, err := runner.SaveText(ctx, name, res.Text, res.Dump)
		if err != nil {
			return err
		}
		printSuccess("Updated baseline %s", StyleHighlight.Render(name))
		printDetail("revision %s", rec.Revision)
		return nil
	default:
		return err
	}
}

// defaultBaselineName derives a baseline name from a snapshot path.
func defaultBaselineName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func formatName(legacy bool) string {
	if legacy {
		return "legacy"
	}
	return "default"
}
