package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/errors"
)

// dumpCommand creates the dump command.
func (c *CLI) dumpCommand() *cobra.Command {
	var (
		opts   inputOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "dump [snapshot]",
		Short: "Write the text dump of a timing snapshot",
		Long: `Write the text dump of a timing snapshot.

The snapshot is read from the given file (JSON, YAML or TOML by extension)
or from standard input when the argument is "-" or omitted.`,
		Example: `  stadump dump alu.json
  stadump dump alu.yaml -o alu.dump
  cat alu.json | stadump dump --legacy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDump(cmd, inputArg(args), output, opts)
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runDump(cmd *cobra.Command, input, output string, opts inputOpts) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	text, lines, err := c.dumpText(ctx, cmd, input, opts)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(text)
		return err
	}
	if err := os.WriteFile(output, text, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
	}
	prog.done(fmt.Sprintf("Dumped %d lines", lines))
	printFile(output)
	return nil
}

// dumpText loads input and returns its dump text and line count.
func (c *CLI) dumpText(ctx context.Context, cmd *cobra.Command, input string, opts inputOpts) ([]byte, int, error) {
	po, err := c.pipelineOptions(cmd, input, opts)
	if err != nil {
		return nil, 0, err
	}
	runner := c.localRunner()

	snap, err := c.loadSnapshot(ctx, runner, po)
	if err != nil {
		return nil, 0, err
	}
	res, err := runner.Dump(ctx, input, snap, po.Dump)
	if err != nil {
		return nil, 0, err
	}
	return res.Text, res.Stats.Lines.Total(), nil
}
