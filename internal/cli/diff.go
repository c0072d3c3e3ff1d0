package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/baseline"
	"github.com/matzehuels/stadump/pkg/errors"
)

// errDiffer makes diff exit non-zero when its inputs differ.
var errDiffer = errors.New(errors.ErrCodeBaselineMismatch, "dumps differ")

// dumpExts are read as finished dump text rather than as snapshots.
var dumpExts = map[string]bool{".dump": true, ".txt": true}

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Show a unified diff between two dumps",
		Long: `Show a unified diff between two dumps.

Each argument is either a snapshot (dumped with the given options) or an
existing dump file (.dump or .txt), so a snapshot can be compared against
a checked-in dump directly.`,
		Example: `  stadump diff before.json after.json
  stadump diff alu.json testdata/alu.dump --legacy`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(cmd, args[0], args[1], opts)
		},
	}

	addInputFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runDiff(cmd *cobra.Command, a, b string, opts inputOpts) error {
	want, err := c.diffInput(cmd, a, opts)
	if err != nil {
		return err
	}
	got, err := c.diffInput(cmd, b, opts)
	if err != nil {
		return err
	}

	diff := baseline.UnifiedDiff(a, b, string(want), string(got))
	if diff == "" {
		printSuccess("No differences")
		return nil
	}
	printDiff(cmd.OutOrStdout(), diff)
	return errDiffer
}

// diffInput returns the dump text for path.
func (c *CLI) diffInput(cmd *cobra.Command, path string, opts inputOpts) ([]byte, error) {
	if dumpExts[strings.ToLower(filepath.Ext(path))] {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
		}
		return data, err
	}
	text, _, err := c.dumpText(cmd.Context(), cmd, path, opts)
	return text, err
}
