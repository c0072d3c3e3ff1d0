package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/baseline"
	"github.com/matzehuels/stadump/pkg/pipeline"
)

// baselineCommand creates the baseline management command.
func (c *CLI) baselineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage stored baselines",
	}

	cmd.AddCommand(c.baselineListCommand())
	cmd.AddCommand(c.baselineShowCommand())
	cmd.AddCommand(c.baselineSaveCommand())
	cmd.AddCommand(c.baselineDeleteCommand())

	return cmd
}

// baselineListCommand creates the "baseline list" subcommand.
func (c *CLI) baselineListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored baseline names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd, func(r *pipeline.Runner) error {
				names, err := r.Store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					printInfo("No baselines stored")
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

// baselineShowCommand creates the "baseline show" subcommand.
func (c *CLI) baselineShowCommand() *cobra.Command {
	var textOnly bool

	cmd := &cobra.Command{
		Use:               "show [name]",
		Short:             "Show a stored baseline (interactive picker without a name)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeFirstBaseline,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd, func(r *pipeline.Runner) error {
				ctx := cmd.Context()

				var rec *baseline.Record
				if len(args) == 1 {
					var err error
					if rec, err = r.Store.Get(ctx, args[0]); err != nil {
						return err
					}
				} else {
					picked, err := pickBaseline(cmd, r)
					if err != nil || picked == nil {
						return err
					}
					rec = picked
				}

				if textOnly {
					_, err := fmt.Fprint(cmd.OutOrStdout(), rec.Text)
					return err
				}
				printRecord(rec)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&textOnly, "text", false, "print only the dump text")

	return cmd
}

// baselineSaveCommand creates the "baseline save" subcommand.
func (c *CLI) baselineSaveCommand() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:               "save <name> [snapshot]",
		Short:             "Dump a snapshot and store it as a baseline",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: c.completeFirstBaseline,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd, func(r *pipeline.Runner) error {
				ctx := cmd.Context()
				name := args[0]

				po, err := c.pipelineOptions(cmd, inputArg(args[1:]), opts)
				if err != nil {
					return err
				}
				snap, err := c.loadSnapshot(ctx, r, po)
				if err != nil {
					return err
				}
				rec, err := r.SaveSnapshot(ctx, name, snap, po.Dump)
				if err != nil {
					return err
				}

				printSuccess("Saved baseline %s", StyleHighlight.Render(name))
				printDetail("revision %s", rec.Revision)
				return nil
			})
		},
	}

	addInputFlags(cmd, &opts)

	return cmd
}

// baselineDeleteCommand creates the "baseline delete" subcommand.
func (c *CLI) baselineDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <name>",
		Short:             "Delete a stored baseline",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeFirstBaseline,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRunner(cmd, func(r *pipeline.Runner) error {
				if err := r.Store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted baseline %s", StyleHighlight.Render(args[0]))
				return nil
			})
		},
	}
}

// withRunner opens the configured store for the duration of fn.
func (c *CLI) withRunner(cmd *cobra.Command, fn func(*pipeline.Runner) error) error {
	r, err := c.newRunner(cmd.Context())
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}

// pickBaseline lets the user choose a baseline interactively.
// Returns nil when the user quits without choosing.
func pickBaseline(cmd *cobra.Command, r *pipeline.Runner) (*baseline.Record, error) {
	ctx := cmd.Context()
	names, err := r.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		printInfo("No baselines stored")
		return nil, nil
	}

	records := make([]*baseline.Record, 0, len(names))
	for _, name := range names {
		rec, err := r.Store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	slices.SortStableFunc(records, func(a, b *baseline.Record) int { return b.CreatedAt.Compare(a.CreatedAt) })

	final, err := tea.NewProgram(NewBaselineListModel(records), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	return final.(BaselineListModel).Selected, nil
}

func printRecord(rec *baseline.Record) {
	fmt.Println(StyleTitle.Render(rec.Name))
	printKeyValue("Revision", rec.Revision)
	printKeyValue("Hash", shortHash(rec.Hash))
	printKeyValue("Created", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printKeyValue("Legacy", fmt.Sprint(rec.Legacy))
	printKeyValue("Sorted", fmt.Sprint(rec.Sorted))
	printKeyValue("Lines", fmt.Sprint(strings.Count(rec.Text, "\n")))
	printNewline()
	printNextStep("Print the dump", "stadump baseline show --text "+rec.Name)
}

// shortHash abbreviates a hex digest for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
