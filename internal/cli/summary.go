package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/timing"
)

// summaryRow is one line of the summary table.
type summaryRow struct {
	section string
	item    string
	value   int
}

// summaryCommand creates the summary command.
func (c *CLI) summaryCommand() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:   "summary [snapshot]",
		Short: "Print counts of what a snapshot's dump contains",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := inputArg(args)

			po, err := c.pipelineOptions(cmd, input, opts)
			if err != nil {
				return err
			}
			runner := c.localRunner()
			snap, err := c.loadSnapshot(ctx, runner, po)
			if err != nil {
				return err
			}
			res, err := runner.Dump(ctx, input, snap, po.Dump)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(input))
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summarize(snap, res.Stats.Lines)))
			return nil
		},
	}

	addInputFlags(cmd, &opts)

	return cmd
}

// summarize counts the elements of snap section by section.
func summarize(snap *timing.Snapshot, lines dump.Stats) []summaryRow {
	g := snap.Graph
	rows := []summaryRow{
		{"graph", "nodes", g.NodeCount()},
		{"graph", "edges", g.EdgeCount()},
	}

	byType := map[timing.NodeType]int{}
	for i := 0; i < g.NodeCount(); i++ {
		byType[g.NodeType(timing.NodeID(i))]++
	}
	for _, t := range []timing.NodeType{timing.NodeSource, timing.NodeSink, timing.NodeIPin, timing.NodeOPin, timing.NodeCPin} {
		if byType[t] > 0 {
			rows = append(rows, summaryRow{"graph", "  " + string(t), byType[t]})
		}
	}

	if c := snap.Constraints; c != nil {
		rows = append(rows,
			summaryRow{"constraints", "clock domains", c.DomainCount()},
			summaryRow{"constraints", "constant generators", len(c.ConstantGenerators())},
			summaryRow{"constraints", "input", len(c.InputConstraints())},
			summaryRow{"constraints", "output", len(c.OutputConstraints())},
			summaryRow{"constraints", "setup", len(c.SetupConstraints())},
			summaryRow{"constraints", "hold", len(c.HoldConstraints())},
		)
	}

	if r := snap.Result; r != nil {
		if v, ok := r.SetupView(); ok {
			data, clock := countTags(v, g.NodeCount())
			rows = append(rows,
				summaryRow{"result", "setup data tags", data},
				summaryRow{"result", "setup clock tags", clock})
		}
		if v, ok := r.HoldView(); ok {
			data, clock := countTags(v, g.NodeCount())
			rows = append(rows,
				summaryRow{"result", "hold data tags", data},
				summaryRow{"result", "hold clock tags", clock})
		}
	}

	return append(rows,
		summaryRow{"dump", "graph lines", lines.GraphLines},
		summaryRow{"dump", "constraint lines", lines.ConstraintLines},
		summaryRow{"dump", "result lines", lines.ResultLines},
		summaryRow{"dump", "total lines", lines.Total()},
	)
}

func countTags(v timing.TagView, nodes int) (data, clock int) {
	for i := 0; i < nodes; i++ {
		n := timing.NodeID(i)
		data += len(v.DataTags(n))
		clock += len(v.ClockTags(n))
	}
	return data, clock
}

// renderSummary lays rows out as a bordered table. The section name is shown
// only on the first row of each section.
func renderSummary(rows []summaryRow) string {
	cells := make([][]string, len(rows))
	prev := ""
	for i, r := range rows {
		section := r.section
		if section == prev {
			section = ""
		}
		prev = r.section
		cells[i] = []string{section, r.item, strconv.Itoa(r.value)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Section", "Item", "Count").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 2:
				return base.Foreground(colorWhite).Align(lipgloss.Right)
			default:
				return base.Foreground(colorGray)
			}
		})
	return t.Render()
}
