package dump_test

import (
	"os"

	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/timing"
)

func ExampleWriteGraph() {
	g := timing.NewGraph()
	src := g.AddNode(timing.NodeSource)
	sink := g.AddNode(timing.NodeSink)
	g.AddEdge(src, sink)

	// Empty edge lists render as "in_edges: " with a trailing space,
	// which example output comparison cannot express.
	dump.WriteGraph(os.Stdout, g)
}

func ExampleWriteConstraints() {
	c := timing.NewConstraints()
	clk := c.AddClockDomain("clk")
	c.SetInputConstraint(3, clk, timing.Some(2.5))
	c.SetOutputConstraint(4, clk, timing.None())

	dump.WriteConstraints(os.Stdout, c)
	// Output:
	// timing_constraints:
	//  type: CLOCK domain: 0 name: "clk"
	//  type: INPUT_CONSTRAINT node: 3 domain: 0 constraint: 2.5
}

func ExampleWriteResult() {
	g := timing.NewGraph()
	n := g.AddNode(timing.NodeSink)

	setup := timing.NewTagSet(g.NodeCount())
	setup.AddDataTag(n, timing.Tag{Domain: 0, Arrival: timing.Some(1.5), Required: timing.Some(4)})
	setup.AddDataTag(n, timing.Tag{Domain: 1, Required: timing.Some(5)})

	dump.WriteResult(os.Stdout, g, timing.NewResult(setup, nil))
	// Output:
	// analysis_result:
	//  type: SETUP_DATA node: 0 domain: 0 arr: 1.5 req: 4
	//  type: SETUP_DATA node: 0 domain: 1 req: 5
}
