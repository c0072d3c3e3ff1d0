package dump

import (
	"io"
	"slices"

	"github.com/matzehuels/stadump/pkg/timing"
)

// Graph is the read contract of a timing graph.
// [*timing.Graph] satisfies it.
type Graph interface {
	NodeCount() int
	EdgeCount() int
	NodeType(timing.NodeID) timing.NodeType
	NodeInEdges(timing.NodeID) []timing.EdgeID
	NodeOutEdges(timing.NodeID) []timing.EdgeID
	EdgeSrcNode(timing.EdgeID) timing.NodeID
	EdgeSinkNode(timing.EdgeID) timing.NodeID
}

// WriteGraph writes the timing_graph section for g.
func WriteGraph(w io.Writer, g Graph) error {
	return Options{}.WriteGraph(w, g)
}

// WriteGraph writes the timing_graph section for g using o.
func (o Options) WriteGraph(w io.Writer, g Graph) error {
	s := newSink(w)
	o.writeGraph(s, g)
	return s.err
}

func (o Options) writeGraph(s *sink, g Graph) {
	s.line("timing_graph:")

	for i := 0; i < g.NodeCount(); i++ {
		n := timing.NodeID(i)
		s.line(" node: ", itoa(n))
		s.line("  type: ", string(g.NodeType(n)))
		s.line("  in_edges: ", o.edgeList(g.NodeInEdges(n)))
		s.line("  out_edges: ", o.edgeList(g.NodeOutEdges(n)))
	}

	for i := 0; i < g.EdgeCount(); i++ {
		e := timing.EdgeID(i)
		s.line(" edge: ", itoa(e))
		s.line("  src_node: ", itoa(g.EdgeSrcNode(e)))
		s.line("  sink_node: ", itoa(g.EdgeSinkNode(e)))
	}

	s.line()
}

// edgeList renders edges in ascending order. The caller's slice is copied,
// never sorted in place.
func (o Options) edgeList(edges []timing.EdgeID) string {
	sorted := slices.Clone(edges)
	slices.Sort(sorted)

	var buf []byte
	for i, e := range sorted {
		if i > 0 && !o.Legacy {
			buf = append(buf, ' ')
		}
		buf = append(buf, itoa(e)...)
		if o.Legacy {
			buf = append(buf, ' ')
		}
	}
	return string(buf)
}
