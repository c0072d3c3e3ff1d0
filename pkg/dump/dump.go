package dump

import (
	"io"

	"github.com/matzehuels/stadump/pkg/timing"
)

// Stats reports how many lines each section produced.
type Stats struct {
	GraphLines      int
	ConstraintLines int
	ResultLines     int
}

// Total returns the number of lines written.
func (s Stats) Total() int {
	return s.GraphLines + s.ConstraintLines + s.ResultLines
}

// WriteAll writes the graph, constraints, and result sections in that order.
// A nil c or a skips the corresponding section.
func WriteAll(w io.Writer, g Graph, c Constraints, a Analyzer) error {
	_, err := Options{}.WriteAll(w, g, c, a)
	return err
}

// WriteAll writes the graph, constraints, and result sections using o and
// returns per-section line counts.
func (o Options) WriteAll(w io.Writer, g Graph, c Constraints, a Analyzer) (Stats, error) {
	var st Stats
	s := newSink(w)

	o.writeGraph(s, g)
	st.GraphLines = s.lines

	if c != nil {
		o.writeConstraints(s, c)
		st.ConstraintLines = s.lines - st.GraphLines
	}
	if a != nil {
		o.writeResult(s, g, a)
		st.ResultLines = s.lines - st.GraphLines - st.ConstraintLines
	}
	return st, s.err
}

// WriteSnapshot writes every section present in snap.
func (o Options) WriteSnapshot(w io.Writer, snap *timing.Snapshot) (Stats, error) {
	var c Constraints
	if snap.Constraints != nil {
		c = snap.Constraints
	}
	var a Analyzer
	if snap.Result != nil {
		a = snap.Result
	}
	return o.WriteAll(w, snap.Graph, c, a)
}
