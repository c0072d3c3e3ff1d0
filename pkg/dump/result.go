package dump

import (
	"io"

	"github.com/matzehuels/stadump/pkg/timing"
)

// Analyzer is the read contract of an analysis result. Each view reports
// whether the corresponding analysis was performed.
// [*timing.Result] satisfies it.
type Analyzer interface {
	SetupView() (timing.TagView, bool)
	HoldView() (timing.TagView, bool)
}

// Tag line types.
const (
	TagSetupData  = "SETUP_DATA"
	TagSetupClock = "SETUP_CLOCK"
	TagHoldData   = "HOLD_DATA"
	TagHoldClock  = "HOLD_CLOCK"
)

// WriteResult writes the analysis_result section for a, iterating the nodes
// of g.
func WriteResult(w io.Writer, g Graph, a Analyzer) error {
	return Options{}.WriteResult(w, g, a)
}

// WriteResult writes the analysis_result section for a using o.
func (o Options) WriteResult(w io.Writer, g Graph, a Analyzer) error {
	s := newSink(w)
	o.writeResult(s, g, a)
	return s.err
}

func (o Options) writeResult(s *sink, g Graph, a Analyzer) {
	s.line("analysis_result:")

	if setup, ok := a.SetupView(); ok {
		o.writeTagPasses(s, g.NodeCount(), setup, TagSetupData, TagSetupClock)
	}
	if hold, ok := a.HoldView(); ok {
		o.writeTagPasses(s, g.NodeCount(), hold, TagHoldData, TagHoldClock)
	}

	s.line()
}

// writeTagPasses writes all data tags, then all clock tags, each in ascending
// node order.
func (o Options) writeTagPasses(s *sink, nodes int, v timing.TagView, dataType, clockType string) {
	for i := 0; i < nodes; i++ {
		n := timing.NodeID(i)
		o.writeTags(s, dataType, v.DataTags(n), n)
	}
	for i := 0; i < nodes; i++ {
		n := timing.NodeID(i)
		o.writeTags(s, clockType, v.ClockTags(n), n)
	}
}

func (o Options) writeTags(s *sink, typ string, tags timing.Tags, n timing.NodeID) {
	for _, t := range tags {
		if line, ok := o.tagLine(typ, n, t); ok {
			s.line(line)
		}
	}
}

// tagLine formats one tag. It reports false when the tag has nothing to show.
func (o Options) tagLine(typ string, n timing.NodeID, t timing.Tag) (string, bool) {
	arr, arrOK := t.Arrival.Value()
	req, reqOK := t.Required.Value()

	showArr, showReq := arrOK, reqOK
	if o.Legacy {
		// Legacy baselines gate the required time on the arrival time,
		// printing an unset required time as nan.
		showReq = arrOK
	}
	if !showArr && !showReq {
		return "", false
	}

	line := " type: " + typ + " node: " + itoa(n) + " domain: " + itoa(t.Domain)
	if showArr {
		line += " arr: " + float(arr)
	}
	if showReq {
		if reqOK {
			line += " req: " + float(req)
		} else {
			line += " req: nan"
		}
	}
	return line, true
}
