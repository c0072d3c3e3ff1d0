package dump

import (
	"cmp"
	"io"
	"slices"
	"strconv"

	"github.com/matzehuels/stadump/pkg/timing"
)

// Constraints is the read contract of a timing constraint set.
// [*timing.Constraints] satisfies it.
//
// The constraints section lists each group in the order these methods return
// it. If an implementation returns entries in a nondeterministic order (for
// example by ranging over a map), the section is not reproducible across runs
// unless [Options.SortConstraints] is set.
type Constraints interface {
	ClockDomains() []timing.DomainID
	ClockDomainName(timing.DomainID) string
	ClockDomainSource(timing.DomainID) timing.NodeID
	ConstantGenerators() []timing.NodeID
	InputConstraints() []timing.NodeConstraint
	OutputConstraints() []timing.NodeConstraint
	SetupConstraints() []timing.DomainConstraint
	HoldConstraints() []timing.DomainConstraint
}

// WriteConstraints writes the timing_constraints section for c.
func WriteConstraints(w io.Writer, c Constraints) error {
	return Options{}.WriteConstraints(w, c)
}

// WriteConstraints writes the timing_constraints section for c using o.
func (o Options) WriteConstraints(w io.Writer, c Constraints) error {
	s := newSink(w)
	o.writeConstraints(s, c)
	return s.err
}

func (o Options) writeConstraints(s *sink, c Constraints) {
	s.line("timing_constraints:")

	domains := o.sortedIDs(c.ClockDomains())
	for _, d := range domains {
		s.line(" type: CLOCK domain: ", itoa(d), " name: ", o.quoteName(c.ClockDomainName(d)))
	}
	for _, d := range domains {
		if src := c.ClockDomainSource(d); src.Valid() {
			s.line(" type: CLOCK_SOURCE node: ", itoa(src), " domain: ", itoa(d))
		}
	}

	for _, n := range o.sortedNodes(c.ConstantGenerators()) {
		s.line(" type: CONSTANT_GENERATOR node: ", itoa(n))
	}

	o.writeNodeConstraints(s, "INPUT_CONSTRAINT", c.InputConstraints())
	o.writeNodeConstraints(s, "OUTPUT_CONSTRAINT", c.OutputConstraints())
	o.writeDomainConstraints(s, "SETUP_CONSTRAINT", c.SetupConstraints())
	o.writeDomainConstraints(s, "HOLD_CONSTRAINT", c.HoldConstraints())

	s.line()
}

func (o Options) writeNodeConstraints(s *sink, typ string, entries []timing.NodeConstraint) {
	if o.SortConstraints {
		entries = slices.SortedStableFunc(slices.Values(entries), func(a, b timing.NodeConstraint) int {
			return cmp.Or(cmp.Compare(a.Node, b.Node), cmp.Compare(a.Domain, b.Domain))
		})
	}
	for _, e := range entries {
		v, ok := e.Value.Value()
		if !ok {
			continue
		}
		s.line(" type: ", typ, " node: ", itoa(e.Node), " domain: ", itoa(e.Domain), " constraint: ", float(v))
	}
}

func (o Options) writeDomainConstraints(s *sink, typ string, entries []timing.DomainConstraint) {
	if o.SortConstraints {
		entries = slices.SortedStableFunc(slices.Values(entries), func(a, b timing.DomainConstraint) int {
			return cmp.Or(cmp.Compare(a.Src, b.Src), cmp.Compare(a.Sink, b.Sink))
		})
	}
	for _, e := range entries {
		v, ok := e.Value.Value()
		if !ok {
			continue
		}
		s.line(" type: ", typ, " src_domain: ", itoa(e.Src), " sink_domain: ", itoa(e.Sink), " constraint: ", float(v))
	}
}

func (o Options) sortedIDs(ids []timing.DomainID) []timing.DomainID {
	if !o.SortConstraints {
		return ids
	}
	return slices.Sorted(slices.Values(ids))
}

func (o Options) sortedNodes(ids []timing.NodeID) []timing.NodeID {
	if !o.SortConstraints {
		return ids
	}
	return slices.Sorted(slices.Values(ids))
}

// quoteName escapes name as a Go string literal. Legacy output wraps the raw
// name in double quotes without escaping.
func (o Options) quoteName(name string) string {
	if o.Legacy {
		return `"` + name + `"`
	}
	return strconv.Quote(name)
}
