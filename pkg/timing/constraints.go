package timing

import "fmt"

// NodeConstraint is an input or output constraint on a node, relative to a
// clock domain.
type NodeConstraint struct {
	Node   NodeID
	Domain DomainID
	Value  Time
}

// DomainPair keys a setup or hold constraint between a launching (Src) and
// capturing (Sink) clock domain.
type DomainPair struct {
	Src  DomainID
	Sink DomainID
}

// DomainConstraint is a setup or hold constraint between two clock domains.
type DomainConstraint struct {
	DomainPair
	Value Time
}

type clockDomain struct {
	name   string
	source NodeID
}

// Constraints holds the timing constraints applied to a graph.
//
// Every collection iterates in insertion order. Setting a constraint for a
// key that already exists replaces its value in place.
type Constraints struct {
	domains     []clockDomain
	constGens   []NodeID
	constGenSet map[NodeID]struct{}
	inputs      []NodeConstraint
	inputIdx    map[NodeID]int
	outputs     []NodeConstraint
	outputIdx   map[NodeID]int
	setup       []DomainConstraint
	setupIdx    map[DomainPair]int
	hold        []DomainConstraint
	holdIdx     map[DomainPair]int
}

// NewConstraints returns an empty constraint set.
func NewConstraints() *Constraints {
	return &Constraints{
		constGenSet: make(map[NodeID]struct{}),
		inputIdx:    make(map[NodeID]int),
		outputIdx:   make(map[NodeID]int),
		setupIdx:    make(map[DomainPair]int),
		holdIdx:     make(map[DomainPair]int),
	}
}

// AddClockDomain creates a clock domain with no source node.
func (c *Constraints) AddClockDomain(name string) DomainID {
	c.domains = append(c.domains, clockDomain{name: name, source: InvalidNode})
	return DomainID(len(c.domains) - 1)
}

// SetClockDomainSource anchors domain d to node n.
func (c *Constraints) SetClockDomainSource(d DomainID, n NodeID) error {
	if !c.hasDomain(d) {
		return fmt.Errorf("clock domain %s: out of range", d)
	}
	c.domains[d].source = n
	return nil
}

// FindClockDomain returns the domain named name.
func (c *Constraints) FindClockDomain(name string) (DomainID, bool) {
	for i, d := range c.domains {
		if d.name == name {
			return DomainID(i), true
		}
	}
	return InvalidDomain, false
}

// AddConstantGenerator marks n as a constant generator. Duplicates are ignored.
func (c *Constraints) AddConstantGenerator(n NodeID) {
	if _, ok := c.constGenSet[n]; ok {
		return
	}
	c.constGenSet[n] = struct{}{}
	c.constGens = append(c.constGens, n)
}

// SetInputConstraint sets the input constraint of node n in domain d.
func (c *Constraints) SetInputConstraint(n NodeID, d DomainID, v Time) {
	c.inputs = setNode(c.inputs, c.inputIdx, NodeConstraint{Node: n, Domain: d, Value: v})
}

// SetOutputConstraint sets the output constraint of node n in domain d.
func (c *Constraints) SetOutputConstraint(n NodeID, d DomainID, v Time) {
	c.outputs = setNode(c.outputs, c.outputIdx, NodeConstraint{Node: n, Domain: d, Value: v})
}

// SetSetupConstraint sets the setup constraint between src and sink.
func (c *Constraints) SetSetupConstraint(src, sink DomainID, v Time) {
	c.setup = setPair(c.setup, c.setupIdx, DomainConstraint{DomainPair{src, sink}, v})
}

// SetHoldConstraint sets the hold constraint between src and sink.
func (c *Constraints) SetHoldConstraint(src, sink DomainID, v Time) {
	c.hold = setPair(c.hold, c.holdIdx, DomainConstraint{DomainPair{src, sink}, v})
}

// ClockDomains returns all domain handles in ascending order.
func (c *Constraints) ClockDomains() []DomainID {
	ids := make([]DomainID, len(c.domains))
	for i := range c.domains {
		ids[i] = DomainID(i)
	}
	return ids
}

// ClockDomainName returns the name of d.
func (c *Constraints) ClockDomainName(d DomainID) string { return c.domains[d].name }

// ClockDomainSource returns the source node of d, or [InvalidNode] if the
// domain is not anchored to a node.
func (c *Constraints) ClockDomainSource(d DomainID) NodeID { return c.domains[d].source }

// ConstantGenerators returns the constant generator nodes.
func (c *Constraints) ConstantGenerators() []NodeID { return c.constGens }

// InputConstraints returns the input constraints, including unset ones.
func (c *Constraints) InputConstraints() []NodeConstraint { return c.inputs }

// OutputConstraints returns the output constraints, including unset ones.
func (c *Constraints) OutputConstraints() []NodeConstraint { return c.outputs }

// SetupConstraints returns the setup constraints, including unset ones.
func (c *Constraints) SetupConstraints() []DomainConstraint { return c.setup }

// HoldConstraints returns the hold constraints, including unset ones.
func (c *Constraints) HoldConstraints() []DomainConstraint { return c.hold }

// DomainCount returns the number of clock domains.
func (c *Constraints) DomainCount() int { return len(c.domains) }

func (c *Constraints) hasDomain(d DomainID) bool {
	return d.Valid() && int(d) < len(c.domains)
}

func setNode(s []NodeConstraint, idx map[NodeID]int, nc NodeConstraint) []NodeConstraint {
	if i, ok := idx[nc.Node]; ok {
		s[i] = nc
		return s
	}
	idx[nc.Node] = len(s)
	return append(s, nc)
}

func setPair(s []DomainConstraint, idx map[DomainPair]int, dc DomainConstraint) []DomainConstraint {
	if i, ok := idx[dc.DomainPair]; ok {
		s[i] = dc
		return s
	}
	idx[dc.DomainPair] = len(s)
	return append(s, dc)
}
