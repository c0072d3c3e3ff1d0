package snapshot

// File is the serialized form of a timing snapshot.
type File struct {
	Graph       Graph        `json:"graph" yaml:"graph" toml:"graph"`
	Constraints *Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty" toml:"constraints,omitempty"`
	Result      *Result      `json:"result,omitempty" yaml:"result,omitempty" toml:"result,omitempty"`
}

// Graph is the serialized timing graph.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges" toml:"edges"`
}

// Node is a serialized timing graph node.
type Node struct {
	ID   *int32 `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

// Edge is a serialized timing graph edge.
type Edge struct {
	ID   *int32 `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Src  int32  `json:"src" yaml:"src" toml:"src"`
	Sink int32  `json:"sink" yaml:"sink" toml:"sink"`
}

// Constraints is the serialized constraint set.
type Constraints struct {
	ClockDomains       []ClockDomain      `json:"clock_domains" yaml:"clock_domains" toml:"clock_domains"`
	ConstantGenerators []int32            `json:"constant_generators" yaml:"constant_generators" toml:"constant_generators"`
	InputConstraints   []NodeConstraint   `json:"input_constraints" yaml:"input_constraints" toml:"input_constraints"`
	OutputConstraints  []NodeConstraint   `json:"output_constraints" yaml:"output_constraints" toml:"output_constraints"`
	SetupConstraints   []DomainConstraint `json:"setup_constraints" yaml:"setup_constraints" toml:"setup_constraints"`
	HoldConstraints    []DomainConstraint `json:"hold_constraints" yaml:"hold_constraints" toml:"hold_constraints"`
}

// ClockDomain is a serialized clock domain. Source is omitted for domains not
// anchored to a node.
type ClockDomain struct {
	ID     *int32 `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name   string `json:"name" yaml:"name" toml:"name"`
	Source *int32 `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
}

// NodeConstraint is a serialized input or output constraint.
type NodeConstraint struct {
	Node   int32    `json:"node" yaml:"node" toml:"node"`
	Domain int32    `json:"domain" yaml:"domain" toml:"domain"`
	Value  *float64 `json:"value" yaml:"value" toml:"value,omitempty"`
}

// DomainConstraint is a serialized setup or hold constraint.
type DomainConstraint struct {
	SrcDomain  int32    `json:"src_domain" yaml:"src_domain" toml:"src_domain"`
	SinkDomain int32    `json:"sink_domain" yaml:"sink_domain" toml:"sink_domain"`
	Value      *float64 `json:"value" yaml:"value" toml:"value,omitempty"`
}

// Result is the serialized analysis result.
type Result struct {
	Setup *TagSet `json:"setup,omitempty" yaml:"setup,omitempty" toml:"setup,omitempty"`
	Hold  *TagSet `json:"hold,omitempty" yaml:"hold,omitempty" toml:"hold,omitempty"`
}

// TagSet is the serialized output of one analysis.
type TagSet struct {
	DataTags  []Tag `json:"data_tags" yaml:"data_tags" toml:"data_tags"`
	ClockTags []Tag `json:"clock_tags" yaml:"clock_tags" toml:"clock_tags"`
}

// Tag is a serialized timing tag.
type Tag struct {
	Node     int32    `json:"node" yaml:"node" toml:"node"`
	Domain   int32    `json:"domain" yaml:"domain" toml:"domain"`
	Arrival  *float64 `json:"arr" yaml:"arr" toml:"arr,omitempty"`
	Required *float64 `json:"req" yaml:"req" toml:"req,omitempty"`
}
