package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/timing"
)

// FromSnapshot converts a timing snapshot to its serialized form.
// Elements are listed in ascending id order so encoded fixtures are stable.
func FromSnapshot(snap *timing.Snapshot) *File {
	f := &File{Graph: fromGraph(snap.Graph)}
	if snap.Constraints != nil {
		f.Constraints = fromConstraints(snap.Constraints)
	}
	if snap.Result != nil {
		f.Result = &Result{
			Setup: fromTagSet(snap.Result.Setup()),
			Hold:  fromTagSet(snap.Result.Hold()),
		}
	}
	return f
}

// Encode writes snap to w in the given format.
func Encode(w io.Writer, snap *timing.Snapshot, format Format) error {
	f := FromSnapshot(snap)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown snapshot format %q", format)
	}
	return nil
}

// WriteFile writes snap to path, choosing the encoder from the extension.
func WriteFile(snap *timing.Snapshot, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, snap, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fromGraph(g *timing.Graph) Graph {
	out := Graph{
		Nodes: make([]Node, g.NodeCount()),
		Edges: make([]Edge, g.EdgeCount()),
	}
	for i := range out.Nodes {
		out.Nodes[i] = Node{Type: string(g.NodeType(timing.NodeID(i)))}
	}
	for i := range out.Edges {
		e := timing.EdgeID(i)
		out.Edges[i] = Edge{Src: int32(g.EdgeSrcNode(e)), Sink: int32(g.EdgeSinkNode(e))}
	}
	return out
}

func fromConstraints(c *timing.Constraints) *Constraints {
	out := &Constraints{}
	for _, d := range c.ClockDomains() {
		cd := ClockDomain{Name: c.ClockDomainName(d)}
		if src := c.ClockDomainSource(d); src.Valid() {
			v := int32(src)
			cd.Source = &v
		}
		out.ClockDomains = append(out.ClockDomains, cd)
	}
	for _, n := range c.ConstantGenerators() {
		out.ConstantGenerators = append(out.ConstantGenerators, int32(n))
	}
	out.InputConstraints = fromNodeConstraints(c.InputConstraints())
	out.OutputConstraints = fromNodeConstraints(c.OutputConstraints())
	out.SetupConstraints = fromDomainConstraints(c.SetupConstraints())
	out.HoldConstraints = fromDomainConstraints(c.HoldConstraints())
	return out
}

func fromNodeConstraints(in []timing.NodeConstraint) []NodeConstraint {
	var out []NodeConstraint
	for _, e := range in {
		out = append(out, NodeConstraint{Node: int32(e.Node), Domain: int32(e.Domain), Value: e.Value.Ptr()})
	}
	return out
}

func fromDomainConstraints(in []timing.DomainConstraint) []DomainConstraint {
	var out []DomainConstraint
	for _, e := range in {
		out = append(out, DomainConstraint{SrcDomain: int32(e.Src), SinkDomain: int32(e.Sink), Value: e.Value.Ptr()})
	}
	return out
}

func fromTagSet(ts *timing.TagSet) *TagSet {
	if ts == nil {
		return nil
	}
	out := &TagSet{}
	for i := 0; i < ts.NodeCount(); i++ {
		n := timing.NodeID(i)
		out.DataTags = appendTags(out.DataTags, n, ts.DataTags(n))
		out.ClockTags = appendTags(out.ClockTags, n, ts.ClockTags(n))
	}
	return out
}

func appendTags(dst []Tag, n timing.NodeID, tags timing.Tags) []Tag {
	for _, t := range tags {
		dst = append(dst, Tag{
			Node:     int32(n),
			Domain:   int32(t.Domain),
			Arrival:  t.Arrival.Ptr(),
			Required: t.Required.Ptr(),
		})
	}
	return dst
}
