package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/timing"
)

// Format identifies a snapshot encoding.
type Format string

// Supported snapshot encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown snapshot extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown snapshot format %q", s)
	}
}

// ReadFile reads and validates the snapshot at path, choosing the decoder
// from the file extension.
func ReadFile(path string) (*timing.Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	snap, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Decode reads a snapshot in the given format from r and converts it into
// the timing model. Decode does not close r.
func Decode(r io.Reader, format Format) (*timing.Snapshot, error) {
	file, err := DecodeFile(r, format)
	if err != nil {
		return nil, err
	}
	return file.Snapshot()
}

// DecodeFile reads the serialized form without converting it.
func DecodeFile(r io.Reader, format Format) (*File, error) {
	var file File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	case FormatTOML:
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			return nil, fmt.Errorf("read toml: %w", err)
		}
		md, err := toml.Decode(buf.String(), &file)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "decode toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown snapshot format %q", format)
	}
	return &file, nil
}

// Snapshot validates f and converts it into the timing model.
func (f *File) Snapshot() (*timing.Snapshot, error) {
	g, err := f.Graph.build()
	if err != nil {
		return nil, err
	}
	snap := &timing.Snapshot{Graph: g}

	domains := -1
	if f.Constraints != nil {
		c, err := f.Constraints.build(g)
		if err != nil {
			return nil, err
		}
		snap.Constraints = c
		domains = c.DomainCount()
	}

	if f.Result != nil {
		r, err := f.Result.build(g, domains)
		if err != nil {
			return nil, err
		}
		snap.Result = r
	}
	return snap, nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidSnapshot, format, args...)
}

func checkID(kind string, pos int, id *int32) error {
	if id != nil && int(*id) != pos {
		return invalid("%s %d: id %d does not match its position", kind, pos, *id)
	}
	return nil
}

func (sg Graph) build() (*timing.Graph, error) {
	g := timing.NewGraph()
	for i, n := range sg.Nodes {
		if err := checkID("node", i, n.ID); err != nil {
			return nil, err
		}
		if n.Type == "" {
			return nil, invalid("node %d: missing type", i)
		}
		g.AddNode(timing.NodeType(n.Type))
	}
	for i, e := range sg.Edges {
		if err := checkID("edge", i, e.ID); err != nil {
			return nil, err
		}
		if _, err := g.AddEdge(timing.NodeID(e.Src), timing.NodeID(e.Sink)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "edge %d", i)
		}
	}
	return g, nil
}

func (sc Constraints) build(g *timing.Graph) (*timing.Constraints, error) {
	c := timing.NewConstraints()
	for i, d := range sc.ClockDomains {
		if err := checkID("clock domain", i, d.ID); err != nil {
			return nil, err
		}
		id := c.AddClockDomain(d.Name)
		if d.Source == nil {
			continue
		}
		src := timing.NodeID(*d.Source)
		if !g.HasNode(src) {
			return nil, invalid("clock domain %d: source node %d out of range", i, src)
		}
		if err := c.SetClockDomainSource(id, src); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "clock domain %d", i)
		}
	}

	hasDomain := func(d int32) bool { return d >= 0 && int(d) < c.DomainCount() }

	for _, n := range sc.ConstantGenerators {
		if !g.HasNode(timing.NodeID(n)) {
			return nil, invalid("constant generator: node %d out of range", n)
		}
		c.AddConstantGenerator(timing.NodeID(n))
	}

	nodeGroups := []struct {
		name    string
		entries []NodeConstraint
		set     func(timing.NodeID, timing.DomainID, timing.Time)
	}{
		{"input constraint", sc.InputConstraints, c.SetInputConstraint},
		{"output constraint", sc.OutputConstraints, c.SetOutputConstraint},
	}
	for _, grp := range nodeGroups {
		for i, e := range grp.entries {
			if !g.HasNode(timing.NodeID(e.Node)) {
				return nil, invalid("%s %d: node %d out of range", grp.name, i, e.Node)
			}
			if !hasDomain(e.Domain) {
				return nil, invalid("%s %d: domain %d out of range", grp.name, i, e.Domain)
			}
			grp.set(timing.NodeID(e.Node), timing.DomainID(e.Domain), timing.FromPtr(e.Value))
		}
	}

	domainGroups := []struct {
		name    string
		entries []DomainConstraint
		set     func(src, sink timing.DomainID, v timing.Time)
	}{
		{"setup constraint", sc.SetupConstraints, c.SetSetupConstraint},
		{"hold constraint", sc.HoldConstraints, c.SetHoldConstraint},
	}
	for _, grp := range domainGroups {
		for i, e := range grp.entries {
			if !hasDomain(e.SrcDomain) || !hasDomain(e.SinkDomain) {
				return nil, invalid("%s %d: domain pair (%d, %d) out of range", grp.name, i, e.SrcDomain, e.SinkDomain)
			}
			grp.set(timing.DomainID(e.SrcDomain), timing.DomainID(e.SinkDomain), timing.FromPtr(e.Value))
		}
	}
	return c, nil
}

// build converts the result. domains is the number of clock domains, or -1
// when the snapshot has no constraints to check tag domains against.
func (sr Result) build(g *timing.Graph, domains int) (*timing.Result, error) {
	setup, err := sr.Setup.build("setup", g, domains)
	if err != nil {
		return nil, err
	}
	hold, err := sr.Hold.build("hold", g, domains)
	if err != nil {
		return nil, err
	}
	return timing.NewResult(setup, hold), nil
}

func (st *TagSet) build(name string, g *timing.Graph, domains int) (*timing.TagSet, error) {
	if st == nil {
		return nil, nil
	}
	ts := timing.NewTagSet(g.NodeCount())
	groups := []struct {
		kind string
		tags []Tag
		add  func(timing.NodeID, timing.Tag)
	}{
		{"data", st.DataTags, ts.AddDataTag},
		{"clock", st.ClockTags, ts.AddClockTag},
	}
	for _, grp := range groups {
		for i, t := range grp.tags {
			if !g.HasNode(timing.NodeID(t.Node)) {
				return nil, invalid("%s %s tag %d: node %d out of range", name, grp.kind, i, t.Node)
			}
			if t.Domain < 0 || (domains >= 0 && int(t.Domain) >= domains) {
				return nil, invalid("%s %s tag %d: domain %d out of range", name, grp.kind, i, t.Domain)
			}
			grp.add(timing.NodeID(t.Node), timing.Tag{
				Domain:   timing.DomainID(t.Domain),
				Arrival:  timing.FromPtr(t.Arrival),
				Required: timing.FromPtr(t.Required),
			})
		}
	}
	return ts, nil
}
