package dump

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/matzehuels/stadump/pkg/timing"
)

// fixture builds the snapshot behind testdata/golden/snapshot*.golden.
func fixture(t *testing.T) *timing.Snapshot {
	t.Helper()

	g := timing.NewGraph()
	n0 := g.AddNode(timing.NodeSource)
	n1 := g.AddNode(timing.NodeSource)
	n2 := g.AddNode(timing.NodeIPin)
	n3 := g.AddNode(timing.NodeSink)
	n4 := g.AddNode(timing.NodeSource)
	n5 := g.AddNode(timing.NodeCPin)
	for _, e := range [][2]timing.NodeID{{n1, n2}, {n0, n2}, {n2, n3}, {n4, n5}, {n5, n3}} {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}

	c := timing.NewConstraints()
	clk := c.AddClockDomain("clk")
	virt := c.AddClockDomain("virt")
	if err := c.SetClockDomainSource(clk, n4); err != nil {
		t.Fatal(err)
	}
	c.AddConstantGenerator(n1)
	c.SetInputConstraint(n0, clk, timing.Some(0.5))
	c.SetInputConstraint(n1, clk, timing.None())
	c.SetOutputConstraint(n3, clk, timing.Some(1.25))
	c.SetSetupConstraint(clk, clk, timing.Some(10))
	c.SetSetupConstraint(virt, clk, timing.None())
	c.SetSetupConstraint(clk, virt, timing.Some(3.33333333))
	c.SetHoldConstraint(clk, clk, timing.Some(0))

	setup := timing.NewTagSet(g.NodeCount())
	setup.AddDataTag(n0, timing.Tag{Domain: clk, Arrival: timing.Some(0.5)})
	setup.AddDataTag(n1, timing.Tag{Domain: clk, Required: timing.Some(4)})
	setup.AddDataTag(n2, timing.Tag{Domain: clk, Arrival: timing.Some(1.5), Required: timing.Some(9)})
	setup.AddDataTag(n2, timing.Tag{Domain: virt, Arrival: timing.Some(2)})
	setup.AddDataTag(n3, timing.Tag{Domain: clk, Arrival: timing.Some(2.75), Required: timing.Some(10)})
	setup.AddClockTag(n0, timing.Tag{Domain: virt})
	setup.AddClockTag(n3, timing.Tag{Domain: clk, Arrival: timing.Some(0.2)})
	setup.AddClockTag(n4, timing.Tag{Domain: clk, Arrival: timing.Some(0)})
	setup.AddClockTag(n5, timing.Tag{Domain: clk, Arrival: timing.Some(0.1), Required: timing.Some(0.1)})

	hold := timing.NewTagSet(g.NodeCount())
	hold.AddDataTag(n3, timing.Tag{Domain: clk, Arrival: timing.Some(1.1), Required: timing.Some(0.3)})

	return &timing.Snapshot{Graph: g, Constraints: c, Result: timing.NewResult(setup, hold)}
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestGolden(t *testing.T) {
	gold := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))

	tests := []struct {
		name string
		opts Options
	}{
		{"snapshot", Options{}},
		{"snapshot_legacy", Options{Legacy: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := tt.opts.WriteSnapshot(&buf, fixture(t)); err != nil {
				t.Fatalf("WriteSnapshot: %v", err)
			}
			gold.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestWriteGraphTwoNodes(t *testing.T) {
	g := timing.NewGraph()
	src := g.AddNode(timing.NodeSource)
	sink := g.AddNode(timing.NodeSink)
	if _, err := g.AddEdge(src, sink); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteGraph(&buf, g); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}

	want := lines(
		"timing_graph:",
		" node: 0",
		"  type: SOURCE",
		"  in_edges: ",
		"  out_edges: 0",
		" node: 1",
		"  type: SINK",
		"  in_edges: 0",
		"  out_edges: ",
		" edge: 0",
		"  src_node: 0",
		"  sink_node: 1",
		"",
	)
	if got := buf.String(); got != want {
		t.Errorf("WriteGraph mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteGraphEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraph(&buf, timing.NewGraph()); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "timing_graph:\n\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// shuffledGraph stores adjacency in an arbitrary order, like a hash set would.
type shuffledGraph struct {
	*timing.Graph
	rng *rand.Rand
}

func (g shuffledGraph) NodeInEdges(n timing.NodeID) []timing.EdgeID {
	return g.shuffle(g.Graph.NodeInEdges(n))
}

func (g shuffledGraph) NodeOutEdges(n timing.NodeID) []timing.EdgeID {
	return g.shuffle(g.Graph.NodeOutEdges(n))
}

func (g shuffledGraph) shuffle(in []timing.EdgeID) []timing.EdgeID {
	out := append([]timing.EdgeID(nil), in...)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func fanGraph(t *testing.T, fan int) *timing.Graph {
	t.Helper()
	g := timing.NewGraph()
	hub := g.AddNode(timing.NodeIPin)
	for i := 0; i < fan; i++ {
		src := g.AddNode(timing.NodeSource)
		sink := g.AddNode(timing.NodeSink)
		if _, err := g.AddEdge(src, hub); err != nil {
			t.Fatal(err)
		}
		if _, err := g.AddEdge(hub, sink); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestWriteGraphDeterministic(t *testing.T) {
	base := fanGraph(t, 12)

	var want bytes.Buffer
	if err := WriteGraph(&want, base); err != nil {
		t.Fatal(err)
	}

	for seed := int64(1); seed <= 20; seed++ {
		var got bytes.Buffer
		g := shuffledGraph{Graph: base, rng: rand.New(rand.NewSource(seed))}
		if err := WriteGraph(&got, g); err != nil {
			t.Fatal(err)
		}
		if got.String() != want.String() {
			t.Fatalf("seed %d: output differs from baseline", seed)
		}
	}
}

func TestWriteGraphSortsEdgeLists(t *testing.T) {
	g := shuffledGraph{Graph: fanGraph(t, 8), rng: rand.New(rand.NewSource(42))}

	var buf bytes.Buffer
	if err := WriteGraph(&buf, g); err != nil {
		t.Fatal(err)
	}
	for _, l := range strings.Split(buf.String(), "\n") {
		l = strings.TrimSpace(l)
		if !strings.HasPrefix(l, "in_edges:") && !strings.HasPrefix(l, "out_edges:") {
			continue
		}
		_, list, _ := strings.Cut(l, ":")
		prev := -1
		for _, f := range strings.Fields(list) {
			var v int
			for _, r := range f {
				v = v*10 + int(r-'0')
			}
			if v <= prev {
				t.Fatalf("edge list not strictly ascending: %q", l)
			}
			prev = v
		}
	}
}

func TestWriteGraphDoesNotMutateAdjacency(t *testing.T) {
	g := timing.NewGraph()
	a := g.AddNode(timing.NodeSource)
	b := g.AddNode(timing.NodeSink)
	g.AddEdge(a, b)
	g.AddEdge(a, b)

	adj := []timing.EdgeID{1, 0}
	r := reversedGraph{Graph: g, out: adj}
	if err := WriteGraph(&bytes.Buffer{}, r); err != nil {
		t.Fatal(err)
	}
	if adj[0] != 1 || adj[1] != 0 {
		t.Errorf("adjacency was reordered: %v", adj)
	}
}

type reversedGraph struct {
	*timing.Graph
	out []timing.EdgeID
}

func (g reversedGraph) NodeOutEdges(timing.NodeID) []timing.EdgeID { return g.out }

func TestWriteConstraintsScenario(t *testing.T) {
	c := timing.NewConstraints()
	clk := c.AddClockDomain("clk")
	c.SetInputConstraint(3, clk, timing.Some(2.5))

	var buf bytes.Buffer
	if err := WriteConstraints(&buf, c); err != nil {
		t.Fatal(err)
	}
	want := lines(
		"timing_constraints:",
		` type: CLOCK domain: 0 name: "clk"`,
		" type: INPUT_CONSTRAINT node: 3 domain: 0 constraint: 2.5",
		"",
	)
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteConstraintsUnsetFilter(t *testing.T) {
	tests := []struct {
		name  string
		build func(c *timing.Constraints)
		want  int
	}{
		{"InputSet", func(c *timing.Constraints) { c.SetInputConstraint(0, 0, timing.Some(1)) }, 1},
		{"InputUnset", func(c *timing.Constraints) { c.SetInputConstraint(0, 0, timing.None()) }, 0},
		{"OutputSet", func(c *timing.Constraints) { c.SetOutputConstraint(0, 0, timing.Some(-1)) }, 1},
		{"OutputUnset", func(c *timing.Constraints) { c.SetOutputConstraint(0, 0, timing.None()) }, 0},
		{"SetupZero", func(c *timing.Constraints) { c.SetSetupConstraint(0, 0, timing.Some(0)) }, 1},
		{"SetupUnset", func(c *timing.Constraints) { c.SetSetupConstraint(0, 0, timing.None()) }, 0},
		{"HoldSet", func(c *timing.Constraints) { c.SetHoldConstraint(0, 0, timing.Some(0.25)) }, 1},
		{"HoldUnset", func(c *timing.Constraints) { c.SetHoldConstraint(0, 0, timing.None()) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := timing.NewConstraints()
			tt.build(c)
			var buf bytes.Buffer
			if err := WriteConstraints(&buf, c); err != nil {
				t.Fatal(err)
			}
			// header + trailing blank line
			if got := strings.Count(buf.String(), "\n") - 2; got != tt.want {
				t.Errorf("record lines = %d, want %d\n%s", got, tt.want, buf.String())
			}
		})
	}
}

func TestWriteConstraintsGroupOrder(t *testing.T) {
	c := timing.NewConstraints()
	c.SetHoldConstraint(0, 0, timing.Some(1))
	c.SetSetupConstraint(0, 0, timing.Some(1))
	c.SetOutputConstraint(1, 0, timing.Some(1))
	c.SetInputConstraint(1, 0, timing.Some(1))
	c.AddConstantGenerator(5)
	d := c.AddClockDomain("clk")
	c.SetClockDomainSource(d, 7)

	var buf bytes.Buffer
	if err := WriteConstraints(&buf, c); err != nil {
		t.Fatal(err)
	}

	order := []string{"CLOCK ", "CLOCK_SOURCE", "CONSTANT_GENERATOR", "INPUT_CONSTRAINT",
		"OUTPUT_CONSTRAINT", "SETUP_CONSTRAINT", "HOLD_CONSTRAINT"}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")[1:]
	if len(got) != len(order) {
		t.Fatalf("got %d records, want %d:\n%s", len(got), len(order), buf.String())
	}
	for i, typ := range order {
		if !strings.HasPrefix(got[i], " type: "+typ) {
			t.Errorf("record %d = %q, want type %s", i, got[i], typ)
		}
	}
}

func TestWriteConstraintsSorted(t *testing.T) {
	c := timing.NewConstraints()
	c.AddClockDomain("a")
	c.AddClockDomain("b")
	c.SetInputConstraint(9, 0, timing.Some(1))
	c.SetInputConstraint(2, 1, timing.Some(2))
	c.SetSetupConstraint(1, 0, timing.Some(3))
	c.SetSetupConstraint(0, 1, timing.Some(4))
	c.AddConstantGenerator(8)
	c.AddConstantGenerator(3)

	var buf bytes.Buffer
	if err := (Options{SortConstraints: true}).WriteConstraints(&buf, c); err != nil {
		t.Fatal(err)
	}
	want := lines(
		"timing_constraints:",
		` type: CLOCK domain: 0 name: "a"`,
		` type: CLOCK domain: 1 name: "b"`,
		" type: CONSTANT_GENERATOR node: 3",
		" type: CONSTANT_GENERATOR node: 8",
		" type: INPUT_CONSTRAINT node: 2 domain: 1 constraint: 2",
		" type: INPUT_CONSTRAINT node: 9 domain: 0 constraint: 1",
		" type: SETUP_CONSTRAINT src_domain: 0 sink_domain: 1 constraint: 4",
		" type: SETUP_CONSTRAINT src_domain: 1 sink_domain: 0 constraint: 3",
		"",
	)
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	// the reader's own order is left untouched
	if in := c.InputConstraints(); in[0].Node != 9 {
		t.Errorf("SortConstraints reordered the reader: %+v", in)
	}
}

func TestWriteConstraintsQuotesNames(t *testing.T) {
	c := timing.NewConstraints()
	c.AddClockDomain(`odd "name"`)

	var buf bytes.Buffer
	if err := WriteConstraints(&buf, c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `name: "odd \"name\""`) {
		t.Errorf("name not quoted: %s", buf.String())
	}
}

func TestWriteConstraintsLegacyRawNames(t *testing.T) {
	c := timing.NewConstraints()
	c.AddClockDomain(`\clk[0] `)

	var buf bytes.Buffer
	if err := (Options{Legacy: true}).WriteConstraints(&buf, c); err != nil {
		t.Fatal(err)
	}
	if want := " type: CLOCK domain: 0 name: \"\\clk[0] \"\n"; !strings.Contains(buf.String(), want) {
		t.Errorf("legacy name should be written raw, want %q in:\n%s", want, buf.String())
	}

	buf.Reset()
	if err := WriteConstraints(&buf, c); err != nil {
		t.Fatal(err)
	}
	if want := ` name: "\\clk[0] "`; !strings.Contains(buf.String(), want) {
		t.Errorf("default name should be escaped, want %q in:\n%s", want, buf.String())
	}
}

type noCapabilities struct{}

func (noCapabilities) SetupView() (timing.TagView, bool) { return nil, false }
func (noCapabilities) HoldView() (timing.TagView, bool)  { return nil, false }

func TestWriteResultCapabilities(t *testing.T) {
	g := timing.NewGraph()
	n := g.AddNode(timing.NodeSink)

	tags := timing.NewTagSet(1)
	tags.AddDataTag(n, timing.Tag{Domain: 0, Arrival: timing.Some(1), Required: timing.Some(2)})
	tags.AddClockTag(n, timing.Tag{Domain: 0, Arrival: timing.Some(0)})

	tests := []struct {
		name string
		a    Analyzer
		want string
	}{
		{
			name: "Neither",
			a:    noCapabilities{},
			want: lines("analysis_result:", ""),
		},
		{
			name: "NilResult",
			a:    timing.NewResult(nil, nil),
			want: lines("analysis_result:", ""),
		},
		{
			name: "SetupOnly",
			a:    timing.NewResult(tags, nil),
			want: lines(
				"analysis_result:",
				" type: SETUP_DATA node: 0 domain: 0 arr: 1 req: 2",
				" type: SETUP_CLOCK node: 0 domain: 0 arr: 0",
				"",
			),
		},
		{
			name: "HoldOnly",
			a:    timing.NewResult(nil, tags),
			want: lines(
				"analysis_result:",
				" type: HOLD_DATA node: 0 domain: 0 arr: 1 req: 2",
				" type: HOLD_CLOCK node: 0 domain: 0 arr: 0",
				"",
			),
		},
		{
			name: "Both",
			a:    timing.NewResult(tags, tags),
			want: lines(
				"analysis_result:",
				" type: SETUP_DATA node: 0 domain: 0 arr: 1 req: 2",
				" type: SETUP_CLOCK node: 0 domain: 0 arr: 0",
				" type: HOLD_DATA node: 0 domain: 0 arr: 1 req: 2",
				" type: HOLD_CLOCK node: 0 domain: 0 arr: 0",
				"",
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteResult(&buf, g, tt.a); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestWriteResultDataBeforeClock(t *testing.T) {
	g := timing.NewGraph()
	g.AddNode(timing.NodeSource)
	g.AddNode(timing.NodeSink)

	tags := timing.NewTagSet(2)
	tags.AddClockTag(0, timing.Tag{Arrival: timing.Some(1)})
	tags.AddDataTag(1, timing.Tag{Arrival: timing.Some(2)})

	var buf bytes.Buffer
	if err := WriteResult(&buf, g, timing.NewResult(tags, nil)); err != nil {
		t.Fatal(err)
	}
	want := lines(
		"analysis_result:",
		" type: SETUP_DATA node: 1 domain: 0 arr: 2",
		" type: SETUP_CLOCK node: 0 domain: 0 arr: 1",
		"",
	)
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// Required-time gating: the default format gates each field on its own
// validity; Legacy reproduces the old baselines, where required was gated on
// arrival. Both behaviors are pinned here on purpose.
func TestTagLineGating(t *testing.T) {
	tests := []struct {
		name   string
		legacy bool
		tag    timing.Tag
		want   string
		ok     bool
	}{
		{"BothSet", false, timing.Tag{Arrival: timing.Some(1), Required: timing.Some(5)}, " type: SETUP_DATA node: 2 domain: 1 arr: 1 req: 5", true},
		{"ArrivalOnly", false, timing.Tag{Arrival: timing.Some(1)}, " type: SETUP_DATA node: 2 domain: 1 arr: 1", true},
		{"RequiredOnly", false, timing.Tag{Required: timing.Some(5)}, " type: SETUP_DATA node: 2 domain: 1 req: 5", true},
		{"NeitherSet", false, timing.Tag{}, "", false},
		{"LegacyBothSet", true, timing.Tag{Arrival: timing.Some(1), Required: timing.Some(5)}, " type: SETUP_DATA node: 2 domain: 1 arr: 1 req: 5", true},
		{"LegacyArrivalOnly", true, timing.Tag{Arrival: timing.Some(1)}, " type: SETUP_DATA node: 2 domain: 1 arr: 1 req: nan", true},
		{"LegacyRequiredOnly", true, timing.Tag{Required: timing.Some(5)}, "", false},
		{"LegacyNeitherSet", true, timing.Tag{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.tag.Domain = 1
			got, ok := Options{Legacy: tt.legacy}.tagLine(TagSetupData, 2, tt.tag)
			if ok != tt.ok || got != tt.want {
				t.Errorf("tagLine = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFloatFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "2.5"},
		{10, "10"},
		{0, "0"},
		{-1.25, "-1.25"},
		{1.0 / 3, "0.333333"},
		{1e-9, "1e-09"},
		{123456789, "1.23457e+08"},
		{100000, "100000"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		if got := float(tt.in); got != tt.want {
			t.Errorf("float(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type failWriter struct {
	after int
	n     int
}

var errSinkClosed = errors.New("sink closed")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n >= w.after {
		return 0, errSinkClosed
	}
	w.n++
	return len(p), nil
}

func TestWriteErrorsPropagate(t *testing.T) {
	snap := fixture(t)

	tests := []struct {
		name  string
		write func(w *failWriter) error
	}{
		{"Graph", func(w *failWriter) error { return WriteGraph(w, snap.Graph) }},
		{"Constraints", func(w *failWriter) error { return WriteConstraints(w, snap.Constraints) }},
		{"Result", func(w *failWriter) error { return WriteResult(w, snap.Graph, snap.Result) }},
		{"All", func(w *failWriter) error { return WriteAll(w, snap.Graph, snap.Constraints, snap.Result) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &failWriter{after: 3}
			if err := tt.write(w); !errors.Is(err, errSinkClosed) {
				t.Errorf("err = %v, want %v", err, errSinkClosed)
			}
			if w.n != 3 {
				t.Errorf("writes after failure: %d", w.n)
			}
		})
	}
}

func TestWriteAllStats(t *testing.T) {
	var buf bytes.Buffer
	st, err := Options{}.WriteSnapshot(&buf, fixture(t))
	if err != nil {
		t.Fatal(err)
	}
	if st.GraphLines != 41 || st.ConstraintLines != 11 || st.ResultLines != 11 {
		t.Errorf("stats = %+v", st)
	}
	if st.Total() != strings.Count(buf.String(), "\n") {
		t.Errorf("Total = %d, lines = %d", st.Total(), strings.Count(buf.String(), "\n"))
	}
}

func TestWriteAllRepeatable(t *testing.T) {
	snap := fixture(t)
	var a, b bytes.Buffer
	if err := WriteAll(&a, snap.Graph, snap.Constraints, snap.Result); err != nil {
		t.Fatal(err)
	}
	if err := WriteAll(&b, snap.Graph, snap.Constraints, snap.Result); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("repeated dumps differ")
	}
}
