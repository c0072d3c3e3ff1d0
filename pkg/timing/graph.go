package timing

import "fmt"

// NodeType labels the role of a node in the timing graph.
type NodeType string

// Node types produced by the netlist front end.
const (
	NodeSource NodeType = "SOURCE"
	NodeSink   NodeType = "SINK"
	NodeIPin   NodeType = "IPIN"
	NodeOPin   NodeType = "OPIN"
	NodeCPin   NodeType = "CPIN"
)

type node struct {
	typ NodeType
	in  []EdgeID
	out []EdgeID
}

type edge struct {
	src  NodeID
	sink NodeID
}

// Graph is a timing graph: an ordered sequence of typed nodes connected by
// directed edges. Adjacency lists are kept in the order edges were attached,
// which is not necessarily ascending.
type Graph struct {
	nodes []node
	edges []edge
}

// NewGraph returns an empty timing graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode appends a node of type t and returns its handle.
func (g *Graph) AddNode(t NodeType) NodeID {
	g.nodes = append(g.nodes, node{typ: t})
	return NodeID(len(g.nodes) - 1)
}

// AddEdge appends a directed edge src→sink and returns its handle.
// Both endpoints must already exist.
func (g *Graph) AddEdge(src, sink NodeID) (EdgeID, error) {
	if !g.hasNode(src) {
		return InvalidEdge, fmt.Errorf("edge source %s: node out of range", src)
	}
	if !g.hasNode(sink) {
		return InvalidEdge, fmt.Errorf("edge sink %s: node out of range", sink)
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge{src: src, sink: sink})
	g.nodes[src].out = append(g.nodes[src].out, id)
	g.nodes[sink].in = append(g.nodes[sink].in, id)
	return id, nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NodeType returns the type label of id.
func (g *Graph) NodeType(id NodeID) NodeType { return g.nodes[id].typ }

// NodeInEdges returns the edges whose sink is id, in attachment order.
// The returned slice must not be modified.
func (g *Graph) NodeInEdges(id NodeID) []EdgeID { return g.nodes[id].in }

// NodeOutEdges returns the edges whose source is id, in attachment order.
// The returned slice must not be modified.
func (g *Graph) NodeOutEdges(id NodeID) []EdgeID { return g.nodes[id].out }

// EdgeSrcNode returns the source node of id.
func (g *Graph) EdgeSrcNode(id EdgeID) NodeID { return g.edges[id].src }

// EdgeSinkNode returns the sink node of id.
func (g *Graph) EdgeSinkNode(id EdgeID) NodeID { return g.edges[id].sink }

func (g *Graph) hasNode(id NodeID) bool {
	return id.Valid() && int(id) < len(g.nodes)
}

// HasNode reports whether id is within the graph's node range.
func (g *Graph) HasNode(id NodeID) bool { return g.hasNode(id) }
