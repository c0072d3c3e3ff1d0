// Package dot renders timing graphs as Graphviz diagrams.
//
// [ToDOT] produces deterministic DOT source: nodes in ascending id order,
// edges in ascending id order, each edge labelled with its id. Node shapes
// follow the node type so sources, sinks and clock pins stand out:
//
//	SOURCE  invhouse
//	SINK    house
//	IPIN    box
//	OPIN    box (rounded)
//	CPIN    diamond
//
// When [Options.Detailed] is set and a tag view is supplied, each node label
// also lists its data tags, one "domain arr/req" line per tag.
//
// [RenderSVG] renders the DOT source with the embedded Graphviz engine. The
// parent render package converts that SVG to PDF or PNG.
package dot
