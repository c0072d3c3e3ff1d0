// Package dump writes timing graphs, constraints, and analysis results as a
// stable, line-oriented text format for regression diffs.
//
// # Format
//
// Each writer emits one section and terminates it with a blank line:
//
//	timing_graph:
//	 node: 0
//	  type: SOURCE
//	  in_edges:
//	  out_edges: 0
//	 edge: 0
//	  src_node: 0
//	  sink_node: 1
//
//	timing_constraints:
//	 type: CLOCK domain: 0 name: "clk"
//	 type: INPUT_CONSTRAINT node: 3 domain: 0 constraint: 2.5
//
//	analysis_result:
//	 type: SETUP_DATA node: 1 domain: 0 arr: 1 req: 4
//
// Sections are conventionally written graph, constraints, results; [WriteAll]
// does exactly that, but the individual writers do not depend on each other.
//
// # Determinism
//
// Nodes and edges are written in ascending id order, and each node's edge
// lists are sorted before emission, so the graph section does not depend on
// adjacency storage order. The constraints section follows the iteration
// order of the [Constraints] reader; see [Options.SortConstraints].
//
// Unset values never appear: a constraint whose value is unset yields no line,
// and tag lines omit unset arrival or required times.
//
// # Errors
//
// Writers stop at the first error returned by the destination and return it.
// Nothing is buffered or retried. Out-of-range ids in the inputs are a caller
// bug and are not detected.
//
// # Concurrency
//
// Writers hold no state and only read their inputs. Concurrent writers sharing
// one io.Writer must be serialized by the caller.
package dump
