// Package snapshot reads and writes timing snapshots: a timing graph, its
// constraints, and an analysis result exported by the engine as JSON, YAML,
// or TOML.
//
// Snapshots are how the tooling gets engine state into the dump writers
// without linking against the engine. They are fixtures, not the dump format
// itself: the text produced by pkg/dump is never parsed back.
//
// # Format
//
//	{
//	  "graph": {
//	    "nodes": [{"type": "SOURCE"}, {"type": "SINK"}],
//	    "edges": [{"src": 0, "sink": 1}]
//	  },
//	  "constraints": {
//	    "clock_domains": [{"name": "clk", "source": 0}],
//	    "constant_generators": [],
//	    "input_constraints": [{"node": 0, "domain": 0, "value": 0.5}],
//	    "output_constraints": [],
//	    "setup_constraints": [{"src_domain": 0, "sink_domain": 0, "value": 10}],
//	    "hold_constraints": []
//	  },
//	  "result": {
//	    "setup": {
//	      "data_tags": [{"node": 1, "domain": 0, "arr": 1.5, "req": 9}],
//	      "clock_tags": []
//	    }
//	  }
//	}
//
// Nodes, edges, and clock domains are numbered by position. An optional "id"
// field may repeat the position for readability and is checked when present.
// Values that are null, omitted, or NaN (YAML .nan) are unset. The "setup" and
// "hold" results are independent; an omitted one means that analysis did not
// run. "constraints" and "result" may be omitted entirely.
//
// # Validation
//
// [Decode] and [ReadFile] reject snapshots whose handles are out of range with
// an INVALID_SNAPSHOT error naming the offending element.
package snapshot
