// Package timing defines the read-only data model consumed by the dump writers:
// timing graphs, timing constraints, and analysis results.
//
// # Handles
//
// Nodes, edges, and clock domains are addressed by typed integer handles
// ([NodeID], [EdgeID], [DomainID]). Handles are assigned contiguously from
// zero and double as dense slice indices. Each handle type reserves -1 as an
// invalid sentinel, so "no node" is expressed as [InvalidNode] rather than a
// zero value:
//
//	src := timing.InvalidNode
//	if src.Valid() {
//	    // domain is anchored to a node
//	}
//
// # Optional Values
//
// Constraint values, arrival times, and required times are [Time] values. A
// Time is either set or unset; there is no NaN sentinel:
//
//	t := timing.Some(2.5)   // set
//	u := timing.None()      // unset
//	v := timing.FromFloat(x) // unset when x is NaN
//
// # Results
//
// [Result] carries optional setup and hold tag sets. Consumers query
// capabilities through [Result.SetupView] and [Result.HoldView], each of
// which reports whether that analysis was performed.
//
// # Concurrency
//
// All types are populated by a single owner and are safe for concurrent reads
// once construction is finished. Mutating methods are not synchronized.
package timing
