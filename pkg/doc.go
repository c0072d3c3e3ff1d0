// Package pkg provides the core libraries for stadump, a deterministic text
// serializer for static timing analysis state.
//
// # Overview
//
// A timing analysis run produces three things worth comparing across
// revisions: the timing graph, the constraints applied to it, and the
// setup/hold tags the analyzers computed. stadump writes each of them as a
// stable, line-oriented text section so two runs can be diffed with plain
// text tools or checked against a stored baseline. The pkg directory is
// organized into four areas:
//
//  1. [timing] and [dump] - The data model and the dump writers
//  2. [snapshot] - JSON/YAML/TOML encoding of a complete analysis state
//  3. [baseline] and [pipeline] - Stored dumps and the load, dump, check flow
//  4. [server] and [render] - HTTP API and Graphviz diagrams
//
// # Architecture
//
// The typical data flow through stadump:
//
//	snapshot file (JSON, YAML, TOML)
//	         ↓
//	    [snapshot] package (decode + validate)
//	         ↓
//	    [timing] package (graph, constraints, tag sets)
//	         ↓
//	    [dump] package (text sections)
//	         ↓
//	    [baseline] package (store, compare, diff)
//
// # Quick Start
//
// Dump a snapshot to standard output:
//
//	snap, err := snapshot.ReadFile("alu.json")
//	if err != nil {
//	    return err
//	}
//	_, err = dump.Options{}.WriteSnapshot(os.Stdout, snap)
//
// Check it against a stored baseline:
//
//	store, _ := baseline.Open(ctx, baseline.Config{Backend: baseline.BackendSQLite})
//	r := pipeline.NewRunner(store, nil)
//	_, err = r.Check(ctx, pipeline.Options{Input: "alu.json", Baseline: "alu"})
//
// # Main Packages
//
// [timing] - Read-only timing model: node and edge ids, node types, clock
// domains, constraint groups, and per-node data/clock tags for setup and
// hold analysis.
//
// [dump] - The three section writers. Each writer takes a narrow read-only
// interface, so any engine can be dumped without converting to [timing].
//
// [snapshot] - Serialized form of a complete analysis state with validation
// of every id reference.
//
// [baseline] - Baseline records and stores: file, SQLite, Redis, MongoDB,
// and a null store. Mismatches carry a unified diff.
//
// [pipeline] - Load, dump, check, and save used by the CLI and the HTTP API.
//
// [server] - chi-based HTTP API for dumps and baselines.
//
// [render] - Graphviz rendering of the timing graph with optional tag labels.
//
// [observability] - Hooks for load, dump, check, store, and HTTP events.
//
// [errors] - Structured errors with machine-readable codes.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/dump -update           # Regenerate golden files
//
// [timing]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/timing
// [dump]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/dump
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/snapshot
// [baseline]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/baseline
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/server
// [render]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/render
// [observability]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stadump/pkg/errors
package pkg
