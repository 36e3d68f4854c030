// Package pkg provides the core libraries for Addax community graphs.
//
// # Overview
//
// Addax turns two tables, one listing entities and one listing weighted
// relations between them, into a compact binary graph container, and groups
// the vertices into communities. The pkg directory is organized as follows:
//
//  1. [graph] - The in-memory graph: vertices, edges, community labels
//  2. [builder] - CSV parsing, weight aggregation, and threshold pruning
//  3. [partition] - Community assigners (label propagation, singleton, table)
//  4. [codec] - The compressed binary container (bzip2, zstd, snappy)
//  5. [export] - Community and edge tables, community diagrams (DOT, SVG)
//  6. [pipeline] - Orchestration (build → partition → persist)
//
// # Architecture
//
// The typical data flow through Addax:
//
//	entities.csv + relations.csv
//	         ↓
//	    [builder] package (aggregate weights, prune, order)
//	         ↓
//	    [partition] package (assign community labels)
//	         ↓
//	    [codec] package (binary container)
//	         ↓
//	    [export] package (CSV tables, DOT/SVG diagram)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    EntitiesPath:  "neurons.csv",
//	    RelationsPath: "connections.csv",
//	    Output:        "hemi-brain.graph.bz2",
//	})
//
// Read a container back:
//
//	g, err := codec.ReadFile("hemi-brain.graph.bz2", codec.Options{})
//	for id, members := range g.Communities() {
//	    fmt.Println(id, len(members))
//	}
//
// # Supporting Packages
//
// [cache] - Content-addressed caching of build and partition results, with
// file, Redis, and no-op backends.
//
// [errors] - Error codes shared by every package (DUPLICATE_ENTITY,
// CORRUPT_DATA, ...).
//
// [observability] - Hooks for pipeline stages and cache traffic.
//
// [buildinfo] - Version information injected at link time.
//
// [graph]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/graph
// [builder]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/builder
// [partition]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/partition
// [codec]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/codec
// [export]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/cache
// [errors]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/errors
// [observability]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/addax-graph/addax/pkg/buildinfo
package pkg
