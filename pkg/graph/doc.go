// Package graph provides the in-memory connectivity graph that addax builds,
// partitions, and persists.
//
// # Overview
//
// A [Graph] holds a fixed set of vertices, each identified by a caller-supplied
// int64 identity, and a list of directed weighted edges between them. Three
// attributes are fixed at construction: a short descriptive prefix, whether
// the graph is directed, and whether the vertex color attribute is
// meaningful.
//
// # Vertices
//
// Every [Vertex] carries:
//
//   - ID: the caller's identity, unique within the graph
//   - Index: a dense enumeration index; builders assign it from ascending ID order
//   - Community: partition label, [Unassigned] until labels are applied
//   - Color: reserved attribute, [Unassigned] unless the producer sets it
//
// Vertices are kept in insertion order. That order is what the codec writes,
// so two graphs built the same way serialize to the same bytes.
//
// # Edges
//
// Edges reference vertices by identity. [Graph.AddEdge] rejects unknown
// endpoints but does not merge duplicates; aggregation is the builder's job.
// Weights are float64 even when the raw input was integral.
//
// # Two-phase construction
//
// Topology is built first (AddVertex, AddEdge). Partition labels are applied
// afterwards in one step with [Graph.SetCommunities], which validates the
// whole mapping before writing any label.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Concurrent readers are fine
// once construction has finished.
package graph
