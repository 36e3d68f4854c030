// Package builder turns raw connectivity records into a [graph.Graph].
//
// A build takes two inputs: the set of entity IDs and a list of weighted,
// directed relations between them. Every entity becomes a vertex. Relation
// weights are summed per ordered (source, destination) pair, and once all
// relations are in, pairs whose sum is below the low-edge threshold are
// dropped. The surviving pairs become edges.
//
// The result does not depend on input order:
//
//   - vertices are enumerated in ascending ID order, so Index 0 is the
//     smallest ID
//   - edges are emitted in ascending (source, destination) order
//   - community and color start out as [graph.Unassigned]
//
// # Usage
//
//	g, stats, err := builder.Build(ids, relations, builder.DefaultOptions())
//
// Records can also be fed one at a time:
//
//	b, _ := builder.New(opts)
//	for _, id := range ids {
//	    if err := b.AddEntity(id); err != nil { ... }
//	}
//	for _, r := range relations {
//	    if err := b.AddRelation(r); err != nil { ... }
//	}
//	g, stats, err := b.Build()
//
// [ReadEntities] and [ReadRelations] parse the CSV forms of both inputs.
//
// The builder keeps every pair sum in memory until [Builder.Build]. Inputs
// too large for that have to be sharded by the caller.
package builder
