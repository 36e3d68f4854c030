package partition

import (
	"context"

	"github.com/addax-graph/addax/pkg/graph"
)

// DefaultMaxIterations bounds label propagation when no limit is set.
const DefaultMaxIterations = 100

// LabelPropagation is weighted label propagation over the undirected view of
// the graph.
//
// Every vertex starts in its own community. Each round visits the vertices
// in enumeration order and moves each one to the label with the largest
// total edge weight among its neighbours, reading labels already updated in
// the same round. A vertex keeps its label when that label is among the
// heaviest; otherwise the smallest heaviest label wins. Rounds stop when
// nothing moves or after MaxIterations. Self loops are ignored.
//
// Final labels are renumbered 0, 1, 2, ... in order of first appearance by
// enumeration index, so the output depends only on the graph.
type LabelPropagation struct {
	MaxIterations int
}

type neighbor struct {
	pos    int
	weight float64
}

func (lp LabelPropagation) Assign(ctx context.Context, g *graph.Graph) (map[int64]int64, error) {
	maxIter := lp.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	vs := enumerated(g)
	pos := make(map[int64]int, len(vs))
	for i, v := range vs {
		pos[v.ID] = i
	}

	adj := make([][]neighbor, len(vs))
	for _, e := range g.Edges() {
		s, d := pos[e.Source], pos[e.Destination]
		if s == d {
			continue
		}
		adj[s] = append(adj[s], neighbor{d, e.Weight})
		adj[d] = append(adj[d], neighbor{s, e.Weight})
	}

	labels := make([]int, len(vs))
	for i := range labels {
		labels[i] = i
	}

	weights := make(map[int]float64)
	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		moved := false
		for i := range vs {
			if len(adj[i]) == 0 {
				continue
			}
			clear(weights)
			for _, n := range adj[i] {
				weights[labels[n.pos]] += n.weight
			}
			if best := heaviest(weights, labels[i]); best != labels[i] {
				labels[i] = best
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	dense := make(map[int]int64)
	out := make(map[int64]int64, len(vs))
	for i, v := range vs {
		l, ok := dense[labels[i]]
		if !ok {
			l = int64(len(dense))
			dense[labels[i]] = l
		}
		out[v.ID] = l
	}
	return out, nil
}

// heaviest returns the label with the largest weight. current wins any tie
// it is part of; other ties go to the smallest label.
func heaviest(weights map[int]float64, current int) int {
	best, bestWeight, found := 0, 0.0, false
	for label, w := range weights {
		if !found || w > bestWeight || (w == bestWeight && label < best) {
			best, bestWeight, found = label, w, true
		}
	}
	if w, ok := weights[current]; ok && w == bestWeight {
		return current
	}
	return best
}
