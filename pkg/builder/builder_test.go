package builder

import (
	"math"
	"testing"

	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
)

func withThreshold(t int64) Options {
	opts := DefaultOptions()
	opts.LowEdgeThreshold = t
	return opts
}

func TestBuildAggregation(t *testing.T) {
	rels := []Relation{{1, 2, 3}, {1, 2, 4}}

	tests := []struct {
		name      string
		threshold int64
		wantEdges []graph.Edge
		wantStats Stats
	}{
		{
			name:      "threshold above sum prunes",
			threshold: 8,
			wantEdges: nil,
			wantStats: Stats{Entities: 2, Relations: 2, Pairs: 1, Pruned: 1, Edges: 0},
		},
		{
			name:      "threshold equal to sum keeps",
			threshold: 7,
			wantEdges: []graph.Edge{{Source: 1, Destination: 2, Weight: 7}},
			wantStats: Stats{Entities: 2, Relations: 2, Pairs: 1, Pruned: 0, Edges: 1},
		},
		{
			name:      "zero threshold keeps",
			threshold: 0,
			wantEdges: []graph.Edge{{Source: 1, Destination: 2, Weight: 7}},
			wantStats: Stats{Entities: 2, Relations: 2, Pairs: 1, Pruned: 0, Edges: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, stats, err := Build([]int64{1, 2}, rels, withThreshold(tt.threshold))
			if err != nil {
				t.Fatalf("Build error: %v", err)
			}
			edges := g.Edges()
			if len(edges) != len(tt.wantEdges) {
				t.Fatalf("Edges() = %v, want %v", edges, tt.wantEdges)
			}
			for i := range edges {
				if edges[i] != tt.wantEdges[i] {
					t.Errorf("edge %d = %+v, want %+v", i, edges[i], tt.wantEdges[i])
				}
			}
			if stats != tt.wantStats {
				t.Errorf("stats = %+v, want %+v", stats, tt.wantStats)
			}
			if g.VertexCount() != 2 {
				t.Errorf("VertexCount() = %d, want 2 (pruning must not drop vertices)", g.VertexCount())
			}
		})
	}
}

func TestBuildPruneAfterAggregation(t *testing.T) {
	// Each row is below the threshold on its own; only the sum survives.
	rels := []Relation{{1, 2, 2}, {2, 1, 9}, {1, 2, 2}, {1, 2, 2}}
	g, stats, err := Build([]int64{1, 2}, rels, DefaultOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	want := []graph.Edge{{Source: 1, Destination: 2, Weight: 6}, {Source: 2, Destination: 1, Weight: 9}}
	got := g.Edges()
	if len(got) != len(want) {
		t.Fatalf("Edges() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edge %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if stats.Pairs != 2 || stats.Pruned != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBuildEnumeration(t *testing.T) {
	g, _, err := Build([]int64{30, 10, 20}, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	want := map[int64]int64{10: 0, 20: 1, 30: 2}
	for id, idx := range want {
		v, ok := g.Vertex(id)
		if !ok {
			t.Fatalf("vertex %d missing", id)
		}
		if v.Index != idx {
			t.Errorf("vertex %d Index = %d, want %d", id, v.Index, idx)
		}
		if v.Community != graph.Unassigned || v.Color != graph.Unassigned {
			t.Errorf("vertex %d community/color = %d/%d, want -1/-1", id, v.Community, v.Color)
		}
	}
	for i, v := range g.Vertices() {
		if v.Index != int64(i) {
			t.Errorf("Vertices()[%d].Index = %d", i, v.Index)
		}
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestBuildInputOrderIndependent(t *testing.T) {
	a, _, err := Build([]int64{3, 1, 2},
		[]Relation{{3, 1, 5}, {1, 2, 5}, {2, 3, 6}, {1, 2, 1}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	b, _, err := Build([]int64{2, 3, 1},
		[]Relation{{1, 2, 1}, {2, 3, 6}, {1, 2, 5}, {3, 1, 5}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("graphs differ:\n%v\n%v", a.Edges(), b.Edges())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name      string
		entities  []int64
		relations []Relation
		opts      Options
		wantCode  aerrors.Code
	}{
		{
			name:     "duplicate entity",
			entities: []int64{1, 2, 1},
			opts:     DefaultOptions(),
			wantCode: aerrors.ErrCodeDuplicateEntity,
		},
		{
			name:      "unknown source",
			entities:  []int64{1, 2},
			relations: []Relation{{9, 2, 10}},
			opts:      DefaultOptions(),
			wantCode:  aerrors.ErrCodeUnknownVertex,
		},
		{
			name:      "unknown destination",
			entities:  []int64{1, 2},
			relations: []Relation{{1, 2, 10}, {1, 9, 10}},
			opts:      DefaultOptions(),
			wantCode:  aerrors.ErrCodeUnknownVertex,
		},
		{
			name:     "negative threshold",
			opts:     withThreshold(-1),
			wantCode: aerrors.ErrCodeInvalidConfig,
		},
		{
			name:      "weight sum overflows",
			entities:  []int64{1, 2},
			relations: []Relation{{1, 2, math.MaxInt64}, {1, 2, 10}},
			opts:      DefaultOptions(),
			wantCode:  aerrors.ErrCodeInvalidInput,
		},
		{
			name:      "weight sum underflows",
			entities:  []int64{1, 2},
			relations: []Relation{{1, 2, math.MinInt64}, {1, 2, -1}},
			opts:      DefaultOptions(),
			wantCode:  aerrors.ErrCodeInvalidInput,
		},
		{
			name:     "prefix not utf-8",
			opts:     Options{Prefix: "\xff\xfe"},
			wantCode: aerrors.ErrCodeInvalidConfig,
		},
		{
			name:     "prefix too long",
			opts:     Options{Prefix: string(make([]byte, graph.MaxPrefixLen+1))},
			wantCode: aerrors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, err := Build(tt.entities, tt.relations, tt.opts)
			if !aerrors.Is(err, tt.wantCode) {
				t.Errorf("Build() error = %v, want %s", err, tt.wantCode)
			}
			if g != nil {
				t.Error("Build() returned a graph on error")
			}
		})
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := b.AddEntity(1); err != nil {
		t.Fatalf("AddEntity error: %v", err)
	}
	if _, _, err := b.Build(); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if err := b.AddEntity(2); err == nil {
		t.Error("AddEntity after Build should fail")
	}
	if _, _, err := b.Build(); err == nil {
		t.Error("second Build should fail")
	}
}

func TestBuildFlags(t *testing.T) {
	g, _, err := Build(nil, nil, Options{Prefix: "roi", Directed: false, Colored: true})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if g.Prefix() != "roi" || g.Directed() || !g.Colored() {
		t.Errorf("flags = (%q, %v, %v), want (roi, false, true)", g.Prefix(), g.Directed(), g.Colored())
	}
}
