package partition

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
)

// twoTriangles builds {1,2,3} and {4,5,6} joined by a light 3-4 edge, plus
// an isolated vertex 7.
func twoTriangles(t *testing.T) *graph.Graph {
	t.Helper()
	g, _ := graph.New("triangles", true, false)
	for i := int64(1); i <= 7; i++ {
		if err := g.AddVertex(graph.NewVertex(i, i-1)); err != nil {
			t.Fatal(err)
		}
	}
	edges := []graph.Edge{
		{Source: 1, Destination: 2, Weight: 10},
		{Source: 2, Destination: 3, Weight: 10},
		{Source: 3, Destination: 1, Weight: 10},
		{Source: 3, Destination: 4, Weight: 1},
		{Source: 4, Destination: 5, Weight: 10},
		{Source: 5, Destination: 6, Weight: 10},
		{Source: 6, Destination: 4, Weight: 10},
		{Source: 7, Destination: 7, Weight: 50},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestSingleton(t *testing.T) {
	g := twoTriangles(t)
	if err := Apply(context.Background(), g, Singleton{}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	for _, v := range g.Vertices() {
		if v.Community != v.Index {
			t.Errorf("vertex %d community = %d, want %d", v.ID, v.Community, v.Index)
		}
	}
}

func TestLabelPropagation(t *testing.T) {
	g := twoTriangles(t)
	if err := Apply(context.Background(), g, LabelPropagation{}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	want := map[int64]int64{1: 0, 2: 0, 3: 0, 4: 1, 5: 1, 6: 1, 7: 2}
	for id, c := range want {
		v, _ := g.Vertex(id)
		if v.Community != c {
			t.Errorf("vertex %d community = %d, want %d", id, v.Community, c)
		}
	}
}

func TestLabelPropagationDeterministic(t *testing.T) {
	first, err := LabelPropagation{}.Assign(context.Background(), twoTriangles(t))
	if err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	for i := 0; i < 20; i++ {
		got, err := LabelPropagation{}.Assign(context.Background(), twoTriangles(t))
		if err != nil {
			t.Fatalf("Assign error: %v", err)
		}
		for id, c := range first {
			if got[id] != c {
				t.Fatalf("run %d: vertex %d community = %d, want %d", i, id, got[id], c)
			}
		}
	}
}

func TestLabelPropagationSingleRound(t *testing.T) {
	labels, err := LabelPropagation{MaxIterations: 1}.Assign(context.Background(), twoTriangles(t))
	if err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if len(labels) != 7 {
		t.Errorf("len(labels) = %d, want 7", len(labels))
	}
}

func TestLabelPropagationCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (LabelPropagation{}).Assign(ctx, twoTriangles(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Assign() error = %v, want context.Canceled", err)
	}
}

func TestApplyAtomic(t *testing.T) {
	tests := []struct {
		name     string
		labels   map[int64]int64
		wantCode aerrors.Code
	}{
		{"missing vertex", map[int64]int64{1: 0, 2: 0}, aerrors.ErrCodeInvalidInput},
		{"unknown vertex", map[int64]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0, 99: 1}, aerrors.ErrCodeUnknownVertex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := twoTriangles(t)
			a := Func(func(context.Context, *graph.Graph) (map[int64]int64, error) {
				return tt.labels, nil
			})
			if err := Apply(context.Background(), g, a); !aerrors.Is(err, tt.wantCode) {
				t.Fatalf("Apply() error = %v, want %s", err, tt.wantCode)
			}
			for _, v := range g.Vertices() {
				if v.Community != graph.Unassigned {
					t.Errorf("vertex %d community = %d after failed Apply", v.ID, v.Community)
				}
			}
		})
	}
}

func TestApplyAssignerError(t *testing.T) {
	boom := errors.New("boom")
	a := Func(func(context.Context, *graph.Graph) (map[int64]int64, error) { return nil, boom })
	if err := Apply(context.Background(), twoTriangles(t), a); !errors.Is(err, boom) {
		t.Errorf("Apply() error = %v, want wrapped boom", err)
	}
}

func TestTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "communities.csv")
	content := "Vertex ID,Community\n1,5\n2,5\n3,5\n4,9\n5,9\n6,9\n7,-1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	g := twoTriangles(t)
	if err := Apply(context.Background(), g, Table{Path: path}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	comms := g.Communities()
	if got := comms[5]; len(got) != 3 || got[0] != 1 {
		t.Errorf("community 5 = %v, want [1 2 3]", got)
	}
	if got := comms[-1]; len(got) != 1 || got[0] != 7 {
		t.Errorf("community -1 = %v, want [7]", got)
	}
}

func TestTableMissingFile(t *testing.T) {
	_, err := Table{Path: filepath.Join(t.TempDir(), "nope.csv")}.Assign(context.Background(), twoTriangles(t))
	if !aerrors.Is(err, aerrors.ErrCodeFileNotFound) {
		t.Errorf("Assign() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"duplicate id", "id,c\n1,0\n1,2\n"},
		{"bad label", "id,c\n1,x\n"},
		{"one column", "id,c\n1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTable(strings.NewReader(tt.in)); !aerrors.Is(err, aerrors.ErrCodeInvalidInput) {
				t.Errorf("ReadTable() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    Assigner
		wantErr bool
	}{
		{"singleton", Config{}, Singleton{}, false},
		{"label-propagation", Config{MaxIterations: 3}, LabelPropagation{MaxIterations: 3}, false},
		{"LPA", Config{}, LabelPropagation{}, false},
		{"table", Config{TablePath: "c.csv"}, Table{Path: "c.csv"}, false},
		{"table", Config{}, nil, true},
		{"louvain", Config{}, nil, true},
	}
	for _, tt := range tests {
		got, err := Lookup(tt.name, tt.cfg)
		if tt.wantErr {
			if !aerrors.Is(err, aerrors.ErrCodeInvalidConfig) {
				t.Errorf("Lookup(%q) error = %v, want INVALID_CONFIG", tt.name, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Lookup(%q) = %#v, %v, want %#v", tt.name, got, err, tt.want)
		}
	}
}
