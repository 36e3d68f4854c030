package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/addax-graph/addax/pkg/graph"
)

func labelled(t *testing.T, directed bool) *graph.Graph {
	t.Helper()
	g, _ := graph.New("roi", directed, false)
	for i, id := range []int64{10, 20, 30, 40} {
		if err := g.AddVertex(graph.NewVertex(id, int64(i))); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []graph.Edge{
		{Source: 10, Destination: 20, Weight: 7},
		{Source: 20, Destination: 30, Weight: 2.5},
		{Source: 30, Destination: 20, Weight: 4},
		{Source: 30, Destination: 40, Weight: 120},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.SetCommunities(map[int64]int64{10: 0, 20: 0, 30: 1, 40: 1}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestWriteCommunityCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCommunityCSV(&buf, labelled(t, true)); err != nil {
		t.Fatalf("WriteCommunityCSV error: %v", err)
	}
	want := "Vertex ID,Community\n10,0\n20,0\n30,1\n40,1\n"
	if buf.String() != want {
		t.Errorf("WriteCommunityCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteEdgeCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEdgeCSV(&buf, labelled(t, true)); err != nil {
		t.Fatalf("WriteEdgeCSV error: %v", err)
	}
	want := "Source ID,Destination ID,Weight\n10,20,7\n20,30,2.5\n30,20,4\n30,40,120\n"
	if buf.String() != want {
		t.Errorf("WriteEdgeCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{7, "7"},
		{0.125, "0.125"},
		{1e12, "1000000000000"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := FormatWeight(tt.in); got != tt.want {
			t.Errorf("FormatWeight(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCommunityDOTDirected(t *testing.T) {
	dot := CommunityDOT(labelled(t, true), Options{})

	for _, want := range []string{
		"digraph G {",
		`"c0" [label="community 0\n2 vertices\ninternal 7"];`,
		`"c1" [label="community 1\n2 vertices\ninternal 120"];`,
		`"c0" -> "c1" [label="2.5", penwidth=1];`,
		`"c1" -> "c0" [label="4", penwidth=1];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("CommunityDOT() missing %q\n%s", want, dot)
		}
	}
}

func TestCommunityDOTUndirectedMerges(t *testing.T) {
	dot := CommunityDOT(labelled(t, false), Options{})
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("undirected output should start with graph G:\n%s", dot)
	}
	if !strings.Contains(dot, `"c0" -- "c1" [label="6.5", penwidth=1];`) {
		t.Errorf("CommunityDOT() did not merge both directions\n%s", dot)
	}
	if strings.Contains(dot, `"c1" -- "c0"`) {
		t.Errorf("CommunityDOT() kept a reversed arc\n%s", dot)
	}
}

func TestCommunityDOTMinWeight(t *testing.T) {
	dot := CommunityDOT(labelled(t, true), Options{MinWeight: 3})
	if strings.Contains(dot, `"c0" -> "c1"`) {
		t.Errorf("arc below MinWeight was kept\n%s", dot)
	}
	if !strings.Contains(dot, `"c1" -> "c0"`) {
		t.Errorf("arc at or above MinWeight was dropped\n%s", dot)
	}
}

func TestCommunityDOTUnassigned(t *testing.T) {
	g, _ := graph.New("", true, false)
	_ = g.AddVertex(graph.NewVertex(1, 0))
	dot := CommunityDOT(g, Options{})
	if !strings.Contains(dot, `"unassigned" [label="unassigned\n1 vertices\ninternal 0"];`) {
		t.Errorf("CommunityDOT() =\n%s", dot)
	}
}

func TestPenWidth(t *testing.T) {
	tests := []struct {
		w    float64
		want string
	}{
		{1, "1"},
		{10, "2"},
		{120, "3"},
		{1e20, "8"},
	}
	for _, tt := range tests {
		if got := penWidth(tt.w); got != tt.want {
			t.Errorf("penWidth(%v) = %s, want %s", tt.w, got, tt.want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), CommunityDOT(labelled(t, true), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("RenderSVG() did not produce a normalized svg element:\n%.300s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
