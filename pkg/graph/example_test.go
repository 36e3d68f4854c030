package graph_test

import (
	"fmt"

	"github.com/addax-graph/addax/pkg/graph"
)

func ExampleGraph_SetCommunities() {
	g, _ := graph.New("example", true, false)
	_ = g.AddVertex(graph.NewVertex(10, 0))
	_ = g.AddVertex(graph.NewVertex(20, 1))
	_ = g.AddEdge(graph.Edge{Source: 10, Destination: 20, Weight: 7})

	if err := g.SetCommunities(map[int64]int64{10: 0, 20: 0}); err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, v := range g.Vertices() {
		fmt.Printf("vertex %d index=%d community=%d\n", v.ID, v.Index, v.Community)
	}
	// Output:
	// vertex 10 index=0 community=0
	// vertex 20 index=1 community=0
}
