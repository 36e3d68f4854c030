package graph

import (
	"slices"

	aerrors "github.com/addax-graph/addax/pkg/errors"
)

// Graph is a vertex/edge container with fixed prefix, direction, and color
// flags. The zero value is not usable; create graphs with [New].
type Graph struct {
	prefix   string
	directed bool
	colored  bool

	vertices map[int64]*Vertex
	order    []*Vertex
	edges    []Edge
}

// New creates an empty graph. It returns an INVALID_CONFIG error if prefix
// fails [ValidatePrefix].
func New(prefix string, directed, colored bool) (*Graph, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	return &Graph{
		prefix:   prefix,
		directed: directed,
		colored:  colored,
		vertices: make(map[int64]*Vertex),
	}, nil
}

// Prefix returns the descriptive name the graph was created with.
func (g *Graph) Prefix() string { return g.prefix }

// Directed reports whether edges are directed.
func (g *Graph) Directed() bool { return g.directed }

// Colored reports whether the vertex Color attribute is meaningful.
func (g *Graph) Colored() bool { return g.colored }

// AddVertex inserts v. It returns a DUPLICATE_VERTEX error if a vertex with
// the same ID already exists.
func (g *Graph) AddVertex(v Vertex) error {
	if _, exists := g.vertices[v.ID]; exists {
		return aerrors.New(aerrors.ErrCodeDuplicateVertex, "vertex %d already exists", v.ID)
	}
	vertex := &v
	g.vertices[v.ID] = vertex
	g.order = append(g.order, vertex)
	return nil
}

// AddEdge appends a directed edge. It returns an UNKNOWN_VERTEX error if
// either endpoint has not been added. Duplicate (source, destination) pairs
// are not merged.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.vertices[e.Source]; !ok {
		return aerrors.New(aerrors.ErrCodeUnknownVertex, "edge %d->%d: unknown source vertex %d", e.Source, e.Destination, e.Source)
	}
	if _, ok := g.vertices[e.Destination]; !ok {
		return aerrors.New(aerrors.ErrCodeUnknownVertex, "edge %d->%d: unknown destination vertex %d", e.Source, e.Destination, e.Destination)
	}
	g.edges = append(g.edges, e)
	return nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Vertex returns the vertex with the given ID.
// The pointer refers to the stored vertex; treat it as read-only and use
// SetCommunities to change labels.
func (g *Graph) Vertex(id int64) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// HasVertex reports whether a vertex with the given ID exists.
func (g *Graph) HasVertex(id int64) bool {
	_, ok := g.vertices[id]
	return ok
}

// Vertices returns all vertices in insertion order.
func (g *Graph) Vertices() []*Vertex { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// SetCommunities overwrites every vertex's community label from labels.
//
// The mapping must be total: a vertex without a label yields an
// INVALID_INPUT error and a label for an unknown ID yields UNKNOWN_VERTEX.
// Labels are only written once the whole mapping has been checked.
func (g *Graph) SetCommunities(labels map[int64]int64) error {
	for id := range labels {
		if _, ok := g.vertices[id]; !ok {
			return aerrors.New(aerrors.ErrCodeUnknownVertex, "community label for unknown vertex %d", id)
		}
	}
	for _, v := range g.order {
		if _, ok := labels[v.ID]; !ok {
			return aerrors.New(aerrors.ErrCodeInvalidInput, "no community label for vertex %d", v.ID)
		}
	}
	for _, v := range g.order {
		v.Community = labels[v.ID]
	}
	return nil
}

// Communities groups vertex IDs by community label. Member lists are sorted
// ascending.
func (g *Graph) Communities() map[int64][]int64 {
	out := make(map[int64][]int64)
	for _, v := range g.order {
		out[v.Community] = append(out[v.Community], v.ID)
	}
	for _, ids := range out {
		slices.Sort(ids)
	}
	return out
}

// Validate checks the enumeration invariant of builder-produced graphs:
// Index values cover [0, VertexCount) exactly once and follow ascending ID
// order. It also confirms every edge endpoint exists.
func (g *Graph) Validate() error {
	n := int64(len(g.order))
	seen := make([]bool, n)
	for _, v := range g.order {
		if v.Index < 0 || v.Index >= n {
			return aerrors.New(aerrors.ErrCodeInvalidInput,
				"vertex %d: enumeration index %d outside [0, %d)", v.ID, v.Index, n)
		}
		if seen[v.Index] {
			return aerrors.New(aerrors.ErrCodeInvalidInput,
				"vertex %d: enumeration index %d already used", v.ID, v.Index)
		}
		seen[v.Index] = true
	}

	ids := make([]int64, 0, n)
	for _, v := range g.order {
		ids = append(ids, v.ID)
	}
	slices.Sort(ids)
	for i, id := range ids {
		if g.vertices[id].Index != int64(i) {
			return aerrors.New(aerrors.ErrCodeInvalidInput,
				"vertex %d: enumeration index %d, want %d from sorted order", id, g.vertices[id].Index, i)
		}
	}

	for _, e := range g.edges {
		if !g.HasVertex(e.Source) || !g.HasVertex(e.Destination) {
			return aerrors.New(aerrors.ErrCodeUnknownVertex, "edge %d->%d references a missing vertex", e.Source, e.Destination)
		}
	}
	return nil
}

// Equal reports whether g and other hold the same flags, prefix, vertices,
// and edges, in the same order.
func (g *Graph) Equal(other *Graph) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.prefix != other.prefix || g.directed != other.directed || g.colored != other.colored {
		return false
	}
	if len(g.order) != len(other.order) {
		return false
	}
	for i, v := range g.order {
		if *v != *other.order[i] {
			return false
		}
	}
	return slices.Equal(g.edges, other.edges)
}
