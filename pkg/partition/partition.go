// Package partition assigns community labels to the vertices of a built
// graph.
//
// Partitioning is the second phase of construction: the builder fixes the
// topology, then an [Assigner] maps every vertex ID to a community label and
// [Apply] writes the labels through [graph.Graph.SetCommunities]. The
// mapping must be total; Apply does not otherwise inspect how the labels
// were produced.
//
// Three assigners ship with the package:
//
//   - [Singleton] puts each vertex in its own community
//   - [LabelPropagation] runs deterministic weighted label propagation
//   - [Table] loads labels computed elsewhere from a CSV file
//
// Any other algorithm plugs in by implementing [Assigner] or wrapping a
// function in [Func].
package partition

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
)

// Assigner maps each vertex ID of g to a community label.
type Assigner interface {
	Assign(ctx context.Context, g *graph.Graph) (map[int64]int64, error)
}

// Func adapts a function to the [Assigner] interface.
type Func func(ctx context.Context, g *graph.Graph) (map[int64]int64, error)

// Assign calls f(ctx, g).
func (f Func) Assign(ctx context.Context, g *graph.Graph) (map[int64]int64, error) {
	return f(ctx, g)
}

// Apply runs a over g and stores the resulting labels. On error g is left
// unchanged.
func Apply(ctx context.Context, g *graph.Graph, a Assigner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	labels, err := a.Assign(ctx, g)
	if err != nil {
		return fmt.Errorf("assign communities: %w", err)
	}
	return g.SetCommunities(labels)
}

// Names of the built-in assigners accepted by [Lookup].
const (
	NameSingleton        = "singleton"
	NameLabelPropagation = "label-propagation"
	NameTable            = "table"
)

// Names lists the built-in assigner names.
func Names() []string {
	return []string{NameSingleton, NameLabelPropagation, NameTable}
}

// Config carries the settings the built-in assigners need.
type Config struct {
	MaxIterations int    // LabelPropagation round limit (0 means default)
	TablePath     string // CSV path for the table assigner
}

// Lookup returns the built-in assigner registered under name.
func Lookup(name string, cfg Config) (Assigner, error) {
	switch strings.ToLower(name) {
	case NameSingleton:
		return Singleton{}, nil
	case NameLabelPropagation, "lpa":
		return LabelPropagation{MaxIterations: cfg.MaxIterations}, nil
	case NameTable:
		if cfg.TablePath == "" {
			return nil, aerrors.New(aerrors.ErrCodeInvalidConfig, "table partitioner needs a table path")
		}
		return Table{Path: cfg.TablePath}, nil
	default:
		return nil, aerrors.New(aerrors.ErrCodeInvalidConfig,
			"unknown partitioner %q (must be one of: %s)", name, strings.Join(Names(), ", "))
	}
}

// Singleton labels each vertex with its own enumeration index.
type Singleton struct{}

func (Singleton) Assign(_ context.Context, g *graph.Graph) (map[int64]int64, error) {
	labels := make(map[int64]int64, g.VertexCount())
	for _, v := range g.Vertices() {
		labels[v.ID] = v.Index
	}
	return labels, nil
}

// enumerated returns the vertices of g sorted by enumeration index, with ID
// as the tie-breaker for graphs that were not produced by the builder.
func enumerated(g *graph.Graph) []*graph.Vertex {
	vs := g.Vertices()
	slices.SortFunc(vs, func(a, b *graph.Vertex) int {
		if c := cmp.Compare(a.Index, b.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return vs
}
