package builder

import (
	"cmp"
	"math"
	"slices"

	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
)

// DefaultLowEdgeThreshold is the minimum summed weight an edge needs to
// survive pruning.
const DefaultLowEdgeThreshold int64 = 5

// DefaultPrefix names graphs built without an explicit prefix.
const DefaultPrefix = "graph"

// Relation is one raw, directed, weighted connectivity record.
type Relation struct {
	Source      int64
	Destination int64
	Weight      int64
}

// Options configures a build.
type Options struct {
	Prefix   string
	Directed bool
	Colored  bool

	// LowEdgeThreshold drops every pair whose summed weight is strictly
	// less than it. Zero keeps every pair with a non-negative sum.
	LowEdgeThreshold int64
}

// DefaultOptions returns directed, uncolored options with the default
// prefix and threshold.
func DefaultOptions() Options {
	return Options{
		Prefix:           DefaultPrefix,
		Directed:         true,
		LowEdgeThreshold: DefaultLowEdgeThreshold,
	}
}

// Validate checks that opts can produce a graph.
func (o Options) Validate() error {
	if err := graph.ValidatePrefix(o.Prefix); err != nil {
		return err
	}
	if o.LowEdgeThreshold < 0 {
		return aerrors.New(aerrors.ErrCodeInvalidConfig,
			"low edge threshold must be non-negative, got %d", o.LowEdgeThreshold)
	}
	return nil
}

// Stats summarizes what a build consumed and produced.
type Stats struct {
	Entities  int // Vertices created
	Relations int // Relation records read
	Pairs     int // Distinct ordered pairs after aggregation
	Pruned    int // Pairs dropped below the threshold
	Edges     int // Edges in the built graph
}

type pair struct {
	src, dst int64
}

// Builder accumulates entities and relations for a single build.
// A Builder is not safe for concurrent use.
type Builder struct {
	opts     Options
	entities map[int64]struct{}
	sums     map[pair]int64
	rows     int
	built    bool
}

// New returns an empty Builder. It returns an INVALID_CONFIG error if opts
// does not validate.
func New(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		opts:     opts,
		entities: make(map[int64]struct{}),
		sums:     make(map[pair]int64),
	}, nil
}

// AddEntity declares a vertex ID. It returns a DUPLICATE_ENTITY error if
// the ID was already declared.
func (b *Builder) AddEntity(id int64) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if _, exists := b.entities[id]; exists {
		return aerrors.New(aerrors.ErrCodeDuplicateEntity, "entity %d declared twice", id)
	}
	b.entities[id] = struct{}{}
	return nil
}

// AddRelation adds r's weight to the running sum for its ordered pair.
// Both endpoints must already be declared; otherwise AddRelation returns an
// UNKNOWN_VERTEX error naming the ID and the relation's position in the
// input.
func (b *Builder) AddRelation(r Relation) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if _, ok := b.entities[r.Source]; !ok {
		return aerrors.New(aerrors.ErrCodeUnknownVertex,
			"relation %d (%d->%d): undeclared source entity %d", b.rows, r.Source, r.Destination, r.Source)
	}
	if _, ok := b.entities[r.Destination]; !ok {
		return aerrors.New(aerrors.ErrCodeUnknownVertex,
			"relation %d (%d->%d): undeclared destination entity %d", b.rows, r.Source, r.Destination, r.Destination)
	}
	k := pair{r.Source, r.Destination}
	sum := b.sums[k]
	if (r.Weight > 0 && sum > math.MaxInt64-r.Weight) || (r.Weight < 0 && sum < math.MinInt64-r.Weight) {
		return aerrors.New(aerrors.ErrCodeInvalidInput,
			"relation %d (%d->%d): weight %d overflows the pair sum %d", b.rows, r.Source, r.Destination, r.Weight, sum)
	}
	b.sums[k] = sum + r.Weight
	b.rows++
	return nil
}

func (b *Builder) checkOpen() error {
	if b.built {
		return aerrors.New(aerrors.ErrCodeInternal, "builder already produced its graph")
	}
	return nil
}

// Build prunes the aggregated pairs and returns the finished graph. The
// Builder cannot be used afterwards.
func (b *Builder) Build() (*graph.Graph, Stats, error) {
	if err := b.checkOpen(); err != nil {
		return nil, Stats{}, err
	}
	b.built = true

	stats := Stats{
		Entities:  len(b.entities),
		Relations: b.rows,
		Pairs:     len(b.sums),
	}

	var low []pair
	for p, sum := range b.sums {
		if sum < b.opts.LowEdgeThreshold {
			low = append(low, p)
		}
	}
	for _, p := range low {
		delete(b.sums, p)
	}
	stats.Pruned = len(low)

	g, err := graph.New(b.opts.Prefix, b.opts.Directed, b.opts.Colored)
	if err != nil {
		return nil, Stats{}, err
	}

	ids := make([]int64, 0, len(b.entities))
	for id := range b.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for i, id := range ids {
		if err := g.AddVertex(graph.NewVertex(id, int64(i))); err != nil {
			return nil, Stats{}, aerrors.Wrap(aerrors.ErrCodeInternal, err, "enumerate entity %d", id)
		}
	}

	pairs := make([]pair, 0, len(b.sums))
	for p := range b.sums {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(x, y pair) int {
		if c := cmp.Compare(x.src, y.src); c != 0 {
			return c
		}
		return cmp.Compare(x.dst, y.dst)
	})
	for _, p := range pairs {
		e := graph.Edge{Source: p.src, Destination: p.dst, Weight: float64(b.sums[p])}
		if err := g.AddEdge(e); err != nil {
			return nil, Stats{}, aerrors.Wrap(aerrors.ErrCodeInternal, err, "emit edge %d->%d", p.src, p.dst)
		}
	}
	stats.Edges = len(pairs)

	return g, stats, nil
}

// Build runs a complete build over in-memory records.
func Build(entities []int64, relations []Relation, opts Options) (*graph.Graph, Stats, error) {
	b, err := New(opts)
	if err != nil {
		return nil, Stats{}, err
	}
	for _, id := range entities {
		if err := b.AddEntity(id); err != nil {
			return nil, Stats{}, err
		}
	}
	for _, r := range relations {
		if err := b.AddRelation(r); err != nil {
			return nil, Stats{}, err
		}
	}
	return b.Build()
}
