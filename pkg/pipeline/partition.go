package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/addax-graph/addax/pkg/cache"
	"github.com/addax-graph/addax/pkg/codec"
	"github.com/addax-graph/addax/pkg/graph"
	"github.com/addax-graph/addax/pkg/observability"
	"github.com/addax-graph/addax/pkg/partition"
)

// PartitionWithCacheInfo assigns communities to g with the configured
// assigner. Labels from built-in assigners are cached by graph content; the
// bool result reports a cache hit.
func (r *Runner) PartitionWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (hit bool, err error) {
	if err := opts.ValidateForPartition(); err != nil {
		return false, err
	}
	assigner, err := opts.assigner()
	if err != nil {
		return false, err
	}

	name := partitionerName(opts)
	start := time.Now()
	observability.Pipeline().OnPartitionStart(ctx, name, g.VertexCount())
	defer func() {
		communities := 0
		if err == nil {
			communities = len(g.Communities())
		}
		observability.Pipeline().OnPartitionComplete(ctx, name, communities, time.Since(start), err)
	}()

	if !opts.cachesPartition() {
		return false, partition.Apply(ctx, g, assigner)
	}

	key, err := r.partitionKey(g, opts)
	if err != nil {
		return false, err
	}

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, cache.KeyTypePartition, key); ok {
			var labels map[int64]int64
			if err := json.Unmarshal(data, &labels); err == nil && g.SetCommunities(labels) == nil {
				return true, nil
			}
			r.Logger.Warn("discarding unusable cached partition")
		}
	}

	labels, err := assigner.Assign(ctx, g)
	if err != nil {
		return false, err
	}
	if err := g.SetCommunities(labels); err != nil {
		return false, err
	}

	if data, err := json.Marshal(labels); err == nil {
		r.cacheSet(ctx, cache.KeyTypePartition, key, data, cache.TTLPartition)
	}
	return false, nil
}

// Partition is a convenience wrapper around PartitionWithCacheInfo.
func (r *Runner) Partition(ctx context.Context, g *graph.Graph, opts Options) error {
	_, err := r.PartitionWithCacheInfo(ctx, g, opts)
	return err
}

// partitionKey keys labels by the encoded topology of g. Community labels
// are part of the encoding, so the hash is taken over an unlabelled copy.
func (r *Runner) partitionKey(g *graph.Graph, opts Options) (string, error) {
	data, err := codec.Encode(unlabelled(g), cachedCompression)
	if err != nil {
		return "", err
	}
	return r.Keyer.PartitionKey(cache.Hash(data), opts.PartitionKeyOpts()), nil
}

// unlabelled returns a copy of g with every community unassigned.
func unlabelled(g *graph.Graph) *graph.Graph {
	out, _ := graph.New(g.Prefix(), g.Directed(), g.Colored())
	for _, v := range g.Vertices() {
		c := *v
		c.Community = graph.Unassigned
		_ = out.AddVertex(c)
	}
	for _, e := range g.Edges() {
		_ = out.AddEdge(e)
	}
	return out
}

func partitionerName(opts Options) string {
	if opts.Assigner != nil {
		return "custom"
	}
	return opts.Partitioner
}
