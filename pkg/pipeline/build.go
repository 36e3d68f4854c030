package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/addax-graph/addax/pkg/builder"
	"github.com/addax-graph/addax/pkg/cache"
	"github.com/addax-graph/addax/pkg/codec"
	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
	"github.com/addax-graph/addax/pkg/observability"
)

// cachedCompression encodes graphs stored in the build cache.
const cachedCompression = codec.Zstd

// buildEntry is the cached form of a build result.
type buildEntry struct {
	Stats builder.Stats `json:"stats"`
	Graph []byte        `json:"graph"`
}

// BuildWithCacheInfo builds the graph from the configured CSV files, reusing
// a cached result for identical inputs and options unless opts.Refresh is
// set. The bool result reports a cache hit.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (g *graph.Graph, stats builder.Stats, hit bool, err error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, builder.Stats{}, false, err
	}

	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Prefix)
	defer func() {
		var vertices, edges int
		if g != nil {
			vertices, edges = g.VertexCount(), g.EdgeCount()
		}
		observability.Pipeline().OnBuildComplete(ctx, opts.Prefix, vertices, edges, time.Since(start), err)
	}()

	key, err := r.buildKey(opts)
	if err != nil {
		return nil, builder.Stats{}, false, err
	}

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, cache.KeyTypeBuild, key); ok {
			cached, cachedStats, derr := decodeBuildEntry(data)
			if derr == nil {
				return cached, cachedStats, true, nil
			}
			r.Logger.Warn("discarding unreadable cached build", "err", derr)
		}
	}

	g, stats, err = Build(opts)
	if err != nil {
		return nil, builder.Stats{}, false, err
	}

	if data, err := encodeBuildEntry(g, stats); err == nil {
		r.cacheSet(ctx, cache.KeyTypeBuild, key, data, cache.TTLBuild)
	}
	return g, stats, false, nil
}

// Build is a convenience wrapper around BuildWithCacheInfo.
func (r *Runner) Build(ctx context.Context, opts Options) (*graph.Graph, builder.Stats, error) {
	g, stats, _, err := r.BuildWithCacheInfo(ctx, opts)
	return g, stats, err
}

// Build reads both CSV files and runs the builder, without caching.
func Build(opts Options) (*graph.Graph, builder.Stats, error) {
	ents, err := readCSV(opts.EntitiesPath, builder.ReadEntities)
	if err != nil {
		return nil, builder.Stats{}, err
	}
	rels, err := readCSV(opts.RelationsPath, func(r io.Reader) ([]builder.Relation, error) {
		return builder.ReadRelations(r, opts.Columns())
	})
	if err != nil {
		return nil, builder.Stats{}, err
	}
	return builder.Build(ents, rels, opts.BuilderOptions())
}

func readCSV[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func (r *Runner) buildKey(opts Options) (string, error) {
	ents, err := hashInput(opts.EntitiesPath)
	if err != nil {
		return "", err
	}
	rels, err := hashInput(opts.RelationsPath)
	if err != nil {
		return "", err
	}
	return r.Keyer.BuildKey(ents, rels, opts.BuildKeyOpts()), nil
}

func hashInput(path string) (string, error) {
	h, err := cache.HashFile(path)
	if os.IsNotExist(err) {
		return "", aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return h, nil
}

func encodeBuildEntry(g *graph.Graph, stats builder.Stats) ([]byte, error) {
	data, err := codec.Encode(g, cachedCompression)
	if err != nil {
		return nil, err
	}
	return json.Marshal(buildEntry{Stats: stats, Graph: data})
}

func decodeBuildEntry(data []byte) (*graph.Graph, builder.Stats, error) {
	var entry buildEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, builder.Stats{}, err
	}
	g, err := codec.Decode(entry.Graph, cachedCompression, codec.Options{})
	if err != nil {
		return nil, builder.Stats{}, err
	}
	return g, entry.Stats, nil
}
