package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/addax-graph/addax/pkg/cache"
	"github.com/addax-graph/addax/pkg/observability"
)

// Runner executes pipeline stages with caching.
//
// The Runner holds no per-run state, so one Runner can serve several runs
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means the default keyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → partition → persist pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.New()}
	logger := r.Logger.With("run", result.RunID.String()[:8])

	// Stage 1: Build
	buildStart := time.Now()
	g, stats, hit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Build = stats
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo.BuildHit = hit

	logger.Info("built graph",
		"prefix", g.Prefix(),
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"pruned", stats.Pruned,
		"cached", hit,
		"duration", result.Stats.BuildTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Partition
	partitionStart := time.Now()
	hit, err = r.PartitionWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	result.Communities = len(g.Communities())
	result.Stats.PartitionTime = time.Since(partitionStart)
	result.CacheInfo.PartitionHit = hit

	logger.Info("assigned communities",
		"partitioner", partitionerName(opts),
		"communities", result.Communities,
		"cached", hit,
		"duration", result.Stats.PartitionTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Persist
	persistStart := time.Now()
	size, err := r.persist(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	result.OutputSize = size
	result.Stats.PersistTime = time.Since(persistStart)

	logger.Info("wrote graph",
		"path", opts.Output,
		"bytes", size,
		"duration", result.Stats.PersistTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheGet looks up key, reporting backend failures as misses.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "type", keyType, "err", err)
		observability.Cache().OnCacheError(ctx, keyType, err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// cacheSet stores data under key; failures are logged and otherwise ignored.
func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		observability.Cache().OnCacheError(ctx, keyType, err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
