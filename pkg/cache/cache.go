// Package cache stores intermediate pipeline results keyed by their inputs.
//
// A build is a pure function of its two input files and its options, and a
// partition is a pure function of the graph and the partitioner settings, so
// both results can be reused across runs. Keys come from a [Keyer]; values
// are opaque bytes chosen by the pipeline.
//
// Three backends are provided:
//
//   - [FileCache]: JSON entry files under a local directory (CLI default)
//   - [RedisCache]: a shared redis server
//   - [NullCache]: caching disabled
//
// A cache is an optimization only. Callers treat every error from a backend
// as a miss and carry on.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Default lifetimes of cached results.
const (
	TTLBuild     = 7 * 24 * time.Hour
	TTLPartition = 7 * 24 * time.Hour
)

// Key types reported to cache hooks.
const (
	KeyTypeBuild     = "build"
	KeyTypePartition = "partition"
)

// BuildKeyOpts holds every build option that changes the built graph.
type BuildKeyOpts struct {
	SourceColumn      int    `json:"src"`
	DestinationColumn int    `json:"dst"`
	WeightColumn      int    `json:"weight"`
	Prefix            string `json:"prefix"`
	Directed          bool   `json:"directed"`
	Colored           bool   `json:"colored"`
	LowEdgeThreshold  int64  `json:"threshold"`
}

// PartitionKeyOpts holds every partitioner setting that changes the labels.
type PartitionKeyOpts struct {
	Partitioner   string `json:"partitioner"`
	MaxIterations int    `json:"max_iterations"`
}

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// BuildKey identifies a built graph by the hashes of its entity and
	// relation inputs.
	BuildKey(entitiesHash, relationsHash string, opts BuildKeyOpts) string

	// PartitionKey identifies community labels by the hash of the encoded
	// graph they were computed for.
	PartitionKey(graphHash string, opts PartitionKeyOpts) string
}

// DefaultKeyer produces "<type>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) BuildKey(entitiesHash, relationsHash string, opts BuildKeyOpts) string {
	return hashKey(KeyTypeBuild, entitiesHash, relationsHash, opts)
}

func (DefaultKeyer) PartitionKey(graphHash string, opts PartitionKeyOpts) string {
	return hashKey(KeyTypePartition, graphHash, opts)
}
