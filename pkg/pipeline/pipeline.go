// Package pipeline runs the complete build → partition → persist flow.
//
// The pipeline reads an entity CSV and a relation CSV, builds the
// aggregated graph, assigns communities, and writes the binary container
// plus any requested derived outputs. It is the single place where the
// library packages are wired together, so the CLI and any other front end
// behave the same way.
//
// # Stages
//
//  1. Build: parse both CSV files and run [builder.Build]
//  2. Partition: run the configured assigner and apply its labels
//  3. Persist: write the community and edge tables and the community
//     diagram if requested, then the container with [codec.WriteFile]
//
// Build and partition results are cached by content hash (see package
// cache). A failure in any stage aborts the run; the container is written
// atomically, so a failed run never leaves a partial file at the output path.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    EntitiesPath:  "neurons.csv",
//	    RelationsPath: "connections.csv",
//	    Output:        "hemi-brain.graph.bz2",
//	})
//
// Stages can also be run on their own:
//
//	g, stats, err := runner.Build(ctx, opts)
//	err = runner.Partition(ctx, g, opts)
//	err = runner.Persist(ctx, g, opts)
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/addax-graph/addax/pkg/builder"
	"github.com/addax-graph/addax/pkg/cache"
	"github.com/addax-graph/addax/pkg/codec"
	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/graph"
	"github.com/addax-graph/addax/pkg/partition"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultPartitioner is the built-in assigner used when none is named.
	DefaultPartitioner = partition.NameLabelPropagation

	// DefaultMaxIterations bounds label propagation.
	DefaultMaxIterations = partition.DefaultMaxIterations
)

// Diagram output formats, chosen by the diagram path extension.
const (
	DiagramDOT = ".dot"
	DiagramSVG = ".svg"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. The toml tags match
// the keys of the CLI config file.
type Options struct {
	// Build options
	EntitiesPath      string `toml:"entities"`
	RelationsPath     string `toml:"relations"`
	SourceColumn      *int   `toml:"source_column"`      // nil means builder.DefaultColumns.Source
	DestinationColumn *int   `toml:"destination_column"` // nil means builder.DefaultColumns.Destination
	WeightColumn      *int   `toml:"weight_column"`      // nil means builder.DefaultColumns.Weight
	Prefix            string `toml:"prefix"`
	Undirected        bool   `toml:"undirected"`
	Colored           bool   `toml:"colored"`
	LowEdgeThreshold  *int64 `toml:"low_edge_threshold"` // nil means builder.DefaultLowEdgeThreshold
	Refresh           bool   `toml:"refresh"`            // Ignore cached results

	// Partition options
	Partitioner   string `toml:"partitioner"`
	TablePath     string `toml:"table"`
	MaxIterations int    `toml:"max_iterations"`

	// Persist options
	Output           string  `toml:"output"`
	CommunityCSV     string  `toml:"community_csv"`
	EdgeCSV          string  `toml:"edge_csv"`
	Diagram          string  `toml:"diagram"` // .dot or .svg
	DiagramMinWeight float64 `toml:"diagram_min_weight"`

	// Runtime options
	Logger   *log.Logger        `toml:"-"`
	Assigner partition.Assigner `toml:"-"` // Overrides Partitioner when set

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs.
	RunID uuid.UUID

	// Graph is the built and labelled graph.
	Graph *graph.Graph

	// Build reports what the builder consumed and produced.
	Build builder.Stats

	// Communities is the number of distinct community labels.
	Communities int

	// OutputSize is the size of the written container in bytes.
	OutputSize int64

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline stage timings.
type Stats struct {
	BuildTime     time.Duration
	PartitionTime time.Duration
	PersistTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit     bool
	PartitionHit bool
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForPartition(); err != nil {
		return err
	}
	if err := o.ValidateForPersist(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the build inputs and applies build defaults.
func (o *Options) ValidateForBuild() error {
	if o.EntitiesPath == "" {
		return aerrors.New(aerrors.ErrCodeInvalidConfig, "entities file is required")
	}
	if o.RelationsPath == "" {
		return aerrors.New(aerrors.ErrCodeInvalidConfig, "relations file is required")
	}
	if err := o.Columns().Validate(); err != nil {
		return err
	}
	if o.Prefix == "" {
		o.Prefix = builder.DefaultPrefix
	}
	o.setLoggerDefault()
	return o.BuilderOptions().Validate()
}

// ValidateForPartition checks the partitioner settings.
func (o *Options) ValidateForPartition() error {
	if o.Partitioner == "" {
		o.Partitioner = DefaultPartitioner
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.MaxIterations < 0 {
		return aerrors.New(aerrors.ErrCodeInvalidConfig, "max iterations must be positive, got %d", o.MaxIterations)
	}
	o.setLoggerDefault()
	if o.Assigner != nil {
		return nil
	}
	_, err := o.assigner()
	return err
}

// ValidateForPersist checks the output paths.
func (o *Options) ValidateForPersist() error {
	if o.Output == "" {
		return aerrors.New(aerrors.ErrCodeInvalidConfig, "output file is required")
	}
	if _, err := codec.CompressionForPath(o.Output); err != nil {
		return err
	}
	o.setLoggerDefault()
	return o.validateDiagram()
}

func (o *Options) validateDiagram() error {
	if o.Diagram != "" {
		switch strings.ToLower(filepath.Ext(o.Diagram)) {
		case DiagramDOT, DiagramSVG:
		default:
			return aerrors.New(aerrors.ErrCodeInvalidFormat,
				"%s: diagram must end in .dot or .svg", o.Diagram)
		}
	}
	return nil
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Columns returns the relation column selection. Each unset column takes
// its own default from [builder.DefaultColumns].
func (o *Options) Columns() builder.Columns {
	c := builder.DefaultColumns
	if o.SourceColumn != nil {
		c.Source = *o.SourceColumn
	}
	if o.DestinationColumn != nil {
		c.Destination = *o.DestinationColumn
	}
	if o.WeightColumn != nil {
		c.Weight = *o.WeightColumn
	}
	return c
}

// Threshold returns the effective low-edge threshold.
func (o *Options) Threshold() int64 {
	if o.LowEdgeThreshold == nil {
		return builder.DefaultLowEdgeThreshold
	}
	return *o.LowEdgeThreshold
}

// BuilderOptions returns the options passed to the builder.
func (o *Options) BuilderOptions() builder.Options {
	return builder.Options{
		Prefix:           o.Prefix,
		Directed:         !o.Undirected,
		Colored:          o.Colored,
		LowEdgeThreshold: o.Threshold(),
	}
}

// BuildKeyOpts returns cache key options for the build stage.
func (o *Options) BuildKeyOpts() cache.BuildKeyOpts {
	cols := o.Columns()
	return cache.BuildKeyOpts{
		SourceColumn:      cols.Source,
		DestinationColumn: cols.Destination,
		WeightColumn:      cols.Weight,
		Prefix:            o.Prefix,
		Directed:          !o.Undirected,
		Colored:           o.Colored,
		LowEdgeThreshold:  o.Threshold(),
	}
}

// PartitionKeyOpts returns cache key options for the partition stage.
func (o *Options) PartitionKeyOpts() cache.PartitionKeyOpts {
	return cache.PartitionKeyOpts{
		Partitioner:   strings.ToLower(o.Partitioner),
		MaxIterations: o.MaxIterations,
	}
}

// assigner resolves the configured assigner.
func (o *Options) assigner() (partition.Assigner, error) {
	if o.Assigner != nil {
		return o.Assigner, nil
	}
	return partition.Lookup(o.Partitioner, partition.Config{
		MaxIterations: o.MaxIterations,
		TablePath:     o.TablePath,
	})
}

// cachesPartition reports whether partition results can be reused. Custom
// assigners and tables read state the cache key cannot see.
func (o *Options) cachesPartition() bool {
	return o.Assigner == nil && !strings.EqualFold(o.Partitioner, partition.NameTable)
}
