// Package cli implements the addax command-line interface.
//
// The CLI is built with cobra. Each command is a thin shell around package
// pipeline or package codec: flags and the optional TOML config file are
// turned into [pipeline.Options], and the results are printed with the
// lipgloss helpers in ui.go.
//
// # Commands
//
//   - build: CSV tables to a graph container, with communities and exports
//   - info: print a container header without decoding the body
//   - decode: dump the vertices or edges of a container as CSV
//   - export: write community tables or a diagram from an existing container
//   - cache: inspect or clear the build cache
//
// # Logging
//
// All commands support --verbose (-v). At debug level the pipeline stage
// and cache hooks are logged through charmbracelet/log.
package cli

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/addax-graph/addax/pkg/observability"
)

// newLogger creates a logger that writes to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation along with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond,
// e.g. "Read hemi-brain.graph.bz2 (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Hook Logging
// =============================================================================

// logHooks reports pipeline stages and cache traffic at debug level.
type logHooks struct {
	logger *log.Logger
}

var registerOnce sync.Once

// registerHooks installs logHooks as the global observability hooks. Only the
// first call has an effect.
func registerHooks(l *log.Logger) {
	registerOnce.Do(func() {
		h := logHooks{logger: l}
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
	})
}

func (h logHooks) OnBuildStart(_ context.Context, prefix string) {
	h.logger.Debug("build started", "prefix", prefix)
}

func (h logHooks) OnBuildComplete(_ context.Context, prefix string, vertices, edges int, d time.Duration, err error) {
	h.stage("build", d, err, "prefix", prefix, "vertices", vertices, "edges", edges)
}

func (h logHooks) OnPartitionStart(_ context.Context, partitioner string, vertices int) {
	h.logger.Debug("partition started", "partitioner", partitioner, "vertices", vertices)
}

func (h logHooks) OnPartitionComplete(_ context.Context, partitioner string, communities int, d time.Duration, err error) {
	h.stage("partition", d, err, "partitioner", partitioner, "communities", communities)
}

func (h logHooks) OnPersistStart(_ context.Context, path string) {
	h.logger.Debug("persist started", "path", path)
}

func (h logHooks) OnPersistComplete(_ context.Context, path string, size int64, d time.Duration, err error) {
	h.stage("persist", d, err, "path", path, "bytes", size)
}

func (h logHooks) stage(name string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "took", d.Round(time.Millisecond))
	if err != nil {
		h.logger.Debug(name+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(name+" finished", kv...)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.logger.Debug("cache error", "type", keyType, "err", err)
}
