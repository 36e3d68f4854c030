package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Read hemi-brain.graph.bz2")

	out := buf.String()
	if !strings.Contains(out, "Read hemi-brain.graph.bz2 (") {
		t.Errorf("progress output = %q, want message followed by duration", out)
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		emit func(logHooks)
		want []string
	}{
		{
			name: "build complete",
			emit: func(h logHooks) { h.OnBuildComplete(ctx, "hemi-brain", 6, 7, time.Second, nil) },
			want: []string{"build finished", "prefix=hemi-brain", "vertices=6", "edges=7"},
		},
		{
			name: "partition failed",
			emit: func(h logHooks) {
				h.OnPartitionComplete(ctx, "table", 0, time.Millisecond, errors.New("no such file"))
			},
			want: []string{"partition failed", "partitioner=table", "no such file"},
		},
		{
			name: "persist complete",
			emit: func(h logHooks) { h.OnPersistComplete(ctx, "out.graph.bz2", 512, time.Millisecond, nil) },
			want: []string{"persist finished", "bytes=512"},
		},
		{
			name: "cache hit",
			emit: func(h logHooks) { h.OnCacheHit(ctx, "build") },
			want: []string{"cache hit", "type=build"},
		},
		{
			name: "cache error",
			emit: func(h logHooks) { h.OnCacheError(ctx, "partition", errors.New("connection refused")) },
			want: []string{"cache error", "type=partition", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(logHooks{logger: newLogger(&buf, log.DebugLevel)})
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnBuildStart(context.Background(), "graph")
	h.OnCacheMiss(context.Background(), "build")
	if buf.Len() != 0 {
		t.Errorf("hooks logged at info level: %q", buf.String())
	}
}
