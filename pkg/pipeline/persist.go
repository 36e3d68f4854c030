package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/addax-graph/addax/pkg/codec"
	"github.com/addax-graph/addax/pkg/export"
	"github.com/addax-graph/addax/pkg/graph"
	"github.com/addax-graph/addax/pkg/observability"
)

// Persist writes any requested derived outputs and then the container.
func (r *Runner) Persist(ctx context.Context, g *graph.Graph, opts Options) error {
	if err := opts.ValidateForPersist(); err != nil {
		return err
	}
	_, err := r.persist(ctx, g, opts)
	return err
}

func (r *Runner) persist(ctx context.Context, g *graph.Graph, opts Options) (size int64, err error) {
	start := time.Now()
	observability.Pipeline().OnPersistStart(ctx, opts.Output)
	defer func() {
		observability.Pipeline().OnPersistComplete(ctx, opts.Output, size, time.Since(start), err)
	}()

	// A failed derived output must leave no container behind.
	if err := r.export(ctx, g, opts); err != nil {
		return 0, err
	}
	if err := codec.WriteFile(opts.Output, g); err != nil {
		return 0, err
	}
	info, err := os.Stat(opts.Output)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Export writes only the derived outputs named in opts (community table,
// edge table, diagram) for an already labelled graph. Output is ignored.
func (r *Runner) Export(ctx context.Context, g *graph.Graph, opts Options) error {
	if err := opts.validateDiagram(); err != nil {
		return err
	}
	return r.export(ctx, g, opts)
}

func (r *Runner) export(ctx context.Context, g *graph.Graph, opts Options) error {
	if opts.CommunityCSV != "" {
		if err := writeOutput(opts.CommunityCSV, func(w io.Writer) error {
			return export.WriteCommunityCSV(w, g)
		}); err != nil {
			return err
		}
		r.Logger.Debug("wrote community table", "path", opts.CommunityCSV)
	}

	if opts.EdgeCSV != "" {
		if err := writeOutput(opts.EdgeCSV, func(w io.Writer) error {
			return export.WriteEdgeCSV(w, g)
		}); err != nil {
			return err
		}
		r.Logger.Debug("wrote edge table", "path", opts.EdgeCSV)
	}

	if opts.Diagram != "" {
		if err := WriteDiagram(ctx, opts.Diagram, g, export.Options{MinWeight: opts.DiagramMinWeight}); err != nil {
			return err
		}
		r.Logger.Debug("wrote community diagram", "path", opts.Diagram)
	}
	return nil
}

// WriteDiagram writes the community diagram of g to path as DOT or, for a
// .svg path, rendered SVG.
func WriteDiagram(ctx context.Context, path string, g *graph.Graph, opts export.Options) error {
	dot := export.CommunityDOT(g, opts)
	if !strings.EqualFold(filepath.Ext(path), DiagramSVG) {
		return writeOutput(path, func(w io.Writer) error {
			_, err := io.WriteString(w, dot)
			return err
		})
	}
	svg, err := export.RenderSVG(ctx, dot)
	if err != nil {
		return err
	}
	return writeOutput(path, func(w io.Writer) error {
		_, err := w.Write(svg)
		return err
	})
}

// writeOutput creates path and fills it with write. A failed write removes
// the file.
func writeOutput(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
