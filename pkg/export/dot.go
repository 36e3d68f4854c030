package export

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/addax-graph/addax/pkg/graph"
)

// Options configures community diagram output.
type Options struct {
	// MinWeight hides inter-community arcs whose summed weight is below it.
	MinWeight float64
}

type arc struct {
	from, to int64
}

// CommunityDOT converts g into the Graphviz DOT form of its quotient graph:
// one node per community labelled with its member count and internal
// weight, and one arc per pair of communities carrying their summed edge
// weight. Directed graphs produce a digraph; undirected graphs merge both
// directions into one edge. Output order is sorted by label.
func CommunityDOT(g *graph.Graph, opts Options) string {
	members := make(map[int64]int)
	for _, v := range g.Vertices() {
		members[v.Community]++
	}

	internal := make(map[int64]float64)
	between := make(map[arc]float64)
	for _, e := range g.Edges() {
		src, _ := g.Vertex(e.Source)
		dst, _ := g.Vertex(e.Destination)
		from, to := src.Community, dst.Community
		if from == to {
			internal[from] += e.Weight
			continue
		}
		if !g.Directed() && from > to {
			from, to = to, from
		}
		between[arc{from, to}] += e.Weight
	}

	kind, op := "digraph", "->"
	if !g.Directed() {
		kind, op = "graph", "--"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	if g.Prefix() != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", g.Prefix())
	}
	buf.WriteString("\n")

	for _, c := range slices.Sorted(maps.Keys(members)) {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", nodeID(c), nodeLabel(c, members[c], internal[c]))
	}

	buf.WriteString("\n")
	arcs := slices.SortedFunc(maps.Keys(between), func(a, b arc) int {
		if c := cmp.Compare(a.from, b.from); c != 0 {
			return c
		}
		return cmp.Compare(a.to, b.to)
	})
	for _, a := range arcs {
		w := between[a]
		if w < opts.MinWeight {
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q [label=%q, penwidth=%s];\n",
			nodeID(a.from), op, nodeID(a.to), FormatWeight(w), penWidth(w))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(community int64) string {
	if community == graph.Unassigned {
		return "unassigned"
	}
	return "c" + strconv.FormatInt(community, 10)
}

func nodeLabel(community int64, size int, internal float64) string {
	name := "community " + strconv.FormatInt(community, 10)
	if community == graph.Unassigned {
		name = "unassigned"
	}
	return fmt.Sprintf("%s\n%d vertices\ninternal %s", name, size, FormatWeight(internal))
}

// penWidth scales arc thickness logarithmically with weight.
func penWidth(w float64) string {
	width := 1.0
	for v := w; v >= 10 && width < 8; v /= 10 {
		width++
	}
	return strconv.FormatFloat(width, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg element with one
// whose viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
