package cli

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/addax-graph/addax/pkg/codec"
	"github.com/addax-graph/addax/pkg/export"
	"github.com/addax-graph/addax/pkg/graph"
)

// vertexHeader is the header row of a full vertex dump.
var vertexHeader = []string{"id", "index", "community", "color"}

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var (
		output       string
		verticesOnly bool
		compression  string
	)

	cmd := &cobra.Command{
		Use:   "decode [container]",
		Short: "Dump the vertices or edges of a graph container as CSV",
		Long: `Dump the vertices or edges of a graph container as CSV.

The whole container is decoded and validated. By default the edge list is
written; --vertices-only writes the vertex records instead and skips
decoding the edges. --compression reads files that lack a .graph.<bz2|zst|sz>
suffix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := codec.Options{VerticesOnly: verticesOnly}
			if err := compressionFlag(cmd, compression, &opts); err != nil {
				return err
			}
			return c.runDecode(args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&verticesOnly, "vertices-only", false, "write vertex records and skip the edges")
	registerCompressionFlag(cmd, &compression)

	return cmd
}

func (c *CLI) runDecode(input, output string, opts codec.Options) error {
	prog := newProgress(c.Logger)
	g, err := codec.ReadFile(input, opts)
	if err != nil {
		return err
	}
	prog.done("Read " + input)

	return writeTo(output, func(w io.Writer) error {
		if opts.VerticesOnly {
			return writeVertexCSV(w, g)
		}
		return export.WriteEdgeCSV(w, g)
	})
}

func registerCompressionFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVar(value, "compression", "", "read as bzip2, zstd or snappy instead of guessing from the suffix")
	_ = cmd.RegisterFlagCompletionFunc("compression", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(codec.Compressions))
		for i, c := range codec.Compressions {
			names[i] = c.String()
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// compressionFlag applies --compression to opts when the user set it.
func compressionFlag(cmd *cobra.Command, value string, opts *codec.Options) error {
	if !cmd.Flags().Changed("compression") {
		return nil
	}
	c, err := codec.ParseCompression(value)
	if err != nil {
		return err
	}
	opts.Compression = c
	return nil
}

// writeVertexCSV writes every vertex record in enumeration order.
func writeVertexCSV(w io.Writer, g *graph.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(vertexHeader); err != nil {
		return err
	}
	for _, v := range g.Vertices() {
		if err := cw.Write([]string{
			strconv.FormatInt(v.ID, 10),
			strconv.FormatInt(v.Index, 10),
			strconv.FormatInt(v.Community, 10),
			strconv.FormatInt(v.Color, 10),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeTo runs write against the named file, or stdout when path is empty.
func writeTo(path string, write func(io.Writer) error) error {
	if path == "" {
		bw := bufio.NewWriter(stdout)
		if err := write(bw); err != nil {
			return err
		}
		return bw.Flush()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
