package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/addax-graph/addax/pkg/codec"
	"github.com/addax-graph/addax/pkg/pipeline"
)

// exportCommand creates the export command, which derives tables and
// diagrams from an existing container without rebuilding it.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		opts        pipeline.Options
		compression string
	)

	cmd := &cobra.Command{
		Use:   "export [container]",
		Short: "Write community tables or a diagram from a graph container",
		Long: `Write community tables or a diagram from a graph container.

The container is decoded as written; communities are not recomputed. At
least one of --community-csv, --edge-csv or --diagram is required.`,
		Example: `  addax export hemi-brain.graph.bz2 --community-csv communities.csv
  addax export hemi-brain.graph.bz2 --diagram communities.svg --min-weight 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.CommunityCSV == "" && opts.EdgeCSV == "" && opts.Diagram == "" {
				return fmt.Errorf("nothing to export: set --community-csv, --edge-csv or --diagram")
			}
			var read codec.Options
			if err := compressionFlag(cmd, compression, &read); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], read, opts)
		},
	}

	cmd.Flags().StringVar(&opts.CommunityCSV, "community-csv", "", "write vertex,community rows to this file")
	cmd.Flags().StringVar(&opts.EdgeCSV, "edge-csv", "", "write source,destination,weight rows to this file")
	cmd.Flags().StringVar(&opts.Diagram, "diagram", "", "write the community diagram (.dot or .svg)")
	cmd.Flags().Float64Var(&opts.DiagramMinWeight, "min-weight", 0, "hide diagram links lighter than this")
	registerCompressionFlag(cmd, &compression)

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, read codec.Options, opts pipeline.Options) error {
	g, err := codec.ReadFile(input, read)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	if err := runner.Export(ctx, g, opts); err != nil {
		return err
	}

	printSuccess("Exported %s", input)
	printStats(g.VertexCount(), g.EdgeCount(), len(g.Communities()), false)
	for _, p := range []string{opts.CommunityCSV, opts.EdgeCSV, opts.Diagram} {
		if p != "" {
			printFile(p)
		}
	}
	return nil
}
