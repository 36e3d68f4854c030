package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/addax-graph/addax/pkg/pipeline"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build [entities.csv relations.csv]",
		Short: "Build a graph container from entity and relation tables",
		Long: `Build a graph container from entity and relation tables.

The entity table lists one vertex ID per row. The relation table lists
source, destination, and weight per row; weights of repeated pairs are
summed and pairs whose sum stays below --threshold are dropped. Vertices
are then grouped into communities and everything is written to the
container named by --output.

Options can also come from a TOML file given with --config. Flags set on
the command line win over the file.

Results are cached locally (or in Redis with --redis-url) so rebuilding
unchanged inputs is cheap.`,
		Example: `  addax build neurons.csv connections.csv -o hemi-brain.graph.bz2
  addax build -c hemi-brain.toml --community-csv communities.csv
  addax build neurons.csv connections.csv -o brain.graph.zst --diagram brain.svg`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("expected both entities.csv and relations.csv, got one file")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if len(args) == 2 {
				opts.EntitiesPath, opts.RelationsPath = args[0], args[1]
			}
			return c.runBuild(cmd.Context(), opts, flags.cache)
		},
	}

	flags.register(cmd)
	return cmd
}

// runBuild executes the full pipeline and reports the outputs.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, cf cacheFlags) error {
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Building %s...", opts.Output))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	printSuccess("Built %s", opts.Output)
	printStats(result.Graph.VertexCount(), result.Graph.EdgeCount(), result.Communities,
		result.CacheInfo.BuildHit && result.CacheInfo.PartitionHit)
	if result.Build.Pruned > 0 {
		printDetail("%d of %d pairs below threshold %d", result.Build.Pruned, result.Build.Pairs, opts.Threshold())
	}
	if result.Graph.EdgeCount() == 0 {
		printWarning("No edges left after pruning; try a lower --threshold")
	}

	printFile(opts.Output)
	for _, p := range []string{opts.CommunityCSV, opts.EdgeCSV, opts.Diagram} {
		if p != "" {
			printFile(p)
		}
	}

	c.Logger.Debug("build finished", "run", result.RunID,
		"build", result.Stats.BuildTime, "partition", result.Stats.PartitionTime, "persist", result.Stats.PersistTime)

	printNextStep("Inspect", appName+" info "+opts.Output)
	return nil
}
