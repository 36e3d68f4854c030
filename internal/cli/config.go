package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/addax-graph/addax/pkg/builder"
	aerrors "github.com/addax-graph/addax/pkg/errors"
	"github.com/addax-graph/addax/pkg/partition"
	"github.com/addax-graph/addax/pkg/pipeline"
)

// loadConfig reads pipeline options from a TOML file. Keys are the toml tags
// of [pipeline.Options]; unknown keys are rejected so typos do not pass
// silently.
func loadConfig(path string) (pipeline.Options, error) {
	var opts pipeline.Options
	md, err := toml.DecodeFile(path, &opts)
	if errors.Is(err, fs.ErrNotExist) {
		return opts, aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return opts, aerrors.Wrap(aerrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return opts, aerrors.New(aerrors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// buildFlags mirrors the build command's flags. Flags the user sets
// explicitly override the config file.
type buildFlags struct {
	config string
	cache  cacheFlags
	opts   pipeline.Options

	threshold int64
	columns   builder.Columns
}

func (f *buildFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.config, "config", "c", "", "TOML file with build options")
	f.cache.register(cmd)

	// Build
	flags.StringVarP(&f.opts.EntitiesPath, "entities", "e", "", "entity CSV (one ID per row, header skipped)")
	flags.StringVarP(&f.opts.RelationsPath, "relations", "r", "", "relation CSV (source, destination, weight)")
	flags.IntVar(&f.columns.Source, "source-col", builder.DefaultColumns.Source, "relation column holding the source ID")
	flags.IntVar(&f.columns.Destination, "dest-col", builder.DefaultColumns.Destination, "relation column holding the destination ID")
	flags.IntVar(&f.columns.Weight, "weight-col", builder.DefaultColumns.Weight, "relation column holding the weight")
	flags.StringVarP(&f.opts.Prefix, "prefix", "p", "", "name stored in the container header (default \"graph\")")
	flags.BoolVar(&f.opts.Undirected, "undirected", false, "mark the graph as undirected")
	flags.BoolVar(&f.opts.Colored, "colored", false, "mark the graph as colored")
	flags.Int64Var(&f.threshold, "threshold", 5, "drop edges whose summed weight is below this")
	flags.BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached results")

	// Partition
	flags.StringVar(&f.opts.Partitioner, "partitioner", "", "community assigner: label-propagation (default), singleton, table")
	flags.StringVar(&f.opts.TablePath, "table", "", "vertex,community CSV for the table partitioner")
	flags.IntVar(&f.opts.MaxIterations, "max-iterations", 0, "label propagation round limit (default 100)")

	// Persist
	flags.StringVarP(&f.opts.Output, "output", "o", "", "container path ending in .graph.bz2, .graph.zst or .graph.sz")
	flags.StringVar(&f.opts.CommunityCSV, "community-csv", "", "write vertex,community rows to this file")
	flags.StringVar(&f.opts.EdgeCSV, "edge-csv", "", "write source,destination,weight rows to this file")
	flags.StringVar(&f.opts.Diagram, "diagram", "", "write the community diagram (.dot or .svg)")
	flags.Float64Var(&f.opts.DiagramMinWeight, "min-weight", 0, "hide diagram links lighter than this")

	_ = cmd.MarkFlagFilename("config", "toml")
	_ = cmd.MarkFlagFilename("entities", "csv")
	_ = cmd.MarkFlagFilename("relations", "csv")
	_ = cmd.MarkFlagFilename("table", "csv")
	_ = cmd.RegisterFlagCompletionFunc("partitioner", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return partition.Names(), cobra.ShellCompDirectiveNoFileComp
	})
}

// resolve merges the config file and explicitly set flags into one set of
// options.
func (f *buildFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		var err error
		if opts, err = loadConfig(f.config); err != nil {
			return opts, err
		}
	}

	set := cmd.Flags().Changed
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"entities", func() { opts.EntitiesPath = f.opts.EntitiesPath }},
		{"relations", func() { opts.RelationsPath = f.opts.RelationsPath }},
		{"prefix", func() { opts.Prefix = f.opts.Prefix }},
		{"undirected", func() { opts.Undirected = f.opts.Undirected }},
		{"colored", func() { opts.Colored = f.opts.Colored }},
		{"source-col", func() { c := f.columns.Source; opts.SourceColumn = &c }},
		{"dest-col", func() { c := f.columns.Destination; opts.DestinationColumn = &c }},
		{"weight-col", func() { c := f.columns.Weight; opts.WeightColumn = &c }},
		{"threshold", func() { t := f.threshold; opts.LowEdgeThreshold = &t }},
		{"refresh", func() { opts.Refresh = f.opts.Refresh }},
		{"partitioner", func() { opts.Partitioner = f.opts.Partitioner }},
		{"table", func() { opts.TablePath = f.opts.TablePath }},
		{"max-iterations", func() { opts.MaxIterations = f.opts.MaxIterations }},
		{"output", func() { opts.Output = f.opts.Output }},
		{"community-csv", func() { opts.CommunityCSV = f.opts.CommunityCSV }},
		{"edge-csv", func() { opts.EdgeCSV = f.opts.EdgeCSV }},
		{"diagram", func() { opts.Diagram = f.opts.Diagram }},
		{"min-weight", func() { opts.DiagramMinWeight = f.opts.DiagramMinWeight }},
	}
	for _, o := range overrides {
		if set(o.flag) {
			o.apply()
		}
	}
	return opts, nil
}
