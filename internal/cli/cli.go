package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/addax-graph/addax/pkg/buildinfo"
	"github.com/addax-graph/addax/pkg/cache"
	"github.com/addax-graph/addax/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "addax"

	// redisURLEnv names the environment variable that selects a Redis cache.
	redisURLEnv = "ADDAX_REDIS_URL"

	// cacheScopeEnv names the environment variable that sets the cache scope.
	cacheScopeEnv = "ADDAX_CACHE_SCOPE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline and
// cache hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Addax builds compact community graphs from relation tables",
		Long: `Addax turns an entity table and a weighted relation table into a compact
binary graph container, groups the vertices into communities, and exports
the result as tables or a community diagram.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend for commands that run the pipeline.
type cacheFlags struct {
	noCache  bool
	redisURL string
	scope    string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "cache in Redis instead of the cache directory (env "+redisURLEnv+")")
	cmd.Flags().StringVar(&f.scope, "cache-scope", "", "keep cache entries apart per dataset or user (env "+cacheScopeEnv+")")
}

// keyer returns a keyer that prefixes keys with the cache scope, or nil for
// the default keyer when no scope is set.
func (f *cacheFlags) keyer() cache.Keyer {
	scope := f.scope
	if scope == "" {
		scope = os.Getenv(cacheScopeEnv)
	}
	if scope == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, scope+":")
}

// url returns the Redis URL from the flag or the environment.
func (f *cacheFlags) url() string {
	if f.redisURL != "" {
		return f.redisURL
	}
	return os.Getenv(redisURLEnv)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags) (*pipeline.Runner, error) {
	store, err := newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, flags.keyer(), c.Logger), nil
}

// newCache opens the cache selected by flags. An unusable cache directory
// disables caching instead of failing the command.
func newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	if flags.noCache {
		return cache.NewNullCache(), nil
	}
	if url := flags.url(); url != "" {
		rc, err := cache.NewRedisCache(url)
		if err != nil {
			return nil, err
		}
		if err := rc.Ping(ctx); err != nil {
			rc.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/addax/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
