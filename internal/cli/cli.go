// Package cli implements the courseflow command-line interface.
//
// This package provides commands for exploring course prerequisite graphs,
// rendering them as visual artifacts, serving them over HTTP, and managing
// the local cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - graph: Fetch, lay out, and export a course's prerequisite graph
//   - search: Interactively search the catalog and pick a course
//   - serve: Run the HTTP API server
//   - cache: Manage the local response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/courseflow/courseflow/pkg/buildinfo"
	"github.com/courseflow/courseflow/pkg/cache"
	"github.com/courseflow/courseflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "courseflow"

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
	Config Config
}

// New creates a new CLI instance with a default logger and the config
// loaded from the default path (falling back to defaults when absent).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "courseflow",
		Short:        "Courseflow explores course prerequisite graphs",
		Long:         `Courseflow is a CLI tool for fetching, laying out, and visualizing course prerequisite dependency graphs, making it easier to see what unlocks what on the way to a target course.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.courseflow.toml)")

	// Register all subcommands
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, cache.Cache, error) {
	backend, err := c.newBackend(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), backend, nil
}

// newBackend selects a cache backend from the config. Unreachable Redis or
// an unusable cache directory degrade to a null cache rather than failing
// the command.
func (c *CLI) newBackend(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.CacheBackend == CacheBackendNone {
		return cache.NewNullCache(), nil
	}

	if c.Config.CacheBackend == CacheBackendRedis {
		backend, err := cache.NewRedisCacheAddr(ctx, c.Config.RedisAddr)
		if err != nil {
			c.Logger.Warn("redis unavailable, running uncached", "addr", c.Config.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		return backend, nil
	}

	dir := c.Config.CacheDir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/courseflow/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}
