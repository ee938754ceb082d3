// Package cli implements the pkgstats command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mlindner/pkgstats/pkg/buildinfo"
	"github.com/mlindner/pkgstats/pkg/cache"
	"github.com/mlindner/pkgstats/pkg/config"
	apperrors "github.com/mlindner/pkgstats/pkg/errors"
	"github.com/mlindner/pkgstats/pkg/mirror"
	"github.com/mlindner/pkgstats/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "pkgstats"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the loaded
// configuration file. A broken config file is reported but does not
// prevent startup; defaults apply.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}

	cfg, err := config.Load("")
	if err != nil {
		c.Logger.Warn("ignoring config file", "err", err)
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The root command itself runs the statistics pipeline:
//
//	pkgstats amd64
//	pkgstats amd64 http://mirror.example.org/Contents-amd64.gz
func (c *CLI) RootCommand() *cobra.Command {
	root := c.statsCommand()
	root.Use = appName + " <architecture> [contents-url]"
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SetVersionTemplate(buildinfo.Template())

	// Flag misuse must exit with the invalid-usage status, same as a bad
	// argument count.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.Wrap(apperrors.ErrCodeUsage, err, "invalid flags")
	})

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner wired to the configured cache
// backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(mirror.NewFetcher(nil), c.newCache(ctx, noCache), c.Logger)
}

// newCache selects the cache backend from config. Backend failures
// degrade to no caching rather than failing the run.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}

	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache()
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/pkgstats/).
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
