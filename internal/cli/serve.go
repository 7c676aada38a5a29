package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/internal/server"
	"github.com/matzehuels/genogram/pkg/cache"
	"github.com/matzehuels/genogram/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout pipeline as an HTTP service",
		Long: `Run the layout pipeline as an HTTP service.

The serve command starts an HTTP server exposing the pipeline over a JSON
API. Clients submit person records inline; file sources are not accepted
over the network.

By default results are cached on disk. Pass --redis-url (or set
GENOGRAM_REDIS_URL) to share the cache across instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL == "" {
				redisURL = os.Getenv("GENOGRAM_REDIS_URL")
			}
			return c.runServe(cmd.Context(), addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the cache and runner and serves until the context ends.
func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool) error {
	store, err := c.newServeCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	printInfo("Serving on %s", addr)
	return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
}

// newServeCache selects the cache backend for the server.
func (c *CLI) newServeCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	}
	return newCache(false)
}
