package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yzhernand/treedraw/internal/server"
	"github.com/yzhernand/treedraw/pkg/cache"
	"github.com/yzhernand/treedraw/pkg/pipeline"
	"github.com/yzhernand/treedraw/pkg/store"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the treedraw HTTP API",
		Long: `Run the treedraw HTTP API server.

By default artifacts are cached on disk and saved drawings are kept in
memory. Point --redis-addr at a Redis instance to share the artifact cache
between replicas, and --mongo-uri at MongoDB to persist saved drawings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for the shared artifact cache")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for persistent drawing storage")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

// runServe wires the cache, store, and runner, then serves until ctx is
// cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI string, noCache bool) error {
	ch, err := c.serveCache(redisAddr, noCache)
	if err != nil {
		return err
	}

	var st store.Store
	if mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, mongoURI)
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		st = ms
		c.Logger.Info("using mongodb drawing store")
	} else {
		st = store.NewMemoryStore()
		c.Logger.Warn("using in-memory drawing store, drawings are lost on restart")
	}
	defer st.Close(context.Background())

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	return server.New(addr, runner, st, c.Logger).Run(ctx)
}

// serveCache picks the artifact cache backend for the server.
func (c *CLI) serveCache(redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(redisAddr, "", 0)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis artifact cache")
		return rc, nil
	}
	return newCache(false)
}
