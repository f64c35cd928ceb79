package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/memegacha/internal/server"
	"github.com/desertthunder/memegacha/internal/services"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the web front end until interrupted.
//
// The catalog is fetched once up front; a failure is logged and retried by the cache on later requests.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = int(port)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := r.catalogSource()
	cache := server.NewCatalogCache(source, server.DefaultRetryInterval, r.logger)
	if _, err := cache.Load(ctx); err != nil {
		r.logger.Warn("initial catalog load failed", "source", source.Name(), "error", err)
	}

	opts := server.AppOpts{
		Catalog: cache,
		SeenKey: r.config.Storage.SeenKey,
		Logger:  r.logger,
	}
	if svc, ok := source.(*services.CatalogService); ok && !svc.IsRemote() {
		opts.CatalogFile = svc.LocalPath()
	}

	app, err := server.NewApp(opts)
	if err != nil {
		return err
	}

	addr := cfg.Addr()
	srv := server.New(addr, server.NewHandler(app, r.logger, cfg.RateLimit, cfg.Burst), r.logger)

	if cmd.Bool("open") || cfg.OpenBrowser {
		url := shared.BrowserURL(addr)
		go func() {
			if err := shared.OpenBrowser(url); err != nil {
				r.logger.Warn("could not open browser", "url", url, "error", err)
			}
		}()
	}

	return srv.Run(ctx)
}
