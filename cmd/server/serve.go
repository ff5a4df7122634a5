package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/anunturi/pkg/api"
	"github.com/hazyhaar/anunturi/pkg/chassis"
	"github.com/mark3labs/mcp-go/server"
)

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := mustSetup(*cfgPath)

	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := runServe(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
	logger.Info("shut down")
}

// runServe loads the catalogs and the article store and serves the API until
// ctx is cancelled. Everything it opens is closed before it returns.
func runServe(ctx context.Context, cfg config, logger *slog.Logger) error {
	reg, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}

	store, err := openSeededStore(cfg, "", logger)
	if err != nil {
		return fmt.Errorf("open article store: %w", err)
	}
	defer store.Close()

	svc := &api.Service{
		Catalogs: reg,
		Articles: store,
		Options:  cfg.filterOptions(),
		Workers:  cfg.Workers,
	}

	mcpSrv := api.NewMCPServer(svc, logger, version)
	router := api.NewRouter(svc, logger, server.NewStreamableHTTPServer(mcpSrv))

	srv, err := chassis.New(chassis.Config{
		Addr:     cfg.Addr,
		CertFile: cfg.TLSCert,
		KeyFile:  cfg.TLSKey,
		DevTLS:   cfg.DevTLS,
		Handler:  router,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("chassis setup: %w", err)
	}

	// SIGHUP: hot reload catalogs.
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-sighup:
				logger.Info("SIGHUP received, reloading catalogs")
				if err := reg.Reload(); err != nil {
					logger.Error("reload failed", "error", err)
				} else {
					logger.Info("catalogs reloaded", "count", reg.CatalogCount(), "terms", reg.TotalTerms())
				}
			}
		}
	}()

	return srv.Start(ctx)
}
