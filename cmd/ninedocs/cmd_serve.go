package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ninedocs/internal/serve"
	"ninedocs/internal/site"
)

var serveAddr string

// serveCmd builds the site and serves it with rebuild-on-change.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the docs locally, rebuilding on change",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rebuild := func(ctx context.Context) error {
		store, tree, err := loadStoreAndNav()
		if err != nil {
			return err
		}
		report, err := site.New(cfg.Site, store, tree, logger).Build(ctx)
		if err != nil {
			return err
		}
		if n := report.Warnings(); n > 0 {
			logger.Sugar().Warnf("site rebuilt with %d warnings", n)
		}
		return nil
	}

	if err := rebuild(ctx); err != nil {
		return err
	}

	addr := cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := &serve.Server{
		Addr:       addr,
		OutputDir:  cfg.Site.OutputDir,
		WatchPaths: []string{cfg.Site.ContentDir, cfg.Site.NavFile},
		Debounce:   cfg.Serve.GetDebounce(),
		Rebuild:    rebuild,
		Log:        logger,
	}
	return server.Run(ctx)
}
