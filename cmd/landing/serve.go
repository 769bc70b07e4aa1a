package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/channel"
	"github.com/pomandi/pomandi-landing-pages/internal/httpserver"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the landing page server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := root.load(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()
			return serve(ctx, rt)
		},
	}
}

func serve(ctx context.Context, rt *app) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	logger := rt.logger

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	var wg sync.WaitGroup
	if dir, ok := rt.store.(*pages.DirStore); ok && rt.cfg.Pages.Watch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := dir.Watch(watchCtx); err != nil {
				logger.Error("page config watcher stopped", zap.Error(err))
			}
		}()
	}

	server := httpserver.New(httpserver.Config{
		Address:       rt.cfg.Server.Addr,
		ReadTimeout:   rt.cfg.Server.ReadTimeout,
		WriteTimeout:  rt.cfg.Server.WriteTimeout,
		IdleTimeout:   rt.cfg.Server.IdleTimeout,
		Logger:        logger,
		Store:         rt.store,
		Catalog:       rt.catalog(),
		StorefrontURL: rt.cfg.Links.StorefrontURL,
		SiteURL:       rt.cfg.Links.SiteURL,
	})

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr), zap.String("pages_source", rt.cfg.Pages.Source))
	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("landing pages listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received; draining requests")
	case serveErr = <-errCh:
		serverLogger.Error("http server error", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	cancelWatch()
	wg.Wait()
	return serveErr
}
