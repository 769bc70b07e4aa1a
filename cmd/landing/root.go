package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/commerce"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/config"
	pfirestore "github.com/pomandi/pomandi-landing-pages/internal/platform/firestore"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/observability"
)

type rootOptions struct {
	envFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "landing",
		Short:         "Pomandi campaign landing pages",
		Long:          "Serves configuration-driven landing pages for the Pomandi storefront and manages their page configurations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with LANDING_* overrides")

	cmd.AddCommand(
		newServeCommand(opts),
		newIndexCommand(opts),
		newRoutesCommand(opts),
		newPublishCommand(opts),
	)
	return cmd
}

// app bundles the dependencies shared by every subcommand.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	store     pages.Store
	firestore *pfirestore.Provider
}

func (o *rootOptions) load(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx, config.WithEnvFile(o.envFile))
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	newLogger := observability.NewLogger
	if cfg.Dev {
		newLogger = observability.NewDevelopmentLogger
	}
	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("initialise logger: %w", err)
	}

	rt := &app{cfg: cfg, logger: logger.Named("landing")}
	switch cfg.Pages.Source {
	case config.PagesSourceFirestore:
		rt.firestore = pfirestore.NewProvider(cfg.Firestore)
		rt.store = pages.NewFirestoreStore(rt.firestore, cfg.Firestore.Collection)
	default:
		rt.store = pages.NewDirStore(cfg.Pages.Dir, pages.WithLogger(rt.logger.Named("pages")))
	}
	return rt, nil
}

func (rt *app) catalog() commerce.Client {
	if rt.cfg.Commerce.Endpoint == "" {
		rt.logger.Info("no catalogue endpoint configured; serving demo products")
		return commerce.NewStaticCatalog()
	}
	return commerce.NewGraphQLClient(rt.cfg.Commerce.Endpoint,
		commerce.WithToken(rt.cfg.Commerce.Token),
		commerce.WithTimeout(rt.cfg.Commerce.Timeout),
	)
}

func (rt *app) Close() {
	if rt.firestore != nil {
		if err := rt.firestore.Close(); err != nil {
			rt.logger.Warn("firestore close error", zap.Error(err))
		}
	}
	_ = rt.logger.Sync()
}
