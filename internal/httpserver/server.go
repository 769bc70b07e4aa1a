package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/commerce"
	"github.com/pomandi/pomandi-landing-pages/internal/handlers"
	"github.com/pomandi/pomandi-landing-pages/internal/i18n"
	"github.com/pomandi/pomandi-landing-pages/internal/locations"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/observability"
)

const defaultRequestTimeout = 30 * time.Second

// Config holds runtime options for the landing HTTP server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Logger  *zap.Logger
	Store   pages.Store
	Catalog commerce.Client

	StorefrontURL string
	SiteURL       string
	Directory     *locations.Directory
	Labels        *i18n.Bundle
	Clock         func() time.Time
}

// New constructs the HTTP server with the middleware stack and every route mounted.
func New(cfg Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      NewRouter(cfg),
		ReadTimeout:  orDefault(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout: orDefault(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  orDefault(cfg.IdleTimeout, 60*time.Second),
	}
}

// NewRouter builds the chi router serving landing pages, the admin inventory and health checks.
func NewRouter(cfg Config) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := cfg.Store
	if store == nil {
		store = pages.NewMemoryStore()
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = commerce.NewStaticCatalog()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.TraceMiddleware)
	router.Use(observability.RequestLoggerMiddleware)
	router.Use(observability.RecoveryMiddleware(logger))
	router.Use(chimw.Timeout(defaultRequestTimeout))
	router.Use(chimw.Compress(5))

	landing := handlers.NewLandingHandlers(store, commerce.NewGatherer(catalog),
		handlers.WithStorefrontURL(cfg.StorefrontURL),
		handlers.WithSiteURL(cfg.SiteURL),
		handlers.WithDirectory(cfg.Directory),
		handlers.WithLabels(cfg.Labels),
	)
	admin := handlers.NewAdminHandlers(store, handlers.WithAdminClock(cfg.Clock))
	health := handlers.NewHealthHandlers(handlers.WithHealthClock(cfg.Clock))

	router.NotFound(landing.NotFound)
	router.Get("/healthz", health.Healthz)
	admin.Routes(router)
	landing.Routes(router)

	return router
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
