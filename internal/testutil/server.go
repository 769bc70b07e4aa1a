package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/commerce"
	"github.com/pomandi/pomandi-landing-pages/internal/httpserver"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithStore serves pages from store.
func WithStore(store pages.Store) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Store = store
	}
}

// WithPages serves the given configurations from an in-memory store.
func WithPages(configs ...pages.PageConfig) ServerOption {
	return WithStore(pages.NewMemoryStore(configs...))
}

// WithCatalog overrides the product catalogue client.
func WithCatalog(client commerce.Client) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Catalog = client
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// WithClock fixes the clock used for response timestamps.
func WithClock(clock func() time.Time) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Clock = clock
	}
}

// WithSiteURL sets the public base URL.
func WithSiteURL(u string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.SiteURL = u
	}
}

// NewServer constructs an httptest server running the landing HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:       ":0",
		Store:         pages.NewMemoryStore(),
		Catalog:       commerce.NewStaticCatalog(),
		StorefrontURL: "https://www.pomandi.com",
		SiteURL:       "https://www.premiummenssuits.com",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
