package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/channel"
	"github.com/pomandi/pomandi-landing-pages/internal/commerce"
	"github.com/pomandi/pomandi-landing-pages/internal/i18n"
	"github.com/pomandi/pomandi-landing-pages/internal/locations"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/httpx"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
	"github.com/pomandi/pomandi-landing-pages/internal/render"
	"github.com/pomandi/pomandi-landing-pages/internal/seo"
)

// LandingHandlers serves the public landing pages.
type LandingHandlers struct {
	store         pages.Store
	gatherer      *commerce.Gatherer
	directory     *locations.Directory
	labels        *i18n.Bundle
	storefrontURL string
	siteURL       string
}

// LandingOption customises LandingHandlers.
type LandingOption func(*LandingHandlers)

// WithStorefrontURL sets the storefront base for product and collection links.
func WithStorefrontURL(u string) LandingOption {
	return func(h *LandingHandlers) {
		if u != "" {
			h.storefrontURL = u
		}
	}
}

// WithSiteURL sets the public base URL used for hreflang links and the sitemap.
func WithSiteURL(u string) LandingOption {
	return func(h *LandingHandlers) {
		h.siteURL = strings.TrimRight(u, "/")
	}
}

// WithDirectory overrides the store directory.
func WithDirectory(d *locations.Directory) LandingOption {
	return func(h *LandingHandlers) {
		if d != nil {
			h.directory = d
		}
	}
}

// WithLabels overrides the UI label bundle.
func WithLabels(b *i18n.Bundle) LandingOption {
	return func(h *LandingHandlers) {
		if b != nil {
			h.labels = b
		}
	}
}

// NewLandingHandlers wires landing handlers over a page store and a product gatherer.
func NewLandingHandlers(store pages.Store, gatherer *commerce.Gatherer, opts ...LandingOption) *LandingHandlers {
	h := &LandingHandlers{
		store:         store,
		gatherer:      gatherer,
		directory:     locations.Default(),
		labels:        i18n.Default(),
		storefrontURL: render.DefaultStorefrontURL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers the public routes.
func (h *LandingHandlers) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/{channel}/*", h.Page)
}

// Page renders the landing page at /{channel}/{slug}.
func (h *LandingHandlers) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	channelID := chi.URLParam(r, "channel")
	rest := chi.URLParam(r, "*")

	slug, ok := pages.NormalizeSlug(rest)
	if !ok {
		h.NotFound(w, r)
		return
	}

	if !channel.Known(channelID) {
		if target, locale, legacy := channel.Legacy(channelID); legacy {
			http.Redirect(w, r, "/"+target+"/"+slug+"?locale="+locale, http.StatusFound)
			return
		}
	}

	logger := requestctx.Logger(ctx).With(zap.String("slug", slug), zap.String("channel", channelID))
	cfg, found, err := h.store.Get(ctx, slug)
	if err != nil {
		logger.Error("load page config", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("page_store_unavailable", "page configuration is unavailable", http.StatusServiceUnavailable))
		return
	}
	if !found || !cfg.HasChannel(channelID) {
		h.NotFound(w, r)
		return
	}
	if _, ok := render.Dispatch(cfg.Template); !ok {
		logger.Warn("page has unknown template", zap.String("template", string(cfg.Template)))
		h.NotFound(w, r)
		return
	}

	locale := resolveLocale(r, channelID)
	products := h.gatherer.FetchProducts(ctx, pages.CollectionSlugs(cfg), channelID, locale)
	rc := render.NewContext(cfg, channelID, locale, products,
		render.WithStorefrontURL(h.storefrontURL),
		render.WithDirectory(h.directory),
		render.WithLabels(h.labels),
	)

	page, _ := render.Page(cfg, rc, seo.ForPage(cfg, locale, h.siteURL))
	w.Header().Set("Content-Language", locale)
	w.Header().Add("Vary", "Accept-Language")
	templ.Handler(page).ServeHTTP(w, r)
}

// Home lists every configured page with its channel links.
func (h *LandingHandlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	configs, err := pages.All(ctx, h.store)
	if err != nil {
		requestctx.Logger(ctx).Error("list page configs", zap.Error(err))
		configs = nil
	}
	locale := resolveLocale(r, channel.DefaultID)
	w.Header().Set("Content-Language", locale)
	w.Header().Add("Vary", "Accept-Language")
	templ.Handler(render.Home(locale, h.labels, render.HomeEntries(configs))).ServeHTTP(w, r)
}

// NotFound renders the localized not-found page with status 404.
func (h *LandingHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	locale := resolveLocale(r, chi.URLParam(r, "channel"))
	templ.Handler(render.NotFound(locale, h.labels), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}

// resolveLocale prefers a supported ?locale= value, then the Accept-Language preferences,
// then the channel default.
func resolveLocale(r *http.Request, channelID string) string {
	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("locale"))); q != "" {
		if channel.ValidLocale(q) && channel.IsLocaleSupported(channelID, q) {
			return q
		}
	}
	return channel.BestLocale(channelID, channel.ParsePreferenceHeader(r.Header.Get("Accept-Language")))
}
