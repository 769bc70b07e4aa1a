package handlers

import (
	"encoding/xml"
	"net/http"

	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/channel"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/httpx"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap lists every renderable page in each locale of each of its channels.
func (h *LandingHandlers) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	configs, err := pages.All(ctx, h.store)
	if err != nil {
		requestctx.Logger(ctx).Error("list page configs for sitemap", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("page_store_unavailable", "page configuration is unavailable", http.StatusServiceUnavailable))
		return
	}

	out, err := xml.MarshalIndent(buildSitemap(h.siteURL, configs), "", "  ")
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("sitemap_encode_failed", err.Error(), http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

func buildSitemap(siteURL string, configs []pages.PageConfig) sitemap {
	generated := make(map[string]string, len(configs))
	for _, cfg := range configs {
		generated[cfg.Slug] = lastMod(cfg.GeneratedAt)
	}

	sm := sitemap{Xmlns: sitemapNamespace}
	for _, route := range pages.StaticRoutes(configs) {
		for _, locale := range channel.Resolve(route.Channel).SupportedLocales {
			sm.URLs = append(sm.URLs, sitemapURL{
				Loc:     channel.PageURL(siteURL, route.Channel, route.Slug, locale),
				LastMod: generated[route.Slug],
			})
		}
	}
	return sm
}

// lastMod keeps the date part of an RFC 3339 timestamp.
func lastMod(ts string) string {
	if len(ts) < len("2006-01-02") {
		return ""
	}
	return ts[:len("2006-01-02")]
}
