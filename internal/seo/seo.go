// Package seo derives document metadata for landing pages.
package seo

import (
	"github.com/pomandi/pomandi-landing-pages/internal/channel"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

// OpenGraph holds the og: properties of a page.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	Locale      string
}

// Meta is everything the document head needs for one rendered page.
type Meta struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	OG          OpenGraph
	Alternates  []channel.Alternate
	JSONLD      string
}

// OGLocale maps a page locale to its Open Graph locale.
func OGLocale(locale string) string {
	switch locale {
	case "nl":
		return "nl_BE"
	case "fr":
		return "fr_BE"
	default:
		return "en"
	}
}

// ForPage builds the metadata of cfg rendered in locale. Alternates cover every channel
// the page is published in.
func ForPage(cfg pages.PageConfig, locale, siteURL string) Meta {
	title := cfg.SEO.Title.Resolve(locale)
	desc := cfg.SEO.Description.Resolve(locale)
	path := "/" + cfg.Slug

	m := Meta{
		Title:       title,
		Description: desc,
		Keywords:    cfg.SEO.Keywords,
		Canonical:   cfg.SEO.Canonical,
		OG: OpenGraph{
			Title:       title,
			Description: desc,
			Image:       cfg.SEO.OGImage,
			Type:        "website",
			Locale:      OGLocale(locale),
		},
	}
	if siteURL != "" {
		m.Alternates = channel.HreflangAlternates(siteURL, path, cfg.Channels)
	}
	url := m.Canonical
	if url == "" && siteURL != "" && len(cfg.Channels) > 0 {
		url = channel.PageURL(siteURL, cfg.Channels[0], path, locale)
	}
	m.JSONLD = JSON(WebPage(title, desc, url, locale))
	return m
}

// NotFound is the metadata of the not-found page.
func NotFound(title string) Meta {
	return Meta{Title: title, OG: OpenGraph{Title: title, Type: "website"}}
}
