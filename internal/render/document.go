package render

import (
	"html/template"
	"strings"

	"github.com/a-h/templ"

	"github.com/pomandi/pomandi-landing-pages/internal/i18n"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
	"github.com/pomandi/pomandi-landing-pages/internal/seo"
)

const siteName = "Pomandi"

type documentView struct {
	Lang      string
	Meta      seo.Meta
	Keywords  string
	JSONLD    template.JS
	CustomCSS template.CSS
	Body      template.HTML
}

// Document wraps body in the HTML shell carrying meta.
func Document(lang string, meta seo.Meta, customCSS string, body templ.Component) templ.Component {
	v := documentView{
		Lang:      lang,
		Meta:      meta,
		Keywords:  strings.Join(meta.Keywords, ", "),
		JSONLD:    template.JS(meta.JSONLD),
		CustomCSS: template.CSS(strings.ReplaceAll(customCSS, "<", "")),
	}
	if v.Meta.Title == "" {
		v.Meta.Title = siteName
	}
	return frame("document", body, func(b template.HTML) any {
		v.Body = b
		return v
	})
}

// Page renders cfg through its template layout inside the document shell. It reports false
// when the template has no layout.
func Page(cfg pages.PageConfig, c *Context, meta seo.Meta) (templ.Component, bool) {
	l, ok := Dispatch(cfg.Template)
	if !ok {
		return nil, false
	}
	return Document(c.Locale, meta, cfg.Theme.CustomCSS, l.Render(cfg, c)), true
}

// HomeEntry is one configured page on the home listing.
type HomeEntry struct {
	Slug     string
	Template string
	Channels []string
	Links    []string
}

// HomeEntries lists every page with one link per channel.
func HomeEntries(configs []pages.PageConfig) []HomeEntry {
	out := make([]HomeEntry, 0, len(configs))
	for _, cfg := range configs {
		e := HomeEntry{Slug: cfg.Slug, Template: string(cfg.Template), Channels: cfg.Channels}
		for _, ch := range cfg.Channels {
			e.Links = append(e.Links, "/"+ch+"/"+cfg.Slug)
		}
		out = append(out, e)
	}
	return out
}

type homeView struct {
	Title   string
	Empty   string
	Entries []HomeEntry
}

// Home renders the list of configured pages.
func Home(locale string, labels *i18n.Bundle, entries []HomeEntry) templ.Component {
	if labels == nil {
		labels = i18n.Default()
	}
	title := labels.T(locale, "home.title")
	meta := seo.Meta{Title: siteName + " | " + title, JSONLD: seo.JSON(seo.Organization(siteName, DefaultStorefrontURL))}
	body := view("home", homeView{Title: title, Empty: labels.T(locale, "home.empty"), Entries: entries})
	return Document(locale, meta, "", body)
}

type notFoundView struct {
	Title string
	Body  string
	Home  string
}

// NotFound renders the page shown for unknown pages.
func NotFound(locale string, labels *i18n.Bundle) templ.Component {
	if labels == nil {
		labels = i18n.Default()
	}
	title := labels.T(locale, "notfound.title")
	body := view("notfound", notFoundView{Title: title, Body: labels.T(locale, "notfound.body"), Home: "/"})
	return Document(locale, seo.NotFound(title), "", body)
}
