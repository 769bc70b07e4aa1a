package render

import (
	"html/template"
	"time"

	"github.com/a-h/templ"

	"github.com/pomandi/pomandi-landing-pages/internal/format"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

// Layout is the composition rule of one page template.
type Layout struct {
	Template pages.Template

	kinds       map[pages.SectionKind]bool
	promoBanner bool
	forceDark   bool
}

var baseKinds = []pages.SectionKind{
	pages.KindStats,
	pages.KindProducts,
	pages.KindFeatures,
	pages.KindStores,
	pages.KindFAQ,
	pages.KindCTA,
	pages.KindQuote,
}

var layouts = map[pages.Template]Layout{
	pages.TemplateLocation: newLayout(pages.TemplateLocation),
	pages.TemplatePromo:    withPromoBanner(newLayout(pages.TemplatePromo, pages.KindPricing)),
	pages.TemplateStyle:    darkened(newLayout(pages.TemplateStyle, pages.KindPricing, pages.KindStyleGuide)),
}

func newLayout(t pages.Template, extra ...pages.SectionKind) Layout {
	l := Layout{Template: t, kinds: make(map[pages.SectionKind]bool, len(baseKinds)+len(extra))}
	for _, k := range baseKinds {
		l.kinds[k] = true
	}
	for _, k := range extra {
		l.kinds[k] = true
	}
	return l
}

func withPromoBanner(l Layout) Layout {
	l.promoBanner = true
	return l
}

func darkened(l Layout) Layout {
	l.forceDark = true
	return l
}

// Dispatch returns the layout of template t.
func Dispatch(t pages.Template) (Layout, bool) {
	l, ok := layouts[t]
	return l, ok
}

// Supports reports whether the layout renders sections of kind k.
func (l Layout) Supports(k pages.SectionKind) bool {
	return l.kinds[k]
}

// derive adapts the shared context to the layout.
func (l Layout) derive(c *Context) *Context {
	if !l.forceDark {
		return c
	}
	d := *c
	d.Theme.Mode = pages.ModeDark
	d.DefaultBackground = pages.BackgroundDark
	return &d
}

type rootView struct {
	Class     string
	Style     bool
	Accent    template.CSS
	AccentRGB template.CSS
	Body      template.HTML
}

// Render composes the optional promo banner, the hero and every supported section in order.
func (l Layout) Render(cfg pages.PageConfig, c *Context) templ.Component {
	rc := l.derive(c)

	parts := make([]templ.Component, 0, len(cfg.Sections)+2)
	if l.promoBanner && cfg.Promo != nil {
		parts = append(parts, promoBanner(rc, cfg.Promo))
	}
	parts = append(parts, Hero(rc, cfg.Hero))
	for _, s := range cfg.Sections {
		if !l.Supports(s.Kind) {
			continue
		}
		parts = append(parts, Section(rc, s))
	}

	root := rootView{Class: "min-h-screen bg-white"}
	switch {
	case l.Template == pages.TemplateStyle:
		root = rootView{
			Class:     "style-page min-h-screen bg-[#0a0a0a] text-white",
			Style:     true,
			Accent:    template.CSS(rc.Accent()),
			AccentRGB: template.CSS(hexToRGB(rc.Accent())),
		}
	case rc.Dark():
		root.Class = "min-h-screen bg-[#0a0a0a]"
	}
	return frame("page", join(parts...), func(body template.HTML) any {
		root.Body = body
		return root
	})
}

type promoView struct {
	Class   string
	Style   template.CSS
	Badge   string
	Message string
	Until   string
	EndDate string
}

func promoBanner(c *Context, p *pages.Promo) templ.Component {
	v := promoView{
		Badge:   c.Text(p.Badge),
		Message: c.Text(p.Message),
		EndDate: promoEndDate(p.EndDate, c.Locale),
		Until:   c.T("promo.until"),
	}
	switch {
	case isHexColor(c.Theme.Accent):
		v.Style = template.CSS("background-color: " + c.Theme.Accent)
	case isHexColor(c.Theme.Primary):
		v.Style = template.CSS("background-color: " + c.Theme.Primary)
	default:
		v.Class = "bg-stone-900"
	}
	return view("promo", v)
}

// promoEndDate localizes ISO dates and keeps any other text as written.
func promoEndDate(raw, locale string) string {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return raw
	}
	return format.Date(t, locale)
}
