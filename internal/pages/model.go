// Package pages models landing-page configurations and the stores that hold them.
package pages

import (
	"github.com/pomandi/pomandi-landing-pages/internal/i18n"
)

// Template selects the page layout.
type Template string

const (
	TemplateLocation Template = "location"
	TemplatePromo    Template = "promo"
	TemplateStyle    Template = "style"
)

// Valid reports whether t names a layout that can be rendered.
func (t Template) Valid() bool {
	switch t {
	case TemplateLocation, TemplatePromo, TemplateStyle:
		return true
	}
	return false
}

// HeroType selects the hero variant.
type HeroType string

const (
	HeroSplit      HeroType = "split"
	HeroFullscreen HeroType = "fullscreen"
	HeroCinematic  HeroType = "cinematic"
	HeroGradient   HeroType = "gradient"
	HeroVideo      HeroType = "video"
)

// Overlay is drawn over hero background images.
type Overlay string

const (
	OverlayGradient Overlay = "gradient"
	OverlayDark     Overlay = "dark"
	OverlayLight    Overlay = "light"
	OverlayGrain    Overlay = "grain"
	OverlayNone     Overlay = "none"
)

// Animation is a presentational hint mapped to CSS classes.
type Animation string

const (
	AnimationFadeIn   Animation = "fade-in"
	AnimationFadeInUp Animation = "fade-in-up"
	AnimationSlideUp  Animation = "slide-up"
	AnimationStagger  Animation = "stagger"
	AnimationParallax Animation = "parallax"
	AnimationZoom     Animation = "zoom"
	AnimationNone     Animation = "none"
)

// Background is the section surface hint.
type Background string

const (
	BackgroundPrimary   Background = "primary"
	BackgroundSecondary Background = "secondary"
	BackgroundDark      Background = "dark"
	BackgroundLight     Background = "light"
	BackgroundGradient  Background = "gradient"
	BackgroundWhite     Background = "white"
)

// ThemeMode is the page colour scheme.
type ThemeMode string

const (
	ModeLight ThemeMode = "light"
	ModeDark  ThemeMode = "dark"
)

// PageConfig is the declarative description of one landing page.
type PageConfig struct {
	Slug        string    `json:"slug"`
	Template    Template  `json:"template"`
	Channels    []string  `json:"channels"`
	Theme       Theme     `json:"theme"`
	SEO         SEO       `json:"seo"`
	Hero        Hero      `json:"hero"`
	Sections    []Section `json:"sections"`
	Collections []string  `json:"collections,omitempty"`
	Store       *StoreRef `json:"store,omitempty"`
	Campaign    string    `json:"campaign,omitempty"`
	Promo       *Promo    `json:"promo,omitempty"`
	GeneratedAt string    `json:"generated_at,omitempty"`
}

// Theme holds the page colours.
type Theme struct {
	Mode       ThemeMode `json:"mode"`
	Primary    string    `json:"primary"`
	Secondary  string    `json:"secondary,omitempty"`
	Background string    `json:"background"`
	Accent     string    `json:"accent,omitempty"`
	CustomCSS  string    `json:"customCSS,omitempty"`
}

// SEO holds document metadata.
type SEO struct {
	Title       i18n.LocalizedString `json:"title"`
	Description i18n.LocalizedString `json:"description"`
	Keywords    []string             `json:"keywords"`
	Canonical   string               `json:"canonical"`
	OGImage     string               `json:"ogImage,omitempty"`
}

// CTAButton is a call-to-action link. An empty Href means the appointment page.
type CTAButton struct {
	Text  i18n.LocalizedString `json:"text"`
	Href  string               `json:"href,omitempty"`
	Style string               `json:"style,omitempty"`
}

// Hero configures the top banner.
type Hero struct {
	Type            HeroType             `json:"type"`
	Title           i18n.LocalizedString `json:"title"`
	TitleHighlight  i18n.LocalizedString `json:"titleHighlight,omitempty"`
	Subtitle        i18n.LocalizedString `json:"subtitle"`
	Tagline         i18n.LocalizedString `json:"tagline,omitempty"`
	Images          []string             `json:"images,omitempty"`
	BackgroundImage string               `json:"backgroundImage,omitempty"`
	VideoURL        string               `json:"videoUrl,omitempty"`
	Overlay         Overlay              `json:"overlay,omitempty"`
	Animation       Animation            `json:"animation,omitempty"`
	CTA             HeroCTA              `json:"cta"`
}

// HeroCTA holds the hero buttons.
type HeroCTA struct {
	Primary   CTAButton  `json:"primary"`
	Secondary *CTAButton `json:"secondary,omitempty"`
}

// StoreRef names the physical stores a page promotes.
type StoreRef struct {
	Locations    []string `json:"locations"`
	ShowMap      bool     `json:"showMap,omitempty"`
	ShowHours    bool     `json:"showHours,omitempty"`
	ShowWhatsApp bool     `json:"showWhatsApp,omitempty"`
}

// Promo configures the promotional banner.
type Promo struct {
	Badge    i18n.LocalizedString `json:"badge,omitempty"`
	Message  i18n.LocalizedString `json:"message,omitempty"`
	EndDate  string               `json:"endDate,omitempty"`
	Discount string               `json:"discount,omitempty"`
}

// HasChannel reports whether the page is published in the channel.
func (p PageConfig) HasChannel(id string) bool {
	for _, c := range p.Channels {
		if c == id {
			return true
		}
	}
	return false
}

// PrimaryStore returns the first configured store location id, or "".
func (p PageConfig) PrimaryStore() string {
	if p.Store == nil || len(p.Store.Locations) == 0 {
		return ""
	}
	return p.Store.Locations[0]
}

// CollectionSlugs returns the distinct collections the page needs, in first-seen order:
// the page-level list followed by every products section's collection.
func CollectionSlugs(p PageConfig) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(slug string) {
		if slug == "" {
			return
		}
		if _, ok := seen[slug]; ok {
			return
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	for _, c := range p.Collections {
		add(c)
	}
	for _, s := range p.Sections {
		if body, ok := s.Body.(*ProductsConfig); ok {
			add(body.Collection)
		}
	}
	return out
}
