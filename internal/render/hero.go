package render

import (
	"html/template"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

const (
	heroVariantSplit     = "split"
	heroVariantCinematic = "cinematic"
	heroVariantGradient  = "gradient"

	maxHeroImages = 4
	allSuits      = "All-Suits"
)

type link struct {
	Href    string
	Text    string
	Outline bool
}

type heroImage struct {
	URL   string
	Alt   string
	Eager bool
}

type heroView struct {
	Variant         string
	Title           string
	Highlight       string
	Subtitle        string
	Tagline         string
	AnimationClass  string
	Primary         link
	Secondary       *link
	Images          []heroImage
	BackgroundImage string
	OverlayClass    string
	GradientClass   string
	GradientStyle   template.CSS
	Dark            bool
}

// Hero renders the page banner. Video heroes and unknown types use the gradient layout.
func Hero(c *Context, h pages.Hero) templ.Component {
	v := heroView{
		Title:          c.Text(h.Title),
		Highlight:      c.Text(h.TitleHighlight),
		Subtitle:       c.Text(h.Subtitle),
		Tagline:        c.Text(h.Tagline),
		AnimationClass: animationClass(h.Animation),
		Dark:           c.Dark(),
		Primary: link{
			Href:    firstNonEmpty(h.CTA.Primary.Href, c.AppointmentURL(c.Store)),
			Text:    c.Text(h.CTA.Primary.Text),
			Outline: h.CTA.Primary.Style == "outline",
		},
	}
	if h.CTA.Secondary != nil {
		if text := c.Text(h.CTA.Secondary.Text); text != "" {
			v.Secondary = &link{
				Href: firstNonEmpty(h.CTA.Secondary.Href, c.CollectionURL(allSuits)),
				Text: text,
			}
		}
	}

	switch h.Type {
	case pages.HeroSplit:
		v.Variant = heroVariantSplit
		images := h.Images
		if len(images) > maxHeroImages {
			images = images[:maxHeroImages]
		}
		for i, src := range images {
			v.Images = append(v.Images, heroImage{
				URL:   src,
				Alt:   v.Title + " " + strconv.Itoa(i+1),
				Eager: i < 2,
			})
		}
	case pages.HeroCinematic, pages.HeroFullscreen:
		v.Variant = heroVariantCinematic
		v.BackgroundImage = h.BackgroundImage
		v.OverlayClass = overlayClass(h.Overlay)
	default:
		v.Variant = heroVariantGradient
		v.GradientStyle, v.GradientClass = heroGradient(c)
	}
	return view("hero", v)
}

func animationClass(a pages.Animation) string {
	switch a {
	case pages.AnimationFadeInUp:
		return "animate-fade-in-up"
	case pages.AnimationParallax:
		return "parallax"
	case pages.AnimationFadeIn:
		return "animate-fade-in"
	}
	return ""
}

func overlayClass(o pages.Overlay) string {
	switch o {
	case "", pages.OverlayNone:
		return ""
	case pages.OverlayDark:
		return "bg-black/60"
	case pages.OverlayLight:
		return "bg-white/40"
	case pages.OverlayGradient:
		return "bg-gradient-to-t from-black via-black/50 to-transparent"
	}
	return "grain-overlay"
}

// heroGradient blends the theme background into a faint primary tint.
func heroGradient(c *Context) (template.CSS, string) {
	bg, okBg := expandHex(c.Theme.Background)
	primary, okPrimary := expandHex(c.Theme.Primary)
	if !okBg || !okPrimary {
		return "", "bg-gradient-to-br from-stone-900 to-stone-800"
	}
	return template.CSS("background: linear-gradient(135deg, " + bg + " 0%, " + primary + "20 100%)"), ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
