// Package render turns page configurations into HTML components.
package render

import (
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/pomandi/pomandi-landing-pages/internal/commerce"
	"github.com/pomandi/pomandi-landing-pages/internal/i18n"
	"github.com/pomandi/pomandi-landing-pages/internal/locations"
	"github.com/pomandi/pomandi-landing-pages/internal/pages"
)

// DefaultStorefrontURL hosts product and collection pages.
const DefaultStorefrontURL = "https://www.pomandi.com"

const defaultAccent = "#c0a062"

// Context is the state shared by every renderer of one page. Renderers never modify it;
// layouts derive adjusted copies.
type Context struct {
	Theme         pages.Theme
	Locale        string
	Channel       string
	Campaign      string
	Store         string
	StorefrontURL string
	Products      map[string][]commerce.Product
	Directory     *locations.Directory
	Labels        *i18n.Bundle

	// DefaultBackground applies to sections without a background hint.
	DefaultBackground pages.Background
}

// Option customises a Context.
type Option func(*Context)

// WithStorefrontURL sets the base URL of product and collection links.
func WithStorefrontURL(u string) Option {
	return func(c *Context) {
		if strings.TrimSpace(u) != "" {
			c.StorefrontURL = strings.TrimRight(u, "/")
		}
	}
}

// WithDirectory replaces the store directory.
func WithDirectory(d *locations.Directory) Option {
	return func(c *Context) {
		if d != nil {
			c.Directory = d
		}
	}
}

// WithLabels replaces the label bundle.
func WithLabels(b *i18n.Bundle) Option {
	return func(c *Context) {
		if b != nil {
			c.Labels = b
		}
	}
}

// NewContext builds the render context of cfg shown in channelID and locale.
func NewContext(cfg pages.PageConfig, channelID, locale string, products map[string][]commerce.Product, opts ...Option) *Context {
	if products == nil {
		products = map[string][]commerce.Product{}
	}
	c := &Context{
		Theme:         cfg.Theme,
		Locale:        locale,
		Channel:       channelID,
		Campaign:      cfg.Campaign,
		Store:         cfg.PrimaryStore(),
		StorefrontURL: DefaultStorefrontURL,
		Products:      products,
		Directory:     locations.Default(),
		Labels:        i18n.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dark reports whether the ambient theme is dark.
func (c *Context) Dark() bool {
	return c.Theme.Mode == pages.ModeDark
}

// Text resolves a localized field in the page locale.
func (c *Context) Text(s i18n.LocalizedString) string {
	return s.Resolve(c.Locale)
}

// T returns an interface label.
func (c *Context) T(key string) string {
	return c.Labels.T(c.Locale, key)
}

// Accent is the theme primary colour, or the house gold.
func (c *Context) Accent() string {
	if isHexColor(c.Theme.Primary) {
		return c.Theme.Primary
	}
	return defaultAccent
}

// surface is the concrete styling chosen for a section background.
type surface struct {
	Class string
	Style template.CSS
	Dark  bool
}

func (s surface) Heading() string {
	if s.Dark {
		return "text-white"
	}
	return "text-stone-900"
}

func (s surface) Muted() string {
	if s.Dark {
		return "text-stone-400"
	}
	return "text-stone-600"
}

func (s surface) Border() string {
	if s.Dark {
		return "border-stone-700"
	}
	return "border-stone-200"
}

func (s surface) Panel() string {
	if s.Dark {
		return "bg-stone-800"
	}
	return "bg-stone-100"
}

func (s surface) Button() string {
	if s.Dark {
		return "bg-white text-black hover:bg-stone-200"
	}
	return "bg-stone-900 text-white hover:bg-stone-800"
}

// surface resolves a background hint against the theme mode. Dark, primary and gradient
// backgrounds always carry light text.
func (c *Context) surface(bg pages.Background) surface {
	if bg == "" {
		bg = c.DefaultBackground
	}
	switch bg {
	case pages.BackgroundDark:
		return surface{Class: "bg-stone-900 text-white", Dark: true}
	case pages.BackgroundPrimary:
		if isHexColor(c.Theme.Primary) {
			return surface{Class: "text-white", Style: template.CSS("background-color: " + c.Theme.Primary), Dark: true}
		}
		return surface{Class: "bg-stone-900 text-white", Dark: true}
	case pages.BackgroundGradient:
		return surface{Class: "bg-gradient-to-br from-stone-900 to-stone-800 text-white", Dark: true}
	case pages.BackgroundLight:
		return surface{Class: "bg-[#f8f7f5]"}
	case pages.BackgroundWhite:
		return surface{Class: "bg-white"}
	}
	if c.Dark() {
		return surface{Class: "bg-[#0a0a0a] text-white", Dark: true}
	}
	return surface{Class: "bg-white"}
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func isHexColor(v string) bool {
	return hexColorPattern.MatchString(v)
}

// expandHex returns the six digit form of a #rgb or #rrggbb colour.
func expandHex(v string) (string, bool) {
	switch {
	case len(v) == 4 && isHexColor(v):
		return "#" + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2) + strings.Repeat(v[3:4], 2), true
	case len(v) == 7 && isHexColor(v):
		return v, true
	}
	return "", false
}

// hexToRGB converts #rrggbb to "r, g, b" for CSS custom properties.
func hexToRGB(hex string) string {
	full, ok := expandHex(strings.TrimSpace(hex))
	if !ok {
		return "192, 160, 98"
	}
	n, err := strconv.ParseUint(full[1:], 16, 32)
	if err != nil {
		return "192, 160, 98"
	}
	return fmt.Sprintf("%d, %d, %d", n>>16&0xff, n>>8&0xff, n&0xff)
}
