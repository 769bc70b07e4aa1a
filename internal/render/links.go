package render

import (
	"net/url"
	"strings"
)

// AppointmentURL links to the booking flow. Query parameters are always locale, shop,
// campaign in that order; shop and campaign are omitted when empty.
func (c *Context) AppointmentURL(store string) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(url.PathEscape(c.Channel))
	b.WriteString("/appointment?locale=")
	b.WriteString(url.QueryEscape(c.Locale))
	if store != "" {
		b.WriteString("&shop=")
		b.WriteString(url.QueryEscape(store))
	}
	if c.Campaign != "" {
		b.WriteString("&campaign=")
		b.WriteString(url.QueryEscape(c.Campaign))
	}
	return b.String()
}

// ProductURL links to a product page on the storefront.
func (c *Context) ProductURL(slug string) string {
	return c.storefrontPath("products", slug)
}

// CollectionURL links to a collection page on the storefront.
func (c *Context) CollectionURL(collection string) string {
	return c.storefrontPath("collections", collection)
}

func (c *Context) storefrontPath(kind, slug string) string {
	base := strings.TrimRight(c.StorefrontURL, "/")
	if base == "" {
		base = DefaultStorefrontURL
	}
	return base + "/" + url.PathEscape(c.Channel) + "/" + kind + "/" + url.PathEscape(slug) + "?locale=" + url.QueryEscape(c.Locale)
}

// WhatsAppURL builds a wa.me deep link with an optional prefilled message.
func WhatsAppURL(digits, message string) string {
	if digits == "" {
		return ""
	}
	u := "https://wa.me/" + digits
	if message != "" {
		u += "?text=" + url.QueryEscape(message)
	}
	return u
}
