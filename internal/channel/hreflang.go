package channel

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Alternate is one hreflang link.
type Alternate struct {
	Hreflang string
	URL      string
}

// HreflangAlternates lists one link per (channel, supported locale) pair for the given channels,
// tagged with the channel region, followed by an x-default pointing at the first channel's
// default locale. Unknown channel ids are skipped.
func HreflangAlternates(siteURL, path string, channelIDs []string) []Alternate {
	siteURL = strings.TrimRight(siteURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var out []Alternate
	var xDefault string
	for _, id := range channelIDs {
		cfg, ok := channels[id]
		if !ok {
			continue
		}
		for _, locale := range cfg.SupportedLocales {
			href := PageURL(siteURL, id, path, locale)
			out = append(out, Alternate{Hreflang: regionTag(locale, cfg.Region), URL: href})
		}
		if xDefault == "" {
			xDefault = PageURL(siteURL, id, path, cfg.DefaultLocale)
		}
	}
	if xDefault != "" {
		out = append(out, Alternate{Hreflang: "x-default", URL: xDefault})
	}
	return out
}

// PageURL builds the absolute URL of a page in a channel and locale.
func PageURL(siteURL, channelID, path, locale string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(siteURL, "/") + "/" + channelID + path + "?locale=" + url.QueryEscape(locale)
}

func regionTag(locale, region string) string {
	base, err := language.ParseBase(locale)
	if err != nil {
		return locale
	}
	reg, err := language.ParseRegion(region)
	if err != nil {
		return base.String()
	}
	tag, err := language.Compose(base, reg)
	if err != nil {
		return base.String()
	}
	return tag.String()
}
