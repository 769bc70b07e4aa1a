// Package channel holds the sales-channel table and the locale rules tied to it.
package channel

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultID is the channel used for unknown or empty channel identifiers.
const DefaultID = "default-channel"

// Config describes one sales channel.
type Config struct {
	ID                 string
	GraphQLChannelName string
	SupportedLocales   []string
	DefaultLocale      string
	Currency           string
	Region             string
}

var channels = map[string]Config{
	"default-channel": {
		ID:                 "default-channel",
		GraphQLChannelName: "default-channel",
		SupportedLocales:   []string{"nl", "en", "fr"},
		DefaultLocale:      "nl",
		Currency:           "USD",
		Region:             "US",
	},
	"netherlands-channel": {
		ID:                 "netherlands-channel",
		GraphQLChannelName: "netherlands-channel",
		SupportedLocales:   []string{"nl", "en", "fr"},
		DefaultLocale:      "nl",
		Currency:           "EUR",
		Region:             "NL",
	},
	"belgium-channel": {
		ID:                 "belgium-channel",
		GraphQLChannelName: "belgium-channel",
		SupportedLocales:   []string{"nl", "fr", "en"},
		DefaultLocale:      "nl",
		Currency:           "EUR",
		Region:             "BE",
	},
}

type legacyTarget struct {
	channel string
	locale  string
}

// Path prefixes from the previous locale-first URL scheme.
var legacyPaths = map[string]legacyTarget{
	"nl":    {channel: "netherlands-channel", locale: "nl"},
	"fr":    {channel: "belgium-channel", locale: "fr"},
	"en":    {channel: "default-channel", locale: "en"},
	"nl-be": {channel: "belgium-channel", locale: "nl"},
	"fr-be": {channel: "belgium-channel", locale: "fr"},
}

// Resolve returns the configuration for id, or the default channel when id is empty or unknown.
func Resolve(id string) Config {
	if cfg, ok := channels[id]; ok {
		return cfg
	}
	return channels[DefaultID]
}

// Known reports whether id names a configured channel.
func Known(id string) bool {
	_, ok := channels[id]
	return ok
}

// IDs lists every configured channel, sorted.
func IDs() []string {
	out := make([]string, 0, len(channels))
	for id := range channels {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsLocaleSupported reports whether locale is in the resolved channel's supported set.
func IsLocaleSupported(id, locale string) bool {
	return Resolve(id).Supports(locale)
}

// Supports reports whether locale is one of the channel's supported locales.
func (c Config) Supports(locale string) bool {
	for _, l := range c.SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// BestLocale returns the first preference the channel supports, else the channel default.
func BestLocale(id string, prefs []string) string {
	cfg := Resolve(id)
	for _, p := range prefs {
		if cfg.Supports(p) {
			return p
		}
	}
	return cfg.DefaultLocale
}

// ParsePreferenceHeader turns an Accept-Language value into primary language subtags,
// keeping header order. Quality values are ignored.
func ParsePreferenceHeader(header string) []string {
	if header == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		tag, _, _ := strings.Cut(part, ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		primary, _, _ := strings.Cut(tag, "-")
		if primary == "" {
			continue
		}
		out = append(out, primary)
	}
	return out
}

// LanguageCode converts a locale to the catalogue backend's language code.
func LanguageCode(locale string) string {
	return strings.ToUpper(locale)
}

// ValidLocale reports whether code is a well-formed ISO 639 language code.
func ValidLocale(code string) bool {
	if code == "" || strings.ContainsAny(code, "-_") {
		return false
	}
	_, err := language.ParseBase(code)
	return err == nil
}

// Legacy maps a path segment from the old URL scheme to its channel and locale.
func Legacy(segment string) (channelID, locale string, ok bool) {
	target, ok := legacyPaths[strings.ToLower(segment)]
	if !ok {
		return "", "", false
	}
	return target.channel, target.locale, true
}

// Validate checks the channel table invariants.
func Validate() error {
	for _, id := range IDs() {
		cfg := channels[id]
		if !cfg.Supports(cfg.DefaultLocale) {
			return fmt.Errorf("channel %s: default locale %q is not supported", id, cfg.DefaultLocale)
		}
	}
	if !Known(DefaultID) {
		return fmt.Errorf("channel: default channel %s missing", DefaultID)
	}
	return nil
}
