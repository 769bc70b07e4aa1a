package i18n

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Locales consulted, in order, after the requested locale.
const (
	PrimaryFallback   = "nl"
	SecondaryFallback = "en"
)

// LocalizedString maps a locale code to text.
type LocalizedString map[string]string

// UnmarshalJSON accepts a locale map or a bare string, which is taken as the nl text.
func (s *LocalizedString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		if text == "" {
			*s = nil
			return nil
		}
		*s = LocalizedString{PrimaryFallback: text}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*s = m
	return nil
}

// Resolve returns the text for locale, falling back to nl, then en, then the first
// available value in key order, then "".
func (s LocalizedString) Resolve(locale string) string {
	if len(s) == 0 {
		return ""
	}
	for _, key := range [...]string{locale, PrimaryFallback, SecondaryFallback} {
		if v := s[key]; v != "" {
			return v
		}
	}
	keys := make([]string, 0, len(s))
	for k, v := range s {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return s[keys[0]]
}

// Has reports whether any locale carries non-empty text.
func (s LocalizedString) Has() bool {
	for _, v := range s {
		if v != "" {
			return true
		}
	}
	return false
}

// Exact returns the text stored for locale without falling back.
func (s LocalizedString) Exact(locale string) string {
	return s[locale]
}
