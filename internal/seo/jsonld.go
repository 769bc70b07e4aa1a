package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebPage returns a minimal WebPage schema.
func WebPage(name, description, url, locale string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebPage",
		"name":     name,
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
	}
	if locale != "" {
		m["inLanguage"] = locale
	}
	return m
}

// Organization returns a minimal Organization schema.
func Organization(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}
