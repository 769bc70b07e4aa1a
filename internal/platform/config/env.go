package config

import (
	"strings"
	"time"
)

// reader resolves typed values and remembers keys whose values could not be parsed.
type reader struct {
	lookup  func(string) (string, bool)
	invalid []string
}

func (r *reader) str(key, fallback string) string {
	if value, ok := r.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	value, ok := r.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		r.invalid = append(r.invalid, key)
		return fallback
	}
	return d
}

func (r *reader) boolean(key string, fallback bool) bool {
	value, ok := r.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	r.invalid = append(r.invalid, key)
	return fallback
}
