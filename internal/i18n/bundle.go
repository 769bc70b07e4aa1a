package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds interface labels per locale.
type Bundle struct {
	dict     map[string]map[string]string
	fallback string
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the bundle built from the embedded locale files.
func Default() *Bundle {
	defaultOnce.Do(func() {
		b, err := load(localeFS, "locales", PrimaryFallback)
		if err != nil {
			panic(err)
		}
		defaultBundle = b
	})
	return defaultBundle
}

// NewBundle builds a bundle from in-memory dictionaries.
func NewBundle(fallback string, dict map[string]map[string]string) (*Bundle, error) {
	if _, ok := dict[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %s not loaded", fallback)
	}
	return &Bundle{dict: dict, fallback: fallback}, nil
}

func load(fsys embed.FS, dir, fallback string) (*Bundle, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", dir, err)
	}
	dict := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		raw, err := fsys.ReadFile(path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", name, err)
		}
		dict[strings.TrimSuffix(name, ".json")] = m
	}
	return NewBundle(fallback, dict)
}

// Locales lists the locales with a dictionary, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.dict))
	for k := range b.dict {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// T returns the label for key in lang, falling back to the bundle fallback and finally the key.
func (b *Bundle) T(lang, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}
