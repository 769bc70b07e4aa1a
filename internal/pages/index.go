package pages

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// IndexEntry summarises one stored page for inventory listings.
type IndexEntry struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Template    string   `json:"template"`
	Campaign    string   `json:"campaign"`
	Channels    []string `json:"channels"`
	GeneratedAt string   `json:"generatedAt"`
	SEOTitle    string   `json:"seoTitle"`
}

// TemplateError marks index entries whose configuration could not be parsed.
const TemplateError = "error"

// BuildIndex summarises entries sorted by slug. Entries that failed to parse become
// placeholders with template "error".
func BuildIndex(entries []Entry) []IndexEntry {
	out := make([]IndexEntry, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			out = append(out, IndexEntry{
				Slug:     e.Key,
				Title:    e.Key,
				Template: TemplateError,
				Channels: []string{},
			})
			continue
		}
		out = append(out, summarize(e.Key, e.Config))
	}

	col := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Slug, out[j].Slug) < 0
	})
	return out
}

func summarize(key string, cfg PageConfig) IndexEntry {
	slug := firstNonEmpty(cfg.Slug, key)
	channels := cfg.Channels
	if channels == nil {
		channels = []string{}
	}
	return IndexEntry{
		Slug:        slug,
		Title:       firstNonEmpty(cfg.Hero.Title["nl"], cfg.SEO.Title["nl"], slug),
		Template:    firstNonEmpty(string(cfg.Template), "unknown"),
		Campaign:    cfg.Campaign,
		Channels:    channels,
		GeneratedAt: cfg.GeneratedAt,
		SEOTitle:    cfg.SEO.Title["nl"],
	}
}

// AdminIndex is served by the inventory endpoint.
type AdminIndex struct {
	Pages       []IndexEntry `json:"pages"`
	Total       int          `json:"total"`
	LastUpdated string       `json:"lastUpdated"`
}

// IndexArtifact is the build-time index file.
type IndexArtifact struct {
	Pages     []IndexEntry `json:"pages"`
	Total     int          `json:"total"`
	Generated string       `json:"generated"`
}

// NewAdminIndex wraps pages with the request timestamp.
func NewAdminIndex(pages []IndexEntry, now time.Time) AdminIndex {
	return AdminIndex{Pages: nonNil(pages), Total: len(pages), LastUpdated: now.UTC().Format(time.RFC3339)}
}

// NewIndexArtifact wraps pages with the generation timestamp.
func NewIndexArtifact(pages []IndexEntry, now time.Time) IndexArtifact {
	return IndexArtifact{Pages: nonNil(pages), Total: len(pages), Generated: now.UTC().Format(time.RFC3339)}
}

func nonNil(pages []IndexEntry) []IndexEntry {
	if pages == nil {
		return []IndexEntry{}
	}
	return pages
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
