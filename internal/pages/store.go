package pages

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
)

// Entry is one stored configuration. Err is set when the stored document could not be parsed.
type Entry struct {
	Key    string
	Config PageConfig
	Err    error
}

// Store provides read access to page configurations.
type Store interface {
	// Get returns the configuration stored under slug. ok is false when none exists or the
	// stored document is malformed; err reports backend failures only.
	Get(ctx context.Context, slug string) (cfg PageConfig, ok bool, err error)
	// Scan lists every stored entry, including ones that failed to parse.
	Scan(ctx context.Context) ([]Entry, error)
}

// All returns every well-formed configuration. Malformed entries are logged and skipped.
func All(ctx context.Context, store Store) ([]PageConfig, error) {
	entries, err := store.Scan(ctx)
	if err != nil {
		return nil, err
	}
	logger := requestctx.Logger(ctx)
	out := make([]PageConfig, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			logger.Warn("skipping malformed page config", zap.String("key", e.Key), zap.Error(e.Err))
			continue
		}
		out = append(out, e.Config)
	}
	return out, nil
}

// logSectionErrors reports sections whose config did not decode. They stay in the page
// with a nil Body and render nothing.
func logSectionErrors(logger *zap.Logger, slug string, cfg PageConfig) {
	for _, sec := range cfg.Sections {
		if err := sec.DecodeErr(); err != nil {
			logger.Warn("section config is malformed",
				zap.String("slug", slug),
				zap.String("section", sec.ID),
				zap.String("kind", string(sec.Kind)),
				zap.Error(err),
			)
		}
	}
}

// Segments start with a letter or digit and never end with "_" or contain "__", so the
// "__" separator of Firestore document ids stays unambiguous.
var slugSegment = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9_-]*[A-Za-z0-9-])?$`)

// NormalizeSlug trims surrounding slashes and validates each path segment. It returns false
// for empty slugs or segments that could escape the store root.
func NormalizeSlug(slug string) (string, bool) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return "", false
	}
	for _, seg := range strings.Split(slug, "/") {
		if !slugSegment.MatchString(seg) || strings.Contains(seg, "__") {
			return "", false
		}
	}
	return slug, true
}

// MemoryStore keeps configurations in memory.
type MemoryStore struct {
	entries []Entry
}

// NewMemoryStore builds a store keyed by each config's slug.
func NewMemoryStore(configs ...PageConfig) *MemoryStore {
	s := &MemoryStore{}
	for _, cfg := range configs {
		s.entries = append(s.entries, Entry{Key: cfg.Slug, Config: cfg})
	}
	return s
}

// AddBroken records an entry that failed to parse.
func (s *MemoryStore) AddBroken(key string, err error) {
	s.entries = append(s.entries, Entry{Key: key, Err: err})
}

func (s *MemoryStore) Get(ctx context.Context, slug string) (PageConfig, bool, error) {
	for _, e := range s.entries {
		if e.Key == slug && e.Err == nil {
			logSectionErrors(requestctx.Logger(ctx), slug, e.Config)
			return e.Config, true, nil
		}
	}
	return PageConfig{}, false, nil
}

func (s *MemoryStore) Scan(context.Context) ([]Entry, error) {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
