package pages

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
)

// DirStore reads one configuration file per page from a directory tree. Files are named
// <slug>.json, <slug>.yaml or <slug>.yml, where nested slugs map to subdirectories; JSON
// wins when several exist for one slug.
//
// Reads go to disk unless Watch is running, in which case parsed results are cached until
// the next change event.
type DirStore struct {
	dir    string
	logger *zap.Logger

	mu       sync.RWMutex
	watching bool
	gen      uint64
	byKey    map[string]Entry
	scanned  []Entry
}

// DirStoreOption customises a DirStore.
type DirStoreOption func(*DirStore)

// WithLogger sets the logger used outside request contexts (for example by Watch).
func WithLogger(logger *zap.Logger) DirStoreOption {
	return func(s *DirStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewDirStore returns a store rooted at dir.
func NewDirStore(dir string, opts ...DirStoreOption) *DirStore {
	s := &DirStore{dir: dir, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the root directory.
func (s *DirStore) Dir() string { return s.dir }

func (s *DirStore) Get(ctx context.Context, slug string) (PageConfig, bool, error) {
	key, ok := NormalizeSlug(slug)
	if !ok {
		return PageConfig{}, false, nil
	}

	entry, found, err := s.cachedOrLoad(key)
	if err != nil {
		return PageConfig{}, false, err
	}
	if !found {
		return PageConfig{}, false, nil
	}
	if entry.Err != nil {
		s.loggerFor(ctx).Warn("page config is malformed", zap.String("slug", key), zap.Error(entry.Err))
		return PageConfig{}, false, nil
	}
	logSectionErrors(s.loggerFor(ctx), key, entry.Config)
	return entry.Config, true, nil
}

func (s *DirStore) cachedOrLoad(key string) (Entry, bool, error) {
	s.mu.RLock()
	gen := s.gen
	if s.watching {
		if e, ok := s.byKey[key]; ok {
			s.mu.RUnlock()
			return e, true, nil
		}
	}
	s.mu.RUnlock()

	entry, found, err := s.load(key)
	if err != nil || !found {
		return entry, found, err
	}

	s.mu.Lock()
	if s.watching && s.gen == gen {
		s.byKey[key] = entry
	}
	s.mu.Unlock()
	return entry, true, nil
}

func (s *DirStore) load(key string) (Entry, bool, error) {
	base := filepath.Join(s.dir, filepath.FromSlash(key))
	for _, e := range extensions {
		data, err := os.ReadFile(base + e.ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Entry{}, false, fmt.Errorf("pages: read %s%s: %w", key, e.ext, err)
		}
		cfg, err := Decode(data, e.format)
		return Entry{Key: key, Config: cfg, Err: err}, true, nil
	}
	return Entry{}, false, nil
}

func (s *DirStore) Scan(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	gen := s.gen
	if s.watching && s.scanned != nil {
		out := append([]Entry(nil), s.scanned...)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		s.loggerFor(ctx).Info("page config directory not found", zap.String("dir", s.dir))
		return []Entry{}, nil
	}
	sorted, err := s.keys()
	if err != nil {
		return nil, fmt.Errorf("pages: list %s: %w", s.dir, err)
	}

	entries := make([]Entry, 0, len(sorted))
	for _, key := range sorted {
		entry, found, err := s.load(key)
		if err != nil {
			return nil, err
		}
		if found {
			entries = append(entries, entry)
		}
	}

	s.mu.Lock()
	if s.watching && s.gen == gen {
		s.scanned = entries
	}
	s.mu.Unlock()
	return append([]Entry(nil), entries...), nil
}

// Watch enables caching and drops cached results whenever a file in the directory changes.
// It blocks until ctx is cancelled or the watcher fails.
func (s *DirStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("pages: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, s.dir); err != nil {
		return fmt.Errorf("pages: watch %s: %w", s.dir, err)
	}

	s.mu.Lock()
	s.gen++
	s.watching = true
	s.byKey = make(map[string]Entry)
	s.scanned = nil
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.gen++
		s.watching = false
		s.byKey = nil
		s.scanned = nil
		s.mu.Unlock()
	}()

	s.logger.Info("watching page configs", zap.String("dir", s.dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						s.logger.Warn("page config watcher error", zap.Error(err))
					}
					s.invalidate()
					s.logger.Info("page config directory added", zap.String("dir", s.rel(event.Name)))
					continue
				}
			}
			if !relevantEvent(event) {
				continue
			}
			s.invalidate()
			s.logger.Info("page config changed", zap.String("file", s.rel(event.Name)), zap.String("op", event.Op.String()))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("page config watcher error", zap.Error(err))
		}
	}
}

// keys walks the tree and returns the sorted slug of every config file. Files whose path
// is not a valid slug could never be served and are skipped.
func (s *DirStore) keys() ([]string, error) {
	set := make(map[string]struct{})
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := FormatForFile(d.Name()); !ok {
			return nil
		}
		rel := s.rel(path)
		if key, ok := NormalizeSlug(strings.TrimSuffix(rel, filepath.Ext(rel))); ok {
			set[key] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// rel returns path relative to the store root with forward slashes.
func (s *DirStore) rel(path string) string {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// watchTree adds root and every directory below it. fsnotify watches are not recursive.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevantEvent reports whether event can change what the store serves. Removals and
// renames always count because the path may have been a directory.
func relevantEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	_, ok := FormatForFile(event.Name)
	return ok
}

func (s *DirStore) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.watching {
		s.byKey = make(map[string]Entry)
		s.scanned = nil
	}
}

func (s *DirStore) loggerFor(ctx context.Context) *zap.Logger {
	if logger := requestctx.Logger(ctx); logger != requestctx.NoopLogger() {
		return logger
	}
	return s.logger
}
