package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	pfirestore "github.com/pomandi/pomandi-landing-pages/internal/platform/firestore"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
)

const (
	firestoreConfigField  = "config"
	firestoreUpdatedField = "updatedAt"
)

// ClientProvider hands out a Firestore client; *pfirestore.Provider satisfies it.
type ClientProvider interface {
	Client(ctx context.Context) (*firestore.Client, error)
}

// FirestoreStore keeps one document per page, keyed by slug. The document either holds the
// JSON text in a "config" field or the configuration fields themselves.
type FirestoreStore struct {
	provider   ClientProvider
	collection string
}

// NewFirestoreStore returns a store over the named collection.
func NewFirestoreStore(provider ClientProvider, collection string) *FirestoreStore {
	return &FirestoreStore{provider: provider, collection: collection}
}

func (s *FirestoreStore) Get(ctx context.Context, slug string) (PageConfig, bool, error) {
	key, ok := NormalizeSlug(slug)
	if !ok {
		return PageConfig{}, false, nil
	}
	client, err := s.provider.Client(ctx)
	if err != nil {
		return PageConfig{}, false, err
	}

	snap, err := client.Collection(s.collection).Doc(docID(key)).Get(ctx)
	if err != nil {
		if pfirestore.IsNotFound(err) {
			return PageConfig{}, false, nil
		}
		return PageConfig{}, false, pfirestore.WrapError("pages.firestore.get", err)
	}

	cfg, err := decodeSnapshot(snap)
	if err != nil {
		requestctx.Logger(ctx).Warn("page config is malformed", zap.String("slug", key), zap.Error(err))
		return PageConfig{}, false, nil
	}
	logSectionErrors(requestctx.Logger(ctx), key, cfg)
	return cfg, true, nil
}

func (s *FirestoreStore) Scan(ctx context.Context) ([]Entry, error) {
	client, err := s.provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	iter := client.Collection(s.collection).Documents(ctx)
	defer iter.Stop()

	var entries []Entry
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("pages.firestore.scan", err)
		}
		cfg, decodeErr := decodeSnapshot(snap)
		entries = append(entries, Entry{Key: keyFromDocID(snap.Ref.ID), Config: cfg, Err: decodeErr})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Put stores cfg under its slug as JSON text.
func (s *FirestoreStore) Put(ctx context.Context, cfg PageConfig) error {
	key, ok := NormalizeSlug(cfg.Slug)
	if !ok {
		return fmt.Errorf("pages: invalid slug %q", cfg.Slug)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("pages: encode %s: %w", key, err)
	}
	client, err := s.provider.Client(ctx)
	if err != nil {
		return err
	}
	_, err = client.Collection(s.collection).Doc(docID(key)).Set(ctx, map[string]any{
		firestoreConfigField:  string(data),
		firestoreUpdatedField: firestore.ServerTimestamp,
	})
	return pfirestore.WrapError("pages.firestore.put", err)
}

func decodeSnapshot(snap *firestore.DocumentSnapshot) (PageConfig, error) {
	data := snap.Data()
	if raw, ok := data[firestoreConfigField].(string); ok {
		return Decode([]byte(raw), FormatJSON)
	}
	delete(data, firestoreUpdatedField)
	encoded, err := json.Marshal(data)
	if err != nil {
		return PageConfig{}, fmt.Errorf("pages: encode document %s: %w", snap.Ref.ID, err)
	}
	return Decode(encoded, FormatJSON)
}

// Firestore document ids cannot contain "/", so nested slugs are stored with "__".
// NormalizeSlug keeps "__" out of segments, which makes the mapping reversible.
func docID(key string) string {
	return strings.ReplaceAll(key, "/", "__")
}

func keyFromDocID(id string) string {
	return strings.ReplaceAll(id, "__", "/")
}
