package pages

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
)

func TestSectionUnionDecoding(t *testing.T) {
	store := NewDirStore("testdata")
	cfg, ok, err := store.Get(context.Background(), "trouwpakken")
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, cfg.Sections, 5)
	products, isProducts := cfg.Sections[0].Body.(*ProductsConfig)
	require.True(t, isProducts)
	assert.Equal(t, "wedding-suits", products.Collection)
	assert.Equal(t, 8, products.Limit)
	assert.True(t, products.ShowPrice)

	_, isTestimonials := cfg.Sections[2].Body.(*TestimonialsConfig)
	assert.True(t, isTestimonials, "reserved kinds still decode their payload")

	assert.Equal(t, SectionKind("carousel-3d"), cfg.Sections[3].Kind)
	assert.Nil(t, cfg.Sections[3].Body, "unknown kinds are inert")
	assert.False(t, KnownKind(cfg.Sections[3].Kind))

	faq := cfg.Sections[4].Body.(*FAQConfig)
	assert.Equal(t, "Vier weken.", faq.Items[0].Answer.Resolve("fr"))

	assert.Equal(t, TemplatePromo, cfg.Template)
	assert.Equal(t, "Tot -20%", cfg.Promo.Message.Resolve("nl"))
	assert.Equal(t, "brasschaat", cfg.PrimaryStore())
	assert.True(t, cfg.HasChannel("belgium-channel"))
	assert.False(t, cfg.HasChannel("default-channel"))
}

func TestSectionRoundTripKeepsUnknownConfig(t *testing.T) {
	var s Section
	require.NoError(t, json.Unmarshal([]byte(`{"type":"hologram","id":"h","config":{"x":1}}`), &s))
	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"hologram","id":"h","config":{"x":1}}`, string(out))
}

func TestSectionWithBadConfigIsOmitted(t *testing.T) {
	dir := t.TempDir()
	body := `{"slug":"lente","template":"promo","channels":["belgium-channel"],"sections":[
		{"type":"quote","id":"q1","config":{"text":"first"}},
		{"type":"products","id":"grid","config":{"collection":12}},
		{"type":"faq","id":"faq","config":{"items":[{"question":{"nl":"Levertijd?"},"answer":{"nl":"Vier weken."}}]}}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lente.json"), []byte(body), 0o600))

	core, logs := observer.New(zapcore.WarnLevel)
	ctx := requestctx.WithLogger(context.Background(), zap.New(core))
	cfg, ok, err := NewDirStore(dir).Get(ctx, "lente")
	require.NoError(t, err)
	require.True(t, ok, "one bad section does not hide the page")
	require.Len(t, cfg.Sections, 3)

	quote, isQuote := cfg.Sections[0].Body.(*QuoteConfig)
	require.True(t, isQuote)
	assert.Equal(t, "first", quote.Text.Resolve("fr"), "bare strings decode as nl")

	assert.Nil(t, cfg.Sections[1].Body)
	assert.ErrorContains(t, cfg.Sections[1].DecodeErr(), `section "grid" (products)`)
	assert.Empty(t, CollectionSlugs(cfg))

	_, isFAQ := cfg.Sections[2].Body.(*FAQConfig)
	assert.True(t, isFAQ, "sections after the bad one still decode")
	assert.NoError(t, cfg.Sections[2].DecodeErr())

	entries := logs.FilterMessage("section config is malformed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "lente", fields["slug"])
	assert.Equal(t, "grid", fields["section"])
	assert.Equal(t, "products", fields["kind"])
	assert.Zero(t, logs.FilterMessage("page config is malformed").Len())
}

func TestSectionWithBadConfigRoundTrips(t *testing.T) {
	in := `{"type":"products","id":"p","config":{"collection":12}}`
	var s Section
	require.NoError(t, json.Unmarshal([]byte(in), &s))
	require.Error(t, s.DecodeErr())
	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestDirStoreYAML(t *testing.T) {
	store := NewDirStore("testdata")
	cfg, ok, err := store.Get(context.Background(), "kostuums")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TemplateLocation, cfg.Template)
	assert.Equal(t, ModeDark, cfg.Theme.Mode)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, cfg.Hero.Images)
	stores := cfg.Sections[0].Body.(*StoresConfig)
	assert.Equal(t, []string{"genk"}, stores.Locations)
	assert.True(t, stores.ShowMap)
}

func TestDirStoreAbsentAndMalformed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := requestctx.WithLogger(context.Background(), zap.New(core))
	store := NewDirStore("testdata")

	_, ok, err := store.Get(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, "../etc/passwd")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, "broken")
	require.NoError(t, err)
	assert.False(t, ok, "malformed config is reported as absent")
	assert.Equal(t, 1, logs.FilterMessage("page config is malformed").Len())
}

func TestDirStoreScanAndAll(t *testing.T) {
	store := NewDirStore("testdata")
	entries, err := store.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "broken", entries[0].Key)
	assert.Error(t, entries[0].Err)
	assert.Equal(t, "kostuums", entries[1].Key)
	assert.Equal(t, "trouwpakken", entries[2].Key)

	all, err := All(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "kostuums", all[0].Slug)
}

func TestDirStoreMissingDirectory(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "missing"))
	entries, err := store.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDirStoreWatchInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	write := func(title string) {
		body := `{"slug":"pak","template":"location","channels":["belgium-channel"],"hero":{"title":{"nl":"` + title + `"}}}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pak.json"), []byte(body), 0o600))
	}
	write("Eerste")

	store := NewDirStore(dir)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	require.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return store.watching
	}, 2*time.Second, 10*time.Millisecond)

	cfg, ok, err := store.Get(context.Background(), "pak")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Eerste", cfg.Hero.Title["nl"])

	write("Tweede")
	require.Eventually(t, func() bool {
		cfg, ok, err := store.Get(context.Background(), "pak")
		return err == nil && ok && cfg.Hero.Title["nl"] == "Tweede"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestDirStoreNestedSlugs(t *testing.T) {
	dir := t.TempDir()
	page := func(slug string) []byte {
		return []byte(`{"slug":"` + slug + `","template":"promo","channels":["belgium-channel"]}`)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "campagne", "2025"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".drafts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pak.json"), page("pak"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campagne", "lente.json"), page("campagne/lente"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campagne", "2025", "zomer.yaml"),
		[]byte("slug: campagne/2025/zomer\ntemplate: promo\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".drafts", "geheim.json"), page("geheim"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campagne", "bad__name.json"), page("x"), 0o600))

	store := NewDirStore(dir)
	entries, err := store.Scan(context.Background())
	require.NoError(t, err)
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		require.NoError(t, e.Err, e.Key)
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"campagne/2025/zomer", "campagne/lente", "pak"}, keys)

	for _, key := range keys {
		cfg, ok, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		require.True(t, ok, "every scanned key is reachable: %s", key)
		assert.Equal(t, key, cfg.Slug)
	}
}

func TestDirStoreWatchCoversSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "campagne")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	write := func(title string) {
		body := `{"slug":"campagne/lente","template":"promo","hero":{"title":{"nl":"` + title + `"}}}`
		require.NoError(t, os.WriteFile(filepath.Join(sub, "lente.json"), []byte(body), 0o600))
	}
	write("Eerste")

	store := NewDirStore(dir)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	require.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return store.watching
	}, 2*time.Second, 10*time.Millisecond)

	entries, err := store.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Eerste", entries[0].Config.Hero.Title["nl"])

	write("Tweede")
	require.Eventually(t, func() bool {
		entries, err := store.Scan(context.Background())
		return err == nil && len(entries) == 1 && entries[0].Config.Hero.Title["nl"] == "Tweede"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestNormalizeSlug(t *testing.T) {
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"trouwpakken":       {"trouwpakken", true},
		"/trouwpakken/":     {"trouwpakken", true},
		"campagne/lente-25": {"campagne/lente-25", true},
		"":                  {"", false},
		"../secret":         {"", false},
		"a//b":              {"", false},
		"a b":               {"", false},
		"lente_25":          {"lente_25", true},
		"foo__bar":          {"", false},
		"foo_/bar":          {"", false},
		"foo/_bar":          {"", false},
	}
	for in, tc := range cases {
		got, ok := NormalizeSlug(in)
		assert.Equal(t, tc.ok, ok, in)
		assert.Equal(t, tc.want, got, in)
	}
}

func TestDocIDRoundTrip(t *testing.T) {
	for _, slug := range []string{"trouwpakken", "campagne/lente_25", "a-/b-c/d_e"} {
		key, ok := NormalizeSlug(slug)
		require.True(t, ok, slug)
		assert.Equal(t, key, keyFromDocID(docID(key)), slug)
	}
	assert.Equal(t, "campagne__lente_25", docID("campagne/lente_25"))
}

func TestCollectionSlugsDeduplicates(t *testing.T) {
	cfg, ok, err := NewDirStore("testdata").Get(context.Background(), "trouwpakken")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"wedding-suits", "accessories"}, CollectionSlugs(cfg))
	assert.Empty(t, CollectionSlugs(PageConfig{}))
}

func TestBuildIndex(t *testing.T) {
	store := NewMemoryStore(
		PageConfig{Slug: "zomer", Template: TemplatePromo, Channels: []string{"belgium-channel"}, Campaign: "summer",
			SEO: SEO{Title: map[string]string{"nl": "Zomer SEO"}}},
		PageConfig{Slug: "avond", Hero: Hero{Title: map[string]string{"nl": "Avondpakken", "fr": "Soirée"}}},
	)
	store.AddBroken("kapot", errors.New("unexpected end of JSON input"))

	entries, err := store.Scan(context.Background())
	require.NoError(t, err)
	index := BuildIndex(entries)
	require.Len(t, index, 3)

	assert.Equal(t, IndexEntry{Slug: "avond", Title: "Avondpakken", Template: "unknown", Channels: []string{}}, index[0])
	assert.Equal(t, IndexEntry{Slug: "kapot", Title: "kapot", Template: TemplateError, Channels: []string{}}, index[1])
	assert.Equal(t, IndexEntry{
		Slug: "zomer", Title: "Zomer SEO", Template: "promo", Campaign: "summer",
		Channels: []string{"belgium-channel"}, SEOTitle: "Zomer SEO",
	}, index[2])

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	artifact := NewIndexArtifact(index, now)
	assert.Equal(t, 3, artifact.Total)
	assert.Equal(t, "2025-03-01T12:00:00Z", artifact.Generated)

	admin := NewAdminIndex(nil, now)
	raw, err := json.Marshal(admin)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pages":[],"total":0,"lastUpdated":"2025-03-01T12:00:00Z"}`, string(raw))
}

func TestStaticRoutes(t *testing.T) {
	routes := StaticRoutes([]PageConfig{
		{Slug: "b", Template: TemplateLocation, Channels: []string{"netherlands-channel", "belgium-channel"}},
		{Slug: "a", Template: TemplateStyle, Channels: []string{"belgium-channel"}},
		{Slug: "c", Template: "brochure", Channels: []string{"belgium-channel"}},
	})
	require.Len(t, routes, 3)
	assert.Equal(t, "/belgium-channel/a", routes[0].Path())
	assert.Equal(t, "/belgium-channel/b", routes[1].Path())
	assert.Equal(t, "/netherlands-channel/b", routes[2].Path())
}

func TestDecodeYAMLErrors(t *testing.T) {
	_, err := Decode([]byte(""), FormatYAML)
	require.Error(t, err)
	_, err = Decode([]byte("slug: [unterminated"), FormatYAML)
	require.Error(t, err)
	format, ok := FormatForFile("x.YML")
	assert.True(t, ok)
	assert.Equal(t, FormatYAML, format)
	_, ok = FormatForFile("README.md")
	assert.False(t, ok)
}
