package i18n

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedStringFallbackOrder(t *testing.T) {
	cases := []struct {
		name   string
		text   LocalizedString
		locale string
		want   string
	}{
		{"requested locale wins", LocalizedString{"nl": "Hallo", "fr": "Bonjour"}, "fr", "Bonjour"},
		{"falls back to nl", LocalizedString{"nl": "Hallo", "en": "Hello"}, "fr", "Hallo"},
		{"falls back to en without nl", LocalizedString{"en": "Hello", "de": "Hallo"}, "fr", "Hello"},
		{"first available otherwise", LocalizedString{"es": "Hola", "de": "Guten Tag"}, "fr", "Guten Tag"},
		{"empty values are skipped", LocalizedString{"fr": "", "nl": "Hallo"}, "fr", "Hallo"},
		{"empty map", LocalizedString{}, "nl", ""},
		{"nil map", nil, "nl", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.text.Resolve(tc.locale))
		})
	}
}

func TestLocalizedStringHas(t *testing.T) {
	assert.False(t, LocalizedString(nil).Has())
	assert.False(t, LocalizedString{"nl": ""}.Has())
	assert.True(t, LocalizedString{"fr": "x"}.Has())
}

func TestDefaultBundleLabels(t *testing.T) {
	b := Default()
	assert.Equal(t, []string{"en", "fr", "nl"}, b.Locales())
	assert.Equal(t, "Bekijk alles", b.T("nl", "products.view_all"))
	assert.Equal(t, "Voir tout", b.T("fr", "products.view_all"))
	assert.Equal(t, "View all", b.T("en", "products.view_all"))
	assert.Equal(t, "Jusqu'au", b.T("fr", "promo.until"))
	assert.Equal(t, "Tot", b.T("en", "promo.until"), "en has no promo label and falls back to nl")
	assert.Equal(t, "Bezoek ons", b.T("de", "stores.visit_us"))
	assert.Equal(t, "missing.key", b.T("nl", "missing.key"))
}

func TestNewBundleRequiresFallback(t *testing.T) {
	_, err := NewBundle("nl", map[string]map[string]string{"en": {}})
	require.Error(t, err)
}

func TestLocalizedStringDecodesBareString(t *testing.T) {
	var page struct {
		Title LocalizedString `json:"title"`
		Intro LocalizedString `json:"intro"`
		Empty LocalizedString `json:"empty"`
		Unset LocalizedString `json:"unset"`
	}
	require.NoError(t, json.Unmarshal([]byte(
		`{"title":"Trouwpakken","intro":{"nl":"Hallo","fr":"Bonjour"},"empty":"","unset":null}`), &page))
	assert.Equal(t, LocalizedString{"nl": "Trouwpakken"}, page.Title)
	assert.Equal(t, "Trouwpakken", page.Title.Resolve("fr"))
	assert.Equal(t, "Bonjour", page.Intro.Resolve("fr"))
	assert.Nil(t, page.Empty)
	assert.Nil(t, page.Unset)

	var bad LocalizedString
	assert.Error(t, json.Unmarshal([]byte(`12`), &bad))
}
