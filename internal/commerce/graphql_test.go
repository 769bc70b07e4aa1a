package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphQLClientDecodesProducts(t *testing.T) {
	var captured graphQLRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"collection":{"products":{"edges":[
			{"node":{"id":"UHJvZHVjdDox","slug":"navy-suit","name":"Marineblauw pak","translation":{"name":"Costume bleu marine"},
			 "thumbnail":{"url":"https://cdn.test/navy.jpg","alt":"Navy"},
			 "pricing":{"priceRange":{"start":{"gross":{"amount":499,"currency":"EUR"}}}}}},
			{"node":{"id":"UHJvZHVjdDoy","slug":"tie","name":"Das","translation":null,"thumbnail":null,"pricing":null}}
		]}}}}`))
	}))
	defer srv.Close()

	client := NewGraphQLClient(srv.URL, WithToken("secret"))
	products, err := client.ProductsByCollection(context.Background(), CollectionQuery{
		Slug: "wedding-suits", Channel: "belgium-channel", LanguageCode: "FR", First: 12,
	})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Costume bleu marine", products[0].DisplayName())
	require.NotNil(t, products[0].Price)
	assert.Equal(t, 499.0, products[0].Price.Amount)
	assert.Equal(t, "https://cdn.test/navy.jpg", products[0].Thumbnail.URL)
	assert.Nil(t, products[1].Price)
	assert.Nil(t, products[1].Thumbnail)

	assert.Equal(t, "wedding-suits", captured.Variables["slug"])
	assert.Equal(t, "belgium-channel", captured.Variables["channel"])
	assert.Equal(t, "FR", captured.Variables["languageCode"])
	assert.EqualValues(t, 12, captured.Variables["first"])
	assert.Contains(t, captured.Query, "collection(slug: $slug, channel: $channel)")
}

func TestGraphQLClientMissingCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"collection":null}}`))
	}))
	defer srv.Close()

	products, err := NewGraphQLClient(srv.URL).ProductsByCollection(context.Background(), CollectionQuery{Slug: "gone"})
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestGraphQLClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"errors":[{"message":"Channel not found"}]}`))
	}))
	defer srv.Close()

	_, err := NewGraphQLClient(srv.URL).ProductsByCollection(context.Background(), CollectionQuery{Slug: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Channel not found")

	_, err = NewGraphQLClient(srv.URL+"/down").ProductsByCollection(context.Background(), CollectionQuery{Slug: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")

	_, err = NewGraphQLClient("").ProductsByCollection(context.Background(), CollectionQuery{Slug: "x"})
	require.Error(t, err)
}
