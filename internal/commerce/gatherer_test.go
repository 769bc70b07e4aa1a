package commerce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
)

// The GraphQL tests in this package leave idle keep-alive connections behind.
func verifyNoLeaks(t *testing.T) {
	goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type recordingClient struct {
	mu      sync.Mutex
	queries []CollectionQuery
	fn      func(CollectionQuery) ([]Product, error)
}

func (c *recordingClient) ProductsByCollection(_ context.Context, q CollectionQuery) ([]Product, error) {
	c.mu.Lock()
	c.queries = append(c.queries, q)
	c.mu.Unlock()
	return c.fn(q)
}

func (c *recordingClient) count(slug string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, q := range c.queries {
		if q.Slug == slug {
			n++
		}
	}
	return n
}

func TestFetchProductsOnePerDistinctCollection(t *testing.T) {
	defer verifyNoLeaks(t)

	client := &recordingClient{fn: func(q CollectionQuery) ([]Product, error) {
		return []Product{{ID: q.Slug + "-1", Slug: q.Slug + "-1"}}, nil
	}}
	g := NewGatherer(client)

	got := g.FetchProducts(context.Background(), []string{"suits", "shoes", "suits", "", "suits"}, "belgium-channel", "fr")

	require.Len(t, got, 2)
	assert.Equal(t, 1, client.count("suits"))
	assert.Equal(t, 1, client.count("shoes"))
	assert.Equal(t, "suits-1", got["suits"][0].ID)

	for _, q := range client.queries {
		assert.Equal(t, "belgium-channel", q.Channel)
		assert.Equal(t, "FR", q.LanguageCode)
		assert.Equal(t, 12, q.First)
	}
}

func TestFetchProductsUnknownChannelUsesDefault(t *testing.T) {
	client := &recordingClient{fn: func(CollectionQuery) ([]Product, error) { return nil, nil }}
	got := NewGatherer(client).FetchProducts(context.Background(), []string{"suits"}, "atlantis", "nl")
	require.Len(t, client.queries, 1)
	assert.Equal(t, "default-channel", client.queries[0].Channel)
	assert.NotNil(t, got["suits"])
	assert.Empty(t, got["suits"])
}

func TestFetchProductsFailureIsIsolated(t *testing.T) {
	defer verifyNoLeaks(t)

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := requestctx.WithLogger(context.Background(), zap.New(core))

	client := &recordingClient{fn: func(q CollectionQuery) ([]Product, error) {
		switch q.Slug {
		case "broken":
			return nil, errors.New("backend unavailable")
		case "explodes":
			panic("nil pointer in decoder")
		}
		return []Product{{ID: "p1"}, {ID: "p2"}}, nil
	}}

	got := NewGatherer(client).FetchProducts(ctx, []string{"broken", "explodes", "healthy"}, "netherlands-channel", "nl")

	require.Len(t, got, 3)
	assert.Empty(t, got["broken"])
	assert.NotNil(t, got["broken"])
	assert.Empty(t, got["explodes"])
	assert.Len(t, got["healthy"], 2)

	failed := logs.FilterMessage("collection fetch failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "broken", failed[0].ContextMap()["collection"])
	assert.Equal(t, 1, logs.FilterMessage("collection fetch panicked").Len())
}

func TestFetchProductsRunsConcurrently(t *testing.T) {
	defer verifyNoLeaks(t)

	var inFlight, peak int32
	release := make(chan struct{})
	client := &recordingClient{fn: func(CollectionQuery) ([]Product, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		<-release
		atomic.AddInt32(&inFlight, -1)
		return nil, nil
	}}

	done := make(chan map[string][]Product)
	go func() {
		done <- NewGatherer(client).FetchProducts(context.Background(), []string{"a", "b", "c"}, "belgium-channel", "nl")
	}()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&peak) == 3 }, time.Second, 5*time.Millisecond)
	close(release)
	got := <-done
	assert.Len(t, got, 3)
}

func TestFetchProductsEmptyInput(t *testing.T) {
	client := &recordingClient{fn: func(CollectionQuery) ([]Product, error) { return nil, nil }}
	got := NewGatherer(client).FetchProducts(context.Background(), nil, "belgium-channel", "nl")
	assert.Empty(t, got)
	assert.Empty(t, client.queries)
}

func TestStaticCatalog(t *testing.T) {
	products, err := NewStaticCatalog().ProductsByCollection(context.Background(), CollectionQuery{
		Slug: "wedding-suits", Channel: "belgium-channel", First: 12,
	})
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, "wedding-suits-01", products[0].Slug)
	assert.Equal(t, "wedding suits 1", products[0].DisplayName())
	assert.Equal(t, "EUR", products[0].Price.Currency)

	few, err := NewStaticCatalog().ProductsByCollection(context.Background(), CollectionQuery{Slug: "x", Channel: "default-channel", First: 2})
	require.NoError(t, err)
	require.Len(t, few, 2)
	assert.Equal(t, "USD", few[1].Price.Currency)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Costume", Product{Name: "Kostuum", TranslatedName: "Costume"}.DisplayName())
	assert.Equal(t, "Kostuum", Product{Name: "Kostuum"}.DisplayName())
}
