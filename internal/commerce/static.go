package commerce

import (
	"context"
	"fmt"
	"strings"
)

// StaticCatalog serves deterministic demo products when no catalogue endpoint is configured.
type StaticCatalog struct {
	PerCollection int
}

// NewStaticCatalog returns a catalogue with six products per collection.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{PerCollection: 6}
}

func (c *StaticCatalog) ProductsByCollection(_ context.Context, q CollectionQuery) ([]Product, error) {
	n := c.PerCollection
	if q.First > 0 && q.First < n {
		n = q.First
	}
	currency := "EUR"
	if q.Channel == "default-channel" {
		currency = "USD"
	}
	label := strings.ReplaceAll(q.Slug, "-", " ")

	out := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		slug := fmt.Sprintf("%s-%02d", q.Slug, i)
		out = append(out, Product{
			ID:   fmt.Sprintf("demo:%s", slug),
			Slug: slug,
			Name: fmt.Sprintf("%s %d", label, i),
			Thumbnail: &Image{
				URL: fmt.Sprintf("https://placehold.co/600x800?text=%s", slug),
				Alt: fmt.Sprintf("%s %d", label, i),
			},
			Price: &Money{Amount: float64(249 + 50*(i-1)), Currency: currency},
		})
	}
	return out, nil
}
