// Package commerce fetches catalogue data for landing pages.
package commerce

import "context"

// PageSize is the number of products requested per collection.
const PageSize = 12

// Product is the subset of catalogue data a landing page shows.
type Product struct {
	ID             string
	Slug           string
	Name           string
	TranslatedName string
	Thumbnail      *Image
	Price          *Money
}

// Image is a product thumbnail.
type Image struct {
	URL string
	Alt string
}

// Money is a gross price.
type Money struct {
	Amount   float64
	Currency string
}

// DisplayName prefers the translated name.
func (p Product) DisplayName() string {
	if p.TranslatedName != "" {
		return p.TranslatedName
	}
	return p.Name
}

// CollectionQuery selects one page of a collection in a channel and language.
type CollectionQuery struct {
	Slug         string
	Channel      string
	LanguageCode string
	First        int
}

// Client fetches products by collection. A missing collection yields an empty list.
type Client interface {
	ProductsByCollection(ctx context.Context, q CollectionQuery) ([]Product, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, q CollectionQuery) ([]Product, error)

func (f ClientFunc) ProductsByCollection(ctx context.Context, q CollectionQuery) ([]Product, error) {
	return f(ctx, q)
}
