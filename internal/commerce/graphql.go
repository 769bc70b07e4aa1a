package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 8 * time.Second

const collectionProductsQuery = `query ProductListByCollectionPaginated($slug: String!, $channel: String!, $languageCode: LanguageCodeEnum!, $first: Int!) {
  collection(slug: $slug, channel: $channel) {
    products(first: $first) {
      edges {
        node {
          id
          slug
          name
          translation(languageCode: $languageCode) { name }
          thumbnail { url alt }
          pricing { priceRange { start { gross { amount currency } } } }
        }
      }
    }
  }
}`

// GraphQLClient queries the storefront GraphQL API.
type GraphQLClient struct {
	endpoint string
	token    string
	http     *http.Client
}

// GraphQLOption customises a GraphQLClient.
type GraphQLOption func(*GraphQLClient)

// WithToken sends a bearer token with every request.
func WithToken(token string) GraphQLOption {
	return func(c *GraphQLClient) { c.token = strings.TrimSpace(token) }
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) GraphQLOption {
	return func(c *GraphQLClient) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) GraphQLOption {
	return func(c *GraphQLClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewGraphQLClient returns a client for endpoint.
func NewGraphQLClient(endpoint string, opts ...GraphQLOption) *GraphQLClient {
	c := &GraphQLClient{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type collectionResponse struct {
	Data struct {
		Collection *struct {
			Products *struct {
				Edges []struct {
					Node productNode `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		} `json:"collection"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type productNode struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Translation *struct {
		Name string `json:"name"`
	} `json:"translation"`
	Thumbnail *struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	} `json:"thumbnail"`
	Pricing *struct {
		PriceRange *struct {
			Start *struct {
				Gross *struct {
					Amount   float64 `json:"amount"`
					Currency string  `json:"currency"`
				} `json:"gross"`
			} `json:"start"`
		} `json:"priceRange"`
	} `json:"pricing"`
}

func (n productNode) toProduct() Product {
	p := Product{ID: n.ID, Slug: n.Slug, Name: n.Name}
	if n.Translation != nil {
		p.TranslatedName = n.Translation.Name
	}
	if n.Thumbnail != nil && n.Thumbnail.URL != "" {
		p.Thumbnail = &Image{URL: n.Thumbnail.URL, Alt: n.Thumbnail.Alt}
	}
	if n.Pricing != nil && n.Pricing.PriceRange != nil && n.Pricing.PriceRange.Start != nil && n.Pricing.PriceRange.Start.Gross != nil {
		g := n.Pricing.PriceRange.Start.Gross
		p.Price = &Money{Amount: g.Amount, Currency: g.Currency}
	}
	return p
}

// ProductsByCollection runs the collection query.
func (c *GraphQLClient) ProductsByCollection(ctx context.Context, q CollectionQuery) ([]Product, error) {
	if c.endpoint == "" {
		return nil, errors.New("commerce: graphql endpoint not configured")
	}
	first := q.First
	if first <= 0 {
		first = PageSize
	}

	payload, err := json.Marshal(graphQLRequest{
		Query: collectionProductsQuery,
		Variables: map[string]any{
			"slug":         q.Slug,
			"channel":      q.Channel,
			"languageCode": q.LanguageCode,
			"first":        first,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("commerce: collection %s: %w", q.Slug, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("commerce: collection %s: status %d: %s", q.Slug, resp.StatusCode, drainError(resp.Body))
	}

	var body collectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("commerce: decode collection %s: %w", q.Slug, err)
	}
	if len(body.Errors) > 0 {
		msgs := make([]string, 0, len(body.Errors))
		for _, e := range body.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("commerce: collection %s: %s", q.Slug, strings.Join(msgs, "; "))
	}

	col := body.Data.Collection
	if col == nil || col.Products == nil {
		return []Product{}, nil
	}
	out := make([]Product, 0, len(col.Products.Edges))
	for _, edge := range col.Products.Edges {
		out = append(out, edge.Node.toProduct())
	}
	return out, nil
}

func drainError(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(data))
}
