package commerce

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pomandi/pomandi-landing-pages/internal/channel"
	"github.com/pomandi/pomandi-landing-pages/internal/platform/requestctx"
)

var tracer = otel.Tracer("github.com/pomandi/pomandi-landing-pages/internal/commerce")

// Gatherer fetches every collection a page needs in parallel.
type Gatherer struct {
	client Client
}

// NewGatherer returns a Gatherer backed by client.
func NewGatherer(client Client) *Gatherer {
	return &Gatherer{client: client}
}

// FetchProducts returns one entry per distinct slug. A collection whose fetch fails or panics
// maps to an empty list; the failure is logged and never returned. The call returns once every
// fetch has finished.
func (g *Gatherer) FetchProducts(ctx context.Context, slugs []string, channelID, locale string) map[string][]Product {
	distinct := dedupe(slugs)
	if len(distinct) == 0 {
		return map[string][]Product{}
	}

	cfg := channel.Resolve(channelID)
	languageCode := channel.LanguageCode(locale)
	results := make([][]Product, len(distinct))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, slug := range distinct {
		i, slug := i, slug
		eg.Go(func() error {
			results[i] = g.fetchOne(egCtx, CollectionQuery{
				Slug:         slug,
				Channel:      cfg.GraphQLChannelName,
				LanguageCode: languageCode,
				First:        PageSize,
			})
			return nil
		})
	}
	_ = eg.Wait()

	out := make(map[string][]Product, len(distinct))
	for i, slug := range distinct {
		out[slug] = results[i]
	}
	return out
}

func (g *Gatherer) fetchOne(ctx context.Context, q CollectionQuery) (products []Product) {
	ctx, span := tracer.Start(ctx, "commerce.FetchCollection", trace.WithAttributes(
		attribute.String("commerce.collection", q.Slug),
		attribute.String("commerce.channel", q.Channel),
		attribute.String("commerce.language_code", q.LanguageCode),
	))
	defer span.End()

	logger := requestctx.Logger(ctx).With(
		zap.String("collection", q.Slug),
		zap.String("channel", q.Channel),
	)

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("commerce: panic fetching collection: %v", rec)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			logger.Error("collection fetch panicked", zap.Any("panic", rec))
			products = []Product{}
		}
	}()

	list, err := g.client.ProductsByCollection(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("collection fetch failed", zap.Error(err))
		return []Product{}
	}
	if list == nil {
		list = []Product{}
	}
	span.SetAttributes(attribute.Int("commerce.product_count", len(list)))
	return list
}

func dedupe(slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
