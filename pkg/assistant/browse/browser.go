package browse

import (
	"context"
	"fmt"

	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/pkg/assistant/contract"
	"ai-storefront-be/pkg/assistant/state"

	"golang.org/x/sync/errgroup"
)

const (
	module = "BROWSE"

	DefaultSampleSize = 3
	DefaultFanout     = 4
)

type Browser struct {
	catalog    contract.Catalog
	logger     logger.ILogger
	sampleSize int
	fanout     int
}

func NewBrowser(catalog contract.Catalog, log logger.ILogger, sampleSize, fanout int) *Browser {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if fanout <= 0 {
		fanout = DefaultFanout
	}
	return &Browser{catalog: catalog, logger: log, sampleSize: sampleSize, fanout: fanout}
}

// Browse loads every category with a few sample products. It is all or nothing:
// one failed lookup empties the result and records the error.
func (b *Browser) Browse(ctx context.Context, s state.ConversationState) (state.ConversationState, error) {
	groups, err := b.load(ctx)
	if err != nil {
		b.logger.Error(module, "Failed to load categories", map[string]interface{}{
			"error": err.Error(),
		})
		s.Categories = []state.CategoryGroup{}
		s.Products = []*entity.Product{}
		return s.WithError(err.Error()), nil
	}

	products := make([]*entity.Product, 0)
	for _, g := range groups {
		products = append(products, g.SampleProducts...)
	}

	b.logger.Info(module, "Categories loaded", map[string]interface{}{
		"categories": len(groups),
		"samples":    len(products),
	})

	s.Categories = groups
	s.Products = products
	return s, nil
}

func (b *Browser) load(ctx context.Context) ([]state.CategoryGroup, error) {
	categories, err := b.catalog.FindAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	groups := make([]state.CategoryGroup, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.fanout)

	for i, category := range categories {
		g.Go(func() error {
			samples, err := b.catalog.FindByCategory(gctx, category.Id, b.sampleSize)
			if err != nil {
				return fmt.Errorf("load samples for %s: %w", category.Name, err)
			}
			groups[i] = state.CategoryGroup{Category: category, SampleProducts: samples}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}
