package contract

import (
	"context"
	"time"

	"ai-storefront-be/internal/entity"

	"github.com/google/uuid"
)

// Catalog is the read-only product and category source the assistant queries.
// Every returned product has its Category populated when it has one.
type Catalog interface {
	// FindByTextSubstring matches any term, case-insensitively, against name or description.
	FindByTextSubstring(ctx context.Context, terms []string, limit int) ([]*entity.Product, error)
	// FindByCategoryNameSubstring matches any term against the product's category name.
	FindByCategoryNameSubstring(ctx context.Context, terms []string, limit int) ([]*entity.Product, error)
	FindAllCategories(ctx context.Context) ([]*entity.Category, error)
	FindByCategory(ctx context.Context, categoryId uuid.UUID, limit int) ([]*entity.Product, error)
	FindAny(ctx context.Context, limit int) ([]*entity.Product, error)
}

type timeoutCatalog struct {
	inner   Catalog
	timeout time.Duration
}

// WithTimeout bounds every catalog call by d. A non-positive d returns c unchanged.
func WithTimeout(c Catalog, d time.Duration) Catalog {
	if d <= 0 {
		return c
	}
	return &timeoutCatalog{inner: c, timeout: d}
}

func (t *timeoutCatalog) FindByTextSubstring(ctx context.Context, terms []string, limit int) ([]*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.FindByTextSubstring(ctx, terms, limit)
}

func (t *timeoutCatalog) FindByCategoryNameSubstring(ctx context.Context, terms []string, limit int) ([]*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.FindByCategoryNameSubstring(ctx, terms, limit)
}

func (t *timeoutCatalog) FindAllCategories(ctx context.Context) ([]*entity.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.FindAllCategories(ctx)
}

func (t *timeoutCatalog) FindByCategory(ctx context.Context, categoryId uuid.UUID, limit int) ([]*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.FindByCategory(ctx, categoryId, limit)
}

func (t *timeoutCatalog) FindAny(ctx context.Context, limit int) ([]*entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.FindAny(ctx, limit)
}
