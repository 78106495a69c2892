package browse

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/pkg/assistant/internal/stub"
	"ai-storefront-be/pkg/assistant/state"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCatalog() *stub.Catalog {
	electronics := stub.NewCategory("Electronics")
	clothing := stub.NewCategory("Clothing")
	empty := stub.NewCategory("Garden")

	products := []*entity.Product{}
	for i := 1; i <= 4; i++ {
		products = append(products, stub.NewProduct(fmt.Sprintf("Gadget %d", i), "gadget", 10, electronics))
	}
	products = append(products, stub.NewProduct("Shirt", "cotton shirt", 15, clothing))

	return &stub.Catalog{
		Products:   products,
		Categories: []*entity.Category{electronics, clothing, empty},
	}
}

func TestBrowser_Browse(t *testing.T) {
	b := NewBrowser(seededCatalog(), logger.NewNopLogger(), 3, 2)

	out, err := b.Browse(context.Background(), state.New("what do you sell?"))

	require.NoError(t, err)
	require.Len(t, out.Categories, 3)
	assert.Equal(t, "Electronics", out.Categories[0].Category.Name)
	assert.Len(t, out.Categories[0].SampleProducts, 3)
	assert.Equal(t, "Gadget 1", out.Categories[0].SampleProducts[0].Name)
	assert.Equal(t, "Clothing", out.Categories[1].Category.Name)
	assert.Len(t, out.Categories[1].SampleProducts, 1)
	assert.Empty(t, out.Categories[2].SampleProducts)

	assert.Len(t, out.Products, 4)
	assert.Equal(t, "Shirt", out.Products[3].Name)
	assert.Empty(t, out.Error)
}

func TestBrowser_Browse_Failures(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{name: "category listing fails", method: "categories"},
		{name: "sample lookup fails", method: "bycategory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := seededCatalog()
			catalog.Err = map[string]error{tt.method: errors.New("db down")}

			out, err := NewBrowser(catalog, logger.NewNopLogger(), 3, 2).Browse(context.Background(), state.New("categories"))

			require.NoError(t, err)
			assert.NotNil(t, out.Categories)
			assert.Empty(t, out.Categories)
			assert.Empty(t, out.Products)
			assert.Contains(t, out.Error, "db down")
		})
	}
}

type slowCatalog struct {
	*stub.Catalog
	inFlight, peak atomic.Int32
}

func (s *slowCatalog) FindByCategory(ctx context.Context, id uuid.UUID, limit int) ([]*entity.Product, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	return s.Catalog.FindByCategory(ctx, id, limit)
}

func TestBrowser_Browse_BoundedFanout(t *testing.T) {
	base := seededCatalog()
	for i := 0; i < 6; i++ {
		base.Categories = append(base.Categories, stub.NewCategory(fmt.Sprintf("Extra %d", i)))
	}
	catalog := &slowCatalog{Catalog: base}

	out, err := NewBrowser(catalog, logger.NewNopLogger(), 3, 2).Browse(context.Background(), state.New("browse"))

	require.NoError(t, err)
	assert.Len(t, out.Categories, 9)
	assert.LessOrEqual(t, catalog.peak.Load(), int32(2))
}
