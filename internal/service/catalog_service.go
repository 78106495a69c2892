package service

import (
	"context"

	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/repository/specification"
	"ai-storefront-be/internal/repository/unitofwork"
	"ai-storefront-be/pkg/assistant/contract"

	"github.com/google/uuid"
)

// catalogService is the assistant's read-only view of the product tables.
type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory) contract.Catalog {
	return &catalogService{
		uowFactory: uowFactory,
	}
}

func (c *catalogService) findProducts(ctx context.Context, limit int, specs ...specification.Specification) ([]*entity.Product, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs = append(specs,
		specification.WithCategory{},
		specification.CatalogOrder{},
		specification.Limit{N: limit},
	)
	return uow.ProductRepository().FindAll(ctx, specs...)
}

func (c *catalogService) FindByTextSubstring(ctx context.Context, terms []string, limit int) ([]*entity.Product, error) {
	return c.findProducts(ctx, limit, specification.TextMatchesAny{Terms: terms})
}

func (c *catalogService) FindByCategoryNameSubstring(ctx context.Context, terms []string, limit int) ([]*entity.Product, error) {
	return c.findProducts(ctx, limit, specification.CategoryNameMatchesAny{Terms: terms})
}

func (c *catalogService) FindAllCategories(ctx context.Context) ([]*entity.Category, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.CategoryRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "name"},
	)
}

func (c *catalogService) FindByCategory(ctx context.Context, categoryId uuid.UUID, limit int) ([]*entity.Product, error) {
	return c.findProducts(ctx, limit, specification.ByCategoryID{CategoryID: categoryId})
}

func (c *catalogService) FindAny(ctx context.Context, limit int) ([]*entity.Product, error) {
	return c.findProducts(ctx, limit)
}
