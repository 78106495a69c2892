package service

import (
	"context"
	"fmt"
	"strings"

	"ai-storefront-be/internal/dto"
	"ai-storefront-be/internal/entity"
	"ai-storefront-be/internal/repository/specification"
	"ai-storefront-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICatalogSeeder interface {
	Seed(ctx context.Context, sellerId uuid.UUID, categories []dto.SeedCategory) (*dto.SeedResult, error)
}

type catalogSeeder struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCatalogSeeder(uowFactory unitofwork.RepositoryFactory) ICatalogSeeder {
	return &catalogSeeder{
		uowFactory: uowFactory,
	}
}

// Seed inserts the given categories and products in one transaction.
// Existing categories are reused and products already present by name are skipped, so reruns are safe.
func (s *catalogSeeder) Seed(ctx context.Context, sellerId uuid.UUID, categories []dto.SeedCategory) (*dto.SeedResult, error) {
	result := &dto.SeedResult{}
	err := s.uowFactory.WithinTransaction(ctx, func(uow unitofwork.UnitOfWork) error {
		for _, c := range categories {
			if err := s.seedCategory(ctx, uow, sellerId, c, result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *catalogSeeder) seedCategory(ctx context.Context, uow unitofwork.UnitOfWork, sellerId uuid.UUID, c dto.SeedCategory, result *dto.SeedResult) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("category name is required")
	}

	category, err := uow.CategoryRepository().FindOne(ctx, specification.Filter("name", name))
	if err != nil {
		return err
	}
	if category == nil {
		category = &entity.Category{
			Id:          uuid.New(),
			Name:        name,
			Description: strings.TrimSpace(c.Description),
		}
		if err := uow.CategoryRepository().Create(ctx, category); err != nil {
			return fmt.Errorf("create category %q: %w", name, err)
		}
		result.CategoriesCreated++
	}

	for _, p := range c.Products {
		productName := strings.TrimSpace(p.Name)
		if productName == "" {
			return fmt.Errorf("product name is required in category %q", name)
		}
		if p.Price < 0 {
			return fmt.Errorf("product %q has a negative price", productName)
		}

		count, err := uow.ProductRepository().Count(ctx,
			specification.Filter("name", productName),
			specification.ByCategoryID{CategoryID: category.Id},
		)
		if err != nil {
			return err
		}
		if count > 0 {
			result.Skipped++
			continue
		}

		product := &entity.Product{
			Id:          uuid.New(),
			Name:        productName,
			Description: strings.TrimSpace(p.Description),
			Price:       p.Price,
			Images:      p.Images,
			CategoryId:  category.Id,
			SellerId:    sellerId,
		}
		if err := uow.ProductRepository().Create(ctx, product); err != nil {
			return fmt.Errorf("create product %q: %w", productName, err)
		}
		result.ProductsCreated++
	}
	return nil
}
