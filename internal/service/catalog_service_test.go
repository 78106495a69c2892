package service_test

import (
	"context"
	"testing"
	"time"

	"ai-storefront-be/internal/dto"
	"ai-storefront-be/internal/model"
	"ai-storefront-be/internal/repository/unitofwork"
	"ai-storefront-be/internal/service"
	"ai-storefront-be/pkg/assistant/contract"
	"ai-storefront-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm/logger"
)

var testCatalog = []dto.SeedCategory{
	{
		Name:        "Electronics",
		Description: "Gadgets",
		Products: []dto.SeedProduct{
			{Name: "Voyager 14 Laptop", Description: "Lightweight laptop with 16GB RAM", Price: 1099},
			{Name: "Titan 16", Description: "Gaming LAPTOP with RTX graphics", Price: 1899},
			{Name: "EchoBuds", Description: "Wireless earbuds", Price: 129},
		},
	},
	{
		Name:        "Home & Kitchen",
		Description: "For the home",
		Products: []dto.SeedProduct{
			{Name: "BrewMaster", Description: "Drip coffee maker", Price: 79.99},
			{Name: "PowerBlend", Description: "1200W blender", Price: 99},
		},
	},
	{
		Name: "Clothing",
		Products: []dto.SeedProduct{
			{Name: "Classic Tee", Description: "100% cotton t-shirt", Price: 19.99, Images: []string{"/images/tee.jpg"}},
			{Name: "Denim Jeans", Description: "Stretch denim", Price: 59},
		},
	},
	{Name: "Gift Cards"},
}

func setupCatalog(t *testing.T) (contract.Catalog, service.ICatalogSeeder) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewGormDBFromDSN(dsn, database.WithLogLevel(logger.Silent), database.WithPoolSize(2, 4))
	require.NoError(t, err)
	require.NoError(t, model.MigrateCatalog(db))

	factory := unitofwork.NewRepositoryFactory(db)
	seeder := service.NewCatalogSeeder(factory)
	res, err := seeder.Seed(ctx, uuid.New(), testCatalog)
	require.NoError(t, err)
	require.Equal(t, 4, res.CategoriesCreated)
	require.Equal(t, 7, res.ProductsCreated)

	return service.NewCatalogService(factory), seeder
}

func TestCatalogService_Postgres(t *testing.T) {
	catalog, seeder := setupCatalog(t)
	ctx := context.Background()

	names := func(t *testing.T, terms []string, byCategory bool) []string {
		t.Helper()
		var res []string
		if byCategory {
			products, err := catalog.FindByCategoryNameSubstring(ctx, terms, 20)
			require.NoError(t, err)
			for _, p := range products {
				res = append(res, p.Name)
			}
			return res
		}
		products, err := catalog.FindByTextSubstring(ctx, terms, 20)
		require.NoError(t, err)
		for _, p := range products {
			res = append(res, p.Name)
		}
		return res
	}

	t.Run("text match is case insensitive over name and description", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"Voyager 14 Laptop", "Titan 16"}, names(t, []string{"laptop"}, false))
	})

	t.Run("any term matches", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"BrewMaster", "EchoBuds"}, names(t, []string{"coffee", "earbuds"}, false))
	})

	t.Run("like wildcards are escaped", func(t *testing.T) {
		assert.Equal(t, []string{"Classic Tee"}, names(t, []string{"100%"}, false))
		assert.Empty(t, names(t, []string{"_"}, false))
	})

	t.Run("empty term list matches nothing", func(t *testing.T) {
		assert.Empty(t, names(t, nil, false))
		assert.Empty(t, names(t, nil, true))
	})

	t.Run("category name substring", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"BrewMaster", "PowerBlend"}, names(t, []string{"KITCHEN"}, true))
	})

	t.Run("products carry their category", func(t *testing.T) {
		products, err := catalog.FindByTextSubstring(ctx, []string{"denim"}, 5)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Clothing", products[0].CategoryName())
	})

	t.Run("categories and per-category limit", func(t *testing.T) {
		categories, err := catalog.FindAllCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 4)

		byName := map[string]uuid.UUID{}
		for _, c := range categories {
			byName[c.Name] = c.Id
		}

		products, err := catalog.FindByCategory(ctx, byName["Electronics"], 2)
		require.NoError(t, err)
		assert.Len(t, products, 2)

		empty, err := catalog.FindByCategory(ctx, byName["Gift Cards"], 3)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("find any is stable", func(t *testing.T) {
		first, err := catalog.FindAny(ctx, 3)
		require.NoError(t, err)
		second, err := catalog.FindAny(ctx, 3)
		require.NoError(t, err)
		require.Len(t, first, 3)
		for i := range first {
			assert.Equal(t, first[i].Id, second[i].Id)
		}
	})

	t.Run("images round trip through jsonb", func(t *testing.T) {
		products, err := catalog.FindByTextSubstring(ctx, []string{"Classic Tee"}, 1)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, []string{"/images/tee.jpg"}, products[0].Images)
	})

	t.Run("reseeding is idempotent", func(t *testing.T) {
		res, err := seeder.Seed(ctx, uuid.New(), testCatalog)
		require.NoError(t, err)
		assert.Zero(t, res.CategoriesCreated)
		assert.Zero(t, res.ProductsCreated)
		assert.Equal(t, 7, res.Skipped)
	})

	t.Run("failed seed rolls back the whole batch", func(t *testing.T) {
		_, err := seeder.Seed(ctx, uuid.New(), []dto.SeedCategory{{
			Name: "Garden",
			Products: []dto.SeedProduct{
				{Name: "Hose", Price: 20},
				{Name: "Broken", Price: -1},
			},
		}})
		require.Error(t, err)

		assert.Empty(t, names(t, []string{"garden"}, true))
		assert.Empty(t, names(t, []string{"hose"}, false))
	})
}
