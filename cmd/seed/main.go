package main

import (
	"context"
	"log"
	"os"
	"time"

	"ai-storefront-be/internal/config"
	"ai-storefront-be/internal/model"
	"ai-storefront-be/internal/repository/unitofwork"
	"ai-storefront-be/internal/service"
	"ai-storefront-be/pkg/database"

	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.WithPoolSize(1, 4))
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	if err := model.MigrateCatalog(db); err != nil {
		log.Fatalf("Error: migration failed: %v", err)
	}

	sellerId := demoSellerID
	if raw := os.Getenv("SEED_SELLER_ID"); raw != "" {
		sellerId, err = uuid.Parse(raw)
		if err != nil {
			log.Fatalf("Error: SEED_SELLER_ID is not a uuid: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Println("Seeding demo catalog...")

	seeder := service.NewCatalogSeeder(unitofwork.NewRepositoryFactory(db))
	result, err := seeder.Seed(ctx, sellerId, demoCatalog)
	if err != nil {
		log.Fatalf("Error: seeding failed: %v", err)
	}

	log.Printf("Catalog seeding completed! categories=%d products=%d skipped=%d",
		result.CategoriesCreated, result.ProductsCreated, result.Skipped)
}
