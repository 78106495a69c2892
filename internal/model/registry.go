package model

import (
	"context"

	"gorm.io/gorm"
)

// CatalogModels lists the tables owned by this service, parents first.
func CatalogModels() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
	}
}

// MigrateCatalog creates or updates the catalog tables and their search indexes.
func MigrateCatalog(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(CatalogModels()...); err != nil {
		return err
	}

	// ILIKE '%term%' cannot use btree indexes; trigram indexes are best effort.
	indexSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pg_trgm;`,
		`CREATE INDEX IF NOT EXISTS idx_products_name_trgm ON products USING gin (name gin_trgm_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_products_description_trgm ON products USING gin (description gin_trgm_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_categories_name_trgm ON categories USING gin (name gin_trgm_ops);`,
	}
	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			db.Logger.Warn(context.Background(), "skipping trigram index: %v", err)
			break
		}
	}
	return nil
}
