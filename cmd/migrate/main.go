package main

import (
	"flag"
	"log"

	"ai-storefront-be/internal/config"
	"ai-storefront-be/internal/model"
	"ai-storefront-be/pkg/database"

	"gorm.io/gorm/logger"
)

func main() {
	verbose := flag.Bool("v", false, "log every statement")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING is not set")
	}

	level := logger.Warn
	if *verbose {
		level = logger.Info
	}
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection,
		database.WithLogLevel(level),
		database.WithPoolSize(1, 2),
	)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	if err := model.MigrateCatalog(db); err != nil {
		log.Fatalf("migrate catalog: %v", err)
	}

	for _, m := range model.CatalogModels() {
		var n int64
		if err := db.Model(m).Count(&n).Error; err != nil {
			log.Fatalf("count %T: %v", m, err)
		}
		log.Printf("%T: %d rows", m, n)
	}
	log.Println("catalog schema is up to date")
}
