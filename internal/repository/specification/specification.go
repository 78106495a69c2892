package specification

import "gorm.io/gorm"

// Specification narrows or orders a query. Specs compose left to right.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ApplyAll runs every spec against db in order.
func ApplyAll(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}
