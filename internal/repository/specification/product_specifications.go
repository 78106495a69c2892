package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a term into a case-insensitive substring pattern for ILIKE.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// WithCategory populates Product.Category.
type WithCategory struct{}

func (s WithCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Category")
}

// TextMatchesAny keeps products whose name OR description contains any of the terms.
// An empty term list matches nothing.
type TextMatchesAny struct {
	Terms []string
}

func (s TextMatchesAny) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Terms) == 0 {
		return db.Where("1 = 0")
	}

	clauses := make([]string, 0, len(s.Terms))
	args := make([]interface{}, 0, len(s.Terms)*2)
	for _, term := range s.Terms {
		pattern := containsPattern(term)
		clauses = append(clauses, "(products.name ILIKE ? OR products.description ILIKE ?)")
		args = append(args, pattern, pattern)
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// CategoryNameMatchesAny keeps products whose category name contains any of the terms.
type CategoryNameMatchesAny struct {
	Terms []string
}

func (s CategoryNameMatchesAny) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Terms) == 0 {
		return db.Where("1 = 0")
	}

	clauses := make([]string, 0, len(s.Terms))
	args := make([]interface{}, 0, len(s.Terms))
	for _, term := range s.Terms {
		clauses = append(clauses, "categories.name ILIKE ?")
		args = append(args, containsPattern(term))
	}
	return db.Select("products.*").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where(strings.Join(clauses, " OR "), args...)
}

// ByCategoryID filters products by their category reference.
type ByCategoryID struct {
	CategoryID uuid.UUID
}

func (s ByCategoryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("products.category_id = ?", s.CategoryID)
}

// CatalogOrder gives product queries a stable order so identical requests return identical pages.
type CatalogOrder struct{}

func (s CatalogOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("products.created_at ASC").Order("products.id ASC")
}

// Limit caps the number of rows.
type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}
