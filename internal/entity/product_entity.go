// internal\entity\product_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id          uuid.UUID
	Name        string
	Description string
	Price       float64
	Images      []string
	CategoryId  uuid.UUID
	Category    *Category // populated when the query preloads it
	SellerId    uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// CategoryName returns the populated category name or "" when the product is uncategorized.
func (p *Product) CategoryName() string {
	if p == nil || p.Category == nil {
		return ""
	}
	return p.Category.Name
}
