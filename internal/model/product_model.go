package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string                      `gorm:"type:varchar(255);not null"`
	Description string                      `gorm:"type:text;not null"`
	Price       float64                     `gorm:"type:numeric(12,2);not null;check:price >= 0"`
	Images      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CategoryId  uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Category    *Category                   `gorm:"foreignKey:CategoryId"`
	SellerId    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
