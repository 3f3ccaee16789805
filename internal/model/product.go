package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item. Rows come either from the catalog
// importer (cmd/seeder) or from seller submissions through the API.
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Title       string          `json:"title" gorm:"type:varchar(255);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"type:varchar(100)"`
	Image       string          `json:"image" gorm:"type:varchar(512)"`
	Rate        float64         `json:"rate" gorm:"not null;default:0"`
	Count       int             `json:"count" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
