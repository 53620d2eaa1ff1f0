package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalogue.
// Inventory is mutated only by order placement and never goes negative.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Brand       string          `json:"brand" db:"brand"`
	Description string          `json:"description" db:"description"`
	Category    string          `json:"category" db:"category"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Inventory   int             `json:"inventory" db:"inventory"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}
