package models

import "github.com/shopspring/decimal"

// Product is the catalog entry an invoice line points at. Price is the current
// catalog price; invoice items snapshot it at creation time and never read it back.
type Product struct {
	ID    uint            `gorm:"primaryKey"`
	Name  string          `gorm:"not null"`
	Price decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
