package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoicing models
type Invoice struct {
	ID          uint            `gorm:"primaryKey"`
	InvoiceNo   string          `gorm:"not null;uniqueIndex"`
	IssueDate   time.Time       `gorm:"type:date;not null"`
	DueDate     time.Time       `gorm:"type:date;not null"`
	ClientID    uint            `gorm:"not null;index"`
	Client      Client          `gorm:"foreignKey:ClientID"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Items       []InvoiceItem   `gorm:"foreignKey:InvoiceID"`
}

type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey"`
	InvoiceID uint    `gorm:"not null;index"`
	ProductID uint    `gorm:"not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null"`
	// UnitPrice and LineTotal are value snapshots taken at creation; a later
	// catalog price change must not alter a persisted invoice.
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
