package models

// Client is reference data owned by seed/bootstrap; invoices only point at it.
type Client struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null;index"`
	Address      string `gorm:"not null"`
	CompanyRegNo string `gorm:"not null"`
}
