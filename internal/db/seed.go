package db

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/invoicing/internal/models"
)

// Seed inserts the bootstrap reference data (clients and catalog products) if it
// is not already present. Keyed by name so repeated starts stay idempotent.
func Seed(db *gorm.DB, log *zap.SugaredLogger) {
	clients := []models.Client{
		{Name: "Acme Corp", Address: "123 Business Rd, Tech City", CompanyRegNo: "REG123456"},
		{Name: "Globex Inc", Address: "456 Global Way, World Town", CompanyRegNo: "REG654321"},
		{Name: "Soylent Corp", Address: "789 Green St, Eco City", CompanyRegNo: "REG987654"},
	}
	for _, c := range clients {
		var existing models.Client
		err := db.Where("name = ?", c.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&c).Error; err != nil {
				log.Warnw("seed client failed", "name", c.Name, "err", err)
			}
		}
	}

	products := []models.Product{
		{Name: "Widget A", Price: decimal.NewFromFloat(10.0)},
		{Name: "Widget B", Price: decimal.NewFromFloat(25.50)},
		{Name: "Gadget X", Price: decimal.NewFromFloat(50.0)},
		{Name: "Gadget Y", Price: decimal.NewFromFloat(99.99)},
		{Name: "Service Hour", Price: decimal.NewFromFloat(150.0)},
	}
	for _, p := range products {
		var existing models.Product
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&p).Error; err != nil {
				log.Warnw("seed product failed", "name", p.Name, "err", err)
			}
		}
	}
}
