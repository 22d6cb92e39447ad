package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/invoicing/internal/billing"
	"github.com/diewo77/invoicing/internal/models"
)

// Catalog resolves product ids to their current name and price. It is the source
// of truth for pricing at invoice-creation time.
type Catalog struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Catalog { return &Catalog{DB: db} }

// WithTx binds the catalog to a transaction so lookups made while pricing see
// the same snapshot the subsequent writes run in.
func (c *Catalog) WithTx(tx *gorm.DB) *Catalog { return &Catalog{DB: tx} }

func (c *Catalog) FindProduct(id uint) (models.Product, error) {
	var p models.Product
	if err := c.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, &billing.ProductNotFoundError{ProductID: id}
		}
		return models.Product{}, err
	}
	return p, nil
}
