package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/invoicing/internal/billing"
	"github.com/diewo77/invoicing/internal/models"
)

// Invoices persists invoice headers and their items as one atomic unit.
type Invoices struct {
	DB *gorm.DB
}

func NewInvoices(db *gorm.DB) *Invoices { return &Invoices{DB: db} }

// Create inserts the header and all items in the caller's transaction. On any
// failure after the header insert the transaction rolls back, so no partial
// invoice is ever visible. A unique violation on invoice_no surfaces as
// ErrDuplicateInvoiceNo; requires the connection to be opened with TranslateError.
func (r *Invoices) Create(tx *gorm.DB, inv *models.Invoice) error {
	items := inv.Items
	inv.Items = nil
	if err := tx.Omit(clause.Associations).Create(inv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return billing.ErrDuplicateInvoiceNo
		}
		return err
	}
	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
		return err
	}
	inv.Items = items
	return nil
}

// Get loads the full invoice: items in creation order with their product, plus
// the owning client.
func (r *Invoices) Get(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("invoice_items.id") }).
		Preload("Items.Product").
		Preload("Client").
		First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billing.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// List returns summaries newest-first. Items are deliberately not loaded; the
// list view joins the client only.
func (r *Invoices) List() ([]models.Invoice, error) {
	var invs []models.Invoice
	if err := r.DB.Preload("Client").Order("id desc").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

// Delete removes items before the header in one transaction. A missing invoice
// yields ErrInvoiceNotFound rather than a silent no-op.
func (r *Invoices) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Invoice{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return billing.ErrInvoiceNotFound
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, id).Error
	})
}
