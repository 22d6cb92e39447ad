package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/invoicing/internal/billing"
	"github.com/diewo77/invoicing/internal/catalog"
	"github.com/diewo77/invoicing/internal/models"
	"github.com/diewo77/invoicing/internal/repository"
)

type CreateInvoiceInput struct {
	ClientID  uint
	InvoiceNo string
	IssueDate time.Time
	DueDate   time.Time
	Items     []billing.LineRequest
}

// InvoiceService orchestrates client validation, pricing, and persistence.
type InvoiceService struct {
	DB      *gorm.DB
	Repo    *repository.Invoices
	Catalog *catalog.Catalog
	TaxRate decimal.Decimal
}

func NewInvoiceService(db *gorm.DB, taxRate decimal.Decimal) *InvoiceService {
	return &InvoiceService{
		DB:      db,
		Repo:    repository.NewInvoices(db),
		Catalog: catalog.New(db),
		TaxRate: taxRate,
	}
}

// Create validates the client, prices the requested lines, and persists header
// plus items. Everything runs inside one transaction, so a product cannot
// disappear between pricing and insert, and validation failures never leave rows
// behind. The returned invoice is assembled from the write path and the pricing
// output; no read-back.
func (s *InvoiceService) Create(in CreateInvoiceInput) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, in.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return billing.ErrClientNotFound
			}
			return err
		}
		priced, err := billing.NewPricer(s.Catalog.WithTx(tx), s.TaxRate).Price(in.Items)
		if err != nil {
			return err
		}
		items := make([]models.InvoiceItem, 0, len(priced.Lines))
		for _, ln := range priced.Lines {
			items = append(items, models.InvoiceItem{
				ProductID: ln.ProductID,
				Quantity:  ln.Quantity,
				UnitPrice: ln.UnitPrice,
				LineTotal: ln.LineTotal,
			})
		}
		inv = &models.Invoice{
			InvoiceNo:   in.InvoiceNo,
			IssueDate:   in.IssueDate,
			DueDate:     in.DueDate,
			ClientID:    client.ID,
			TaxAmount:   priced.Tax,
			TotalAmount: priced.Total,
			Items:       items,
		}
		if err := s.Repo.Create(tx, inv); err != nil {
			return err
		}
		// Attach what the caller needs for the response without re-reading.
		inv.Client = client
		for i, ln := range priced.Lines {
			inv.Items[i].Product = models.Product{ID: ln.ProductID, Name: ln.ProductName, Price: ln.UnitPrice}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) Get(id uint) (*models.Invoice, error) { return s.Repo.Get(id) }

func (s *InvoiceService) List() ([]models.Invoice, error) { return s.Repo.List() }

func (s *InvoiceService) Delete(id uint) error { return s.Repo.Delete(id) }
