package billing

import (
	"github.com/shopspring/decimal"

	"github.com/diewo77/invoicing/internal/models"
)

// ProductFinder resolves a product id to its current catalog entry.
type ProductFinder interface {
	FindProduct(id uint) (models.Product, error)
}

// LineRequest is one requested invoice line before pricing.
type LineRequest struct {
	ProductID uint
	Quantity  int
}

// PricedLine carries the snapshot taken from the catalog for one line.
type PricedLine struct {
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type PricedInvoice struct {
	Lines    []PricedLine
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Pricer computes line totals, tax, and grand total for requested lines.
// The tax rate is injected configuration, not a package constant.
type Pricer struct {
	Catalog ProductFinder
	TaxRate decimal.Decimal
}

func NewPricer(catalog ProductFinder, taxRate decimal.Decimal) *Pricer {
	return &Pricer{Catalog: catalog, TaxRate: taxRate}
}

// Price resolves every requested line in input order and accumulates totals.
// Any missing product aborts the whole call; no partial pricing. Line totals are
// exact decimal products; only tax (and therefore the grand total) is rounded to
// two places. Pure read: pricing never writes.
func (p *Pricer) Price(lines []LineRequest) (*PricedInvoice, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyItems
	}
	out := &PricedInvoice{Lines: make([]PricedLine, 0, len(lines))}
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		prod, err := p.Catalog.FindProduct(l.ProductID)
		if err != nil {
			return nil, err
		}
		lineTotal := prod.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		out.Lines = append(out.Lines, PricedLine{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			Quantity:    l.Quantity,
			UnitPrice:   prod.Price,
			LineTotal:   lineTotal,
		})
	}
	out.Subtotal = subtotal
	out.Tax = subtotal.Mul(p.TaxRate).Round(2)
	out.Total = subtotal.Add(out.Tax)
	return out, nil
}
