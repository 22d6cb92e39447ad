package billing

import (
	"errors"
	"fmt"
)

// Error taxonomy for the invoicing core. All validation errors are raised before
// any row is written; anything not matched here is an unexpected storage failure.
var (
	ErrClientNotFound     = errors.New("client_not_found")
	ErrInvoiceNotFound    = errors.New("invoice_not_found")
	ErrDuplicateInvoiceNo = errors.New("invoice_no_already_exists")
	ErrEmptyItems         = errors.New("invoice_requires_items")
	ErrInvalidQuantity    = errors.New("quantity_must_be_positive")
)

// ProductNotFoundError names the offending product id so callers can report it.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}
