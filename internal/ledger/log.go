// Package ledger owns the append-only sale log. Records are immutable once
// appended; every aggregate downstream is recomputed from the full log.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/guarzo/retailsim/internal/model"
)

var (
	// ErrInvalidQuantity rejects a sale of zero or negative units.
	ErrInvalidQuantity = errors.New("sale quantity must be positive")
	// ErrNegativePrice rejects a sale recorded at a negative unit price.
	ErrNegativePrice = errors.New("sale price must not be negative")
	// ErrMissingProduct rejects a sale with an empty product id.
	ErrMissingProduct = errors.New("sale requires a product id")
)

// Log defines the sale log operations the rest of the system consumes.
// ListSales returns the full log in insertion order; callers apply their own
// windowing from the timestamps.
type Log interface {
	ListSales() ([]model.SaleRecord, error)
	ListSalesByProduct(productID string) ([]model.SaleRecord, error)
	AppendSale(record model.SaleRecord) error
}

// NewSaleRecord builds the canonical record for a completed sale. Revenue
// is fixed here so later pricing changes never rewrite history.
func NewSaleRecord(productID string, quantity int, unitPrice float64) model.SaleRecord {
	return model.SaleRecord{
		ID:          uuid.NewString(),
		ProductID:   productID,
		Quantity:    quantity,
		PriceAtSale: unitPrice,
		Revenue:     float64(quantity) * unitPrice,
		Timestamp:   time.Now(),
	}
}

func validate(r model.SaleRecord) error {
	if r.ProductID == "" {
		return ErrMissingProduct
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.PriceAtSale < 0 {
		return ErrNegativePrice
	}
	return nil
}
