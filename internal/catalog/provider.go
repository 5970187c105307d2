// Package catalog owns the product set. The pricing and analytics layers
// only read products and propose price updates through it.
package catalog

import (
	"errors"

	"github.com/guarzo/retailsim/internal/model"
)

var (
	// ErrProductNotFound is returned when a product id is absent from the
	// catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct is returned when adding an id already in the
	// catalog.
	ErrDuplicateProduct = errors.New("product already exists")
	// ErrNegativePrice rejects a price write below zero.
	ErrNegativePrice = errors.New("price must not be negative")
	// ErrNegativeStock rejects a stock write below zero.
	ErrNegativeStock = errors.New("stock must not be negative")
)

// Provider defines the catalog operations the rest of the system consumes.
type Provider interface {
	ListProducts() ([]model.Product, error)
	GetProduct(id string) (model.Product, error)
	AddProduct(p model.Product) error
	SetProductPrice(id string, price float64) error
	SetProductStock(id string, stock int) error
}
