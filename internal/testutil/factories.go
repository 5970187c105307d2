// Package testutil generates deterministic test data for the simulator.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/guarzo/retailsim/internal/model"
)

// Factory produces products and sale logs from a seeded random generator,
// so tests stay reproducible.
type Factory struct {
	rand *rand.Rand
}

// NewFactory creates a factory; a zero seed falls back to the clock.
func NewFactory(seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{rand: rand.New(rand.NewSource(seed))}
}

// Product builds a product with the given id and a random price and stock.
func (f *Factory) Product(id string) model.Product {
	stock := f.rand.Intn(150) + 50
	return model.Product{
		ID:           id,
		Name:         fmt.Sprintf("Product %s", id),
		Price:        float64(f.rand.Intn(4500)+500) / 100, // 5.00 to 50.00
		Stock:        stock,
		InitialStock: stock,
	}
}

// Sale builds a sale record for a product, aged the given duration.
func (f *Factory) Sale(productID string, quantity int, price float64, age time.Duration) model.SaleRecord {
	return model.SaleRecord{
		ID:          fmt.Sprintf("sale-%d", f.rand.Int63()),
		ProductID:   productID,
		Quantity:    quantity,
		PriceAtSale: price,
		Revenue:     float64(quantity) * price,
		Timestamp:   time.Now().Add(-age),
	}
}

// SaleLog builds n sales for a product at a fixed price, spread one minute
// apart inside the last hour, oldest first.
func (f *Factory) SaleLog(productID string, n int, price float64) []model.SaleRecord {
	log := make([]model.SaleRecord, 0, n)
	for i := 0; i < n; i++ {
		age := time.Duration(n-i) * time.Minute
		log = append(log, f.Sale(productID, 1, price, age))
	}
	return log
}
