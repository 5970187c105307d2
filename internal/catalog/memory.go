package catalog

import (
	"sync"

	"github.com/guarzo/retailsim/internal/model"
)

// MemoryCatalog is an in-process Provider guarded by a RWMutex. Listing
// preserves insertion order so rankings and reports stay deterministic.
type MemoryCatalog struct {
	mu    sync.RWMutex
	byID  map[string]model.Product
	order []string
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{byID: make(map[string]model.Product)}
}

func (c *MemoryCatalog) ListProducts() ([]model.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

func (c *MemoryCatalog) GetProduct(id string) (model.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (c *MemoryCatalog) AddProduct(p model.Product) error {
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 || p.InitialStock < 0 {
		return ErrNegativeStock
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[p.ID]; ok {
		return ErrDuplicateProduct
	}
	c.byID[p.ID] = p
	c.order = append(c.order, p.ID)
	return nil
}

func (c *MemoryCatalog) SetProductPrice(id string, price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Price = price
	c.byID[id] = p
	return nil
}

func (c *MemoryCatalog) SetProductStock(id string, stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Stock = stock
	c.byID[id] = p
	return nil
}
