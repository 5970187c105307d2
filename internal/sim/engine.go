// Package sim drives the retail economy: shoppers buy from the catalog,
// every sale lands in the ledger, and prices are recomputed from the
// updated log.
package sim

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guarzo/retailsim/internal/analytics"
	"github.com/guarzo/retailsim/internal/cache"
	"github.com/guarzo/retailsim/internal/catalog"
	"github.com/guarzo/retailsim/internal/ledger"
	"github.com/guarzo/retailsim/internal/model"
	"github.com/guarzo/retailsim/internal/obs"
	"github.com/guarzo/retailsim/internal/pricing"
)

// ErrInsufficientStock is returned when a purchase asks for more units than
// remain.
var ErrInsufficientStock = errors.New("insufficient stock")

// metricsTTL bounds how long a cached market view may serve reads between
// sales.
const metricsTTL = 30 * time.Second

// Engine wires the catalog, ledger, pricing, and analytics together. All
// repricing for a given product runs under that product's mutex, so no two
// passes can interleave a read-compute-write on the same row.
type Engine struct {
	catalog   catalog.Provider
	log       ledger.Log
	pricer    *pricing.Service
	analytics *analytics.Service
	views     *cache.MemoryCache
	minDelta  float64

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Config holds the engine knobs.
type Config struct {
	MinDelta float64 // smallest price change worth persisting
}

func NewEngine(cat catalog.Provider, log ledger.Log, pricer *pricing.Service, cfg Config) *Engine {
	minDelta := cfg.MinDelta
	if minDelta <= 0 {
		minDelta = pricing.DefaultMinDelta
	}
	return &Engine{
		catalog:   cat,
		log:       log,
		pricer:    pricer,
		analytics: analytics.NewService(),
		views:     cache.NewMemoryCache(metricsTTL),
		minDelta:  minDelta,
	}
}

// productLock returns the mutex serializing repricing for one product id.
func (e *Engine) productLock(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.locks == nil {
		e.locks = make(map[string]*sync.Mutex)
	}
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	return l
}

// RecordSale completes a purchase: the sale is appended to the ledger and
// stock decremented, then the product is repriced against the log that
// already contains the new sale. Appending strictly before repricing is
// what lets a sale influence its own repricing pass.
func (e *Engine) RecordSale(productID string, quantity int) (model.SaleRecord, error) {
	lock := e.productLock(productID)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.catalog.GetProduct(productID)
	if err != nil {
		return model.SaleRecord{}, fmt.Errorf("recording sale: %w", err)
	}
	if quantity <= 0 {
		return model.SaleRecord{}, ledger.ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return model.SaleRecord{}, ErrInsufficientStock
	}

	record := ledger.NewSaleRecord(p.ID, quantity, p.Price)
	if err := e.log.AppendSale(record); err != nil {
		return model.SaleRecord{}, fmt.Errorf("recording sale: %w", err)
	}
	if err := e.catalog.SetProductStock(p.ID, p.Stock-quantity); err != nil {
		obs.Logger.Warn("stock update rejected",
			"product_id", p.ID,
			"field", "stock",
			"attempted", p.Stock-quantity,
			"error", err)
	}
	e.views.Clear()

	e.repriceLocked(p.ID)

	return record, nil
}

// repriceLocked reprices one product against the current log. The caller
// holds the product lock.
func (e *Engine) repriceLocked(productID string) {
	p, err := e.catalog.GetProduct(productID)
	if err != nil {
		return
	}
	sales, err := e.log.ListSales()
	if err != nil {
		obs.Logger.Warn("sale log unavailable, skipping reprice",
			"product_id", productID, "error", err)
		return
	}
	final := e.pricer.ApplyDynamicPricing(p, sales, e.minDelta)
	if final != p.Price {
		obs.Logger.Info("repriced",
			"product_id", p.ID,
			"strategy", e.pricer.StrategyName(),
			"old_price", p.Price,
			"new_price", final)
	}
}

// RepriceAll runs a market-wide repricing pass, product by product.
func (e *Engine) RepriceAll() error {
	products, err := e.catalog.ListProducts()
	if err != nil {
		return fmt.Errorf("repricing market: %w", err)
	}
	for _, p := range products {
		lock := e.productLock(p.ID)
		lock.Lock()
		e.repriceLocked(p.ID)
		lock.Unlock()
	}
	return nil
}

// Analysis returns the diagnostic pricing view for one product.
func (e *Engine) Analysis(productID string) (model.PricingAnalysis, error) {
	p, err := e.catalog.GetProduct(productID)
	if err != nil {
		return model.PricingAnalysis{}, err
	}
	sales, err := e.log.ListSales()
	if err != nil {
		return model.PricingAnalysis{}, err
	}
	return e.pricer.Analysis(p, sales), nil
}

// Metrics returns the market-wide indicators, served from the view cache
// when the log has not grown since they were last computed.
func (e *Engine) Metrics() (model.EconomicMetrics, error) {
	sales, err := e.log.ListSales()
	if err != nil {
		return model.EconomicMetrics{}, err
	}
	key := fmt.Sprintf("metrics:%d", len(sales))
	if v, ok := e.views.Get(key); ok {
		return v.(model.EconomicMetrics), nil
	}
	products, err := e.catalog.ListProducts()
	if err != nil {
		return model.EconomicMetrics{}, err
	}
	m := e.analytics.EconomicMetrics(sales, products)
	e.views.Set(key, m, 0)
	return m, nil
}

// TopProducts returns the sales ranking, cached like Metrics.
func (e *Engine) TopProducts(limit int) ([]model.ProductStats, error) {
	sales, err := e.log.ListSales()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("top:%d:%d", limit, len(sales))
	if v, ok := e.views.Get(key); ok {
		return v.([]model.ProductStats), nil
	}
	stats := e.analytics.TopProducts(sales, limit)
	e.views.Set(key, stats, 0)
	return stats, nil
}

// Trends returns the bucketed sales trend for the trailing window. Trend
// buckets shift with the clock, so they are never cached.
func (e *Engine) Trends(windowHours int) (model.SalesTrends, error) {
	sales, err := e.log.ListSales()
	if err != nil {
		return model.SalesTrends{}, err
	}
	return e.analytics.SalesTrends(sales, windowHours), nil
}

// ProductStats returns the aggregated history for one product.
func (e *Engine) ProductStats(productID string) (model.ProductStats, error) {
	sales, err := e.log.ListSales()
	if err != nil {
		return model.ProductStats{}, err
	}
	return e.analytics.ProductStats(productID, sales), nil
}
