package sim

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"golang.org/x/time/rate"

	"github.com/guarzo/retailsim/internal/catalog"
	"github.com/guarzo/retailsim/internal/obs"
)

// ShopperConfig holds the knobs for the shopper pool.
type ShopperConfig struct {
	Shoppers    int        // number of concurrent shoppers
	PurchaseRate rate.Limit // purchases per second across the pool
	MaxQuantity int        // largest single purchase
	Seed        int64      // 0 seeds from the clock
}

// ShopperPool simulates customers: each shopper repeatedly picks a random
// product and buys a random quantity, with the whole pool throttled by one
// rate limiter.
type ShopperPool struct {
	engine  *Engine
	limiter *rate.Limiter
	cfg     ShopperConfig

	mu   sync.Mutex
	rand *rand.Rand
}

func NewShopperPool(engine *Engine, cfg ShopperConfig) *ShopperPool {
	if cfg.Shoppers <= 0 {
		cfg.Shoppers = 3
	}
	if cfg.PurchaseRate <= 0 {
		cfg.PurchaseRate = rate.Limit(1)
	}
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = 3
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &ShopperPool{
		engine:  engine,
		limiter: rate.NewLimiter(cfg.PurchaseRate, cfg.Shoppers),
		cfg:     cfg,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

// Run keeps the shoppers buying until the context is canceled.
func (sp *ShopperPool) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < sp.cfg.Shoppers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sp.shop(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (sp *ShopperPool) shop(ctx context.Context, id int) {
	for {
		if err := sp.limiter.Wait(ctx); err != nil {
			return
		}
		if err := sp.buyOnce(); err != nil {
			if errors.Is(err, ErrInsufficientStock) || errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			obs.Logger.Warn("purchase failed", "shopper", id, "error", err)
		}
	}
}

// buyOnce performs a single random purchase. An empty or sold-out catalog
// is not an error; the shopper just waits for the next tick.
func (sp *ShopperPool) buyOnce() error {
	products, err := sp.engine.catalog.ListProducts()
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}

	sp.mu.Lock()
	p := products[sp.rand.Intn(len(products))]
	qty := sp.rand.Intn(sp.cfg.MaxQuantity) + 1
	sp.mu.Unlock()

	if p.Stock == 0 {
		return nil
	}
	if qty > p.Stock {
		qty = p.Stock
	}

	_, err = sp.engine.RecordSale(p.ID, qty)
	return err
}
