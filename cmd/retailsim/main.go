// Command retailsim runs a small retail economy: simulated shoppers buy
// from the catalog, every sale is logged, and unit prices are periodically
// recomputed from recent demand and remaining stock.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/guarzo/retailsim/internal/catalog"
	"github.com/guarzo/retailsim/internal/config"
	"github.com/guarzo/retailsim/internal/ledger"
	"github.com/guarzo/retailsim/internal/model"
	"github.com/guarzo/retailsim/internal/monitor"
	"github.com/guarzo/retailsim/internal/obs"
	"github.com/guarzo/retailsim/internal/pricing"
	"github.com/guarzo/retailsim/internal/report"
	"github.com/guarzo/retailsim/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "retailsim:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	cat, log, err := openStores(cfg)
	if err != nil {
		return err
	}
	if err := seedCatalog(cat); err != nil {
		return err
	}

	pricer := pricing.NewService(cat)
	if err := selectStrategy(pricer, cfg.Strategy); err != nil {
		return err
	}

	engine := sim.NewEngine(cat, log, pricer, sim.Config{MinDelta: cfg.MinPriceDelta})
	history := report.NewHistory(cfg.HistoryPath)
	if err := history.Load(); err != nil {
		obs.Logger.Warn("history unavailable", "path", cfg.HistoryPath, "error", err)
	}
	alerts := monitor.NewAlertEngine(monitor.AlertConfig{
		PriceMoveThresholdPct:   5,
		VolatilityHighThreshold: 0.5,
		InflationThresholdPct:   10,
	})

	scheduler := sim.NewScheduler()
	if err := scheduler.Add(cfg.RepriceCron, "reprice", func() error {
		return repriceJob(engine, cat, history)
	}); err != nil {
		return err
	}
	var lastSnapshot *monitor.Snapshot
	if err := scheduler.Add(cfg.SnapshotCron, "snapshot", func() error {
		var err error
		lastSnapshot, err = snapshotJob(engine, cat, alerts, lastSnapshot, cfg.SnapshotPath)
		return err
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cfg.RunFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunFor)
		defer cancel()
	}

	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	obs.Logger.Info("retail economy running",
		"strategy", pricer.StrategyName(),
		"shoppers", cfg.Shoppers,
		"purchases_per_sec", cfg.PurchasesPerSec)

	pool := sim.NewShopperPool(engine, sim.ShopperConfig{
		Shoppers:     cfg.Shoppers,
		PurchaseRate: rate.Limit(cfg.PurchasesPerSec),
		MaxQuantity:  cfg.MaxQuantity,
	})
	pool.Run(ctx)

	metrics, err := engine.Metrics()
	if err != nil {
		return err
	}
	obs.Logger.Info("final market state",
		"total_revenue", metrics.TotalRevenue,
		"transactions", metrics.TotalTransactions,
		"volatility", metrics.MarketVolatility,
		"inflation_pct", metrics.PriceInflation)
	return nil
}

func openStores(cfg config.Config) (catalog.Provider, ledger.Log, error) {
	if cfg.DatabaseDSN == "" {
		return catalog.NewMemoryCatalog(), ledger.NewMemoryLog(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	cat := catalog.NewGormCatalog(db)
	if err := cat.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("migrating catalog: %w", err)
	}
	log := ledger.NewGormLog(db)
	if err := log.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("migrating sale log: %w", err)
	}
	return cat, log, nil
}

// seedCatalog fills an empty catalog with a starter assortment.
func seedCatalog(cat catalog.Provider) error {
	existing, err := cat.ListProducts()
	if err != nil {
		return fmt.Errorf("listing catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	seed := []model.Product{
		{ID: "espresso", Name: "Espresso", Price: 2.50, Stock: 200, InitialStock: 200},
		{ID: "croissant", Name: "Croissant", Price: 3.00, Stock: 100, InitialStock: 100},
		{ID: "orange-juice", Name: "Orange Juice", Price: 4.20, Stock: 80, InitialStock: 80},
		{ID: "baguette", Name: "Baguette", Price: 1.80, Stock: 150, InitialStock: 150},
		{ID: "jam", Name: "Strawberry Jam", Price: 5.50, Stock: 60, InitialStock: 60},
	}
	for _, p := range seed {
		if err := cat.AddProduct(p); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
	}
	return nil
}

func selectStrategy(pricer *pricing.Service, name string) error {
	switch name {
	case "demand":
		pricer.SetStrategy(pricing.NewDemandStrategy())
	case "supply":
		pricer.SetStrategy(pricing.NewSupplyStrategy())
	case "hybrid", "":
		pricer.SetStrategy(pricing.NewHybridStrategy())
	default:
		return errors.New("unknown pricing strategy: " + name)
	}
	return nil
}

// repriceJob runs a market-wide repricing pass and appends the outcome to
// the history CSV.
func repriceJob(engine *sim.Engine, cat catalog.Provider, history *report.History) error {
	if err := engine.RepriceAll(); err != nil {
		return err
	}

	products, err := cat.ListProducts()
	if err != nil {
		return err
	}
	entries := make([]report.HistoryEntry, 0, len(products))
	for _, p := range products {
		analysis, err := engine.Analysis(p.ID)
		if err != nil {
			continue
		}
		entries = append(entries, report.HistoryEntry{
			Timestamp:   time.Now(),
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       analysis.CurrentPrice,
			Stock:       p.Stock,
			DemandLevel: analysis.DemandLevel,
			StockLevel:  analysis.StockLevel,
		})
	}
	return history.Append(entries)
}

// snapshotJob captures the market, compares it with the previous capture,
// and logs any alerts.
func snapshotJob(engine *sim.Engine, cat catalog.Provider, alerts *monitor.AlertEngine, prev *monitor.Snapshot, path string) (*monitor.Snapshot, error) {
	products, err := cat.ListProducts()
	if err != nil {
		return prev, err
	}
	metrics, err := engine.Metrics()
	if err != nil {
		return prev, err
	}

	current := monitor.NewSnapshot(products, metrics)
	if prev != nil {
		deltas := monitor.CompareSnapshots(prev, current, 1, 0.05)
		for _, alert := range alerts.GenerateAlerts(deltas, current) {
			obs.Logger.Info("market alert",
				"type", string(alert.Type),
				"severity", alert.Severity,
				"message", alert.Message)
		}
	}

	if err := monitor.SaveSnapshot(path, current); err != nil {
		return current, err
	}
	return current, nil
}
