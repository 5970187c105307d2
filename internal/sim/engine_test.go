package sim

import (
	"errors"
	"testing"

	"github.com/guarzo/retailsim/internal/catalog"
	"github.com/guarzo/retailsim/internal/ledger"
	"github.com/guarzo/retailsim/internal/model"
	"github.com/guarzo/retailsim/internal/pricing"
)

func newTestEngine(t *testing.T, products ...model.Product) (*Engine, *catalog.MemoryCatalog, *ledger.MemoryLog) {
	t.Helper()
	cat := catalog.NewMemoryCatalog()
	for _, p := range products {
		if err := cat.AddProduct(p); err != nil {
			t.Fatalf("AddProduct(%s): %v", p.ID, err)
		}
	}
	log := ledger.NewMemoryLog()
	engine := NewEngine(cat, log, pricing.NewService(cat), Config{})
	return engine, cat, log
}

func TestRecordSaleAppendsAndDecrementsStock(t *testing.T) {
	engine, cat, log := newTestEngine(t,
		model.Product{ID: "espresso", Name: "Espresso", Price: 2.50, Stock: 100, InitialStock: 100})

	rec, err := engine.RecordSale("espresso", 3)
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if rec.Quantity != 3 || rec.PriceAtSale != 2.50 || rec.Revenue != 7.50 {
		t.Errorf("sale record = %+v", rec)
	}

	if log.Len() != 1 {
		t.Errorf("log size = %d, want 1", log.Len())
	}
	p, _ := cat.GetProduct("espresso")
	if p.Stock != 97 {
		t.Errorf("stock = %d after sale, want 97", p.Stock)
	}
}

func TestRecordSaleRepricesFromOwnSale(t *testing.T) {
	// Five prior sales put the product one unit short of the high-demand
	// tier; the sale being recorded must count toward its own repricing.
	engine, cat, log := newTestEngine(t,
		model.Product{ID: "croissant", Name: "Croissant", Price: 3.00, Stock: 100, InitialStock: 100})

	for i := 0; i < 5; i++ {
		if err := log.AppendSale(ledger.NewSaleRecord("croissant", 1, 3.00)); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := engine.RecordSale("croissant", 1); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	// 6 recent units: demand 3.45, supply 2.85 (ratio still ≥0.8), hybrid 3.21.
	p, _ := cat.GetProduct("croissant")
	if p.Price != 3.21 {
		t.Errorf("price = %.2f after repricing, want 3.21", p.Price)
	}
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	engine, _, log := newTestEngine(t,
		model.Product{ID: "jam", Price: 5.50, Stock: 2, InitialStock: 60})

	if _, err := engine.RecordSale("jam", 5); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("err = %v, want ErrInsufficientStock", err)
	}
	if log.Len() != 0 {
		t.Error("rejected sale still reached the log")
	}
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	if _, err := engine.RecordSale("ghost", 1); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestRecordSaleInvalidQuantity(t *testing.T) {
	engine, _, _ := newTestEngine(t,
		model.Product{ID: "espresso", Price: 2.50, Stock: 10, InitialStock: 10})

	if _, err := engine.RecordSale("espresso", 0); !errors.Is(err, ledger.ErrInvalidQuantity) {
		t.Errorf("err = %v, want ErrInvalidQuantity", err)
	}
}

func TestRepriceAll(t *testing.T) {
	engine, cat, _ := newTestEngine(t,
		model.Product{ID: "espresso", Price: 2.50, Stock: 100, InitialStock: 100},
		model.Product{ID: "croissant", Price: 3.00, Stock: 5, InitialStock: 100})

	if err := engine.RepriceAll(); err != nil {
		t.Fatalf("RepriceAll: %v", err)
	}

	// No sales: demand tier 0.8 for both; croissant is scarce (ratio 0.05).
	// espresso: demand 2.00, supply 2.38 (2.50×0.95), hybrid 2.15.
	// croissant: demand 2.40, supply 3.60 (3.00×1.2), hybrid 2.88.
	espresso, _ := cat.GetProduct("espresso")
	if espresso.Price != 2.15 {
		t.Errorf("espresso price = %.2f, want 2.15", espresso.Price)
	}
	croissant, _ := cat.GetProduct("croissant")
	if croissant.Price != 2.88 {
		t.Errorf("croissant price = %.2f, want 2.88", croissant.Price)
	}
}

func TestMetricsAndCacheInvalidation(t *testing.T) {
	engine, _, _ := newTestEngine(t,
		model.Product{ID: "espresso", Price: 2.50, Stock: 100, InitialStock: 100})

	m, err := engine.Metrics()
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if m.TotalTransactions != 0 {
		t.Errorf("TotalTransactions = %d on empty log", m.TotalTransactions)
	}

	if _, err := engine.RecordSale("espresso", 2); err != nil {
		t.Fatal(err)
	}

	m, err = engine.Metrics()
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalTransactions != 1 {
		t.Errorf("TotalTransactions = %d after sale, want 1", m.TotalTransactions)
	}
	if m.TotalRevenue != 5.00 {
		t.Errorf("TotalRevenue = %.2f, want 5.00", m.TotalRevenue)
	}
}

func TestTopProductsThroughEngine(t *testing.T) {
	engine, _, _ := newTestEngine(t,
		model.Product{ID: "espresso", Price: 2.50, Stock: 100, InitialStock: 100},
		model.Product{ID: "croissant", Price: 3.00, Stock: 100, InitialStock: 100})

	if _, err := engine.RecordSale("croissant", 4); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.RecordSale("espresso", 1); err != nil {
		t.Fatal(err)
	}

	top, err := engine.TopProducts(5)
	if err != nil {
		t.Fatalf("TopProducts: %v", err)
	}
	if len(top) != 2 || top[0].ProductID != "croissant" {
		t.Errorf("ranking = %+v, want croissant first", top)
	}
}

func TestAnalysisThroughEngine(t *testing.T) {
	engine, _, _ := newTestEngine(t,
		model.Product{ID: "espresso", Price: 2.50, Stock: 100, InitialStock: 100})

	a, err := engine.Analysis("espresso")
	if err != nil {
		t.Fatalf("Analysis: %v", err)
	}
	if a.DemandLevel != model.LevelLow {
		t.Errorf("DemandLevel = %s with no sales, want LOW", a.DemandLevel)
	}
	if a.StockLevel != model.LevelHigh {
		t.Errorf("StockLevel = %s at full stock, want HIGH", a.StockLevel)
	}

	if _, err := engine.Analysis("ghost"); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}
