package monitor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/guarzo/retailsim/internal/model"
)

func testProducts() []model.Product {
	return []model.Product{
		{ID: "espresso", Name: "Espresso", Price: 2.50, Stock: 80, InitialStock: 100},
		{ID: "croissant", Name: "Croissant", Price: 3.00, Stock: 40, InitialStock: 50},
	}
}

func TestNewSnapshot(t *testing.T) {
	metrics := model.EconomicMetrics{TotalRevenue: 120.50, TotalTransactions: 42}
	snap := NewSnapshot(testProducts(), metrics)

	if len(snap.Products) != 2 {
		t.Fatalf("snapshot has %d products, want 2", len(snap.Products))
	}
	if snap.Products["espresso"].Price != 2.50 {
		t.Errorf("espresso price = %.2f, want 2.50", snap.Products["espresso"].Price)
	}
	if snap.Metrics.TotalRevenue != 120.50 {
		t.Errorf("metrics revenue = %.2f, want 120.50", snap.Metrics.TotalRevenue)
	}
	if snap.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestSnapshotSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	snap := NewSnapshot(testProducts(), model.EconomicMetrics{TotalRevenue: 10})

	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if len(loaded.Products) != 2 {
		t.Errorf("loaded %d products, want 2", len(loaded.Products))
	}
	if loaded.Products["croissant"].Stock != 40 {
		t.Errorf("croissant stock = %d, want 40", loaded.Products["croissant"].Stock)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadSnapshot on a missing file did not fail")
	}
}

func TestCompareSnapshots(t *testing.T) {
	old := &Snapshot{
		Timestamp: time.Now().Add(-time.Hour),
		Products: map[string]*SnapshotProductData{
			"espresso":  {Name: "Espresso", Price: 2.50},
			"croissant": {Name: "Croissant", Price: 3.00},
			"retired":   {Name: "Retired", Price: 9.99},
		},
	}
	current := &Snapshot{
		Timestamp: time.Now(),
		Products: map[string]*SnapshotProductData{
			"espresso":  {Name: "Espresso", Price: 3.00},  // +20%
			"croissant": {Name: "Croissant", Price: 3.01}, // +0.33%
			"brandnew":  {Name: "New", Price: 1.00},
		},
	}

	deltas := CompareSnapshots(old, current, 5, 100)
	if len(deltas) != 1 {
		t.Fatalf("got %d deltas, want 1", len(deltas))
	}
	d := deltas[0]
	if d.ProductID != "espresso" {
		t.Errorf("delta product = %s, want espresso", d.ProductID)
	}
	if d.DeltaPct < 19.9 || d.DeltaPct > 20.1 {
		t.Errorf("DeltaPct = %.2f, want ~20", d.DeltaPct)
	}
}

func TestCompareSnapshotsAbsoluteThreshold(t *testing.T) {
	old := &Snapshot{Products: map[string]*SnapshotProductData{
		"jam": {Name: "Jam", Price: 100.00},
	}}
	current := &Snapshot{Products: map[string]*SnapshotProductData{
		"jam": {Name: "Jam", Price: 102.00}, // only 2% but 2.00 absolute
	}}

	deltas := CompareSnapshots(old, current, 50, 1.50)
	if len(deltas) != 1 {
		t.Fatalf("got %d deltas, want 1 via absolute threshold", len(deltas))
	}
}
