// Package monitor captures point-in-time views of the market and raises
// alerts when prices move sharply between captures.
package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/guarzo/retailsim/internal/model"
)

// Snapshot is a point-in-time capture of catalog prices and market metrics.
type Snapshot struct {
	Timestamp time.Time                        `json:"timestamp"`
	Products  map[string]*SnapshotProductData  `json:"products"`
	Metrics   model.EconomicMetrics            `json:"metrics"`
}

// SnapshotProductData holds one product's state at capture time.
type SnapshotProductData struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// NewSnapshot captures the given products and metrics.
func NewSnapshot(products []model.Product, metrics model.EconomicMetrics) *Snapshot {
	snapshot := &Snapshot{
		Timestamp: time.Now(),
		Products:  make(map[string]*SnapshotProductData),
		Metrics:   metrics,
	}
	for _, p := range products {
		snapshot.Products[p.ID] = &SnapshotProductData{
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
		}
	}
	return snapshot
}

// LoadSnapshot loads a snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	return &snapshot, nil
}

// SaveSnapshot saves a snapshot to a JSON file.
func SaveSnapshot(path string, snapshot *Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// PriceDelta is a product price change between two snapshots.
type PriceDelta struct {
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	OldPrice    float64   `json:"old_price"`
	NewPrice    float64   `json:"new_price"`
	Delta       float64   `json:"delta"`
	DeltaPct    float64   `json:"delta_pct"`
	OldSnapshot time.Time `json:"old_snapshot"`
	NewSnapshot time.Time `json:"new_snapshot"`
}

// CompareSnapshots returns the price changes exceeding either threshold.
// Products missing from the old snapshot are skipped.
func CompareSnapshots(old, current *Snapshot, thresholdPct, thresholdAbs float64) []PriceDelta {
	var deltas []PriceDelta

	for id, p := range current.Products {
		prev, exists := old.Products[id]
		if !exists {
			continue
		}
		if prev.Price <= 0 || p.Price <= 0 {
			continue
		}

		delta := p.Price - prev.Price
		deltaPct := delta / prev.Price * 100

		if abs(deltaPct) >= thresholdPct || abs(delta) >= thresholdAbs {
			deltas = append(deltas, PriceDelta{
				ProductID:   id,
				Name:        p.Name,
				OldPrice:    prev.Price,
				NewPrice:    p.Price,
				Delta:       delta,
				DeltaPct:    deltaPct,
				OldSnapshot: old.Timestamp,
				NewSnapshot: current.Timestamp,
			})
		}
	}

	return deltas
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
