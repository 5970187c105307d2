// Package pricing derives recommended unit prices from sale history and
// stock levels under a choice of strategy.
package pricing

import (
	"math"
	"time"

	"github.com/guarzo/retailsim/internal/model"
)

// DefaultWindowHours is the trailing demand window used when the caller
// passes a non-positive window.
const DefaultWindowHours = 24

// Strategy computes a recommended price for a product given the sale log.
// Implementations are pure: no strategy mutates the product or the log.
type Strategy interface {
	Name() string
	Price(p model.Product, log []model.SaleRecord, windowHours int) float64
}

// recentUnits sums the quantities sold for a product within the trailing
// window.
func recentUnits(productID string, log []model.SaleRecord, windowHours int) int {
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}
	cutoff := time.Now().Add(-time.Duration(windowHours) * time.Hour)
	units := 0
	for _, s := range log {
		if s.ProductID == productID && s.Timestamp.After(cutoff) {
			units += s.Quantity
		}
	}
	return units
}

// clamp bounds price to [lo×base, hi×base].
func clamp(price, base, lo, hi float64) float64 {
	return math.Max(base*lo, math.Min(base*hi, price))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
