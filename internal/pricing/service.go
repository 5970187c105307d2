package pricing

import (
	"math"

	"github.com/guarzo/retailsim/internal/model"
	"github.com/guarzo/retailsim/internal/obs"
)

// DefaultMinDelta is the smallest price change worth persisting. Smaller
// fluctuations are dropped to avoid write churn.
const DefaultMinDelta = 0.01

// deltaEpsilon keeps cent-sized deltas from falling just under minDelta
// through float rounding.
const deltaEpsilon = 1e-9

// CatalogWriter is the single downstream write the pricing service performs.
type CatalogWriter interface {
	SetProductPrice(id string, price float64) error
}

// Service orchestrates a pricing strategy and writes accepted
// recommendations back through the catalog.
type Service struct {
	catalog  CatalogWriter
	strategy Strategy
}

// NewService creates a pricing service using the hybrid strategy.
func NewService(catalog CatalogWriter) *Service {
	return &Service{
		catalog:  catalog,
		strategy: NewHybridStrategy(),
	}
}

// SetStrategy replaces the active strategy.
func (s *Service) SetStrategy(strategy Strategy) {
	s.strategy = strategy
}

// StrategyName reports the active strategy.
func (s *Service) StrategyName() string {
	return s.strategy.Name()
}

// CalculatePrice delegates to the active strategy.
func (s *Service) CalculatePrice(p model.Product, log []model.SaleRecord, windowHours int) float64 {
	return s.strategy.Price(p, log, windowHours)
}

// ApplyDynamicPricing computes a recommendation and persists it when it
// moves the price by at least minDelta (DefaultMinDelta when non-positive).
// A rejected write is logged and the original price is returned unchanged;
// retry policy belongs to the caller.
func (s *Service) ApplyDynamicPricing(p model.Product, log []model.SaleRecord, minDelta float64) float64 {
	if minDelta <= 0 {
		minDelta = DefaultMinDelta
	}

	suggested := s.strategy.Price(p, log, 0)
	if math.Abs(suggested-p.Price) < minDelta-deltaEpsilon {
		return p.Price
	}

	if err := s.catalog.SetProductPrice(p.ID, suggested); err != nil {
		obs.Logger.Warn("price update rejected",
			"product_id", p.ID,
			"field", "price",
			"attempted", suggested,
			"error", err)
		return p.Price
	}

	return suggested
}

// ApplyDynamicPricingBatch reprices each product independently; one
// product's failed write does not block the rest. The returned products
// carry their final prices, in input order.
func (s *Service) ApplyDynamicPricingBatch(products []model.Product, log []model.SaleRecord) []model.Product {
	out := make([]model.Product, len(products))
	for i, p := range products {
		p.Price = s.ApplyDynamicPricing(p, log, DefaultMinDelta)
		out[i] = p
	}
	return out
}

// Analysis builds the diagnostic pricing view for a product. The demand and
// stock classifications are coarser than the strategy tiers on purpose; they
// feed dashboards, not prices.
func (s *Service) Analysis(p model.Product, log []model.SaleRecord) model.PricingAnalysis {
	suggested := s.strategy.Price(p, log, 0)

	change := suggested - p.Price
	changePct := 0.0
	if p.Price > 0 {
		changePct = change / p.Price * 100
	}

	return model.PricingAnalysis{
		ProductID:      p.ID,
		CurrentPrice:   p.Price,
		SuggestedPrice: suggested,
		PriceChange:    round2(change),
		PriceChangePct: changePct,
		DemandLevel:    demandLevel(recentUnits(p.ID, log, DefaultWindowHours)),
		StockLevel:     stockLevel(p.StockRatio()),
	}
}

func demandLevel(units int) model.Level {
	switch {
	case units >= 5:
		return model.LevelHigh
	case units >= 2:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

func stockLevel(ratio float64) model.Level {
	switch {
	case ratio <= 0.3:
		return model.LevelLow
	case ratio <= 0.7:
		return model.LevelMedium
	default:
		return model.LevelHigh
	}
}
