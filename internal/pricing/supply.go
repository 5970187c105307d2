package pricing

import "github.com/guarzo/retailsim/internal/model"

// SupplyStrategy prices against scarcity: the lower the remaining share of
// the initial stock, the higher the multiplier. The sale log is ignored.
type SupplyStrategy struct{}

func NewSupplyStrategy() *SupplyStrategy {
	return &SupplyStrategy{}
}

func (s *SupplyStrategy) Name() string {
	return "supply"
}

func (s *SupplyStrategy) Price(p model.Product, _ []model.SaleRecord, _ int) float64 {
	price := p.Price * supplyMultiplier(p.StockRatio())
	return round2(clamp(price, p.Price, 0.8, 1.4))
}

// supplyMultiplier checks the scarcity branches before the surplus branch,
// so a ratio of exactly 0.3 still prices as scarce.
func supplyMultiplier(ratio float64) float64 {
	switch {
	case ratio <= 0.1:
		return 1.2
	case ratio <= 0.3:
		return 1.1
	case ratio >= 0.8:
		return 0.95
	default:
		return 1.0
	}
}
