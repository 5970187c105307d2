package pricing

import "github.com/guarzo/retailsim/internal/model"

// DemandStrategy raises or lowers the price with recent sales volume. The
// multiplier tiers are checked highest first, so the strongest matching tier
// wins.
type DemandStrategy struct{}

func NewDemandStrategy() *DemandStrategy {
	return &DemandStrategy{}
}

func (s *DemandStrategy) Name() string {
	return "demand"
}

func (s *DemandStrategy) Price(p model.Product, log []model.SaleRecord, windowHours int) float64 {
	units := recentUnits(p.ID, log, windowHours)
	price := p.Price * demandMultiplier(units)
	return round2(clamp(price, p.Price, 0.7, 1.5))
}

func demandMultiplier(units int) float64 {
	switch {
	case units >= 10:
		return 1.30
	case units >= 5:
		return 1.15
	case units >= 2:
		return 1.00
	case units >= 1:
		return 0.95
	default:
		return 0.80
	}
}
