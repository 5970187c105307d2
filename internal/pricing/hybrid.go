package pricing

import "github.com/guarzo/retailsim/internal/model"

// HybridStrategy blends the demand and supply recommendations 60/40. It is
// the default strategy for the pricing service.
type HybridStrategy struct {
	demand *DemandStrategy
	supply *SupplyStrategy
}

func NewHybridStrategy() *HybridStrategy {
	return &HybridStrategy{
		demand: NewDemandStrategy(),
		supply: NewSupplyStrategy(),
	}
}

func (s *HybridStrategy) Name() string {
	return "hybrid"
}

func (s *HybridStrategy) Price(p model.Product, log []model.SaleRecord, windowHours int) float64 {
	demandPrice := s.demand.Price(p, log, windowHours)
	supplyPrice := s.supply.Price(p, log, windowHours)
	price := 0.6*demandPrice + 0.4*supplyPrice
	return round2(clamp(price, p.Price, 0.5, 2.0))
}
