package model

import "time"

// Product is a catalog entry. Price and Stock are mutable through the
// catalog; InitialStock is the scarcity baseline fixed at creation.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	InitialStock int     `json:"initial_stock"`
}

// StockRatio returns current stock over initial stock, or 0 when the
// product was created with no stock baseline.
func (p Product) StockRatio() float64 {
	if p.InitialStock == 0 {
		return 0
	}
	return float64(p.Stock) / float64(p.InitialStock)
}

// SaleRecord is an immutable fact in the append-only sale log. Revenue is
// stored at sale time rather than re-derived so later pricing changes never
// rewrite history.
type SaleRecord struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Quantity    int       `json:"quantity"`
	PriceAtSale float64   `json:"price_at_sale"`
	Revenue     float64   `json:"revenue"`
	Timestamp   time.Time `json:"timestamp"`
}

// PricePoint is one realized price observation for a product.
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductStats aggregates the sale log for a single product. Recomputed on
// demand, never persisted.
type ProductStats struct {
	ProductID    string       `json:"product_id"`
	TotalSold    int          `json:"total_sold"`
	TotalRevenue float64      `json:"total_revenue"`
	AveragePrice float64      `json:"average_price"`
	PriceHistory []PricePoint `json:"price_history"`
}

// EconomicMetrics summarizes the whole market. All fields are zero when the
// sale log is empty.
type EconomicMetrics struct {
	TotalRevenue            float64 `json:"total_revenue"`
	TotalTransactions       int     `json:"total_transactions"`
	AverageTransactionValue float64 `json:"average_transaction_value"`
	MarketVolatility        float64 `json:"market_volatility"`
	PriceInflation          float64 `json:"price_inflation"`
}

// Level is a coarse classification used for dashboards.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// PricingAnalysis is a diagnostic view combining a price recommendation with
// demand and stock classification.
type PricingAnalysis struct {
	ProductID      string  `json:"product_id"`
	CurrentPrice   float64 `json:"current_price"`
	SuggestedPrice float64 `json:"suggested_price"`
	PriceChange    float64 `json:"price_change"`
	PriceChangePct float64 `json:"price_change_pct"`
	DemandLevel    Level   `json:"demand_level"`
	StockLevel     Level   `json:"stock_level"`
}

// TrendBucket accumulates sales that happened the same whole number of
// hours ago.
type TrendBucket struct {
	HoursAgo int     `json:"hours_ago"`
	Units    int     `json:"units"`
	Revenue  float64 `json:"revenue"`
}

// SalesTrends is the time-bucketed view of a trailing sales window.
type SalesTrends struct {
	WindowHours  int           `json:"window_hours"`
	Buckets      []TrendBucket `json:"buckets"`
	TotalUnits   int           `json:"total_units"`
	TotalRevenue float64       `json:"total_revenue"`
}
