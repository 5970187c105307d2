// Package analytics aggregates the append-only sale log into per-product
// statistics and market-wide economic indicators.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/guarzo/retailsim/internal/model"
)

// DefaultTopN is the ranking size returned when the caller passes a
// non-positive limit.
const DefaultTopN = 5

// inflationWindow is the number of records in each end of the log compared
// for the inflation figure.
const inflationWindow = 10

// Service computes derived views over a sale log and product set. It holds
// no state of its own; every result is a pure function of its inputs.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// ProductStats aggregates the log for one product. A product with no sales
// yields zero totals and an empty history.
func (s *Service) ProductStats(productID string, log []model.SaleRecord) model.ProductStats {
	stats := model.ProductStats{
		ProductID:    productID,
		PriceHistory: []model.PricePoint{},
	}

	for _, sale := range log {
		if sale.ProductID != productID {
			continue
		}
		stats.TotalSold += sale.Quantity
		stats.TotalRevenue += sale.Revenue
		stats.PriceHistory = append(stats.PriceHistory, model.PricePoint{
			Price:     sale.PriceAtSale,
			Timestamp: sale.Timestamp,
		})
	}

	if stats.TotalSold > 0 {
		stats.AveragePrice = stats.TotalRevenue / float64(stats.TotalSold)
	}

	return stats
}

// EconomicMetrics summarizes the whole market. An empty log returns the
// zero value for every field.
func (s *Service) EconomicMetrics(log []model.SaleRecord, products []model.Product) model.EconomicMetrics {
	if len(log) == 0 {
		return model.EconomicMetrics{}
	}

	m := model.EconomicMetrics{
		TotalTransactions: len(log),
	}
	for _, sale := range log {
		m.TotalRevenue += sale.Revenue
	}
	m.AverageTransactionValue = m.TotalRevenue / float64(m.TotalTransactions)
	m.MarketVolatility = marketVolatility(log, products)
	m.PriceInflation = priceInflation(log)

	return m
}

// marketVolatility averages, over the product set, the root mean square of
// successive realized-price changes per product. Products with fewer than
// two sales contribute zero.
func marketVolatility(log []model.SaleRecord, products []model.Product) float64 {
	if len(products) == 0 {
		return 0
	}

	var total float64
	for _, p := range products {
		var prices []float64
		for _, sale := range log {
			if sale.ProductID == p.ID {
				prices = append(prices, sale.PriceAtSale)
			}
		}
		total += priceVolatility(prices)
	}

	return total / float64(len(products))
}

func priceVolatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	var sumSq float64
	for i := 1; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(prices)-1))
}

// priceInflation compares the mean sale price of the most recent ten
// records with that of the earliest ten, over the whole log in insertion
// order. Under twenty records the two windows overlap; that behavior is
// kept as-is.
func priceInflation(log []model.SaleRecord) float64 {
	oldWindow := log
	if len(oldWindow) > inflationWindow {
		oldWindow = log[:inflationWindow]
	}
	recentWindow := log
	if len(recentWindow) > inflationWindow {
		recentWindow = log[len(log)-inflationWindow:]
	}

	oldAvg := meanPrice(oldWindow)
	recentAvg := meanPrice(recentWindow)
	if oldAvg == 0 {
		return 0
	}

	return (recentAvg - oldAvg) / oldAvg * 100
}

func meanPrice(window []model.SaleRecord) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, sale := range window {
		sum += sale.PriceAtSale
	}
	return sum / float64(len(window))
}

// TopProducts ranks the products appearing in the log by units sold,
// descending. Ties keep the order in which products first appear in the
// log.
func (s *Service) TopProducts(log []model.SaleRecord, limit int) []model.ProductStats {
	if limit <= 0 {
		limit = DefaultTopN
	}

	seen := make(map[string]bool)
	var ids []string
	for _, sale := range log {
		if !seen[sale.ProductID] {
			seen[sale.ProductID] = true
			ids = append(ids, sale.ProductID)
		}
	}

	stats := make([]model.ProductStats, 0, len(ids))
	for _, id := range ids {
		stats = append(stats, s.ProductStats(id, log))
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSold > stats[j].TotalSold
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// SalesTrends buckets the trailing window's sales by whole hours of age,
// nearest hour first.
func (s *Service) SalesTrends(log []model.SaleRecord, windowHours int) model.SalesTrends {
	if windowHours <= 0 {
		windowHours = 24
	}

	now := time.Now()
	cutoff := now.Add(-time.Duration(windowHours) * time.Hour)

	byHour := make(map[int]*model.TrendBucket)
	trends := model.SalesTrends{WindowHours: windowHours}

	for _, sale := range log {
		if !sale.Timestamp.After(cutoff) {
			continue
		}
		hoursAgo := int(now.Sub(sale.Timestamp).Hours())
		b, ok := byHour[hoursAgo]
		if !ok {
			b = &model.TrendBucket{HoursAgo: hoursAgo}
			byHour[hoursAgo] = b
		}
		b.Units += sale.Quantity
		b.Revenue += sale.Revenue
		trends.TotalUnits += sale.Quantity
		trends.TotalRevenue += sale.Revenue
	}

	trends.Buckets = make([]model.TrendBucket, 0, len(byHour))
	for _, b := range byHour {
		trends.Buckets = append(trends.Buckets, *b)
	}
	sort.Slice(trends.Buckets, func(i, j int) bool {
		return trends.Buckets[i].HoursAgo < trends.Buckets[j].HoursAgo
	})

	return trends
}
