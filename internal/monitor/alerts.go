package monitor

import (
	"fmt"
	"sort"
	"time"
)

// AlertType represents different kinds of market alerts.
type AlertType string

const (
	AlertPriceDrop       AlertType = "PRICE_DROP"
	AlertPriceIncrease   AlertType = "PRICE_INCREASE"
	AlertVolatilitySpike AlertType = "VOLATILITY_SPIKE"
	AlertInflation       AlertType = "INFLATION"
)

// Alert represents a significant market event.
type Alert struct {
	Type      AlertType              `json:"type"`
	Severity  string                 `json:"severity"` // "HIGH", "MEDIUM", "LOW"
	ProductID string                 `json:"product_id,omitempty"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// AlertConfig contains alert generation parameters.
type AlertConfig struct {
	PriceMoveThresholdPct   float64 // alert when a product moves by this %
	VolatilityHighThreshold float64 // alert when market volatility exceeds this
	InflationThresholdPct   float64 // alert when inflation magnitude exceeds this
	MinSeverity             string  // only keep alerts at or above this severity
}

// AlertEngine turns snapshot deltas and metrics into alerts.
type AlertEngine struct {
	config AlertConfig
}

func NewAlertEngine(config AlertConfig) *AlertEngine {
	return &AlertEngine{config: config}
}

// GenerateAlerts analyzes price deltas between two snapshots plus the
// current metrics and creates the relevant alerts, strongest first.
func (ae *AlertEngine) GenerateAlerts(deltas []PriceDelta, current *Snapshot) []Alert {
	var alerts []Alert

	for _, delta := range deltas {
		if abs(delta.DeltaPct) < ae.config.PriceMoveThresholdPct {
			continue
		}

		alertType := AlertPriceIncrease
		verb := "rose"
		if delta.Delta < 0 {
			alertType = AlertPriceDrop
			verb = "dropped"
		}
		alerts = append(alerts, Alert{
			Type:      alertType,
			Severity:  ae.getSeverity(abs(delta.DeltaPct)),
			ProductID: delta.ProductID,
			Message:   fmt.Sprintf("%s price %s %.1f%% (%.2f)", delta.Name, verb, abs(delta.DeltaPct), abs(delta.Delta)),
			Timestamp: time.Now(),
			Details: map[string]interface{}{
				"old_price": delta.OldPrice,
				"new_price": delta.NewPrice,
				"delta_pct": delta.DeltaPct,
			},
		})
	}

	if current != nil {
		if v := current.Metrics.MarketVolatility; ae.config.VolatilityHighThreshold > 0 && v >= ae.config.VolatilityHighThreshold {
			alerts = append(alerts, Alert{
				Type:      AlertVolatilitySpike,
				Severity:  "HIGH",
				Message:   fmt.Sprintf("Market volatility spiked to %.3f", v),
				Timestamp: time.Now(),
				Details:   map[string]interface{}{"volatility": v},
			})
		}
		if inf := current.Metrics.PriceInflation; ae.config.InflationThresholdPct > 0 && abs(inf) >= ae.config.InflationThresholdPct {
			alerts = append(alerts, Alert{
				Type:      AlertInflation,
				Severity:  "MEDIUM",
				Message:   fmt.Sprintf("Price inflation at %.1f%%", inf),
				Timestamp: time.Now(),
				Details:   map[string]interface{}{"inflation_pct": inf},
			})
		}
	}

	alerts = ae.filterBySeverity(alerts)

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return severityRank(alerts[i].Severity) > severityRank(alerts[j].Severity)
		}
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})

	return alerts
}

func (ae *AlertEngine) getSeverity(movePct float64) string {
	switch {
	case movePct >= 2*ae.config.PriceMoveThresholdPct:
		return "HIGH"
	case movePct >= 1.5*ae.config.PriceMoveThresholdPct:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func (ae *AlertEngine) filterBySeverity(alerts []Alert) []Alert {
	min := severityRank(ae.config.MinSeverity)
	if min == 0 {
		return alerts
	}
	var kept []Alert
	for _, a := range alerts {
		if severityRank(a.Severity) >= min {
			kept = append(kept, a)
		}
	}
	return kept
}

func severityRank(severity string) int {
	switch severity {
	case "HIGH":
		return 3
	case "MEDIUM":
		return 2
	case "LOW":
		return 1
	default:
		return 0
	}
}
