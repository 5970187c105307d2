// Package config provides runtime configuration for the simulator.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the simulator knobs. A Postgres DSN switches storage from
// the in-memory catalog/ledger to the database-backed ones.
type Config struct {
	DatabaseDSN    string
	Strategy       string // demand, supply, or hybrid
	MinPriceDelta  float64
	Shoppers       int
	PurchasesPerSec float64
	MaxQuantity    int
	RepriceCron    string
	SnapshotCron   string
	SnapshotPath   string
	HistoryPath    string
	RunFor         time.Duration // 0 runs until interrupted
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func floatenv(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// Load reads an optional .env file, then collects configuration from the
// environment with defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseDSN:     getenv("DATABASE_DSN", ""),
		Strategy:        getenv("PRICING_STRATEGY", "hybrid"),
		MinPriceDelta:   floatenv("MIN_PRICE_DELTA", 0.01),
		Shoppers:        atoienv("SHOPPERS", 3),
		PurchasesPerSec: floatenv("PURCHASES_PER_SEC", 1),
		MaxQuantity:     atoienv("MAX_QUANTITY", 3),
		RepriceCron:     getenv("REPRICE_CRON", "0 */5 * * * *"),
		SnapshotCron:    getenv("SNAPSHOT_CRON", "0 */15 * * * *"),
		SnapshotPath:    getenv("SNAPSHOT_PATH", "market_snapshot.json"),
		HistoryPath:     getenv("HISTORY_PATH", "market_history.csv"),
		RunFor:          durenvs("RUN_FOR_SECONDS", 0),
	}
}
