package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/guarzo/retailsim/internal/model"
)

func entry(productID string, price float64, stock int) HistoryEntry {
	return HistoryEntry{
		Timestamp:   time.Now().Truncate(time.Second),
		ProductID:   productID,
		Name:        "Product " + productID,
		Price:       price,
		Stock:       stock,
		DemandLevel: model.LevelMedium,
		StockLevel:  model.LevelHigh,
	}
}

func TestHistoryAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")

	h := NewHistory(path)
	if err := h.Append([]HistoryEntry{
		entry("espresso", 2.50, 80),
		entry("croissant", 3.00, 40),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("loaded %d entries, want 2", len(entries))
	}
	if entries[0].ProductID != "espresso" || entries[0].Price != 2.50 {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].DemandLevel != model.LevelMedium {
		t.Errorf("DemandLevel = %s, want MEDIUM", entries[1].DemandLevel)
	}
}

func TestHistoryAppendTwiceKeepsOneHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")

	h := NewHistory(path)
	if err := h.Append([]HistoryEntry{entry("espresso", 2.50, 80)}); err != nil {
		t.Fatal(err)
	}
	if err := h.Append([]HistoryEntry{entry("espresso", 2.60, 78)}); err != nil {
		t.Fatal(err)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if got := len(reloaded.Entries()); got != 2 {
		t.Errorf("loaded %d entries, want 2", got)
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing.csv"))
	if err := h.Load(); err != nil {
		t.Errorf("Load on missing file: %v, want nil", err)
	}
}

func TestHistoryPriceRange(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history.csv"))
	if err := h.Append([]HistoryEntry{
		entry("espresso", 2.50, 80),
		entry("espresso", 2.10, 70),
		entry("espresso", 3.10, 65),
		entry("croissant", 9.99, 1),
	}); err != nil {
		t.Fatal(err)
	}

	low, high := h.PriceRange("espresso")
	if low != 2.10 || high != 3.10 {
		t.Errorf("PriceRange = [%.2f, %.2f], want [2.10, 3.10]", low, high)
	}

	low, high = h.PriceRange("ghost")
	if low != 0 || high != 0 {
		t.Errorf("PriceRange for unknown product = [%.2f, %.2f], want zeros", low, high)
	}
}

func TestEscapeCell(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"espresso", "espresso"},
		{"", ""},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1.50", "'+1.50"},
		{"-2%", "'-2%"},
		{"@import", "'@import"},
		{"\tpadded", "'\tpadded"},
	}
	for _, c := range cases {
		if got := EscapeCell(c.in); got != c.want {
			t.Errorf("EscapeCell(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
