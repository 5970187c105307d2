package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/guarzo/retailsim/internal/model"
)

// HistoryEntry is one row of the market history CSV: a product's state
// after a repricing pass.
type HistoryEntry struct {
	Timestamp   time.Time
	ProductID   string
	Name        string
	Price       float64
	Stock       int
	DemandLevel model.Level
	StockLevel  model.Level
}

// History appends repricing results to a CSV file and loads them back for
// trend summaries.
type History struct {
	path    string
	entries []HistoryEntry
}

func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads existing entries from the CSV file. A missing file is not an
// error; malformed rows are skipped.
func (h *History) Load() error {
	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening history file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return fmt.Errorf("reading history CSV: %w", err)
	}

	start := 0
	if len(records) > 0 && records[0][0] == "Timestamp" {
		start = 1
	}
	for i := start; i < len(records); i++ {
		entry, err := parseEntry(records[i])
		if err != nil {
			continue
		}
		h.entries = append(h.entries, entry)
	}
	return nil
}

// Append writes new entries to the file, creating it with a header when
// needed.
func (h *History) Append(entries []HistoryEntry) error {
	needsHeader := false
	if _, err := os.Stat(h.path); os.IsNotExist(err) {
		needsHeader = true
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if needsHeader {
		header := []string{"Timestamp", "ProductID", "Name", "Price", "Stock", "DemandLevel", "StockLevel"}
		if err := writer.Write(EscapeRow(header)); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for _, entry := range entries {
		record := []string{
			entry.Timestamp.Format(time.RFC3339),
			entry.ProductID,
			entry.Name,
			fmt.Sprintf("%.2f", entry.Price),
			strconv.Itoa(entry.Stock),
			string(entry.DemandLevel),
			string(entry.StockLevel),
		}
		if err := writer.Write(EscapeRow(record)); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	h.entries = append(h.entries, entries...)
	return nil
}

// Entries returns the loaded and appended entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	return h.entries
}

// PriceRange reports the lowest and highest recorded price for a product,
// or zeros when the product has no history.
func (h *History) PriceRange(productID string) (low, high float64) {
	for _, e := range h.entries {
		if e.ProductID != productID {
			continue
		}
		if low == 0 || e.Price < low {
			low = e.Price
		}
		if e.Price > high {
			high = e.Price
		}
	}
	return low, high
}

func parseEntry(record []string) (HistoryEntry, error) {
	if len(record) < 7 {
		return HistoryEntry{}, fmt.Errorf("short record: %d fields", len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	price, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("parsing price: %w", err)
	}
	stock, err := strconv.Atoi(record[4])
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("parsing stock: %w", err)
	}
	return HistoryEntry{
		Timestamp:   ts,
		ProductID:   record[1],
		Name:        record[2],
		Price:       price,
		Stock:       stock,
		DemandLevel: model.Level(record[5]),
		StockLevel:  model.Level(record[6]),
	}, nil
}
