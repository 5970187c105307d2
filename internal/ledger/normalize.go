package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/guarzo/retailsim/internal/model"
)

// legacyRecord is the shape older sale exports carried: short field names
// and a unix-seconds timestamp. Kept only for import compatibility; nothing
// past this adapter ever sees it.
type legacyRecord struct {
	Product string  `json:"product"`
	Qty     int     `json:"qty"`
	Price   float64 `json:"price"`
	Total   float64 `json:"total"`
	SoldAt  int64   `json:"sold_at"`
}

// UnmarshalRecord decodes a sale record in either the canonical or the
// legacy export shape, returning the canonical form.
func UnmarshalRecord(data []byte) (model.SaleRecord, error) {
	var canonical model.SaleRecord
	if err := json.Unmarshal(data, &canonical); err != nil {
		return model.SaleRecord{}, fmt.Errorf("decoding sale record: %w", err)
	}
	if canonical.ProductID != "" {
		return canonical, nil
	}

	var legacy legacyRecord
	if err := json.Unmarshal(data, &legacy); err != nil {
		return model.SaleRecord{}, fmt.Errorf("decoding legacy sale record: %w", err)
	}
	if legacy.Product == "" {
		return model.SaleRecord{}, ErrMissingProduct
	}

	record := model.SaleRecord{
		ProductID:   legacy.Product,
		Quantity:    legacy.Qty,
		PriceAtSale: legacy.Price,
		Revenue:     legacy.Total,
	}
	if record.Revenue == 0 {
		record.Revenue = float64(legacy.Qty) * legacy.Price
	}
	if legacy.SoldAt > 0 {
		record.Timestamp = time.Unix(legacy.SoldAt, 0).UTC()
	}
	return record, nil
}

// ImportRecords normalizes and appends a batch of exported records, in
// order. The first invalid record stops the import.
func ImportRecords(log Log, raw []json.RawMessage) (int, error) {
	for i, data := range raw {
		record, err := UnmarshalRecord(data)
		if err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
		if err := log.AppendSale(record); err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return len(raw), nil
}
