package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guarzo/retailsim/internal/model"
)

// MemoryLog is an in-process append-only Log. Reads return copies so a
// caller can never mutate history.
type MemoryLog struct {
	mu    sync.RWMutex
	sales []model.SaleRecord
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) ListSales() ([]model.SaleRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.SaleRecord, len(l.sales))
	copy(out, l.sales)
	return out, nil
}

func (l *MemoryLog) ListSalesByProduct(productID string) ([]model.SaleRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []model.SaleRecord
	for _, s := range l.sales {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out, nil
}

// AppendSale stores the record, filling in id, revenue, and timestamp when
// the caller left them zero.
func (l *MemoryLog) AppendSale(record model.SaleRecord) error {
	if err := validate(record); err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Revenue == 0 {
		record.Revenue = float64(record.Quantity) * record.PriceAtSale
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sales = append(l.sales, record)
	return nil
}

// Len reports the current log size.
func (l *MemoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sales)
}
