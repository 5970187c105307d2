package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/guarzo/retailsim/internal/model"
)

// saleRow is the persisted shape of a sale record. Seq is the insertion
// order the analytics layer depends on; monetary columns are fixed-point
// decimals converted at the boundary.
type saleRow struct {
	Seq         uint            `gorm:"primaryKey;autoIncrement"`
	ID          string          `gorm:"uniqueIndex;not null"`
	ProductID   string          `gorm:"index;not null"`
	Quantity    int             `gorm:"not null"`
	PriceAtSale decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Revenue     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Timestamp   time.Time       `gorm:"not null"`
}

func (saleRow) TableName() string {
	return "sales"
}

// GormLog is a Log backed by a SQL database through GORM. Rows are only
// ever inserted; there is no update or delete path.
type GormLog struct {
	db *gorm.DB
}

func NewGormLog(db *gorm.DB) *GormLog {
	return &GormLog{db: db}
}

// Migrate creates the sales table.
func (l *GormLog) Migrate() error {
	return l.db.AutoMigrate(&saleRow{})
}

func (l *GormLog) ListSales() ([]model.SaleRecord, error) {
	var rows []saleRow
	if err := l.db.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	return toModels(rows), nil
}

func (l *GormLog) ListSalesByProduct(productID string) ([]model.SaleRecord, error) {
	var rows []saleRow
	if err := l.db.Where("product_id = ?", productID).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing sales for %s: %w", productID, err)
	}
	return toModels(rows), nil
}

func (l *GormLog) AppendSale(record model.SaleRecord) error {
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
	row := saleRow{
		ID:          record.ID,
		ProductID:   record.ProductID,
		Quantity:    record.Quantity,
		PriceAtSale: decimal.NewFromFloat(record.PriceAtSale),
		Revenue:     decimal.NewFromFloat(record.Revenue),
		Timestamp:   record.Timestamp,
	}
	if err := l.db.Create(&row).Error; err != nil {
		return fmt.Errorf("appending sale %s: %w", record.ID, err)
	}
	return nil
}

func toModels(rows []saleRow) []model.SaleRecord {
	out := make([]model.SaleRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.SaleRecord{
			ID:          r.ID,
			ProductID:   r.ProductID,
			Quantity:    r.Quantity,
			PriceAtSale: r.PriceAtSale.InexactFloat64(),
			Revenue:     r.Revenue.InexactFloat64(),
			Timestamp:   r.Timestamp,
		})
	}
	return out
}
