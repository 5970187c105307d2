package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/guarzo/retailsim/internal/model"
)

// productRow is the persisted shape of a product. Price is stored as a
// fixed-point decimal column and converted at the boundary; the core works
// in float64.
type productRow struct {
	ID           string          `gorm:"primaryKey"`
	Name         string          `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock        int             `gorm:"not null"`
	InitialStock int             `gorm:"not null"`
}

func (productRow) TableName() string {
	return "products"
}

// GormCatalog is a Provider backed by a SQL database through GORM. Updates
// are guarded single-row UPDATEs: a vanished row surfaces as
// ErrProductNotFound, which the pricing layer treats as a soft failure.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// Migrate creates the products table.
func (c *GormCatalog) Migrate() error {
	return c.db.AutoMigrate(&productRow{})
}

func (c *GormCatalog) ListProducts() ([]model.Product, error) {
	var rows []productRow
	if err := c.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	out := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (c *GormCatalog) GetProduct(id string) (model.Product, error) {
	var row productRow
	if err := c.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("loading product %s: %w", id, err)
	}
	return row.toModel(), nil
}

func (c *GormCatalog) AddProduct(p model.Product) error {
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 || p.InitialStock < 0 {
		return ErrNegativeStock
	}
	row := productRow{
		ID:           p.ID,
		Name:         p.Name,
		Price:        decimal.NewFromFloat(p.Price),
		Stock:        p.Stock,
		InitialStock: p.InitialStock,
	}
	if err := c.db.Create(&row).Error; err != nil {
		return fmt.Errorf("adding product %s: %w", p.ID, err)
	}
	return nil
}

func (c *GormCatalog) SetProductPrice(id string, price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	res := c.db.Model(&productRow{}).
		Where("id = ?", id).
		Update("price", decimal.NewFromFloat(price))
	if res.Error != nil {
		return fmt.Errorf("updating price of %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (c *GormCatalog) SetProductStock(id string, stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	res := c.db.Model(&productRow{}).
		Where("id = ?", id).
		Update("stock", stock)
	if res.Error != nil {
		return fmt.Errorf("updating stock of %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r productRow) toModel() model.Product {
	return model.Product{
		ID:           r.ID,
		Name:         r.Name,
		Price:        r.Price.InexactFloat64(),
		Stock:        r.Stock,
		InitialStock: r.InitialStock,
	}
}
