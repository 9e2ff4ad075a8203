package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is an informational product tag.
type Category string

const (
	CategoryOil     Category = "oil"
	CategoryGrease  Category = "grease"
	CategoryFilter  Category = "filter"
	CategoryFencing Category = "fencing"
	CategoryFeed    Category = "feed"
	CategoryOther   Category = "other"
)

// Product is one consumable in the warehouse, keyed by its unique name.
type Product struct {
	ID       uint            `gorm:"column:id;primaryKey" json:"id"`
	Name     string          `gorm:"column:name;type:varchar(120);uniqueIndex;not null" json:"name"`
	Category Category        `gorm:"column:category;type:varchar(40)" json:"category"`
	Quantity decimal.Decimal `gorm:"column:quantity;type:decimal(20,4);not null" json:"quantity"`
	// SeedQuantity is the quantity the product was seeded with; the drift
	// audit measures current consumption against it.
	SeedQuantity decimal.Decimal `gorm:"column:seed_quantity;type:decimal(20,4);not null" json:"seed_quantity"`
	Unit         string          `gorm:"column:unit;type:varchar(20)" json:"unit"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:decimal(20,4)" json:"unit_price"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// StockValue is quantity times unit price.
func (p Product) StockValue() decimal.Decimal {
	return p.Quantity.Mul(p.UnitPrice)
}
