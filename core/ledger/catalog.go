package ledger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Product names referenced by the default consumption profile.
const (
	MotorOil        = "Motor Oil"
	HydraulicOil    = "Hydraulic Oil"
	TransmissionOil = "Transmission Oil"
	Grease          = "Grease"
	OilFilter       = "Oil Filter"
	AirFilter       = "Air Filter"
	FuelFilter      = "Fuel Filter"
)

// DefaultCatalog is the warehouse catalog seeded when no catalog file is configured.
func DefaultCatalog() []Product {
	return []Product{
		newProduct(MotorOil, CategoryOil, "100", "liters", "8.50"),
		newProduct(HydraulicOil, CategoryOil, "80", "liters", "6.20"),
		newProduct(TransmissionOil, CategoryOil, "60", "liters", "9.10"),
		newProduct(Grease, CategoryGrease, "20", "kg", "11.00"),
		newProduct(OilFilter, CategoryFilter, "12", "units", "14.90"),
		newProduct(AirFilter, CategoryFilter, "10", "units", "32.00"),
		newProduct(FuelFilter, CategoryFilter, "10", "units", "18.50"),
		newProduct("Fence Wire", CategoryFencing, "500", "meters", "0.35"),
		newProduct("Mineral Lick", CategoryFeed, "40", "blocks", "7.80"),
	}
}

func newProduct(name string, category Category, qty, unit, price string) Product {
	q := decimal.RequireFromString(qty)
	return Product{
		Name:         name,
		Category:     category,
		Quantity:     q,
		SeedQuantity: q,
		Unit:         unit,
		UnitPrice:    decimal.RequireFromString(price),
	}
}

// catalogFile is the YAML layout of a catalog file:
//
//	products:
//	  - name: Motor Oil
//	    category: oil
//	    quantity: 100
//	    unit: liters
//	    unit_price: 8.50
type catalogFile struct {
	Products []struct {
		Name      string `yaml:"name"`
		Category  string `yaml:"category"`
		Quantity  string `yaml:"quantity"`
		Unit      string `yaml:"unit"`
		UnitPrice string `yaml:"unit_price"`
	} `yaml:"products"`
}

// ParseCatalog decodes a YAML catalog. Names must be unique and quantities
// non-negative.
func ParseCatalog(data []byte) ([]Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Products))
	products := make([]Product, 0, len(file.Products))
	for i, entry := range file.Products {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog entry %d: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate product %q", i, name)
		}
		seen[name] = struct{}{}

		qty, err := parseAmount(entry.Quantity)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: quantity: %w", name, err)
		}
		if qty.IsNegative() {
			return nil, fmt.Errorf("catalog entry %q: %w", name, ErrNegativeQuantity)
		}
		price, err := parseAmount(entry.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: unit_price: %w", name, err)
		}

		category := Category(entry.Category)
		if category == "" {
			category = CategoryOther
		}

		products = append(products, Product{
			Name:         name,
			Category:     category,
			Quantity:     qty,
			SeedQuantity: qty,
			Unit:         entry.Unit,
			UnitPrice:    price,
		})
	}
	return products, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// LoadCatalog reads a YAML catalog file, or returns DefaultCatalog when path is empty.
func LoadCatalog(path string) ([]Product, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// Seed inserts catalog products that do not exist yet and returns how many
// were inserted. Existing rows keep their quantities.
func Seed(ctx context.Context, db *gorm.DB, catalog []Product) (int64, error) {
	if len(catalog) == 0 {
		return 0, nil
	}
	rows := make([]Product, len(catalog))
	for i, p := range catalog {
		p.ID = 0
		p.SeedQuantity = p.Quantity
		rows[i] = p
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", res.Error)
	}
	return res.RowsAffected, nil
}
