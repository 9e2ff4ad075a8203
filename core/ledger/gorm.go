package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedger is a Ledger over the products table.
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger creates a ledger on top of an open connection.
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// Migrate creates or updates the products table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Product{}); err != nil {
		return fmt.Errorf("failed to migrate products: %w", err)
	}
	return nil
}

// casAttempts bounds how often add retries when another writer changed the
// row between its read and its write.
const casAttempts = 8

var errStaleRead = errors.New("quantity changed during adjustment")

// Adjust implements Ledger. The new quantity is computed in Go with exact
// decimal arithmetic and written with a compare-and-swap on the value that was
// read, so two requests consuming the same product can never both pass the
// check.
func (l *GormLedger) Adjust(ctx context.Context, name string, delta decimal.Decimal) (decimal.Decimal, error) {
	return l.add(ctx, name, delta, false)
}

// Receive implements Ledger.
func (l *GormLedger) Receive(ctx context.Context, name string, amount decimal.Decimal) (decimal.Decimal, error) {
	return l.add(ctx, name, amount, true)
}

func (l *GormLedger) add(ctx context.Context, name string, delta decimal.Decimal, moveSeed bool) (decimal.Decimal, error) {
	if delta.IsZero() {
		p, err := l.Get(ctx, name)
		if err != nil {
			return decimal.Zero, err
		}
		return p.Quantity, nil
	}

	for attempt := 0; attempt < casAttempts; attempt++ {
		result, err := l.tryAdd(ctx, name, delta, moveSeed)
		if errors.Is(err, errStaleRead) {
			continue
		}
		return result, err
	}
	return decimal.Zero, fmt.Errorf("failed to adjust %s: %w after %d attempts", name, errStaleRead, casAttempts)
}

func (l *GormLedger) tryAdd(ctx context.Context, name string, delta decimal.Decimal, moveSeed bool) (decimal.Decimal, error) {
	var result decimal.Decimal
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Product
		if err := tx.Where("name = ?", name).Take(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(name)
			}
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		next := p.Quantity.Add(delta)
		if next.IsNegative() {
			return &InsufficientStockError{Product: name, Current: p.Quantity, Requested: delta.Neg()}
		}

		updates := map[string]any{"quantity": next}
		if moveSeed {
			updates["seed_quantity"] = p.SeedQuantity.Add(delta)
		}
		res := tx.Model(&Product{}).
			Where("name = ? AND quantity = ?", name, p.Quantity).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to adjust %s: %w", name, res.Error)
		}
		if res.RowsAffected == 0 {
			return errStaleRead
		}
		result = next
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return result, nil
}

// Get implements Ledger.
func (l *GormLedger) Get(ctx context.Context, name string) (*Product, error) {
	var p Product
	if err := l.db.WithContext(ctx).Where("name = ?", name).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(name)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return &p, nil
}

// List implements Ledger.
func (l *GormLedger) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := l.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// SetQuantity implements Ledger.
func (l *GormLedger) SetQuantity(ctx context.Context, name string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	res := l.db.WithContext(ctx).Model(&Product{}).
		Where("name = ?", name).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to set quantity of %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(name)
	}
	return nil
}
