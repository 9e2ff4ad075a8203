package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductNotFound is returned when no product has the requested name.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when an adjustment would drive a quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrNegativeQuantity is returned when a quantity is set below zero.
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// InsufficientStockError describes a rejected consumption.
type InsufficientStockError struct {
	Product   string
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: have %s, requested %s", e.Product, e.Current, e.Requested)
}

// Is lets errors.Is match ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrProductNotFound, name)
}
