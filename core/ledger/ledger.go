package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Ledger is the product store the stock engine writes to.
type Ledger interface {
	// Adjust atomically adds delta to the named product's quantity and returns
	// the new quantity. A result below zero fails with *InsufficientStockError
	// and leaves the quantity unchanged.
	Adjust(ctx context.Context, name string, delta decimal.Decimal) (decimal.Decimal, error)

	// Get returns a copy of the named product.
	Get(ctx context.Context, name string) (*Product, error)

	// List returns every product ordered by name.
	List(ctx context.Context) ([]Product, error)

	// Receive books stock received or written off outside maintenance events.
	// It moves both the quantity and the seed baseline, so the drift audit
	// keeps measuring only event consumption.
	Receive(ctx context.Context, name string, amount decimal.Decimal) (decimal.Decimal, error)

	// SetQuantity overwrites the quantity of a product. Only the drift audit uses it.
	SetQuantity(ctx context.Context, name string, quantity decimal.Decimal) error
}
