package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"farm-manager/core/utils"

	"github.com/shopspring/decimal"
)

// MemoryLedger is an in-process Ledger. The product map is guarded by mu and
// each product's quantity by its own lock in locks.
type MemoryLedger struct {
	mu       sync.RWMutex
	products map[string]*Product
	locks    *utils.KeyedMutex
}

// NewMemoryLedger creates a ledger seeded with the given catalog.
func NewMemoryLedger(catalog []Product) *MemoryLedger {
	l := &MemoryLedger{
		products: make(map[string]*Product, len(catalog)),
		locks:    utils.NewKeyedMutex(),
	}
	for i, p := range catalog {
		p := p
		if p.ID == 0 {
			p.ID = uint(i + 1)
		}
		if p.SeedQuantity.IsZero() {
			p.SeedQuantity = p.Quantity
		}
		l.products[p.Name] = &p
	}
	return l
}

func (l *MemoryLedger) lookup(name string) (*Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.products[name]
	return p, ok
}

// Adjust implements Ledger.
func (l *MemoryLedger) Adjust(ctx context.Context, name string, delta decimal.Decimal) (decimal.Decimal, error) {
	p, ok := l.lookup(name)
	if !ok {
		return decimal.Zero, notFound(name)
	}

	unlock := l.locks.Lock(name)
	defer unlock()

	next := p.Quantity.Add(delta)
	if next.IsNegative() {
		return p.Quantity, &InsufficientStockError{Product: name, Current: p.Quantity, Requested: delta.Neg()}
	}
	p.Quantity = next
	p.UpdatedAt = time.Now()
	return next, nil
}

// Get implements Ledger.
func (l *MemoryLedger) Get(ctx context.Context, name string) (*Product, error) {
	p, ok := l.lookup(name)
	if !ok {
		return nil, notFound(name)
	}

	unlock := l.locks.Lock(name)
	defer unlock()

	cp := *p
	return &cp, nil
}

// List implements Ledger.
func (l *MemoryLedger) List(ctx context.Context) ([]Product, error) {
	l.mu.RLock()
	names := make([]string, 0, len(l.products))
	for name := range l.products {
		names = append(names, name)
	}
	l.mu.RUnlock()
	sort.Strings(names)

	out := make([]Product, 0, len(names))
	for _, name := range names {
		p, err := l.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// Receive implements Ledger.
func (l *MemoryLedger) Receive(ctx context.Context, name string, amount decimal.Decimal) (decimal.Decimal, error) {
	p, ok := l.lookup(name)
	if !ok {
		return decimal.Zero, notFound(name)
	}

	unlock := l.locks.Lock(name)
	defer unlock()

	next := p.Quantity.Add(amount)
	if next.IsNegative() {
		return p.Quantity, &InsufficientStockError{Product: name, Current: p.Quantity, Requested: amount.Neg()}
	}
	p.Quantity = next
	p.SeedQuantity = p.SeedQuantity.Add(amount)
	p.UpdatedAt = time.Now()
	return next, nil
}

// SetQuantity implements Ledger.
func (l *MemoryLedger) SetQuantity(ctx context.Context, name string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	p, ok := l.lookup(name)
	if !ok {
		return notFound(name)
	}

	unlock := l.locks.Lock(name)
	defer unlock()

	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	return nil
}
