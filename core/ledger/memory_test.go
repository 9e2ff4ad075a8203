package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func motorOilLedger(qty string) *MemoryLedger {
	return NewMemoryLedger([]Product{{Name: MotorOil, Category: CategoryOil, Quantity: d(qty), Unit: "liters"}})
}

func TestMemoryLedger_Adjust(t *testing.T) {
	ctx := context.Background()

	t.Run("Consume", func(t *testing.T) {
		l := motorOilLedger("10")
		qty, err := l.Adjust(ctx, MotorOil, d("-6"))
		require.NoError(t, err)
		assert.True(t, d("4").Equal(qty))
	})

	t.Run("Restock", func(t *testing.T) {
		l := motorOilLedger("10")
		qty, err := l.Adjust(ctx, MotorOil, d("2.5"))
		require.NoError(t, err)
		assert.True(t, d("12.5").Equal(qty))
	})

	t.Run("Consume everything", func(t *testing.T) {
		l := motorOilLedger("10")
		qty, err := l.Adjust(ctx, MotorOil, d("-10"))
		require.NoError(t, err)
		assert.True(t, qty.IsZero())
	})

	t.Run("Insufficient stock leaves quantity unchanged", func(t *testing.T) {
		l := motorOilLedger("10")
		_, err := l.Adjust(ctx, MotorOil, d("-11"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInsufficientStock))

		var stockErr *InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.Equal(t, MotorOil, stockErr.Product)
		assert.True(t, d("10").Equal(stockErr.Current))
		assert.True(t, d("11").Equal(stockErr.Requested))

		p, err := l.Get(ctx, MotorOil)
		require.NoError(t, err)
		assert.True(t, d("10").Equal(p.Quantity))
	})

	t.Run("Unknown product", func(t *testing.T) {
		l := motorOilLedger("10")
		_, err := l.Adjust(ctx, "Tractor Wax", d("-1"))
		assert.True(t, errors.Is(err, ErrProductNotFound))
	})
}

func TestMemoryLedger_ConcurrentAdjustNeverNegative(t *testing.T) {
	ctx := context.Background()
	l := motorOilLedger("50")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Adjust(ctx, MotorOil, d("-1")); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	p, err := l.Get(ctx, MotorOil)
	require.NoError(t, err)
	assert.Equal(t, 50, accepted)
	assert.True(t, p.Quantity.IsZero())
}

func TestMemoryLedger_ListAndSet(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger(DefaultCatalog())

	products, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(DefaultCatalog()))
	assert.Equal(t, AirFilter, products[0].Name)

	require.NoError(t, l.SetQuantity(ctx, Grease, d("3")))
	p, err := l.Get(ctx, Grease)
	require.NoError(t, err)
	assert.True(t, d("3").Equal(p.Quantity))
	assert.True(t, d("20").Equal(p.SeedQuantity))

	assert.ErrorIs(t, l.SetQuantity(ctx, Grease, d("-1")), ErrNegativeQuantity)
	assert.ErrorIs(t, l.SetQuantity(ctx, "Nope", d("1")), ErrProductNotFound)
}

func TestMemoryLedger_Receive(t *testing.T) {
	ctx := context.Background()
	l := motorOilLedger("10")

	qty, err := l.Receive(ctx, MotorOil, d("20"))
	require.NoError(t, err)
	assert.True(t, d("30").Equal(qty))

	p, err := l.Get(ctx, MotorOil)
	require.NoError(t, err)
	assert.True(t, d("30").Equal(p.SeedQuantity))

	_, err = l.Receive(ctx, MotorOil, d("-31"))
	assert.ErrorIs(t, err, ErrInsufficientStock)
}
