package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"farm-manager/core/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T, stock map[string]string, opts Options) (*Engine, *ledger.MemoryLedger, *observer.ObservedLogs) {
	t.Helper()
	var catalog []ledger.Product
	for name, qty := range stock {
		catalog = append(catalog, ledger.Product{Name: name, Quantity: dec(qty)})
	}
	l := ledger.NewMemoryLedger(catalog)
	core, logs := observer.New(zapcore.DebugLevel)
	return NewEngine(l, DefaultProfile(), zap.New(core), opts), l, logs
}

func quantity(t *testing.T, l ledger.Ledger, name string) string {
	t.Helper()
	p, err := l.Get(context.Background(), name)
	require.NoError(t, err)
	return p.Quantity.String()
}

func supply(id uint, s Snapshot) Event {
	return Event{ID: id, Type: DefaultSupplyType, Snapshot: s}
}

func TestEngine_MotorOilLifecycle(t *testing.T) {
	ctx := context.Background()
	e, l, _ := newTestEngine(t, map[string]string{ledger.MotorOil: "10"}, Options{})

	created := supply(1, Snapshot{"motorOilUsed": true, "motorOilQuantity": 6})
	report := e.OnEventCreated(ctx, created)
	assert.True(t, report.OK())
	assert.Equal(t, "4", quantity(t, l, ledger.MotorOil))

	lowered := supply(1, Snapshot{"motorOilUsed": true, "motorOilQuantity": 2})
	report = e.OnEventUpdated(ctx, created, lowered)
	assert.True(t, report.OK())
	require.Len(t, report.Applied, 1)
	assert.True(t, dec("4").Equal(report.Applied[0].Quantity))
	assert.Equal(t, "8", quantity(t, l, ledger.MotorOil))

	unused := supply(1, Snapshot{"motorOilUsed": false})
	report = e.OnEventUpdated(ctx, lowered, unused)
	assert.True(t, report.OK())
	require.Len(t, report.Applied, 1)
	assert.Equal(t, DeltaRestock, report.Applied[0].Kind)
	assert.Equal(t, "10", quantity(t, l, ledger.MotorOil))
}

func TestEngine_UpdateWithoutChangesIsNoop(t *testing.T) {
	ctx := context.Background()
	e, l, _ := newTestEngine(t, map[string]string{ledger.MotorOil: "10", ledger.OilFilter: "3"}, Options{})

	ev := supply(7, Snapshot{"motorOilUsed": true, "motorOilQuantity": 6, "oilFilter": true})
	e.OnEventCreated(ctx, ev)

	report := e.OnEventUpdated(ctx, ev, ev)
	assert.False(t, report.Skipped)
	assert.Empty(t, report.Applied)
	assert.Empty(t, report.Failed)
	assert.Equal(t, "4", quantity(t, l, ledger.MotorOil))
	assert.Equal(t, "2", quantity(t, l, ledger.OilFilter))
}

func TestEngine_InsufficientStockIsIsolated(t *testing.T) {
	ctx := context.Background()
	e, l, logs := newTestEngine(t, map[string]string{
		ledger.MotorOil:  "2",
		ledger.OilFilter: "5",
	}, Options{})

	report := e.OnEventCreated(ctx, supply(3, Snapshot{
		"motorOilUsed":     true,
		"motorOilQuantity": 6,
		"oilFilter":        true,
	}))

	assert.False(t, report.OK())
	require.Len(t, report.Failed, 1)
	assert.Equal(t, ledger.MotorOil, report.Failed[0].Product)
	require.NotNil(t, report.Failed[0].Current)
	assert.True(t, dec("2").Equal(*report.Failed[0].Current))
	assert.True(t, errors.Is(report.Failed[0].Err, ledger.ErrInsufficientStock))

	require.Len(t, report.Applied, 1)
	assert.Equal(t, ledger.OilFilter, report.Applied[0].Product)

	assert.Equal(t, "2", quantity(t, l, ledger.MotorOil))
	assert.Equal(t, "4", quantity(t, l, ledger.OilFilter))

	warned := logs.FilterMessage("Insufficient stock, adjustment skipped").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "2", warned[0].ContextMap()["current"])
	assert.Equal(t, "6", warned[0].ContextMap()["requested"])
	assert.Equal(t, 1, logs.FilterMessage("Event saved with partial stock application").Len())
}

func TestEngine_MissingProduct(t *testing.T) {
	ctx := context.Background()
	e, _, logs := newTestEngine(t, map[string]string{ledger.OilFilter: "5"}, Options{})

	report := e.OnEventCreated(ctx, supply(4, Snapshot{"greaseUsed": true, "greaseQuantity": 1, "oilFilter": true}))

	require.Len(t, report.Failed, 1)
	assert.True(t, errors.Is(report.Failed[0].Err, ledger.ErrProductNotFound))
	assert.Len(t, report.Applied, 1)
	assert.Equal(t, 1, logs.FilterMessage("Product missing from ledger, adjustment skipped").Len())
}

func TestEngine_MalformedQuantityIsLogged(t *testing.T) {
	ctx := context.Background()
	e, l, logs := newTestEngine(t, map[string]string{ledger.MotorOil: "10"}, Options{})

	report := e.OnEventCreated(ctx, supply(5, Snapshot{"motorOilUsed": true, "motorOilQuantity": "a lot"}))

	assert.True(t, report.OK())
	assert.Empty(t, report.Applied)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "10", quantity(t, l, ledger.MotorOil))

	entries := logs.FilterMessage("Malformed quantity treated as zero").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "a lot", entries[0].ContextMap()["value"])
}

func TestEngine_NonSupplyEventsAreIgnored(t *testing.T) {
	ctx := context.Background()
	e, l, _ := newTestEngine(t, map[string]string{ledger.MotorOil: "10"}, Options{})

	repair := Event{ID: 9, Type: "repair", Snapshot: Snapshot{"motorOilUsed": true, "motorOilQuantity": 6}}

	assert.True(t, e.OnEventCreated(ctx, repair).Skipped)

	edited := repair
	edited.Snapshot = Snapshot{"motorOilQuantity": 8}
	assert.True(t, e.OnEventUpdated(ctx, repair, edited).Skipped)
	assert.True(t, e.OnEventDeleted(ctx, edited).Skipped)

	assert.Equal(t, "10", quantity(t, l, ledger.MotorOil))
}

func TestEngine_TypeChange(t *testing.T) {
	ctx := context.Background()
	e, l, _ := newTestEngine(t, map[string]string{ledger.MotorOil: "10", ledger.AirFilter: "2"}, Options{})

	ev := supply(2, Snapshot{"motorOilUsed": true, "motorOilQuantity": 6, "airFilter": true})
	e.OnEventCreated(ctx, ev)
	assert.Equal(t, "4", quantity(t, l, ledger.MotorOil))
	assert.Equal(t, "1", quantity(t, l, ledger.AirFilter))

	// leaving the supply type gives everything back
	repair := Event{ID: 2, Type: "repair", Snapshot: Snapshot{}}
	report := e.OnEventUpdated(ctx, ev, repair)
	assert.Len(t, report.Applied, 2)
	assert.Equal(t, "10", quantity(t, l, ledger.MotorOil))
	assert.Equal(t, "2", quantity(t, l, ledger.AirFilter))

	// coming back consumes the stored values plus the edit
	back := supply(2, Snapshot{"motorOilQuantity": 3})
	report = e.OnEventUpdated(ctx, Event{ID: 2, Type: "repair", Snapshot: ev.Snapshot}, back)
	assert.True(t, report.OK())
	assert.Equal(t, "7", quantity(t, l, ledger.MotorOil))
	assert.Equal(t, "1", quantity(t, l, ledger.AirFilter))
}

func TestEngine_Delete(t *testing.T) {
	ctx := context.Background()
	ev := supply(6, Snapshot{"motorOilUsed": true, "motorOilQuantity": 6})

	t.Run("keeps stock by default", func(t *testing.T) {
		e, l, _ := newTestEngine(t, map[string]string{ledger.MotorOil: "10"}, Options{})
		e.OnEventCreated(ctx, ev)

		report := e.OnEventDeleted(ctx, ev)
		assert.True(t, report.Skipped)
		assert.Equal(t, "4", quantity(t, l, ledger.MotorOil))
	})

	t.Run("restocks when enabled", func(t *testing.T) {
		e, l, _ := newTestEngine(t, map[string]string{ledger.MotorOil: "10"}, Options{RestockOnDelete: true})
		e.OnEventCreated(ctx, ev)

		report := e.OnEventDeleted(ctx, ev)
		assert.False(t, report.Skipped)
		require.Len(t, report.Applied, 1)
		assert.Equal(t, "10", quantity(t, l, ledger.MotorOil))
	})
}

func TestEngine_PlanDoesNotTouchLedger(t *testing.T) {
	e, l, _ := newTestEngine(t, map[string]string{ledger.MotorOil: "10"}, Options{})

	plan := e.PlanCreated(supply(8, Snapshot{"motorOilUsed": true, "motorOilQuantity": 6}))
	assert.Equal(t, uint(8), plan.EventID)
	require.Len(t, plan.Deltas, 1)
	assert.Equal(t, "10", quantity(t, l, ledger.MotorOil))
}

func TestEngine_ConcurrentEvents(t *testing.T) {
	ctx := context.Background()
	e, l, _ := newTestEngine(t, map[string]string{ledger.OilFilter: "50"}, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			e.OnEventCreated(ctx, supply(id, Snapshot{"oilFilter": true}))
		}(uint(i + 1))
	}
	wg.Wait()

	// ten events find the shelf empty
	assert.Equal(t, "0", quantity(t, l, ledger.OilFilter))
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(ledger.NewMemoryLedger(nil), DefaultProfile(), nil, Options{})
	assert.Equal(t, DefaultSupplyType, e.SupplyType())
	assert.Len(t, e.Profile(), 7)
}
