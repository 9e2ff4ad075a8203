package checks

import (
	"context"
	"testing"

	"farm-manager/core/database"
	"farm-manager/core/ledger"
	"farm-manager/core/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Full Catalog", func(t *testing.T) {
		l := ledger.NewMemoryLedger(ledger.DefaultCatalog())
		report, err := CheckCatalog(ctx, l, reconcile.DefaultProfile())
		require.NoError(t, err)
		assert.Equal(t, "ok", report.Status)
		assert.Empty(t, report.Missing)
	})

	t.Run("Missing And Empty", func(t *testing.T) {
		l := ledger.NewMemoryLedger([]ledger.Product{
			{Name: ledger.MotorOil, Quantity: decimal.NewFromInt(3)},
			{Name: ledger.Grease, Quantity: decimal.Zero},
		})
		report, err := CheckCatalog(ctx, l, reconcile.DefaultProfile())
		require.NoError(t, err)
		assert.Equal(t, "error", report.Status)
		assert.Len(t, report.Missing, 5)
		assert.Contains(t, report.Missing, ledger.OilFilter)
		assert.Equal(t, []string{ledger.Grease}, report.Empty)
	})

	t.Run("Invalid Profile", func(t *testing.T) {
		_, err := CheckCatalog(ctx, ledger.NewMemoryLedger(nil), reconcile.Profile{{Key: "x"}})
		assert.Error(t, err)
	})
}

func TestFixCatalog(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, ledger.Migrate(db))

	fixed, unfixed, err := FixCatalog(ctx, db, ledger.DefaultCatalog(), []string{ledger.AirFilter, "Diesel"})
	require.NoError(t, err)
	assert.Equal(t, []string{ledger.AirFilter}, fixed)
	assert.Equal(t, []string{"Diesel"}, unfixed)

	p, err := ledger.NewGormLedger(db).Get(ctx, ledger.AirFilter)
	require.NoError(t, err)
	assert.False(t, p.Quantity.IsZero())
}
