package reconcile

import (
	"context"
	"testing"

	"farm-manager/core/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditFixture() ([]ledger.Product, []Event) {
	products := []ledger.Product{
		{Name: ledger.OilFilter, Quantity: dec("8"), SeedQuantity: dec("10")},
		{Name: ledger.MotorOil, Quantity: dec("40"), SeedQuantity: dec("50")},
		{Name: ledger.Grease, Quantity: dec("1"), SeedQuantity: dec("1")},
	}
	events := []Event{
		supply(1, Snapshot{"motorOilUsed": true, "motorOilQuantity": 6, "oilFilter": true}),
		supply(2, Snapshot{"motorOilUsed": true, "motorOilQuantity": "4", "oilFilter": true}),
		supply(3, Snapshot{"greaseUsed": true, "greaseQuantity": "3"}),
		{ID: 4, Type: "repair", Snapshot: Snapshot{"motorOilUsed": true, "motorOilQuantity": 100}},
	}
	return products, events
}

func TestAudit_Drift(t *testing.T) {
	products, events := auditFixture()
	// someone took two filters off the shelf without recording it
	products[0].Quantity = dec("6")

	plan := Audit(products, events, DefaultProfile(), "", ReconcileOptions{DoSync: true})

	assert.Equal(t, 3, plan.Summary.Products)
	assert.Equal(t, 4, plan.Summary.Events)
	assert.Equal(t, 3, plan.Summary.SupplyEvents)

	require.Len(t, plan.Drifts, 2)
	assert.Equal(t, ledger.Grease, plan.Drifts[0].Product)
	assert.True(t, dec("-2").Equal(plan.Drifts[0].Expected))
	assert.Equal(t, ledger.OilFilter, plan.Drifts[1].Product)
	assert.True(t, dec("8").Equal(plan.Drifts[1].Expected))
	assert.True(t, dec("-2").Equal(plan.Drifts[1].Difference))

	assert.Equal(t, 1, plan.Summary.Unrecoverable)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, ActionSyncQuantity, plan.Actions[0].Type)
	assert.Equal(t, ledger.OilFilter, plan.Actions[0].Key)
}

func TestAudit_NoSyncPlansNothing(t *testing.T) {
	products, events := auditFixture()
	products[0].Quantity = dec("7")

	plan := Audit(products, events, DefaultProfile(), DefaultSupplyType, ReconcileOptions{})
	assert.NotEmpty(t, plan.Drifts)
	assert.Empty(t, plan.Actions)
	assert.Equal(t, 0, plan.Summary.SyncActions)
}

func TestApplyAudit(t *testing.T) {
	ctx := context.Background()
	products, events := auditFixture()
	products[0].Quantity = dec("5")

	tests := []struct {
		name     string
		opts     ReconcileOptions
		executed int
		expected string
	}{
		{name: "not confirmed", opts: ReconcileOptions{DoSync: true}, executed: 0, expected: "5"},
		{name: "dry run", opts: ReconcileOptions{DoSync: true, Confirmed: true, DryRun: true}, executed: 0, expected: "5"},
		{name: "confirmed", opts: ReconcileOptions{DoSync: true, Confirmed: true}, executed: 1, expected: "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.NewMemoryLedger(products)
			plan := Audit(products, events, DefaultProfile(), "", tt.opts)

			executed, err := ApplyAudit(ctx, l, plan, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.executed, executed)
			assert.Equal(t, tt.expected, quantity(t, l, ledger.OilFilter))
		})
	}
}

func TestApplyAudit_MissingProduct(t *testing.T) {
	plan := &AuditPlan{Actions: []Action{{Type: ActionSyncQuantity, Key: "Ghost", Quantity: dec("1")}}}
	opts := ReconcileOptions{DoSync: true, Confirmed: true}

	executed, err := ApplyAudit(context.Background(), ledger.NewMemoryLedger(nil), plan, opts)
	assert.Equal(t, 0, executed)
	assert.ErrorIs(t, err, ledger.ErrProductNotFound)
}
