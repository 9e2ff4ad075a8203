package reconcile

import (
	"context"
	"fmt"
	"sort"

	"farm-manager/core/ledger"

	"github.com/shopspring/decimal"
)

// ActionType represents the type of audit action.
type ActionType string

const (
	// ActionSyncQuantity sets a product's quantity to its expected value.
	ActionSyncQuantity ActionType = "sync_quantity"
)

// Action represents a planned ledger correction.
type Action struct {
	Type     ActionType      `json:"type"`
	Key      string          `json:"key"`
	Reason   string          `json:"reason"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Drift compares one product's ledger quantity with what the recorded events imply.
type Drift struct {
	Product  string          `json:"product"`
	Seed     decimal.Decimal `json:"seed"`
	Consumed decimal.Decimal `json:"consumed"`
	Expected decimal.Decimal `json:"expected"`
	Actual   decimal.Decimal `json:"actual"`
	// Difference is Actual - Expected; positive means stock the events say is gone.
	Difference decimal.Decimal `json:"difference"`
}

// AuditSummary provides aggregate counts.
type AuditSummary struct {
	Products     int `json:"products"`
	Events       int `json:"events"`
	SupplyEvents int `json:"supply_events"`
	Drifted      int `json:"drifted"`
	// Unrecoverable counts products whose expected quantity is below zero.
	Unrecoverable int `json:"unrecoverable"`
	Warnings      int `json:"warnings"`
	SyncActions   int `json:"sync_actions"`
}

// AuditPlan contains drift results and planned actions.
type AuditPlan struct {
	Drifts   []Drift      `json:"drifts"`
	Actions  []Action     `json:"actions"`
	Warnings []Warning    `json:"warnings,omitempty"`
	Summary  AuditSummary `json:"summary"`
}

// ReconcileOptions controls audit behavior.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
	// DoSync plans quantity corrections for drifted products.
	DoSync bool
	// Confirmed indicates the operator confirmed the corrections.
	Confirmed bool
}

// Audit recomputes each product's expected quantity as its seed quantity minus
// the current consumption of every supply event, and reports products whose
// ledger quantity differs.
func Audit(products []ledger.Product, events []Event, profile Profile, supplyType string, opts ReconcileOptions) *AuditPlan {
	if supplyType == "" {
		supplyType = DefaultSupplyType
	}

	consumed := make(map[string]decimal.Decimal)
	plan := &AuditPlan{Drifts: []Drift{}, Actions: []Action{}}
	plan.Summary.Products = len(products)
	plan.Summary.Events = len(events)

	for _, ev := range events {
		if ev.Type != supplyType {
			continue
		}
		plan.Summary.SupplyEvents++
		perProduct, warnings := profile.Consumption(ev.Snapshot)
		for name, qty := range perProduct {
			consumed[name] = consumed[name].Add(qty)
		}
		plan.Warnings = append(plan.Warnings, warnings...)
	}
	plan.Summary.Warnings = len(plan.Warnings)

	sorted := make([]ledger.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, p := range sorted {
		used := consumed[p.Name]
		expected := p.SeedQuantity.Sub(used)
		if expected.Equal(p.Quantity) {
			continue
		}

		plan.Drifts = append(plan.Drifts, Drift{
			Product:    p.Name,
			Seed:       p.SeedQuantity,
			Consumed:   used,
			Expected:   expected,
			Actual:     p.Quantity,
			Difference: p.Quantity.Sub(expected),
		})
		plan.Summary.Drifted++

		if expected.IsNegative() {
			plan.Summary.Unrecoverable++
			continue
		}

		if opts.DoSync {
			plan.Actions = append(plan.Actions, Action{
				Type:     ActionSyncQuantity,
				Key:      p.Name,
				Reason:   fmt.Sprintf("ledger has %s, events imply %s", p.Quantity, expected),
				Quantity: expected,
			})
			plan.Summary.SyncActions++
		}
	}

	return plan
}

// ApplyAudit executes the sync actions of an audit plan.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyAudit(ctx context.Context, l ledger.Ledger, plan *AuditPlan, opts ReconcileOptions) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	for _, action := range plan.Actions {
		if action.Type != ActionSyncQuantity {
			continue
		}
		if err := l.SetQuantity(ctx, action.Key, action.Quantity); err != nil {
			return executed, fmt.Errorf("failed to sync %s: %w", action.Key, err)
		}
		executed++
	}
	return executed, nil
}
