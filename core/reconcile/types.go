package reconcile

import (
	"github.com/shopspring/decimal"
)

// Snapshot is the flat set of tracked fields of a maintenance event, keyed by
// field name (e.g. "motorOilUsed", "motorOilQuantity", "oilFilter"). Values
// are loosely typed as they arrive from JSON or forms.
type Snapshot map[string]any

// Has reports whether the field is present in the snapshot.
func (s Snapshot) Has(field string) bool {
	if s == nil || field == "" {
		return false
	}
	_, ok := s[field]
	return ok
}

// Clone returns a shallow copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Event is the engine's view of a maintenance event.
type Event struct {
	ID       uint
	Type     string
	Snapshot Snapshot
}

// DeltaKind describes the transition that produced a delta.
type DeltaKind string

const (
	// DeltaConsume takes stock out (item newly used, or created as used).
	DeltaConsume DeltaKind = "consume"
	// DeltaRestock returns stock (item no longer used).
	DeltaRestock DeltaKind = "restock"
	// DeltaNet is the difference between two recorded quantities of a used item.
	DeltaNet DeltaKind = "net"
)

// Delta is one signed quantity change for one product. Negative consumes,
// positive returns stock.
type Delta struct {
	Product  string          `json:"product"`
	Item     string          `json:"item"`
	Quantity decimal.Decimal `json:"quantity"`
	Kind     DeltaKind       `json:"kind"`
}

// Warning records a tracked value that could not be interpreted. The affected
// item is treated as having zero effect.
type Warning struct {
	Item   string `json:"item"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Plan is the set of deltas computed for one event transition.
type Plan struct {
	EventID  uint      `json:"event_id"`
	Deltas   []Delta   `json:"deltas"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// AppliedDelta is a delta the ledger accepted, with the resulting quantity.
type AppliedDelta struct {
	Delta
	Result decimal.Decimal `json:"result"`
}

// FailedDelta is a delta the ledger rejected. Current is set when the ledger
// reported the on-hand quantity (insufficient stock).
type FailedDelta struct {
	Delta
	Current *decimal.Decimal `json:"current,omitempty"`
	Error   string           `json:"error"`
	Err     error            `json:"-"`
}

// ApplyReport is the outcome of applying a plan. Partial application is
// expected: Applied and Failed together cover every delta of the plan.
type ApplyReport struct {
	EventID  uint           `json:"event_id"`
	Skipped  bool           `json:"skipped,omitempty"`
	Applied  []AppliedDelta `json:"applied"`
	Failed   []FailedDelta  `json:"failed"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// OK reports whether every delta was applied.
func (r *ApplyReport) OK() bool {
	return r == nil || len(r.Failed) == 0
}
