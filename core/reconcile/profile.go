package reconcile

import (
	"errors"
	"fmt"

	"farm-manager/core/ledger"
	"farm-manager/core/utils"

	"github.com/shopspring/decimal"
)

// ErrMalformedQuantity marks a bulk quantity that is not a non-negative number.
var ErrMalformedQuantity = errors.New("malformed quantity")

// Kind is how a tracked item turns into a ledger quantity.
type Kind string

const (
	// KindBulk consumes the recorded quantity (fluids, grease).
	KindBulk Kind = "bulk"
	// KindUnit consumes one unit per true flag (filters).
	KindUnit Kind = "unit"
)

// ProfileEntry maps one tracked item of a maintenance event to a product.
type ProfileEntry struct {
	// Key identifies the item in reports.
	Key string
	// Product is the ledger name of the consumed product.
	Product string
	// UsedField is the boolean field marking the item as used.
	UsedField string
	// QuantityField holds the recorded quantity. Only bulk items have one.
	QuantityField string
	Kind          Kind
}

// Profile is the consumption table. It is configuration, not state.
type Profile []ProfileEntry

// DefaultProfile is the consumption table of the farm's maintenance events.
func DefaultProfile() Profile {
	return Profile{
		{Key: "motorOil", Product: ledger.MotorOil, UsedField: "motorOilUsed", QuantityField: "motorOilQuantity", Kind: KindBulk},
		{Key: "hydraulicOil", Product: ledger.HydraulicOil, UsedField: "hydraulicOilUsed", QuantityField: "hydraulicOilQuantity", Kind: KindBulk},
		{Key: "transmissionOil", Product: ledger.TransmissionOil, UsedField: "transmissionOilUsed", QuantityField: "transmissionOilQuantity", Kind: KindBulk},
		{Key: "grease", Product: ledger.Grease, UsedField: "greaseUsed", QuantityField: "greaseQuantity", Kind: KindBulk},
		{Key: "oilFilter", Product: ledger.OilFilter, UsedField: "oilFilter", Kind: KindUnit},
		{Key: "airFilter", Product: ledger.AirFilter, UsedField: "airFilter", Kind: KindUnit},
		{Key: "fuelFilter", Product: ledger.FuelFilter, UsedField: "fuelFilter", Kind: KindUnit},
	}
}

// Validate checks the table for missing names and duplicate fields.
func (p Profile) Validate() error {
	fields := make(map[string]string)
	for i, e := range p {
		if e.Key == "" || e.Product == "" || e.UsedField == "" {
			return fmt.Errorf("profile entry %d: key, product and used field are required", i)
		}
		switch e.Kind {
		case KindBulk:
			if e.QuantityField == "" {
				return fmt.Errorf("profile entry %s: bulk items need a quantity field", e.Key)
			}
		case KindUnit:
			if e.QuantityField != "" {
				return fmt.Errorf("profile entry %s: unit items have no quantity field", e.Key)
			}
		default:
			return fmt.Errorf("profile entry %s: unknown kind %q", e.Key, e.Kind)
		}
		for _, f := range e.fields() {
			if owner, dup := fields[f]; dup {
				return fmt.Errorf("field %s is used by both %s and %s", f, owner, e.Key)
			}
			fields[f] = e.Key
		}
	}
	return nil
}

// Products lists the distinct product names the profile references.
func (p Profile) Products() []string {
	seen := make(map[string]struct{}, len(p))
	var out []string
	for _, e := range p {
		if _, ok := seen[e.Product]; ok {
			continue
		}
		seen[e.Product] = struct{}{}
		out = append(out, e.Product)
	}
	return out
}

// Fields lists every tracked field name.
func (p Profile) Fields() []string {
	var out []string
	for _, e := range p {
		out = append(out, e.fields()...)
	}
	return out
}

// Extract keeps only the tracked fields of a flat payload.
func (p Profile) Extract(payload map[string]any) Snapshot {
	out := Snapshot{}
	for _, f := range p.Fields() {
		if v, ok := payload[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Merge overlays next on prev field by field. Fields absent from next keep
// their previous value.
func (p Profile) Merge(prev, next Snapshot) Snapshot {
	out := p.Extract(prev)
	for _, f := range p.Fields() {
		if v, ok := next[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Unused returns a snapshot with every item explicitly marked unused.
func (p Profile) Unused() Snapshot {
	out := Snapshot{}
	for _, e := range p {
		out[e.UsedField] = false
	}
	return out
}

func (e ProfileEntry) fields() []string {
	if e.QuantityField == "" {
		return []string{e.UsedField}
	}
	return []string{e.UsedField, e.QuantityField}
}

// Used reports whether the snapshot marks the item as used.
func (e ProfileEntry) Used(s Snapshot) bool {
	return utils.ToBool(s[e.UsedField])
}

// Effect is the positive quantity of the product the snapshot consumes.
// A bulk item with an absent quantity consumes nothing; a quantity that is not
// a non-negative number consumes nothing and returns ErrMalformedQuantity.
func (e ProfileEntry) Effect(s Snapshot) (decimal.Decimal, error) {
	if !e.Used(s) {
		return decimal.Zero, nil
	}
	if e.Kind == KindUnit {
		return decimal.NewFromInt(1), nil
	}

	raw, ok := s[e.QuantityField]
	if !ok || raw == nil {
		return decimal.Zero, nil
	}
	if str, isStr := raw.(string); isStr && str == "" {
		return decimal.Zero, nil
	}

	qty, ok := utils.ToDecimal(raw)
	if !ok || qty.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", ErrMalformedQuantity, e.QuantityField, utils.ToString(raw))
	}
	return qty, nil
}

func (e ProfileEntry) warning(s Snapshot, err error) Warning {
	return Warning{
		Item:   e.Key,
		Field:  e.QuantityField,
		Value:  utils.ToString(s[e.QuantityField]),
		Reason: err.Error(),
	}
}

// ItemsAffectedBy lists the consumption of a snapshot as negative deltas.
// Items not marked used yield nothing.
func (p Profile) ItemsAffectedBy(s Snapshot) ([]Delta, []Warning) {
	var (
		deltas   []Delta
		warnings []Warning
	)
	for _, e := range p {
		qty, err := e.Effect(s)
		if err != nil {
			warnings = append(warnings, e.warning(s, err))
		}
		if qty.IsZero() {
			continue
		}
		deltas = append(deltas, Delta{Product: e.Product, Item: e.Key, Quantity: qty.Neg(), Kind: DeltaConsume})
	}
	return deltas, warnings
}

// Consumption sums the snapshot's consumption per product.
func (p Profile) Consumption(s Snapshot) (map[string]decimal.Decimal, []Warning) {
	deltas, warnings := p.ItemsAffectedBy(s)
	out := make(map[string]decimal.Decimal, len(deltas))
	for _, d := range deltas {
		out[d.Product] = out[d.Product].Add(d.Quantity.Neg())
	}
	return out, warnings
}
