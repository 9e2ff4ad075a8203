package reconcile

// Diff computes the deltas that move the ledger from the consumption of prev
// to the consumption of next.
//
// A nil prev means the event is new: every used item is consumed in full.
// Otherwise only items with at least one field present in next are
// considered; a field missing from next keeps its value from prev. For each
// such item the delta is prevEffect - nextEffect:
//
//	used -> unused           restock  +prev
//	unused -> used           consume  -next
//	used -> used, qty moved  net      prev - next
//	anything else            nothing
func (p Profile) Diff(prev, next Snapshot) Plan {
	if prev == nil {
		deltas, warnings := p.ItemsAffectedBy(next)
		return Plan{Deltas: deltas, Warnings: warnings}
	}

	var plan Plan
	for _, e := range p {
		if !e.touchedBy(next) {
			continue
		}
		resolved := e.resolve(prev, next)

		before, err := e.Effect(prev)
		if err != nil {
			plan.Warnings = append(plan.Warnings, e.warning(prev, err))
		}
		after, err := e.Effect(resolved)
		if err != nil {
			plan.Warnings = append(plan.Warnings, e.warning(resolved, err))
		}

		delta := before.Sub(after)
		if delta.IsZero() {
			continue
		}

		kind := DeltaNet
		switch wasUsed, isUsed := e.Used(prev), e.Used(resolved); {
		case wasUsed && !isUsed:
			kind = DeltaRestock
		case !wasUsed && isUsed:
			kind = DeltaConsume
		}

		plan.Deltas = append(plan.Deltas, Delta{Product: e.Product, Item: e.Key, Quantity: delta, Kind: kind})
	}
	return plan
}

func (e ProfileEntry) touchedBy(s Snapshot) bool {
	return s.Has(e.UsedField) || s.Has(e.QuantityField)
}

// resolve builds the item's new state: fields present in next win, absent
// ones fall back to prev.
func (e ProfileEntry) resolve(prev, next Snapshot) Snapshot {
	out := Snapshot{}
	for _, f := range e.fields() {
		if v, ok := next[f]; ok {
			out[f] = v
		} else if v, ok := prev[f]; ok {
			out[f] = v
		}
	}
	return out
}
