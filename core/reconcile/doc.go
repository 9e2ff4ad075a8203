// Package reconcile keeps the product ledger consistent with the maintenance
// events that consume supplies, including events edited after the fact.
//
// # Architecture
//
// 1. Profile: a declarative table mapping an event's flat tracked fields
//    (motorOilUsed / motorOilQuantity, oilFilter, ...) to ledger products, with
//    a kind per item: bulk items consume their recorded quantity, unit items
//    consume one unit per true flag.
//
// 2. Diff: compares the prior and new snapshot of an event and produces one
//    signed delta per product. Creation consumes everything marked used; an
//    update only applies the net difference (restock, consume or net change),
//    so the ledger reflects the current events rather than their edit history.
//
// 3. Engine: the entry point called by the maintenance CRUD layer after it has
//    persisted an event. It ignores non-supply events, diffs, and applies each
//    delta to the ledger one product at a time. A failed adjustment (unknown
//    product, insufficient stock) is logged and skipped; it never undoes the
//    event write or blocks the remaining products.
//
// 4. Audit: recomputes expected stock as seed quantity minus the current
//    consumption of every event and plans sync actions for drifted products.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(l, reconcile.DefaultProfile(), logger, reconcile.Options{SupplyType: "supply"})
//
//	report := engine.OnEventCreated(ctx, reconcile.Event{ID: 1, Type: "supply", Snapshot: reconcile.Snapshot{
//	    "motorOilUsed": true, "motorOilQuantity": "6",
//	}})
//
//	report = engine.OnEventUpdated(ctx, before, after)
//	for _, f := range report.Failed {
//	    // surfaced to the caller; the event itself stays saved
//	}
package reconcile
