// Package ledger implements the product ledger: the named catalog of farm
// consumables (oils, grease, filters) and their on-hand quantities.
//
// The only way the stock engine mutates a product is Adjust, an atomic
// read-modify-write that refuses to take a quantity below zero:
//
//	qty, err := l.Adjust(ctx, "Motor Oil", decimal.NewFromInt(-6))
//	switch {
//	case errors.Is(err, ledger.ErrProductNotFound):
//	case errors.Is(err, ledger.ErrInsufficientStock):
//	}
//
// Two implementations exist. MemoryLedger keeps the catalog in process memory
// with one mutex per product and backs tests and local runs. GormLedger keeps
// the catalog in the products table. It computes the new quantity with exact
// decimal arithmetic and writes it with a compare-and-swap UPDATE on the value
// it read, retrying when another writer got there first.
package ledger
