package checks

import (
	"context"
	"errors"
	"fmt"

	"farm-manager/core/ledger"
	"farm-manager/core/reconcile"

	"gorm.io/gorm"
)

// CatalogReport lists problems between the consumption profile and the ledger.
type CatalogReport struct {
	// Missing are products the profile consumes that the ledger does not know.
	// Events using them will always report a failed adjustment.
	Missing []string `json:"missing"`
	// Empty are tracked products with nothing on hand.
	Empty  []string `json:"empty"`
	Status string   `json:"status"` // "ok", "warning", "error"
}

// CheckCatalog verifies that every product the profile references exists in the ledger.
func CheckCatalog(ctx context.Context, l ledger.Ledger, profile reconcile.Profile) (*CatalogReport, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid consumption profile: %w", err)
	}

	report := &CatalogReport{Missing: []string{}, Empty: []string{}, Status: "ok"}

	for _, name := range profile.Products() {
		p, err := l.Get(ctx, name)
		if errors.Is(err, ledger.ErrProductNotFound) {
			report.Missing = append(report.Missing, name)
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.Quantity.IsZero() {
			report.Empty = append(report.Empty, name)
		}
	}

	switch {
	case len(report.Missing) > 0:
		report.Status = "error"
	case len(report.Empty) > 0:
		report.Status = "warning"
	}
	return report, nil
}

// FixCatalog inserts the missing products from the catalog with their
// catalog quantities. Products not in the catalog are returned as unfixed.
func FixCatalog(ctx context.Context, db *gorm.DB, catalog []ledger.Product, missing []string) (fixed, unfixed []string, err error) {
	byName := make(map[string]ledger.Product, len(catalog))
	for _, p := range catalog {
		byName[p.Name] = p
	}

	var rows []ledger.Product
	for _, name := range missing {
		p, ok := byName[name]
		if !ok {
			unfixed = append(unfixed, name)
			continue
		}
		rows = append(rows, p)
		fixed = append(fixed, name)
	}
	if len(rows) == 0 {
		return nil, unfixed, nil
	}

	if _, err := ledger.Seed(ctx, db, rows); err != nil {
		return nil, missing, err
	}
	return fixed, unfixed, nil
}
