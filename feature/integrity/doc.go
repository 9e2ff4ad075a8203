// Package integrity provides health checks for the stock service.
//
// # Checks Provided
//
//   - Catalog: Every product the consumption profile references exists in the ledger.
//   - Server: The database schema matches the GORM models (products, maintenance_events).
//   - Storage: The snapshot bucket and its prefix exist.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks. Concurrent requests share one run.
//   - GET /integrity/catalog : Runs catalog check (supports ?fix=true).
//   - GET /integrity/server : Runs server schema check.
//   - GET /integrity/storage : Runs storage check (supports ?fix=true).
package integrity
