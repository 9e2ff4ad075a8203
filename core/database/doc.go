// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL connection (production) or a sqlite
// database (local runs and tests) based on the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list of a table. The integrity feature
// compares it with the GORM models of the products ledger and the maintenance
// events table to catch drifted schemas before the stock engine writes to them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "products")
package database
