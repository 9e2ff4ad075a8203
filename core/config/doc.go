// Package config provides configuration management for the farm manager.
//
// It uses Viper to read environment variables (optionally from a .env file),
// with defaults declared on the struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Database: MySQL or sqlite connection details
//   - Storage: S3/MinIO credentials and bucket for stock snapshots
//   - Log: logging level and format
//   - Reconcile: supply event type, restock-on-delete policy, catalog file
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.SupplyType)
package config
