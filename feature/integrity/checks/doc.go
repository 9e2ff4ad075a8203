// Package checks holds the individual integrity checks: catalog against the
// consumption profile, database schema against the GORM models, and the
// snapshot bucket.
package checks
