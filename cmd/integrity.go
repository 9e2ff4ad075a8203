package cmd

import (
	"context"

	"farm-manager/core/storage"
	"farm-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the ledger, schema and snapshot storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(true, true, true)
	},
}

// catalogCmd represents the integrity catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check that every tracked product exists in the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(true, false, false)
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(false, true, false)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the snapshot bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(catalogCmd, serverCmd, storageCmd)

	catalogCmd.Flags().BoolVar(&fixFlag, "fix", false, "Seed missing products from the catalog")
	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing bucket and folder")
}

func runIntegrityChecks(runCatalog, runServer, runStorage bool) error {
	ctx := context.Background()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	logg := rt.logger
	defer logg.Sync()

	catalog, err := rt.catalog()
	if err != nil {
		return err
	}

	deps := integrity.Deps{
		DB:      rt.db,
		Ledger:  rt.ledger,
		Profile: rt.profile,
		Catalog: catalog,
		Bucket:  rt.cfg.Storage.Bucket,
		Prefix:  rt.cfg.Reconcile.SnapshotPrefix,
		Region:  rt.cfg.Storage.Region,
	}
	if runStorage {
		client, err := storage.NewClient(rt.cfg.Storage)
		if err != nil {
			return err
		}
		deps.Client = client
	}
	svc := integrity.NewService(deps, logg)

	if runCatalog {
		logg.Info("Checking product catalog...")
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			return err
		}

		if len(report.Empty) > 0 {
			logg.Warn("Tracked products out of stock", zap.Strings("products", report.Empty))
		}
		if len(report.Missing) == 0 {
			logg.Info("Catalog is intact.")
		} else {
			logg.Warn("Products missing from ledger", zap.Strings("missing", report.Missing))

			if fixFlag {
				logg.Info("Seeding missing products...")
				fixed, unfixed, err := svc.FixCatalog(ctx, report.Missing)
				if err != nil {
					return err
				}
				logg.Info("Catalog fixed.", zap.Strings("fixed", fixed), zap.Strings("unfixed", unfixed))
			} else {
				logg.Info("Run 'integrity catalog --fix' to seed missing products.")
			}
		}
	}

	if runServer {
		logg.Info("Checking server schema integrity...")
		report, err := svc.CheckServer()
		if err != nil {
			logg.Error("Server schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Server schema matches expected definition.", zap.String("driver", report.Driver))
		} else {
			logg.Warn("Server schema mismatches found", zap.String("driver", report.Driver))
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if tblReport.Status == "missing" {
					logg.Warn("Missing Table", zap.String("table", table))
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runStorage {
		logg.Info("Checking snapshot storage...")
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			return err
		}

		if report.Status == "ok" {
			logg.Info("Snapshot storage is intact.", zap.Int("snapshots", report.SnapshotCount))
		} else {
			logg.Warn("Snapshot storage incomplete",
				zap.Bool("bucket_exists", report.BucketExists),
				zap.Bool("prefix_exists", report.PrefixExists),
			)
			if fixFlag {
				if err := svc.FixStorage(ctx, report); err != nil {
					return err
				}
				logg.Info("Snapshot storage fixed.")
			} else {
				logg.Info("Run 'integrity storage --fix' to create them.")
			}
		}
	}

	return nil
}
