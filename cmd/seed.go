package cmd

import (
	"context"

	"farm-manager/core/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCatalogFile string

// seedCmd inserts the catalog products that do not exist yet.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the product ledger from the catalog",
	Long: `Creates the products table and inserts every catalog product that is not
there yet. Existing products keep their quantities.

The catalog is read from --catalog, then RECONCILE_CATALOG_FILE, and falls back
to the built-in catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		path := rt.cfg.Reconcile.CatalogFile
		if seedCatalogFile != "" {
			path = seedCatalogFile
		}
		catalog, err := ledger.LoadCatalog(path)
		if err != nil {
			return err
		}

		inserted, err := ledger.Seed(context.Background(), rt.db, catalog)
		if err != nil {
			return err
		}

		rt.logger.Info("Catalog seeded",
			zap.String("catalog", path),
			zap.Int("products", len(catalog)),
			zap.Int64("inserted", inserted),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedCatalogFile, "catalog", "", "Path to a YAML catalog")
	RootCmd.AddCommand(seedCmd)
}
