package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"farm-manager/core/storage"
	"farm-manager/core/utils"
	"farm-manager/feature/inventory"

	"github.com/spf13/cobra"
)

// stockCmd is the parent command for stock operations.
var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Inspect and adjust the product ledger",
}

var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products and quantities",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		products, err := rt.ledger.List(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tQUANTITY\tUNIT\tSEED\tVALUE")
		for _, p := range products {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Quantity, p.Unit, p.SeedQuantity, p.StockValue().StringFixed(2))
		}
		return w.Flush()
	},
}

var stockAdjustCmd = &cobra.Command{
	Use:   "adjust <product> <delta>",
	Short: "Book a delivery (positive) or write-off (negative)",
	Example: `  farm-manager stock adjust "Motor Oil" 20
  farm-manager stock adjust "Oil Filter" -- -1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, ok := utils.ToDecimal(args[1])
		if !ok {
			return fmt.Errorf("delta %q is not a number", args[1])
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		svc := inventory.NewService(rt.ledger, nil, "", "", 0, rt.logger)
		p, err := svc.Adjust(context.Background(), args[0], delta)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s %s\n", p.Name, p.Quantity, p.Unit)
		return nil
	},
}

var stockSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export the current stock to the storage bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		client, err := storage.NewClient(rt.cfg.Storage)
		if err != nil {
			return err
		}

		svc := inventory.NewService(rt.ledger, client, rt.cfg.Storage.Bucket,
			rt.cfg.Reconcile.SnapshotPrefix, rt.cfg.Storage.SnapshotRetain, rt.logger)
		info, err := svc.ExportSnapshot(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Snapshot written to %s/%s (%d products, %d pruned)\n", rt.cfg.Storage.Bucket, info.Key, info.Products, info.Pruned)
		return nil
	},
}

func init() {
	stockCmd.AddCommand(stockListCmd, stockAdjustCmd, stockSnapshotCmd)
	RootCmd.AddCommand(stockCmd)
}
