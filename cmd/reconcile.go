package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"farm-manager/core/reconcile"
	"farm-manager/feature/maintenance"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncAudit   bool
	dryRunAudit bool
	yesConfirm  bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the product ledger with recorded maintenance events",
	Long: `Recompute what stock should be from the seed quantities and the supplies
every maintenance event currently records, and report any drift.`,
}

// auditCmd reports drift and optionally corrects it.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit stock drift (report + optionally sync)",
	Long: `Audit stock drift between the ledger and the maintenance history.

Expected quantity = seed quantity - consumption of every supply event.
Products below zero expected are reported as unrecoverable and never synced.

Examples:
  # Report only
  reconcile audit

  # Sync drifted quantities (with interactive confirmation)
  reconcile audit --sync

  # Sync with auto-confirm (non-interactive)
  reconcile audit --sync --yes`,
	RunE: runAudit,
}

func init() {
	reconcileCmd.AddCommand(auditCmd)

	auditCmd.Flags().BoolVar(&syncAudit, "sync", false, "Enable sync (set drifted quantities to the expected value)")
	auditCmd.Flags().BoolVar(&dryRunAudit, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	auditCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm corrections (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	l := rt.logger
	defer l.Sync()

	l.Info("Starting stock audit")

	products, err := rt.ledger.List(ctx)
	if err != nil {
		return err
	}
	events, err := maintenance.LoadEvents(ctx, rt.db)
	if err != nil {
		return err
	}

	opts := reconcile.ReconcileOptions{
		DoSync: syncAudit,
		DryRun: dryRunAudit,
	}

	plan := reconcile.Audit(products, events, rt.profile, rt.cfg.Reconcile.SupplyType, opts)
	printAuditReport(l, plan)

	if !syncAudit {
		l.Info("No actions requested. Use --sync to correct drifted quantities.")
		return nil
	}

	if dryRunAudit {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if len(plan.Actions) == 0 {
		l.Info("No actions required.")
		return nil
	}

	if !confirmAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	l.Info("Applying actions...")
	executed, err := reconcile.ApplyAudit(ctx, rt.ledger, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply audit: %w", err)
	}

	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printAuditReport prints a formatted audit report using logger.
func printAuditReport(l *zap.Logger, plan *reconcile.AuditPlan) {
	s := plan.Summary

	l.Info("Audit report",
		zap.Int("products", s.Products),
		zap.Int("events", s.Events),
		zap.Int("supply_events", s.SupplyEvents),
		zap.Int("drifted", s.Drifted),
		zap.Int("unrecoverable", s.Unrecoverable),
		zap.Int("malformed_quantities", s.Warnings),
	)

	for _, d := range plan.Drifts {
		l.Warn("Drift",
			zap.String("product", d.Product),
			zap.String("seed", d.Seed.String()),
			zap.String("consumed", d.Consumed.String()),
			zap.String("expected", d.Expected.String()),
			zap.String("actual", d.Actual.String()),
			zap.String("difference", d.Difference.String()),
		)
	}

	for _, a := range plan.Actions {
		l.Info("Planned action",
			zap.String("type", string(a.Type)),
			zap.String("key", a.Key),
			zap.String("reason", a.Reason),
		)
	}
}

// confirmAction prompts the user for confirmation or uses --yes flag.
func confirmAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to overwrite ledger quantities: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
