package reconcile

import (
	"context"
	"errors"

	"farm-manager/core/ledger"

	"go.uber.org/zap"
)

// Apply applies every delta of the plan to the ledger, one product at a time.
// Failures are logged and collected; they never stop the remaining deltas.
func Apply(ctx context.Context, l ledger.Ledger, plan Plan, logger *zap.Logger) *ApplyReport {
	report := &ApplyReport{
		EventID:  plan.EventID,
		Applied:  []AppliedDelta{},
		Failed:   []FailedDelta{},
		Warnings: plan.Warnings,
	}

	for _, w := range plan.Warnings {
		logger.Warn("Malformed quantity treated as zero",
			zap.Uint("event_id", plan.EventID),
			zap.String("item", w.Item),
			zap.String("field", w.Field),
			zap.String("value", w.Value),
		)
	}

	for _, delta := range plan.Deltas {
		result, err := l.Adjust(ctx, delta.Product, delta.Quantity)
		if err == nil {
			report.Applied = append(report.Applied, AppliedDelta{Delta: delta, Result: result})
			logger.Debug("Stock adjusted",
				zap.Uint("event_id", plan.EventID),
				zap.String("product", delta.Product),
				zap.String("delta", delta.Quantity.String()),
				zap.String("quantity", result.String()),
			)
			continue
		}

		failed := FailedDelta{Delta: delta, Error: err.Error(), Err: err}
		fields := []zap.Field{
			zap.Uint("event_id", plan.EventID),
			zap.String("product", delta.Product),
			zap.String("delta", delta.Quantity.String()),
			zap.String("kind", string(delta.Kind)),
			zap.Error(err),
		}

		var stockErr *ledger.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			current := stockErr.Current
			failed.Current = &current
			fields = append(fields,
				zap.String("current", stockErr.Current.String()),
				zap.String("requested", stockErr.Requested.String()),
			)
			logger.Warn("Insufficient stock, adjustment skipped", fields...)
		case errors.Is(err, ledger.ErrProductNotFound):
			logger.Warn("Product missing from ledger, adjustment skipped", fields...)
		default:
			logger.Error("Stock adjustment failed", fields...)
		}

		report.Failed = append(report.Failed, failed)
	}

	return report
}
