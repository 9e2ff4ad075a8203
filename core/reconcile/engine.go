package reconcile

import (
	"context"

	"farm-manager/core/ledger"

	"go.uber.org/zap"
)

// DefaultSupplyType is the event type that consumes supplies.
const DefaultSupplyType = "supply"

// Options tunes the engine.
type Options struct {
	// SupplyType is the only event type with ledger effects.
	SupplyType string
	// RestockOnDelete returns a deleted event's consumption to the ledger.
	RestockOnDelete bool
}

// Engine applies the stock effects of maintenance event changes. It holds no
// state between calls.
type Engine struct {
	ledger  ledger.Ledger
	profile Profile
	logger  *zap.Logger
	opts    Options
}

// NewEngine creates an engine writing to the given ledger.
func NewEngine(l ledger.Ledger, profile Profile, logger *zap.Logger, opts Options) *Engine {
	if opts.SupplyType == "" {
		opts.SupplyType = DefaultSupplyType
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		ledger:  l,
		profile: profile,
		logger:  logger.Named("reconcile"),
		opts:    opts,
	}
}

// Profile returns the consumption table the engine uses.
func (e *Engine) Profile() Profile {
	return e.profile
}

// SupplyType returns the event type with ledger effects.
func (e *Engine) SupplyType() string {
	return e.opts.SupplyType
}

func (e *Engine) isSupply(ev Event) bool {
	return ev.Type == e.opts.SupplyType
}

// PlanCreated computes the deltas of a newly recorded event without applying them.
func (e *Engine) PlanCreated(ev Event) Plan {
	if !e.isSupply(ev) {
		return Plan{EventID: ev.ID}
	}
	plan := e.profile.Diff(nil, ev.Snapshot)
	plan.EventID = ev.ID
	return plan
}

// PlanUpdated computes the net deltas of an edit without applying them.
// Events that are not of the supply type consume nothing, so changing an
// event's type to or from the supply type restocks or consumes in full.
func (e *Engine) PlanUpdated(prev, next Event) Plan {
	var plan Plan
	switch wasSupply, isSupply := e.isSupply(prev), e.isSupply(next); {
	case wasSupply && isSupply:
		plan = e.profile.Diff(prev.Snapshot, next.Snapshot)
	case wasSupply:
		plan = e.profile.Diff(prev.Snapshot, e.profile.Unused())
	case isSupply:
		plan = e.profile.Diff(nil, e.profile.Merge(prev.Snapshot, next.Snapshot))
	}
	plan.EventID = next.ID
	return plan
}

// PlanDeleted computes the restock of a deleted event. It is empty unless
// RestockOnDelete is set.
func (e *Engine) PlanDeleted(ev Event) Plan {
	if !e.opts.RestockOnDelete || !e.isSupply(ev) {
		return Plan{EventID: ev.ID}
	}
	plan := e.profile.Diff(ev.Snapshot, e.profile.Unused())
	plan.EventID = ev.ID
	return plan
}

// OnEventCreated consumes the supplies of a newly recorded event.
func (e *Engine) OnEventCreated(ctx context.Context, ev Event) *ApplyReport {
	if !e.isSupply(ev) {
		return skipped(ev.ID)
	}
	return e.apply(ctx, e.PlanCreated(ev))
}

// OnEventUpdated applies the net stock effect of an edit. prev must be the
// state persisted before the edit; it is trusted as given.
func (e *Engine) OnEventUpdated(ctx context.Context, prev, next Event) *ApplyReport {
	if !e.isSupply(prev) && !e.isSupply(next) {
		return skipped(next.ID)
	}
	return e.apply(ctx, e.PlanUpdated(prev, next))
}

// OnEventDeleted leaves stock untouched unless RestockOnDelete is set.
func (e *Engine) OnEventDeleted(ctx context.Context, ev Event) *ApplyReport {
	if !e.opts.RestockOnDelete || !e.isSupply(ev) {
		return skipped(ev.ID)
	}
	return e.apply(ctx, e.PlanDeleted(ev))
}

func (e *Engine) apply(ctx context.Context, plan Plan) *ApplyReport {
	report := Apply(ctx, e.ledger, plan, e.logger)
	if len(report.Failed) > 0 {
		e.logger.Warn("Event saved with partial stock application",
			zap.Uint("event_id", plan.EventID),
			zap.Int("applied", len(report.Applied)),
			zap.Int("failed", len(report.Failed)),
		)
	}
	return report
}

func skipped(id uint) *ApplyReport {
	return &ApplyReport{EventID: id, Skipped: true, Applied: []AppliedDelta{}, Failed: []FailedDelta{}}
}
