package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farm-manager/core/reconcile"
	"farm-manager/core/utils"
	"farm-manager/feature/maintenance/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service records maintenance events and keeps the stock ledger in step with
// them. The event row is always saved first; the stock effect follows and its
// failures are reported, never rolled back into the event.
type Service struct {
	db     *gorm.DB
	engine *reconcile.Engine
	logger *zap.Logger
	locks  *utils.KeyedMutex
}

// NewService creates a new maintenance service.
func NewService(db *gorm.DB, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		engine: engine,
		logger: logger,
		locks:  utils.NewKeyedMutex(),
	}
}

// Migrate creates or updates the maintenance_events table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.MaintenanceEvent{}); err != nil {
		return fmt.Errorf("failed to migrate maintenance events: %w", err)
	}
	return nil
}

// Create saves a new event and consumes its supplies.
func (s *Service) Create(ctx context.Context, in models.Input) (*models.Result, error) {
	if in.Type == nil || strings.TrimSpace(*in.Type) == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidEvent)
	}

	ev := &models.MaintenanceEvent{
		Type:        strings.TrimSpace(*in.Type),
		PerformedAt: time.Now().UTC(),
		Supplies:    datatypes.JSONMap(s.engine.Profile().Extract(in.Supplies)),
	}
	if in.MachineID != nil {
		ev.MachineID = *in.MachineID
	}
	if in.Description != nil {
		ev.Description = *in.Description
	}
	if in.PerformedAt != nil {
		ev.PerformedAt = *in.PerformedAt
	}

	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		return nil, fmt.Errorf("failed to save maintenance event: %w", err)
	}

	report := s.engine.OnEventCreated(ctx, ev.Event())
	s.logResult("Maintenance event created", ev, report)
	return &models.Result{Event: ev, Stock: report}, nil
}

// Update applies a partial edit. Supply fields missing from the input keep
// their stored value. Edits of the same event are serialized so each one
// diffs against the state the previous one left behind.
func (s *Service) Update(ctx context.Context, id uint, in models.Input) (*models.Result, error) {
	unlock := s.locks.Lock(lockKey(id))
	defer unlock()

	ev, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := ev.Event()

	if in.Type != nil {
		t := strings.TrimSpace(*in.Type)
		if t == "" {
			return nil, fmt.Errorf("%w: type cannot be empty", ErrInvalidEvent)
		}
		ev.Type = t
	}
	if in.MachineID != nil {
		ev.MachineID = *in.MachineID
	}
	if in.Description != nil {
		ev.Description = *in.Description
	}
	if in.PerformedAt != nil {
		ev.PerformedAt = *in.PerformedAt
	}

	profile := s.engine.Profile()
	changed := profile.Extract(in.Supplies)
	ev.Supplies = datatypes.JSONMap(profile.Merge(prev.Snapshot, changed))

	if err := s.db.WithContext(ctx).Save(ev).Error; err != nil {
		return nil, fmt.Errorf("failed to save maintenance event %d: %w", id, err)
	}

	next := reconcile.Event{ID: ev.ID, Type: ev.Type, Snapshot: changed}
	report := s.engine.OnEventUpdated(ctx, prev, next)
	s.logResult("Maintenance event updated", ev, report)
	return &models.Result{Event: ev, Stock: report}, nil
}

// Delete removes an event. Stock is only returned when the engine is
// configured to restock on delete.
func (s *Service) Delete(ctx context.Context, id uint) (*models.Result, error) {
	unlock := s.locks.Lock(lockKey(id))
	defer unlock()

	ev, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.MaintenanceEvent{}, id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete maintenance event %d: %w", id, err)
	}

	report := s.engine.OnEventDeleted(ctx, ev.Event())
	s.logResult("Maintenance event deleted", ev, report)
	return &models.Result{Event: ev, Stock: report}, nil
}

// Get returns a single event.
func (s *Service) Get(ctx context.Context, id uint) (*models.MaintenanceEvent, error) {
	return s.find(ctx, id)
}

// List returns events, newest first.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]models.MaintenanceEvent, error) {
	q := s.db.WithContext(ctx).Model(&models.MaintenanceEvent{})
	if filter.MachineID != 0 {
		q = q.Where("machine_id = ?", filter.MachineID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var events []models.MaintenanceEvent
	if err := q.Order("performed_at DESC").Order("id DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance events: %w", err)
	}
	return events, nil
}

// Events returns every recorded event in the engine's form, for the drift audit.
func (s *Service) Events(ctx context.Context) ([]reconcile.Event, error) {
	return LoadEvents(ctx, s.db)
}

// LoadEvents reads every maintenance event in the engine's form.
func LoadEvents(ctx context.Context, db *gorm.DB) ([]reconcile.Event, error) {
	var rows []models.MaintenanceEvent
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load maintenance events: %w", err)
	}
	out := make([]reconcile.Event, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Event())
	}
	return out, nil
}

func (s *Service) find(ctx context.Context, id uint) (*models.MaintenanceEvent, error) {
	var ev models.MaintenanceEvent
	if err := s.db.WithContext(ctx).First(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrEventNotFound, id)
		}
		return nil, fmt.Errorf("failed to read maintenance event %d: %w", id, err)
	}
	return &ev, nil
}

func (s *Service) logResult(msg string, ev *models.MaintenanceEvent, report *reconcile.ApplyReport) {
	s.logger.Info(msg,
		zap.Uint("event_id", ev.ID),
		zap.String("type", ev.Type),
		zap.Bool("stock_skipped", report.Skipped),
		zap.Int("applied", len(report.Applied)),
		zap.Int("failed", len(report.Failed)),
	)
}

func lockKey(id uint) string {
	return fmt.Sprintf("event:%d", id)
}
