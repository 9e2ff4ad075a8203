package models

import (
	"time"

	"farm-manager/core/reconcile"

	"gorm.io/datatypes"
)

// MaintenanceEvent represents the 'maintenance_events' table.
// Supplies holds the tracked supply fields as recorded by the operator
// (e.g. motorOilUsed, motorOilQuantity, oilFilter).
type MaintenanceEvent struct {
	ID          uint              `gorm:"column:id;primaryKey" json:"id"`
	MachineID   uint              `gorm:"column:machine_id;index" json:"machine_id"`
	Type        string            `gorm:"column:type;type:varchar(40);index" json:"type"`
	Description string            `gorm:"column:description;type:text" json:"description"`
	PerformedAt time.Time         `gorm:"column:performed_at" json:"performed_at"`
	Supplies    datatypes.JSONMap `gorm:"column:supplies" json:"supplies"`
	CreatedAt   time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (MaintenanceEvent) TableName() string {
	return "maintenance_events"
}

// Event returns the stock engine's view of the row. The snapshot is a copy,
// so later edits to the row do not leak into it.
func (m *MaintenanceEvent) Event() reconcile.Event {
	return reconcile.Event{
		ID:       m.ID,
		Type:     m.Type,
		Snapshot: reconcile.Snapshot(m.Supplies).Clone(),
	}
}

// Input is a create or partial update request. Nil pointers leave the stored
// value untouched; Supplies only carries the fields that were sent.
type Input struct {
	MachineID   *uint
	Type        *string
	Description *string
	PerformedAt *time.Time
	Supplies    reconcile.Snapshot
}

// Result pairs the saved event with the outcome of its stock adjustment.
type Result struct {
	Event *MaintenanceEvent      `json:"event"`
	Stock *reconcile.ApplyReport `json:"stock"`
}

// ListFilter narrows a listing. Zero values match everything.
type ListFilter struct {
	MachineID uint
	Type      string
	Limit     int
}
