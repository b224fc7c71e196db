// Package storage provides the telemetry journal for the station server.
// It records what the simulation did (tick totals, event stream) for post-run
// analysis. Engine state is never reconstructed from here: the simulation
// lives only for process lifetime.
package storage

import (
	"context"
	"time"
)

// SimEvent mirrors the domain event structure for persistence.
// The events package should NOT import this; wiring happens via the
// EventPersister adapter in cmd/station-server.
type SimEvent struct {
	ID        string                 `json:"id" db:"id"`
	RunID     string                 `json:"run_id" db:"run_id"`
	Timestamp time.Time              `json:"timestamp" db:"timestamp"`
	EventType string                 `json:"event_type" db:"event_type"`
	Source    string                 `json:"source" db:"source"`
	Payload   map[string]interface{} `json:"payload" db:"payload"`
	Tick      int64                  `json:"tick" db:"tick"`
}

// TickRecord is one row of the per-tick resource level journal.
type TickRecord struct {
	Tick       int64              `json:"tick" db:"tick"`
	RunID      string             `json:"run_id" db:"run_id"`
	RecordedAt time.Time          `json:"recorded_at" db:"recorded_at"`
	Totals     map[string]float64 `json:"totals" db:"totals"`
}

// TelemetryRepository defines the interface for the journal.
type TelemetryRepository interface {
	// AppendEvent adds a simulation event to the journal.
	AppendEvent(ctx context.Context, event SimEvent) error

	// RecordTick stores the station totals after one step.
	RecordTick(ctx context.Context, rec TickRecord) error

	// GetEventsByType retrieves all recorded events of a type for a run.
	GetEventsByType(ctx context.Context, runID, eventType string) ([]SimEvent, error)

	// GetEventsByTick retrieves all events recorded during one tick.
	GetEventsByTick(ctx context.Context, runID string, tick int64) ([]SimEvent, error)

	// GetTicks retrieves the tick journal for a run, oldest first.
	GetTicks(ctx context.Context, runID string) ([]TickRecord, error)
}
