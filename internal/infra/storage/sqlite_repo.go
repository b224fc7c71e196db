package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLiteTelemetryRepository implements TelemetryRepository for SQLite.
type SQLiteTelemetryRepository struct {
	db *sql.DB
}

func NewSQLiteTelemetryRepository(db *sql.DB) *SQLiteTelemetryRepository {
	return &SQLiteTelemetryRepository{db: db}
}

func (r *SQLiteTelemetryRepository) AppendEvent(ctx context.Context, event SimEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO sim_events (id, run_id, timestamp, event_type, source, payload, tick)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.RunID, event.Timestamp, event.EventType, event.Source,
		string(payloadBytes), event.Tick,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteTelemetryRepository) RecordTick(ctx context.Context, rec TickRecord) error {
	totalsBytes, err := json.Marshal(rec.Totals)
	if err != nil {
		return fmt.Errorf("failed to marshal totals: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO ticks (tick, run_id, recorded_at, totals_json)
		VALUES (?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query, rec.Tick, rec.RunID, rec.RecordedAt, string(totalsBytes))
	if err != nil {
		return fmt.Errorf("failed to record tick: %w", err)
	}
	return nil
}

func (r *SQLiteTelemetryRepository) getManyEvents(ctx context.Context, query string, args ...interface{}) ([]SimEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []SimEvent
	for rows.Next() {
		var e SimEvent
		var payloadStr string
		err := rows.Scan(&e.ID, &e.RunID, &e.Timestamp, &e.EventType, &e.Source, &payloadStr, &e.Tick)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteTelemetryRepository) GetEventsByType(ctx context.Context, runID, eventType string) ([]SimEvent, error) {
	query := `SELECT id, run_id, timestamp, event_type, source, payload, tick FROM sim_events WHERE run_id = ? AND event_type = ? ORDER BY timestamp ASC`
	return r.getManyEvents(ctx, query, runID, eventType)
}

func (r *SQLiteTelemetryRepository) GetEventsByTick(ctx context.Context, runID string, tick int64) ([]SimEvent, error) {
	query := `SELECT id, run_id, timestamp, event_type, source, payload, tick FROM sim_events WHERE run_id = ? AND tick = ? ORDER BY timestamp ASC`
	return r.getManyEvents(ctx, query, runID, tick)
}

func (r *SQLiteTelemetryRepository) GetTicks(ctx context.Context, runID string) ([]TickRecord, error) {
	query := `SELECT tick, run_id, recorded_at, totals_json FROM ticks WHERE run_id = ? ORDER BY tick ASC`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []TickRecord
	for rows.Next() {
		var rec TickRecord
		var totalsStr string
		if err := rows.Scan(&rec.Tick, &rec.RunID, &rec.RecordedAt, &totalsStr); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(totalsStr), &rec.Totals); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
