// Package store persists ProcessedEvent outcomes to Postgres: a thin
// *sql.DB wrapper with an idempotent schema init and a couple of
// hand-written queries, no ORM.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corvidsec/matchengine/matcher"
)

// Store writes and reads the match_audit table.
type Store struct {
	db *sql.DB
}

// New wraps an already-opened *sql.DB. The caller owns the connection
// pool: opening, configuring, and closing it.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS match_audit (
	id BIGSERIAL PRIMARY KEY,
	occurred_at TIMESTAMPTZ NOT NULL,
	event_type TEXT NOT NULL,
	event JSONB NOT NULL,
	result JSONB NOT NULL
)`

// InitSchema creates match_audit if it doesn't already exist.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// RecordEvent persists one ProcessedEvent and returns its audit row id.
func (s *Store) RecordEvent(ctx context.Context, pe matcher.ProcessedEvent) (int64, error) {
	eventJSON, err := json.Marshal(pe.Event)
	if err != nil {
		return 0, fmt.Errorf("marshal event: %w", err)
	}
	resultJSON, err := json.Marshal(pe.Result)
	if err != nil {
		return 0, fmt.Errorf("marshal result: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO match_audit(occurred_at, event_type, event, result) VALUES ($1,$2,$3,$4) RETURNING id`,
		time.Now().UTC(), pe.Event.Type, eventJSON, resultJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert audit row: %w", err)
	}
	return id, nil
}

// AuditRecord is one row of match_audit, as read back by ListRecent.
type AuditRecord struct {
	ID         int64
	OccurredAt time.Time
	EventType  string
	Event      json.RawMessage
	Result     json.RawMessage
}

// ListRecent returns the most recently recorded audit rows, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]AuditRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, occurred_at, event_type, event, result FROM match_audit ORDER BY id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit rows: %w", err)
	}
	defer rows.Close()

	out := []AuditRecord{}
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.OccurredAt, &rec.EventType, &rec.Event, &rec.Result); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
