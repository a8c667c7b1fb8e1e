package store

import (
	"context"
	"time"

	"github.com/jackc/pgconn"
)

// AlertEvent is one persisted alert or recovery transition
type AlertEvent struct {
	ID         string
	Transition string
	Count      int
	Threshold  int
	WindowFrom time.Time
	WindowTo   time.Time
	RecordedAt time.Time
}

// execer is the subset of *pgxpool.Pool used for writes
type execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS alert_events (
	id          UUID PRIMARY KEY,
	transition  TEXT        NOT NULL,
	event_count INTEGER     NOT NULL,
	threshold   INTEGER     NOT NULL,
	window_from TIMESTAMPTZ NOT NULL,
	window_to   TIMESTAMPTZ NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertAlertSQL = `
INSERT INTO alert_events (id, transition, event_count, threshold, window_from, window_to, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
