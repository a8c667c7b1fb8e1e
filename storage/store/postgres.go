package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"logpulse/config"
	"logpulse/internal/models"
)

// AlertRecorder persists alert transitions to Postgres
type AlertRecorder struct {
	db     execer
	pool   *pgxpool.Pool // nil when constructed around a custom execer
	logger *zap.SugaredLogger
}

// NewPostgresStore connects a pool sized from cfg and makes sure the alert table exists
func NewPostgresStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.SugaredLogger) (*AlertRecorder, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	idle, lifetime, err := cfg.Lifetimes()
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = int32(cfg.MaxConnections)
	poolCfg.MinConns = int32(cfg.MinConnections)
	poolCfg.MaxConnIdleTime = idle
	poolCfg.MaxConnLifetime = lifetime

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &AlertRecorder{db: pool, pool: pool, logger: logger}
	if err := r.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Infof("Database connected (max_conns=%d, min_conns=%d)", cfg.MaxConnections, cfg.MinConnections)
	return r, nil
}

// newRecorder wraps an arbitrary execer
func newRecorder(db execer, logger *zap.SugaredLogger) *AlertRecorder {
	return &AlertRecorder{db: db, logger: logger}
}

// EnsureSchema creates the alert_events table if it is missing
func (r *AlertRecorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create alert_events table: %w", err)
	}
	return nil
}

// RecordTransition inserts a single alert or recovery row and returns it
func (r *AlertRecorder) RecordTransition(ctx context.Context, report models.AlertReport) (*AlertEvent, error) {
	ev := &AlertEvent{
		ID:         uuid.NewString(),
		Transition: string(report.Transition),
		Count:      report.Count,
		Threshold:  report.Threshold,
		WindowFrom: report.From,
		WindowTo:   report.To,
		RecordedAt: time.Now().UTC(),
	}

	tag, err := r.db.Exec(ctx, insertAlertSQL,
		ev.ID, ev.Transition, ev.Count, ev.Threshold, ev.WindowFrom, ev.WindowTo, ev.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert alert event: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return nil, fmt.Errorf("insert alert event affected %d rows", tag.RowsAffected())
	}
	return ev, nil
}

// HandleSummary ignores summaries; only transitions are stored
func (r *AlertRecorder) HandleSummary(context.Context, models.SummaryReport) error {
	return nil
}

// HandleAlert stores alert and recovery transitions
func (r *AlertRecorder) HandleAlert(ctx context.Context, report models.AlertReport) error {
	if !report.Changed() {
		return nil
	}
	ev, err := r.RecordTransition(ctx, report)
	if err != nil {
		return err
	}
	r.logger.Debugf("Recorded %s transition %s (count=%d)", ev.Transition, ev.ID, ev.Count)
	return nil
}

// Close releases the pool
func (r *AlertRecorder) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
