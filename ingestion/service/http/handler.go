package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	core "logpulse/ingestion/service/core"
	"logpulse/internal/models"
)

// StatusBoard is a report sink that keeps the latest state for the status API
type StatusBoard struct {
	mu         sync.RWMutex
	summary    *models.SummaryReport
	alert      models.AlertReport
	haveAlert  bool
	alertSince time.Time // when the current alert started; zero while not alerting
	ingesting  atomic.Bool
	stats      func() core.Stats
}

// NewStatusBoard creates a StatusBoard. stats may be nil.
func NewStatusBoard(stats func() core.Stats) *StatusBoard {
	return &StatusBoard{stats: stats}
}

// SetIngesting records whether the ingestion loop is running
func (b *StatusBoard) SetIngesting(running bool) {
	b.ingesting.Store(running)
}

// HandleSummary keeps the summary as the latest one
func (b *StatusBoard) HandleSummary(_ context.Context, report models.SummaryReport) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.summary = &report
	return nil
}

// HandleAlert keeps the current alert state
func (b *StatusBoard) HandleAlert(_ context.Context, report models.AlertReport) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alert = report
	b.haveAlert = true
	switch report.Transition {
	case models.TransitionAlert:
		b.alertSince = report.To
	case models.TransitionRecovered:
		b.alertSince = time.Time{}
	}
	return nil
}

// StatusHandler serves the read-only status API
type StatusHandler struct {
	board  *StatusBoard
	logger *zap.SugaredLogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(b *StatusBoard, l *zap.SugaredLogger) *StatusHandler {
	return &StatusHandler{board: b, logger: l}
}

// Router returns the chi router with every status route registered
func (h *StatusHandler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.logRequests)
	r.Get("/health", h.HealthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/summary/latest", h.LatestSummary)
		r.Get("/alert", h.AlertState)
		r.Get("/pipeline", h.Pipeline)
	})
	return r
}

// HealthCheck handles GET /health requests
func (h *StatusHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ingesting := h.board.ingesting.Load()
	status := "healthy"
	if !ingesting {
		status = "degraded"
	}

	h.respondJSON(w, map[string]interface{}{
		"status":    status,
		"ingesting": ingesting,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}, http.StatusOK)
}

// LatestSummary handles GET /v1/summary/latest requests
func (h *StatusHandler) LatestSummary(w http.ResponseWriter, r *http.Request) {
	h.board.mu.RLock()
	summary := h.board.summary
	h.board.mu.RUnlock()

	if summary == nil {
		h.respondError(w, "no summary produced yet", http.StatusNotFound)
		return
	}
	h.respondJSON(w, summary, http.StatusOK)
}

// AlertState handles GET /v1/alert requests
func (h *StatusHandler) AlertState(w http.ResponseWriter, r *http.Request) {
	h.board.mu.RLock()
	alert, have, since := h.board.alert, h.board.haveAlert, h.board.alertSince
	h.board.mu.RUnlock()

	resp := map[string]interface{}{
		"alerting":  alert.Alerting,
		"count":     alert.Count,
		"threshold": alert.Threshold,
		"since":     nil,
	}
	if !since.IsZero() {
		resp["since"] = since.Format(time.RFC3339Nano)
	}
	if !have {
		resp["count"] = 0
	}
	h.respondJSON(w, resp, http.StatusOK)
}

// Pipeline handles GET /v1/pipeline requests
func (h *StatusHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	var st core.Stats
	if h.board.stats != nil {
		st = h.board.stats()
	}
	h.respondJSON(w, st, http.StatusOK)
}

func (h *StatusHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debugw("status request", "method", r.Method, "uri", r.RequestURI, "duration", time.Since(start))
	})
}

// respondJSON sends JSON response
func (h *StatusHandler) respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warnf("HTTP Handler: Failed to encode JSON response: %v", err)
	}
}

// respondError sends error response
func (h *StatusHandler) respondError(w http.ResponseWriter, message string, statusCode int) {
	h.respondJSON(w, map[string]interface{}{
		"error":   message,
		"status":  statusCode,
		"message": http.StatusText(statusCode),
	}, statusCode)
}
