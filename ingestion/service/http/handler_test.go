package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	core "logpulse/ingestion/service/core"
	"logpulse/internal/models"
	"logpulse/processing"
)

var _ processing.ReportSink = (*StatusBoard)(nil)

func get(t *testing.T, h http.Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestStatusAPI(t *testing.T) {
	board := NewStatusBoard(func() core.Stats {
		return core.Stats{LinesRead: 10, RecordsParsed: 9, LinesDropped: 1}
	})
	router := NewStatusHandler(board, zap.NewNop().Sugar()).Router()
	ctx := context.Background()
	to := time.Date(2024, time.January, 1, 12, 2, 0, 0, time.UTC)

	code, body := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body["status"])

	board.SetIngesting(true)
	_, body = get(t, router, "/health")
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["ingesting"])

	code, _ = get(t, router, "/v1/summary/latest")
	assert.Equal(t, http.StatusNotFound, code)

	require.NoError(t, board.HandleSummary(ctx, models.SummaryReport{
		To: to, Processed: 9, TopSections: []models.Count[string]{{Key: "api", Count: 9}},
	}))
	code, body = get(t, router, "/v1/summary/latest")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(9), body["processed"])

	_, body = get(t, router, "/v1/alert")
	assert.Equal(t, false, body["alerting"])
	assert.Nil(t, body["since"])

	require.NoError(t, board.HandleAlert(ctx, models.AlertReport{
		To: to, Count: 12, Threshold: 10, Alerting: true, Transition: models.TransitionAlert,
	}))
	require.NoError(t, board.HandleAlert(ctx, models.AlertReport{
		To: to.Add(10 * time.Second), Count: 13, Threshold: 10, Alerting: true, Transition: models.TransitionNone,
	}))
	_, body = get(t, router, "/v1/alert")
	assert.Equal(t, true, body["alerting"])
	assert.Equal(t, float64(13), body["count"])
	assert.Equal(t, "2024-01-01T12:02:00Z", body["since"])

	require.NoError(t, board.HandleAlert(ctx, models.AlertReport{
		To: to.Add(time.Minute), Count: 2, Threshold: 10, Transition: models.TransitionRecovered,
	}))
	_, body = get(t, router, "/v1/alert")
	assert.Equal(t, false, body["alerting"])
	assert.Nil(t, body["since"])

	_, body = get(t, router, "/v1/pipeline")
	assert.Equal(t, float64(10), body["lines_read"])
	assert.Equal(t, float64(1), body["lines_dropped"])
}
