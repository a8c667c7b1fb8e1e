package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"logpulse/internal/models"
)

func TestSummary_Tables(t *testing.T) {
	from := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	out := Summary(models.SummaryReport{
		From:      from,
		To:        from.Add(10 * time.Second),
		Processed: 7,
		TopSections: []models.Count[string]{
			{Key: "api", Count: 4},
			{Key: "/", Count: 3},
		},
		ErrorCodes: []models.Count[int]{{Key: 503, Count: 2}},
	})

	assert.True(t, strings.HasPrefix(out, "Read 7 log lines in the interval 2024-01-01 12:00:00 to 2024-01-01 12:00:10"))
	assert.Contains(t, out, "Requests by Path:")
	assert.Contains(t, out, "|    0 | api                  |     4 |")
	assert.Contains(t, out, "|    1 | /                    |     3 |")
	assert.Contains(t, out, "BAD STATUS CODES:")
	assert.Contains(t, out, "|    0 | 503                  |     2 |")
	assert.NotContains(t, out, "No bad status codes")
}

func TestSummary_Empty(t *testing.T) {
	out := Summary(models.SummaryReport{LateRecords: 2})
	assert.Contains(t, out, "Read 0 log lines")
	assert.Contains(t, out, "(2 late)")
	assert.NotContains(t, out, "Requests by Path")
	assert.Contains(t, out, "No bad status codes in this interval...")
}

func TestAlert_Transitions(t *testing.T) {
	to := time.Date(2024, time.January, 1, 12, 2, 0, 0, time.UTC)
	r := models.AlertReport{From: to.Add(-2 * time.Minute), To: to, Count: 11, Threshold: 10}

	assert.Empty(t, Alert(r))

	r.Transition = models.TransitionAlert
	out := Alert(r)
	assert.Contains(t, out, "High traffic generated an alert")
	assert.Contains(t, out, "Events in past 2m0s: 11 (threshold 10)")

	r.Transition = models.TransitionRecovered
	r.Count = 4
	out = Alert(r)
	assert.Contains(t, out, "recovered")
	assert.Contains(t, out, "events in past 2m0s: 4")
	assert.NotContains(t, out, "alert")
}
