package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogRecord_Section(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/api/user", "api"},
		{"/report", "report"},
		{"//double/slash", "double"},
		{"/", "/"},
		{"", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, LogRecord{Path: tt.path}.Section())
		})
	}
}

func TestLogRecord_IsError(t *testing.T) {
	for code, want := range map[int]bool{200: false, 302: false, 399: false, 400: true, 404: true, 500: true, 599: true} {
		assert.Equal(t, want, LogRecord{StatusCode: code}.IsError(), "status %d", code)
	}
}

func TestLogRecord_String(t *testing.T) {
	rec := LogRecord{
		IPAddress:      "127.0.0.1",
		ClientIdentity: "-",
		UserID:         "james",
		Time:           time.Date(2018, time.May, 9, 16, 0, 39, 0, time.UTC),
		Method:         "GET",
		Path:           "/report",
		Version:        "1.0",
		StatusCode:     200,
		ResponseSize:   123,
	}
	assert.Equal(t, `127.0.0.1 - james [9/May/2018:16:00:39 +0000] "GET /report HTTP/1.0" 200 123`, rec.String())
	assert.Equal(t, 5*time.Second, LogRecord{Time: rec.Time, ReadAt: rec.Time.Add(5 * time.Second)}.Latency())
}

func TestAlertReport_Changed(t *testing.T) {
	assert.False(t, AlertReport{Transition: TransitionNone}.Changed())
	assert.True(t, AlertReport{Transition: TransitionAlert}.Changed())
	assert.True(t, AlertReport{Transition: TransitionRecovered}.Changed())
}
