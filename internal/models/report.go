package models

import (
	"time"

	"github.com/google/uuid"
)

// Count pairs a key (section or status code) with the number of hits
type Count[K comparable] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// SummaryReport is the short-window traffic summary
type SummaryReport struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Processed   int             `json:"processed"`
	TopSections []Count[string] `json:"top_sections"`
	ErrorCodes  []Count[int]    `json:"error_codes"`
	LateRecords int             `json:"late_records"`
}

// Transition describes how the alert state changed during a cycle
type Transition string

const (
	TransitionNone      Transition = "none"
	TransitionAlert     Transition = "alert"
	TransitionRecovered Transition = "recovered"
)

// AlertReport is the long-window volume check result
type AlertReport struct {
	From       time.Time  `json:"from"`
	To         time.Time  `json:"to"`
	Count      int        `json:"count"`
	Threshold  int        `json:"threshold"`
	Alerting   bool       `json:"alerting"`
	Transition Transition `json:"transition"`
}

// Changed reports whether the cycle fired an alert or a recovery
func (a AlertReport) Changed() bool {
	return a.Transition == TransitionAlert || a.Transition == TransitionRecovered
}

// ReportKind identifies the payload carried by a ReportMessage
type ReportKind string

const (
	KindSummary ReportKind = "summary"
	KindAlert   ReportKind = "alert"
)

// ReportMessage defines the message structure published on the report bus
// Used by the producer, the consumer and the follower CLI
type ReportMessage struct {
	ID        string         `json:"id"`
	Kind      ReportKind     `json:"kind"`
	EmittedAt time.Time      `json:"emitted_at"`
	Summary   *SummaryReport `json:"summary,omitempty"`
	Alert     *AlertReport   `json:"alert,omitempty"`
}

// NewSummaryMessage wraps a summary report with a fresh message ID
func NewSummaryMessage(r SummaryReport) *ReportMessage {
	return &ReportMessage{
		ID:        uuid.NewString(),
		Kind:      KindSummary,
		EmittedAt: time.Now().UTC(),
		Summary:   &r,
	}
}

// NewAlertMessage wraps an alert report with a fresh message ID
func NewAlertMessage(r AlertReport) *ReportMessage {
	return &ReportMessage{
		ID:        uuid.NewString(),
		Kind:      KindAlert,
		EmittedAt: time.Now().UTC(),
		Alert:     &r,
	}
}
