// Package notify delivers alert transitions to an external webhook.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"logpulse/internal/models"
	"logpulse/internal/render"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityResolved Severity = "resolved"
)

// Payload is the JSON body posted for every transition
type Payload struct {
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Count     int      `json:"count"`
	Threshold int      `json:"threshold"`
	Timestamp string   `json:"timestamp"`
}

// WebhookNotifier posts alert and recovery transitions to a URL
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

// NewWebhookNotifier creates a notifier; an empty url disables it
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Content-Type", "application/json")
	return &WebhookNotifier{url: url, client: client}
}

// HandleSummary does nothing; summaries are not pushed
func (n *WebhookNotifier) HandleSummary(context.Context, models.SummaryReport) error {
	return nil
}

// HandleAlert posts the transition, if any
func (n *WebhookNotifier) HandleAlert(ctx context.Context, report models.AlertReport) error {
	if n.url == "" || !report.Changed() {
		return nil
	}

	payload := Payload{
		Title:     "High traffic alert",
		Message:   render.Alert(report),
		Severity:  SeverityCritical,
		Count:     report.Count,
		Threshold: report.Threshold,
		Timestamp: report.To.UTC().Format(time.RFC3339),
	}
	if report.Transition == models.TransitionRecovered {
		payload.Title = "Traffic recovered"
		payload.Severity = SeverityResolved
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("webhook POST: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned %d", resp.StatusCode())
	}
	return nil
}
