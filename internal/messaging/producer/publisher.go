package producer

import (
	"context"
	"fmt"

	"logpulse/internal/models"
)

// ReportPublisher forwards reports to a Producer. Every summary is published; alert
// reports only when they carry a transition.
type ReportPublisher struct {
	producer Producer
}

// NewReportPublisher wraps p
func NewReportPublisher(p Producer) *ReportPublisher {
	return &ReportPublisher{producer: p}
}

// HandleSummary publishes the summary
func (r *ReportPublisher) HandleSummary(ctx context.Context, report models.SummaryReport) error {
	if err := r.producer.Publish(ctx, models.NewSummaryMessage(report)); err != nil {
		return fmt.Errorf("publish summary: %w", err)
	}
	return nil
}

// HandleAlert publishes alert and recovery transitions
func (r *ReportPublisher) HandleAlert(ctx context.Context, report models.AlertReport) error {
	if !report.Changed() {
		return nil
	}
	if err := r.producer.Publish(ctx, models.NewAlertMessage(report)); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}
