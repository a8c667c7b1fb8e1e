package processing

import (
	"context"

	"logpulse/internal/models"
	"logpulse/internal/render"
)

// ReportSink receives every report produced by the Scheduler.
// HandleAlert is called every cycle; implementations check Transition themselves.
type ReportSink interface {
	HandleSummary(ctx context.Context, report models.SummaryReport) error
	HandleAlert(ctx context.Context, report models.AlertReport) error
}

// ConsoleSink writes rendered reports to the operator's log
type ConsoleSink struct {
	logger Logger
}

// NewConsoleSink creates a ConsoleSink logging through logger
func NewConsoleSink(logger Logger) *ConsoleSink {
	return &ConsoleSink{logger: logger}
}

// HandleSummary logs the summary tables at info level
func (s *ConsoleSink) HandleSummary(_ context.Context, report models.SummaryReport) error {
	s.logger.Infof("%s", render.Summary(report))
	return nil
}

// HandleAlert logs alert transitions at error level and recoveries at info level.
// Reports without a transition are silent.
func (s *ConsoleSink) HandleAlert(_ context.Context, report models.AlertReport) error {
	switch report.Transition {
	case models.TransitionAlert:
		s.logger.Errorf("%s", render.Alert(report))
	case models.TransitionRecovered:
		s.logger.Infof("%s", render.Alert(report))
	}
	return nil
}

var _ ReportSink = (*ConsoleSink)(nil)
