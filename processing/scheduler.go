package processing

import (
	"context"
	"time"

	"logpulse/internal/models"
)

// Reporter produces the reports for one scheduling cycle. *Aggregator satisfies it.
type Reporter interface {
	GenerateSummary(previous, current time.Time) models.SummaryReport
	GenerateAlert(previous, current time.Time) models.AlertReport
}

// Scheduler drives a Reporter on a fixed cadence, compensating for the time spent in
// each cycle, and fans the reports out to its sinks.
type Scheduler struct {
	reporter   Reporter
	interval   time.Duration
	longWindow time.Duration
	logger     Logger
	sinks      []ReportSink
	now        func() time.Time
}

// NewScheduler creates a Scheduler. Sinks are called in order after each report.
func NewScheduler(reporter Reporter, interval, longWindow time.Duration, logger Logger, sinks ...ReportSink) *Scheduler {
	return &Scheduler{
		reporter:   reporter,
		interval:   interval,
		longWindow: longWindow,
		logger:     logger,
		sinks:      sinks,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Run executes cycles until ctx is cancelled. Cancellation is checked before each sleep
// and before each cycle; Run returns nil once it is observed.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Infof("Scheduler started: interval=%s longWindow=%s sinks=%d", s.interval, s.longWindow, len(s.sinks))

	previous := s.now()
	var elapsed time.Duration

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			s.logger.Infof("Scheduler stopped")
			return nil
		}

		if sleep := nextSleep(s.interval, elapsed); sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-ctx.Done():
				s.logger.Infof("Scheduler stopped")
				return nil
			case <-timer.C:
			}
		} else {
			s.logger.Warnf("Reporting cycle took %s, longer than the %s interval; starting next cycle immediately", elapsed, s.interval)
		}

		if ctx.Err() != nil {
			s.logger.Infof("Scheduler stopped")
			return nil
		}

		start := time.Now()
		current := s.now()
		s.cycle(ctx, previous, current)
		previous = current
		elapsed = time.Since(start)
	}
}

// cycle generates the summary for [previous, current) and the alert for the long window
// ending at current. Sink calls share a deadline of one interval so a stalled sink cannot
// stretch the next summary window.
func (s *Scheduler) cycle(ctx context.Context, previous, current time.Time) {
	if !previous.Before(current) {
		s.logger.Warnf("Skipping cycle: clock did not advance (previous=%s current=%s)", previous, current)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	summary := s.reporter.GenerateSummary(previous, current)
	for _, sink := range s.sinks {
		if err := sink.HandleSummary(ctx, summary); err != nil {
			s.logger.Errorf("Sink %T failed to handle summary: %v", sink, err)
		}
	}

	alert := s.reporter.GenerateAlert(current.Add(-s.longWindow), current)
	for _, sink := range s.sinks {
		if err := sink.HandleAlert(ctx, alert); err != nil {
			s.logger.Errorf("Sink %T failed to handle alert: %v", sink, err)
		}
	}
}

// nextSleep returns how long to wait before the next cycle, never negative
func nextSleep(interval, elapsed time.Duration) time.Duration {
	if elapsed >= interval {
		return 0
	}
	return interval - elapsed
}
