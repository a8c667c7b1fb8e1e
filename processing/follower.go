package processing

import (
	"context"
	"errors"
	"time"

	"logpulse/internal/messaging/consumer"
	"logpulse/internal/models"
)

// Follower replays reports from the report bus into local sinks
type Follower struct {
	consumer   consumer.Consumer
	sinks      []ReportSink
	logger     Logger
	retryDelay time.Duration
}

// NewFollower creates a Follower delivering every consumed report to sinks
func NewFollower(c consumer.Consumer, retryDelay time.Duration, logger Logger, sinks ...ReportSink) *Follower {
	if retryDelay <= 0 {
		retryDelay = 5 * time.Second
	}
	return &Follower{
		consumer:   c,
		sinks:      sinks,
		logger:     logger,
		retryDelay: retryDelay,
	}
}

// Run consumes until ctx is cancelled. Consumer errors are logged and retried after the
// retry delay; undecodable messages are skipped.
func (f *Follower) Run(ctx context.Context) error {
	f.logger.Infof("Follower started with %d sinks", len(f.sinks))
	for {
		msg, ack, err := f.consumer.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				f.logger.Infof("Follower stopped")
				return nil
			}
			if errors.Is(err, consumer.ErrUndecodable) {
				continue
			}
			if errors.Is(err, consumer.ErrClosed) {
				f.logger.Infof("Follower stopped: consumer closed")
				return nil
			}
			f.logger.Errorf("Consumer error: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(f.retryDelay):
			}
			continue
		}

		ack(f.deliver(ctx, msg))
	}
}

// deliver hands msg to every sink and reports whether all of them accepted it
func (f *Follower) deliver(ctx context.Context, msg *models.ReportMessage) bool {
	ok := true
	for _, sink := range f.sinks {
		var err error
		switch msg.Kind {
		case models.KindSummary:
			err = sink.HandleSummary(ctx, *msg.Summary)
		case models.KindAlert:
			err = sink.HandleAlert(ctx, *msg.Alert)
		}
		if err != nil {
			f.logger.Errorf("Sink %T failed on %s report %s: %v", sink, msg.Kind, msg.ID, err)
			ok = false
		}
	}
	return ok
}
