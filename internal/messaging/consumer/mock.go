package consumer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"logpulse/internal/models"
)

// ErrClosed is returned by MockConsumer after Close or once its messages are exhausted
var ErrClosed = errors.New("message channel closed")

// MockConsumer serves a fixed set of messages from memory.
type MockConsumer struct {
	logger   *zap.SugaredLogger
	messages chan *models.ReportMessage
}

// NewMockConsumer creates a MockConsumer preloaded with msgs. Nacked messages are
// re-queued while there is room.
func NewMockConsumer(logger *zap.SugaredLogger, msgs ...*models.ReportMessage) *MockConsumer {
	mc := &MockConsumer{
		logger:   logger,
		messages: make(chan *models.ReportMessage, len(msgs)+5),
	}
	for _, msg := range msgs {
		mc.messages <- msg
	}
	logger.Debugf("[MockConsumer] Loaded %d messages", len(msgs))
	return mc
}

// Consume returns the next queued message
func (m *MockConsumer) Consume(ctx context.Context) (*models.ReportMessage, func(success bool), error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case msg, ok := <-m.messages:
		if !ok || msg == nil {
			return nil, nil, ErrClosed
		}

		ack := func(success bool) {
			if success {
				m.logger.Debugf("[MockConsumer] ACK received for message: id=%s", msg.ID)
				return
			}
			select {
			case m.messages <- msg:
				m.logger.Debugf("[MockConsumer] Message re-queued: id=%s", msg.ID)
			default:
				m.logger.Warnf("[MockConsumer] Failed to re-queue message (channel full?): id=%s", msg.ID)
			}
		}
		return msg, ack, nil
	}
}

// Close closes the message channel.
func (m *MockConsumer) Close() error {
	close(m.messages)
	return nil
}

var _ Consumer = (*MockConsumer)(nil)
