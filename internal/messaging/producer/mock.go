package producer

import (
	"context"
	"errors"
	"sync"

	"logpulse/internal/models"
)

// MockProducer keeps published messages in memory
type MockProducer struct {
	mu       sync.Mutex
	messages []*models.ReportMessage
	closed   bool
	Err      error // returned by every publish when set
}

// NewMockProducer creates an empty MockProducer
func NewMockProducer() *MockProducer {
	return &MockProducer{}
}

// Publish records msg
func (m *MockProducer) Publish(ctx context.Context, msg *models.ReportMessage) error {
	return m.PublishBatch(ctx, []*models.ReportMessage{msg})
}

// PublishBatch records msgs
func (m *MockProducer) PublishBatch(_ context.Context, msgs []*models.ReportMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("producer closed")
	}
	if m.Err != nil {
		return m.Err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

// Messages returns a copy of everything published so far
func (m *MockProducer) Messages() []*models.ReportMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.ReportMessage(nil), m.messages...)
}

// Close marks the producer closed
func (m *MockProducer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ Producer = (*MockProducer)(nil)
