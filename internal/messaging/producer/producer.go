package producer

import (
	"context"

	"logpulse/internal/models"
)

// Producer defines the interface for the report bus producer
type Producer interface {
	// Publish sends a single report message
	Publish(ctx context.Context, msg *models.ReportMessage) error

	// PublishBatch sends report messages in one write
	PublishBatch(ctx context.Context, msgs []*models.ReportMessage) error

	// Close flushes and closes the producer connection
	Close() error
}
