package consumer

import (
	"context"

	"logpulse/internal/models"
)

// Consumer defines the interface for report bus consumers.
type Consumer interface {
	// Consume blocks until a message is received or the context is cancelled.
	// It returns the message, an acknowledgement callback, and any error that occurred.
	// ack(true) commits the message; ack(false) leaves it for redelivery.
	Consume(ctx context.Context) (msg *models.ReportMessage, ack func(success bool), err error)

	// Close gracefully shuts down the consumer connection.
	Close() error
}
