package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logpulse/internal/models"
)

func TestMockConsumer_AckAndRequeue(t *testing.T) {
	msg := models.NewAlertMessage(models.AlertReport{Count: 11, Transition: models.TransitionAlert})
	mc := NewMockConsumer(zap.NewNop().Sugar(), msg)
	ctx := context.Background()

	got, ack, err := mc.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, got.ID)

	// Nack puts it back
	ack(false)
	again, ack, err := mc.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, again.ID)
	ack(true)

	timeout, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, _, err = mc.Consume(timeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, mc.Close())
	_, _, err = mc.Consume(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDecode(t *testing.T) {
	good := `{"id":"1","kind":"summary","emitted_at":"2024-01-01T00:00:00Z","summary":{"processed":3}}`
	msg, err := decode([]byte(good))
	require.NoError(t, err)
	assert.Equal(t, 3, msg.Summary.Processed)

	for _, bad := range []string{
		`not json`,
		`{"id":"2","kind":"alert"}`,
		`{"id":"3","kind":"other","summary":{}}`,
	} {
		_, err := decode([]byte(bad))
		assert.ErrorIs(t, err, ErrUndecodable, bad)
	}
}
