package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"logpulse/config"
	"logpulse/internal/models"
)

// ErrUndecodable marks a message that was committed and skipped because its payload
// could not be decoded
var ErrUndecodable = errors.New("undecodable report message")

// KafkaConsumer implements the Consumer interface to consume report messages from Kafka
type KafkaConsumer struct {
	reader *kafka.Reader
	logger *zap.SugaredLogger
}

// NewKafkaConsumer creates a new KafkaConsumer instance
func NewKafkaConsumer(cfg config.KafkaConsumerConfig, logger *zap.SugaredLogger) (*KafkaConsumer, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" || cfg.GroupID == "" {
		return nil, errors.New("incomplete kafka configuration: brokers, topic, group_id are all required")
	}

	sessionTimeout, err := time.ParseDuration(cfg.SessionTimeout)
	if err != nil {
		logger.Warnf("Invalid session_timeout '%s', using default 30s", cfg.SessionTimeout)
		sessionTimeout = 30 * time.Second
	}

	heartbeatInterval, err := time.ParseDuration(cfg.HeartbeatInterval)
	if err != nil {
		logger.Warnf("Invalid heartbeat_interval '%s', using default 3s", cfg.HeartbeatInterval)
		heartbeatInterval = 3 * time.Second
	}

	readerConfig := kafka.ReaderConfig{
		Brokers:           cfg.Brokers,
		GroupID:           cfg.GroupID,
		Topic:             cfg.Topic,
		MinBytes:          1,    // reports trickle in; do not wait to fill a batch
		MaxBytes:          10e6, // 10MB
		MaxWait:           500 * time.Millisecond,
		SessionTimeout:    sessionTimeout,
		HeartbeatInterval: heartbeatInterval,
	}

	switch cfg.AutoOffsetReset {
	case "earliest":
		readerConfig.StartOffset = kafka.FirstOffset
	case "latest":
		readerConfig.StartOffset = kafka.LastOffset
	default:
		logger.Warnf("Unknown auto_offset_reset '%s', using latest", cfg.AutoOffsetReset)
		readerConfig.StartOffset = kafka.LastOffset
	}

	r := kafka.NewReader(readerConfig)

	logger.Infof("Kafka consumer created, connected to Brokers: %v, Topic: %s, GroupID: %s", cfg.Brokers, cfg.Topic, cfg.GroupID)

	return &KafkaConsumer{
		reader: r,
		logger: logger,
	}, nil
}

// Consume implements the Consumer interface by reading messages from Kafka
func (k *KafkaConsumer) Consume(ctx context.Context) (*models.ReportMessage, func(success bool), error) {
	kafkaMsg, err := k.reader.FetchMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, nil, ctx.Err()
		}
		return nil, nil, err
	}

	msg, err := decode(kafkaMsg.Value)
	if err != nil {
		k.logger.Warnf("Failed to deserialize message (Offset: %d): %v. Message will be discarded.", kafkaMsg.Offset, err)
		_ = k.reader.CommitMessages(ctx, kafkaMsg) // Commit offset to avoid blocking
		return nil, nil, err
	}

	ack := func(success bool) {
		if !success {
			k.logger.Warnf("NACK received for offset %d (id %s). Offset will not be committed.", kafkaMsg.Offset, msg.ID)
			return
		}
		if err := k.reader.CommitMessages(context.Background(), kafkaMsg); err != nil {
			k.logger.Errorf("Failed to commit offset %d: %v", kafkaMsg.Offset, err)
		}
	}

	return msg, ack, nil
}

// Close implements the Consumer interface by closing the Kafka reader
func (k *KafkaConsumer) Close() error {
	k.logger.Infof("Closing Kafka consumer...")
	return k.reader.Close()
}

// decode parses a report message and checks that its payload matches its kind
func decode(value []byte) (*models.ReportMessage, error) {
	var msg models.ReportMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	switch {
	case msg.Kind == models.KindSummary && msg.Summary != nil:
	case msg.Kind == models.KindAlert && msg.Alert != nil:
	default:
		return nil, fmt.Errorf("%w: kind %q without matching payload", ErrUndecodable, msg.Kind)
	}
	return &msg, nil
}

var _ Consumer = (*KafkaConsumer)(nil)
