package notify

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

var _ model.Notifier = (*Kafka)(nil)

// messageWriter is the subset of *kafka.Writer used by Kafka.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes notices as JSON to a topic. Publish failures are logged
// and dropped.
type Kafka struct {
	w      messageWriter
	topic  string
	logger *logger.Logger
}

// NewKafka creates a Kafka notifier writing to brokers.
func NewKafka(brokers []string, topic string, logger *logger.Logger) *Kafka {
	return NewKafkaWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}, topic, logger)
}

// NewKafkaWithWriter allows injecting a fake writer in tests.
func NewKafkaWithWriter(w messageWriter, topic string, logger *logger.Logger) *Kafka {
	return &Kafka{w: w, topic: topic, logger: logger}
}

func (k *Kafka) Notify(ctx context.Context, notice model.Notice) {
	value, err := json.Marshal(notice)
	if err != nil {
		k.logger.ErrorContext(ctx, "failed to encode notice", "error", err)
		return
	}

	err = k.w.WriteMessages(ctx, kafka.Message{
		Topic: k.topic,
		Key:   []byte(notice.Level),
		Value: value,
	})
	if err != nil {
		k.logger.ErrorContext(ctx, "failed to publish notice", "error", err, "topic", k.topic)
	}
}

// Close flushes and closes the underlying writer.
func (k *Kafka) Close() error {
	return k.w.Close()
}
