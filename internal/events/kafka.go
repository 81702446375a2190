package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig names the brokers and topic action events travel through.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaEventEmitter publishes action events to a Kafka topic. Events are
// keyed by list id so that events of one list stay in one partition.
type KafkaEventEmitter struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaEventEmitter creates an emitter writing to cfg.Topic.
func NewKafkaEventEmitter(cfg KafkaConfig, logger *slog.Logger) *KafkaEventEmitter {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return newKafkaEventEmitter(writer, logger)
}

func newKafkaEventEmitter(writer messageWriter, logger *slog.Logger) *KafkaEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaEventEmitter{
		writer: writer,
		logger: logger.With("component", "kafka_event_emitter"),
	}
}

var _ EventEmitter = (*KafkaEventEmitter)(nil)

// EmitEvent implements EventEmitter.
func (e *KafkaEventEmitter) EmitEvent(ctx context.Context, event *ActionEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode action event: %w", err)
	}

	err = e.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ListID.String()),
		Value: value,
		Time:  event.CreatedAt,
	})
	if err != nil {
		e.logger.Error("failed to publish action event",
			"error", err,
			"event_id", event.ID,
			"action", event.Action)
		return fmt.Errorf("failed to publish action event: %w", err)
	}

	e.logger.Debug("published action event", "event_id", event.ID, "action", event.Action)
	return nil
}

// Close flushes and closes the writer.
func (e *KafkaEventEmitter) Close() error {
	return e.writer.Close()
}

// KafkaConsumer reads action events from a Kafka topic and hands each one
// to a handler, usually an InMemoryEventEmitter.
type KafkaConsumer struct {
	reader  messageReader
	handler EventHandler
	logger  *slog.Logger
	// minBackoff and maxBackoff bound the wait after a failed read.
	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewKafkaConsumer creates a consumer in group cfg.GroupID.
func NewKafkaConsumer(cfg KafkaConfig, handler EventHandler, logger *slog.Logger) *KafkaConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "kafka_consumer")
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		MaxAttempts: 3,
		MaxWait:     10 * time.Second,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error(fmt.Sprintf(msg, args...))
		}),
	})
	return newKafkaConsumer(reader, handler, logger)
}

func newKafkaConsumer(reader messageReader, handler EventHandler, logger *slog.Logger) *KafkaConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaConsumer{
		reader:     reader,
		handler:    handler,
		logger:     logger.With("component", "kafka_consumer"),
		minBackoff: 500 * time.Millisecond,
		maxBackoff: 30 * time.Second,
	}
}

// Run consumes until ctx is cancelled. Read failures are logged and retried
// with exponential backoff. Undecodable messages and handler failures are
// logged and skipped; dispatch is never retried here.
func (c *KafkaConsumer) Run(ctx context.Context) error {
	c.logger.Info("starting action event consumer")
	backoff := c.minBackoff
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info("stopping action event consumer")
				return nil
			}
			c.logger.Error("failed to read action event, retrying",
				"error", err,
				"backoff", backoff)
			if !sleepCtx(ctx, backoff) {
				c.logger.Info("stopping action event consumer")
				return nil
			}
			backoff = min(backoff*2, c.maxBackoff)
			continue
		}
		backoff = c.minBackoff

		event, err := DecodeActionEvent(msg.Value)
		if err != nil {
			c.logger.Error("dropping malformed action event",
				"error", err,
				"partition", msg.Partition,
				"offset", msg.Offset)
			continue
		}

		if err := c.handler.HandleEvent(ctx, event); err != nil {
			c.logger.Warn("action event handler failed",
				"error", err,
				"event_id", event.ID,
				"action", event.Action)
		}
	}
}

// Close closes the underlying reader.
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
