package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const DefaultTopic = "orders-placed"

type Publisher interface {
	Publish(ctx context.Context, event OrderPlaced) error
	Close() error
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by order id so one order's events stay on one partition.
type KafkaPublisher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker[any]
	log     *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, log)
}

func newKafkaPublisher(w messageWriter, log *zap.Logger) *KafkaPublisher {
	settings := gobreaker.Settings{
		Name:        "kafka-orders",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &KafkaPublisher{
		writer:  w,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		log:     log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event OrderPlaced) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID, err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeOrderPlaced)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}

	_, err = p.breaker.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in for a broker when none is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event OrderPlaced) error {
	p.log.Info("order event",
		zap.String("event_type", EventTypeOrderPlaced),
		zap.String("event_id", event.EventID),
		zap.Int64("order_id", event.OrderID),
		zap.Int64("user_id", event.UserID),
		zap.Float64("total", event.Total))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
