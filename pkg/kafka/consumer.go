package kafka

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/artfolio/pkg/logger"
)

const (
	defaultMaxRetries = 3
	tracerName        = "github.com/utafrali/artfolio/pkg/kafka"
)

// Handler processes one decoded event. A returned error triggers a retry.
type Handler func(ctx context.Context, event *Event) error

// messageReader is the subset of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ConsumerConfig struct {
	Brokers    []string
	GroupID    string
	Topic      string
	MinBytes   int
	MaxBytes   int
	MaxRetries int
	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff time.Duration
	EnableDLQ    bool
}

type Consumer struct {
	reader    messageReader
	handler   Handler
	dlq       DeadLetterPublisher
	cfg       ConsumerConfig
	logger    *slog.Logger
	closeOnce sync.Once
	closeErr  error
}

// NewConsumer builds a group consumer. When cfg.EnableDLQ is set, messages
// that exhaust their retries are forwarded to DLQTopic(cfg.Topic).
func NewConsumer(cfg ConsumerConfig, handler Handler, log *slog.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: cfg.MinBytes,
		MaxBytes: cfg.MaxBytes,
	})
	var dlq DeadLetterPublisher
	if cfg.EnableDLQ {
		dlq = NewDLQProducer(cfg.Brokers, log)
	}
	return newConsumer(r, cfg, handler, dlq, log)
}

func newConsumer(r messageReader, cfg ConsumerConfig, handler Handler, dlq DeadLetterPublisher, log *slog.Logger) *Consumer {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	return &Consumer{
		reader:  r,
		handler: handler,
		dlq:     dlq,
		cfg:     cfg,
		logger:  log,
	}
}

// Start consumes until ctx is canceled, then closes the reader.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer started",
		slog.String("topic", c.cfg.Topic),
		slog.String("group", c.cfg.GroupID),
	)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping", slog.String("topic", c.cfg.Topic))
				return c.Close()
			}
			c.logger.Error("failed to fetch message", slog.String("error", err.Error()))
			continue
		}
		consumerReceived.WithLabelValues(msg.Topic, c.cfg.GroupID).Inc()

		if !c.process(ctx, msg) {
			return c.Close()
		}
	}
}

// process handles one message and commits it. It reports false when ctx
// ended mid-retry and the message was left uncommitted.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	ctx = otel.GetTextMapPropagator().Extract(ctx, NewHeaderCarrier(&msg.Headers))
	ctx, span := otel.Tracer(tracerName).Start(ctx, "kafka.consume "+msg.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.String("messaging.consumer.group.name", c.cfg.GroupID),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	if id := headerValue(msg.Headers, "correlation_id"); id != "" {
		ctx = logger.WithCorrelationID(ctx, id)
	}

	event, err := UnmarshalEvent(msg.Value)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to unmarshal event",
			slog.String("error", err.Error()),
			slog.String("topic", msg.Topic),
		)
		span.SetStatus(codes.Error, "malformed event")
		c.deadLetter(ctx, msg, err)
		c.commit(ctx, msg)
		return true
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if lastErr = c.handler(ctx, event); lastErr == nil {
			break
		}
		c.logger.WarnContext(ctx, "handler failed",
			slog.String("event_type", event.EventType),
			slog.String("aggregate_id", event.AggregateID),
			slog.String("error", lastErr.Error()),
			slog.Int("attempt", attempt),
			slog.Int("max_retries", c.cfg.MaxRetries),
		)
		if attempt == c.cfg.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Duration(attempt) * c.cfg.RetryBackoff):
		}
	}
	consumerDuration.WithLabelValues(msg.Topic, c.cfg.GroupID).Observe(time.Since(start).Seconds())

	if lastErr != nil {
		consumerFailed.WithLabelValues(msg.Topic, c.cfg.GroupID).Inc()
		span.RecordError(lastErr)
		span.SetStatus(codes.Error, lastErr.Error())
		c.logger.ErrorContext(ctx, "handler failed after all retries",
			slog.String("event_type", event.EventType),
			slog.String("aggregate_id", event.AggregateID),
			slog.String("error", lastErr.Error()),
			slog.Int64("offset", msg.Offset),
		)
		c.deadLetter(ctx, msg, lastErr)
	} else {
		consumerProcessed.WithLabelValues(msg.Topic, c.cfg.GroupID).Inc()
	}

	c.commit(ctx, msg)
	return true
}

func (c *Consumer) deadLetter(ctx context.Context, msg kafka.Message, cause error) {
	if c.dlq == nil {
		return
	}
	if err := c.dlq.Publish(ctx, msg, cause, c.cfg.GroupID); err != nil {
		return
	}
	consumerDeadLettered.WithLabelValues(msg.Topic, c.cfg.GroupID).Inc()
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.ErrorContext(ctx, "failed to commit message",
			slog.String("topic", msg.Topic),
			slog.Int64("offset", msg.Offset),
			slog.String("error", err.Error()),
		)
	}
}

// Close is safe to call more than once.
func (c *Consumer) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.reader.Close()
		if closer, ok := c.dlq.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil && c.closeErr == nil {
				c.closeErr = err
			}
		}
	})
	return c.closeErr
}
