package kafka

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/stockops/stockflow/internal/notification/application"
	"github.com/stockops/stockflow/pkg/idempotency"
	"github.com/stockops/stockflow/pkg/tracing"
)

// Consumer reads the workflow event stream and fans each event out as in-app
// notifications. Messages are deduplicated through Redis so a rebalance or
// redelivery never double-notifies.
type Consumer struct {
	log        *slog.Logger
	reader     *kafka.Reader
	dispatcher *application.Dispatcher
	idem       *idempotency.Store
	tracer     trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, dispatcher *application.Dispatcher, idem *idempotency.Store) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{
		log:        log,
		reader:     r,
		dispatcher: dispatcher,
		idem:       idem,
		tracer:     otel.Tracer("notification-consumer"),
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.idem.Seen(ctx, key)
		if err != nil {
			c.log.Error("idempotency check failed", "err", err)
			continue
		}
		if seen {
			c.log.Info("duplicate message skipped", "key", key)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		eventType := headerValue(msg.Headers, "event_type")
		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "DispatchNotification")

		if err := c.dispatcher.Handle(msgCtx, eventType, msg.Value); err != nil {
			// Delivery is best-effort: log, commit and move on rather
			// than wedging the partition on one bad event.
			c.log.Error("notification dispatch failed", "type", eventType, "err", err)
		}

		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
