package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/verification"
	"github.com/khoahotran/skillfolio/pkg/logger"
	"github.com/khoahotran/skillfolio/pkg/metrics"
)

const fetchRetryDelay = 2 * time.Second

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type eventHandler func(ctx context.Context, e verification.Event) error

// runConsumer processes verification events until ctx is cancelled.
// Undecodable messages are committed and skipped. A failed event is not
// committed, but a later commit in the same partition moves past it; approvals
// that never got reapplied are picked up by the reconcile sweep.
func runConsumer(ctx context.Context, reader messageReader, handle eventHandler, retryDelay time.Duration, log logger.Logger) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("Failed to read message from Kafka", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}

		var payload verification.Event
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Warn("Failed to unmarshal event, skipping", zap.String("key", string(msg.Key)), zap.Error(err))
			metrics.WorkerEventsTotal.WithLabelValues("unknown", "invalid").Inc()
			commitMessage(reader, msg, log)
			continue
		}

		log.Info("Processing event",
			zap.String("type", payload.Type),
			zap.String("request_id", payload.RequestID.String()))

		if err := handle(ctx, payload); err != nil {
			log.Error("Failed to process event", err, zap.String("request_id", payload.RequestID.String()))
			metrics.WorkerEventsTotal.WithLabelValues(payload.Type, "error").Inc()
			continue
		}

		metrics.WorkerEventsTotal.WithLabelValues(payload.Type, "ok").Inc()
		commitMessage(reader, msg, log)
	}
}

func commitMessage(reader messageReader, msg kafka.Message, log logger.Logger) {
	if err := reader.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
