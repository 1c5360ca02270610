package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/internal/domain/analytics"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/internal/domain/verification"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

const (
	TopicSkillEvents        = "skill.events"
	TopicVerificationEvents = "verification.events"
	TopicAnalyticsEvents    = "analytics.events"
)

// messageWriter is the subset of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	SkillEventsWriter        messageWriter
	VerificationEventsWriter messageWriter
	AnalyticsEventsWriter    messageWriter
	logger                   logger.Logger
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		SkillEventsWriter:        newWriter(brokers, TopicSkillEvents),
		VerificationEventsWriter: newWriter(brokers, TopicVerificationEvents),
		AnalyticsEventsWriter:    newWriter(brokers, TopicAnalyticsEvents),
		logger:                   log,
	}, nil
}

// publish keys every message so events about one aggregate stay ordered
// within a partition.
func publish(ctx context.Context, w messageWriter, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) PublishSkillEvent(ctx context.Context, e skill.Event) error {
	return publish(ctx, c.SkillEventsWriter, e.SkillID.String(), e)
}

func (c *KafkaProducerClient) PublishVerificationEvent(ctx context.Context, e verification.Event) error {
	return publish(ctx, c.VerificationEventsWriter, e.RequestID.String(), e)
}

func (c *KafkaProducerClient) PublishAnalyticsEvent(ctx context.Context, e analytics.Event) error {
	return publish(ctx, c.AnalyticsEventsWriter, e.UserID.String(), e)
}

func (c *KafkaProducerClient) Close() {
	for _, w := range []messageWriter{c.SkillEventsWriter, c.VerificationEventsWriter, c.AnalyticsEventsWriter} {
		if w != nil {
			if err := w.Close(); err != nil {
				c.logger.Error("Failed to close Kafka writer", err)
			}
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
