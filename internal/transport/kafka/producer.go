package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"cargaviva/internal/domain"
	"cargaviva/internal/logx"
)

var newSyncProducer = sarama.NewSyncProducer

// Publisher sends lifecycle events to a topic keyed by load ID, so all
// events of one load land on one partition in commit order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

// NewPublisher connects a synchronous producer. It returns nil, nil when Kafka is not configured.
func NewPublisher(logger logx.Logger, brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewPublisherWithProducer(logger, p, topic), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(logger logx.Logger, p sarama.SyncProducer, topic string) *Publisher {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Publisher{producer: p, topic: topic, logger: logger}
}

// Publish sends e and waits for the broker acknowledgement.
func (p *Publisher) Publish(ctx context.Context, e domain.LifecycleEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(FromDomain(e))
	if err != nil {
		return fmt.Errorf("encode event %q: %w", e.ID, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.LoadID),
		Value: sarama.ByteEncoder(b),
		Headers: []sarama.RecordHeader{
			{Key: []byte("trigger"), Value: []byte(e.Trigger)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send event %q: %w", e.ID, err)
	}

	p.logger.Debug("lifecycle event published",
		logx.String("event_id", e.ID),
		logx.String("load_id", e.LoadID),
		logx.Int("partition", int(partition)),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close flushes and closes the producer
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
