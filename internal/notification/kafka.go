package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaNotifier publishes events to a Kafka topic keyed by document ID so
// consumers see one document's events in order.
type KafkaNotifier struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaNotifier connects a producer. brokers is a comma-separated seed list.
func NewKafkaNotifier(brokers, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaNotifier{client: client, topic: topic, logger: logger}, nil
}

// Publish enqueues the event asynchronously. Delivery failures are logged
// and dropped; notification loss never fails the producing operation.
func (n *KafkaNotifier) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.ErrorContext(ctx, "marshal notification event", "error", err, "type", event.Type)
		return
	}

	record := &kgo.Record{
		Topic: n.topic,
		Key:   []byte(event.DocumentID.String()),
		Value: payload,
	}
	n.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			n.logger.Error("publish notification event",
				"error", err,
				"type", event.Type,
				"document_id", event.DocumentID,
			)
		}
	})
}

// Close flushes pending records and releases the producer.
func (n *KafkaNotifier) Close() {
	n.client.Close()
}
