package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaNotifier publishes notification requests to a topic consumed by the
// delivery worker. The worker owns provider credentials and retries; this
// side only enqueues.
type KafkaNotifier struct {
	writer *kafka.Writer
}

type notification struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return &KafkaNotifier{writer: w}
}

func (n *KafkaNotifier) Send(ctx context.Context, destination, body string) error {
	b, err := json.Marshal(notification{To: destination, Body: body})
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(destination), Value: b, Time: time.Now()}
	return n.writer.WriteMessages(ctx, msg)
}

func (n *KafkaNotifier) Close() error { return n.writer.Close() }
