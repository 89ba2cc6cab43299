package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink publishes audit events to a Kafka topic for downstream consumers
// (SIEM, analytics). Events are keyed by masjid so per-masjid history stays
// ordered within a partition.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

type kafkaPayload struct {
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id,omitempty"`
	MasjidID  string `json:"masjid_id,omitempty"`
	Subject   string `json:"subject"`
	Action    string `json:"action"`
	Outcome   string `json:"outcome,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload := kafkaPayload{
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		ActorID:   event.ActorID,
		Subject:   event.Subject,
		Action:    event.Action,
		Outcome:   event.Outcome,
		Reason:    event.Reason,
		RequestID: event.RequestID,
	}
	var key []byte
	if !event.MasjidID.IsNil() {
		payload.MasjidID = event.MasjidID.String()
		key = []byte(payload.MasjidID)
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	record := &kgo.Record{Topic: s.topic, Key: key, Value: value}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() {
	s.client.Close()
}
