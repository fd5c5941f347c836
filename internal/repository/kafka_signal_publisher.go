package repository

import (
	"context"

	"github.com/google/uuid"

	"GoldPulse/internal/domain/models"
	"GoldPulse/internal/domain/repository"
	pkgkafka "GoldPulse/pkg/kafka"
)

// KafkaSignalPublisher implements SignalPublisher for Kafka. Every report
// gets a fresh event id; the symbol keys the partition so consumers see
// one instrument in order.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSignalPublisher creates a Kafka signal publisher.
func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) repository.SignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, report *models.SignalReport) error {
	return p.producer.Publish(ctx, p.topic, []byte(report.Symbol), map[string]interface{}{
		"event_id":   uuid.NewString(),
		"symbol":     report.Symbol,
		"interval":   report.Interval,
		"generated":  report.Generated,
		"action":     report.Signal.Action,
		"confidence": report.Signal.Confidence,
		"entry":      report.Signal.Entry,
		"stop_loss":  report.Signal.StopLoss,
		"tp1":        report.Signal.TP1,
		"tp2":        report.Signal.TP2,
		"tp3":        report.Signal.TP3,
		"phase":      report.Phase.Phase,
		"bias":       report.Phase.Bias,
	})
}

// PublishMessage sends an arbitrary payload to the given topic. Satisfies
// the logger's aggregated-log sink.
func (p *KafkaSignalPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
