package repository

import (
	"context"

	"GoldPulse/internal/domain/models"
)

// Quote is one spot tick from the dealing stream.
type Quote struct {
	Symbol string
	Time   int64 // epoch seconds
	Bid    float64
	Ask    float64
}

// QuoteStream is a live spot-quote feed (WebSocket-backed).
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// SignalPublisher delivers finished signal reports downstream.
type SignalPublisher interface {
	Publish(ctx context.Context, report *models.SignalReport) error
	Close() error
}

// Metrics records pipeline observability counters.
type Metrics interface {
	RecordSignal(symbol string, action models.Action, confidence float64)
	RecordError(kind string)
	RecordFallback(component string)
	RecordLatency(op string, seconds float64)
}
