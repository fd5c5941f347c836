package usecase

import (
	"context"
	"sync"
	"time"

	domrepo "GoldPulse/internal/domain/repository"
	applogger "GoldPulse/pkg/logger"
)

// SignalBroadcaster periodically recomputes the signal and publishes the
// report downstream. It keeps no history; every tick publishes whatever
// the engine says right now.
type SignalBroadcaster struct {
	signals  *SignalService
	pub      domrepo.SignalPublisher
	metrics  domrepo.Metrics
	symbol   string
	interval domrepo.Interval
	every    time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	l        *applogger.Logger
}

func NewSignalBroadcaster(
	signals *SignalService,
	pub domrepo.SignalPublisher,
	metrics domrepo.Metrics,
	symbol string,
	interval domrepo.Interval,
	every time.Duration,
) *SignalBroadcaster {
	if every <= 0 {
		every = 5 * time.Minute
	}
	return &SignalBroadcaster{
		signals:  signals,
		pub:      pub,
		metrics:  metrics,
		symbol:   symbol,
		interval: interval,
		every:    every,
		stopCh:   make(chan struct{}),
	}
}

// SetLogger injects a structured logger.
func (b *SignalBroadcaster) SetLogger(l *applogger.Logger) { b.l = l }

// Start launches the publish loop. The first report goes out after one
// full period, not immediately, so startup does not race the feeds.
func (b *SignalBroadcaster) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(b.every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-b.stopCh:
				return
			case <-ticker.C:
				b.publishOnce(ctx)
			}
		}
	}()
}

func (b *SignalBroadcaster) publishOnce(ctx context.Context) {
	report, err := b.signals.GetSignal(ctx, GetSignalParams{Symbol: b.symbol, Interval: b.interval})
	if err != nil {
		b.metrics.RecordError("broadcast_compute")
		if b.l != nil {
			b.l.Warn("broadcast signal compute failed", applogger.Error(err))
		}
		return
	}
	if err := b.pub.Publish(ctx, report); err != nil {
		b.metrics.RecordError("broadcast_publish")
		if b.l != nil {
			b.l.Warn("broadcast publish failed", applogger.Error(err))
		}
		return
	}
	if b.l != nil {
		b.l.Info("signal broadcast",
			applogger.String("symbol", b.symbol),
			applogger.String("action", string(report.Signal.Action)),
			applogger.Any("confidence", report.Signal.Confidence),
		)
	}
}

// Stop halts the publish loop.
func (b *SignalBroadcaster) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
}
