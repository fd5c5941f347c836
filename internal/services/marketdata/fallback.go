package marketdata

import (
	"context"

	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	applogger "GoldPulse/pkg/logger"
)

// FallbackCandleSource tries each source in order and returns the first
// non-empty answer. The last source should be one that cannot fail (the
// synthetic generator) so the pipeline is never starved of bars.
type FallbackCandleSource struct {
	sources []domrepo.CandleSource
	names   []string
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewFallbackCandleSource() *FallbackCandleSource {
	return &FallbackCandleSource{}
}

// Add appends a named source to the chain.
func (s *FallbackCandleSource) Add(name string, src domrepo.CandleSource) *FallbackCandleSource {
	s.sources = append(s.sources, src)
	s.names = append(s.names, name)
	return s
}

// SetLogger injects a structured logger.
func (s *FallbackCandleSource) SetLogger(l *applogger.Logger) { s.l = l }

// SetMetrics injects the observability sink.
func (s *FallbackCandleSource) SetMetrics(m domrepo.Metrics) { s.metrics = m }

func (s *FallbackCandleSource) LatestCandles(ctx context.Context, symbol string, n int, iv domrepo.Interval) ([]models.Candle, error) {
	var lastErr error
	for i, src := range s.sources {
		out, err := src.LatestCandles(ctx, symbol, n, iv)
		if err == nil && len(out) > 0 {
			return out, nil
		}
		lastErr = err
		s.report(s.names[i], symbol, err)
	}
	return nil, lastErr
}

func (s *FallbackCandleSource) Candles(ctx context.Context, symbol string, from, to int64, iv domrepo.Interval) ([]models.Candle, error) {
	var lastErr error
	for i, src := range s.sources {
		out, err := src.Candles(ctx, symbol, from, to, iv)
		if err == nil && len(out) > 0 {
			return out, nil
		}
		lastErr = err
		s.report(s.names[i], symbol, err)
	}
	return nil, lastErr
}

func (s *FallbackCandleSource) report(name, symbol string, err error) {
	if s.metrics != nil {
		s.metrics.RecordFallback("candles:" + name)
	}
	if s.l == nil {
		return
	}
	if err != nil {
		s.l.Warn("candle source failed, trying next",
			applogger.String("source", name),
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
		return
	}
	s.l.Warn("candle source empty, trying next",
		applogger.String("source", name),
		applogger.String("symbol", symbol),
	)
}

var _ domrepo.CandleSource = (*FallbackCandleSource)(nil)
