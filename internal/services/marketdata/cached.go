package marketdata

import (
	"context"
	"fmt"
	"time"

	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	"GoldPulse/pkg/cache"
	applogger "GoldPulse/pkg/logger"
)

// CachedCandleSource is a read-through cache decorator. Cache errors are
// treated as misses; the inner source is the source of truth.
type CachedCandleSource struct {
	inner domrepo.CandleSource
	cache cache.Service
	ttl   time.Duration
	l     *applogger.Logger
}

func NewCachedCandleSource(inner domrepo.CandleSource, c cache.Service, ttl time.Duration) *CachedCandleSource {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedCandleSource{inner: inner, cache: c, ttl: ttl}
}

// SetLogger injects a structured logger.
func (s *CachedCandleSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CachedCandleSource) LatestCandles(ctx context.Context, symbol string, n int, iv domrepo.Interval) ([]models.Candle, error) {
	key := fmt.Sprintf("candles:latest:%s:%s:%d", symbol, iv, n)
	var cached []models.Candle
	if err := s.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	out, err := s.inner.LatestCandles(ctx, symbol, n, iv)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, out, s.ttl); err != nil && s.l != nil {
		s.l.Warn("candle cache set failed",
			applogger.String("key", key),
			applogger.Error(err),
		)
	}
	return out, nil
}

func (s *CachedCandleSource) Candles(ctx context.Context, symbol string, from, to int64, iv domrepo.Interval) ([]models.Candle, error) {
	key := fmt.Sprintf("candles:range:%s:%s:%d:%d", symbol, iv, from, to)
	var cached []models.Candle
	if err := s.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	out, err := s.inner.Candles(ctx, symbol, from, to, iv)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, out, s.ttl); err != nil && s.l != nil {
		s.l.Warn("candle cache set failed",
			applogger.String("key", key),
			applogger.Error(err),
		)
	}
	return out, nil
}

var _ domrepo.CandleSource = (*CachedCandleSource)(nil)
