package repository

import (
	"context"

	"GoldPulse/internal/domain/models"
)

// CandleSource provides read-only access to OHLCV bars for the pipeline.
// Implementations must return bars in ascending time order.
type CandleSource interface {
	LatestCandles(ctx context.Context, symbol string, n int, iv Interval) ([]models.Candle, error)
	Candles(ctx context.Context, symbol string, from, to int64, iv Interval) ([]models.Candle, error)
}
