package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
)

// SyntheticCandleSource generates deterministic bars so the pipeline can
// answer even when every real source is down. Values depend only on the
// symbol and the bucket timestamp; two calls for the same window agree.
type SyntheticCandleSource struct {
	BasePrice float64
	Now       func() int64 // injectable clock
}

func NewSyntheticCandleSource(basePrice float64) *SyntheticCandleSource {
	if basePrice <= 0 {
		basePrice = 2000
	}
	return &SyntheticCandleSource{
		BasePrice: basePrice,
		Now:       func() int64 { return time.Now().Unix() },
	}
}

func (s *SyntheticCandleSource) LatestCandles(ctx context.Context, symbol string, n int, iv domrepo.Interval) ([]models.Candle, error) {
	step := iv.Seconds()
	// Anchor to the bucket grid so consecutive calls line up.
	now := s.Now()
	end := now - now%step
	return s.Candles(ctx, symbol, end-int64(n-1)*step, end, iv)
}

func (s *SyntheticCandleSource) Candles(ctx context.Context, symbol string, from, to int64, iv domrepo.Interval) ([]models.Candle, error) {
	step := iv.Seconds()
	from = from - from%step
	seed := float64(symbolSeed(symbol)%1000) / 1000

	var out []models.Candle
	for t := from; t <= to; t += step {
		phase := float64(t/step)/24 + seed*math.Pi
		drift := math.Sin(phase) * s.BasePrice * 0.004
		wobble := math.Sin(phase*7) * s.BasePrice * 0.001
		open := s.BasePrice + drift
		cls := open + wobble
		high := math.Max(open, cls) + s.BasePrice*0.0005
		low := math.Min(open, cls) - s.BasePrice*0.0005
		out = append(out, models.Candle{
			Time:   t,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  cls,
			Volume: 1000 + 500*math.Abs(math.Sin(phase*3)),
		})
	}
	return out, nil
}

func symbolSeed(symbol string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return h.Sum32()
}

var _ domrepo.CandleSource = (*SyntheticCandleSource)(nil)
