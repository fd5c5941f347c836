package usecase

import (
	"context"
	"fmt"
	"time"

	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	xhttp "GoldPulse/pkg/http"
	"GoldPulse/pkg/util"
)

// CandlesUseCase provides business logic for retrieving candles.
type CandlesUseCase struct {
	source domrepo.CandleSource
}

func NewCandlesUseCase(source domrepo.CandleSource) *CandlesUseCase {
	return &CandlesUseCase{source: source}
}

type GetCandlesParams struct {
	Symbol   string
	From     int64
	To       int64
	Interval domrepo.Interval
	Limit    int
}

type GetCandlesResult struct {
	Symbol   string
	Interval string
	From     int64
	To       int64
	Count    int
	Candles  []models.Candle
}

func (uc *CandlesUseCase) GetCandles(ctx context.Context, p GetCandlesParams) (*GetCandlesResult, error) {
	if p.Symbol == "" {
		return nil, xhttp.BadRequestError("symbol required")
	}
	if !domrepo.IsValidInterval(p.Interval) {
		p.Interval = domrepo.DefaultInterval()
	}
	if p.Limit <= 0 {
		p.Limit = 1000
	}
	if p.Limit > 5000 {
		p.Limit = 5000
	}

	var (
		candles []models.Candle
		err     error
	)
	if p.From > 0 && p.To > 0 {
		if p.From > p.To {
			return nil, xhttp.BadRequestError("from must be <= to")
		}
		// Align the requested range to interval boundaries so the
		// backend always queries whole buckets.
		from, to := util.AlignFromTo(time.Unix(p.From, 0).UTC(), time.Unix(p.To, 0).UTC(), string(p.Interval))
		p.From, p.To = from.Unix(), to.Unix()
		candles, err = uc.source.Candles(ctx, p.Symbol, p.From, p.To, p.Interval)
	} else {
		candles, err = uc.source.LatestCandles(ctx, p.Symbol, p.Limit, p.Interval)
	}
	if err != nil {
		return nil, fmt.Errorf("get candles: %w", err)
	}
	if p.From > 0 && p.To > 0 && len(candles) == 0 {
		return nil, xhttp.NotFoundError("no candles in range")
	}
	if len(candles) > p.Limit {
		candles = candles[len(candles)-p.Limit:]
	}

	return &GetCandlesResult{
		Symbol:   p.Symbol,
		Interval: string(p.Interval),
		From:     p.From,
		To:       p.To,
		Count:    len(candles),
		Candles:  candles,
	}, nil
}
