package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	"GoldPulse/pkg/config"
	xhttp "GoldPulse/pkg/http"
)

// HTTPCandleSource fetches OHLCV bars from the upstream market-data REST
// API. It implements CandleSource for deployments without a ClickHouse
// backing store.
type HTTPCandleSource struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
}

func NewHTTPCandleSource(cfg *config.Config) *HTTPCandleSource {
	timeout := cfg.MarketData.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCandleSource{
		baseURL: cfg.MarketData.BaseURL,
		apiKey:  cfg.MarketData.APIKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type klineRow struct {
	Time   int64   `json:"t"`
	Open   float64 `json:"o"`
	High   float64 `json:"h"`
	Low    float64 `json:"l"`
	Close  float64 `json:"c"`
	Volume float64 `json:"v"`
}

func (s *HTTPCandleSource) LatestCandles(ctx context.Context, symbol string, n int, iv domrepo.Interval) ([]models.Candle, error) {
	var rows []klineRow
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.baseURL + "/api/v1/klines",
		Headers: map[string]string{
			"X-API-Key": s.apiKey,
		},
		QueryParams: map[string][]string{
			"symbol":   {symbol},
			"interval": {string(iv)},
			"limit":    {fmt.Sprintf("%d", n)},
		},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}
	return toCandles(rows), nil
}

func (s *HTTPCandleSource) Candles(ctx context.Context, symbol string, from, to int64, iv domrepo.Interval) ([]models.Candle, error) {
	var rows []klineRow
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.baseURL + "/api/v1/klines",
		Headers: map[string]string{
			"X-API-Key": s.apiKey,
		},
		QueryParams: map[string][]string{
			"symbol":   {symbol},
			"interval": {string(iv)},
			"from":     {fmt.Sprintf("%d", from)},
			"to":       {fmt.Sprintf("%d", to)},
		},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}
	return toCandles(rows), nil
}

func toCandles(rows []klineRow) []models.Candle {
	out := make([]models.Candle, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Candle{
			Time:   r.Time,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Time < out[b].Time })
	return out
}

var _ domrepo.CandleSource = (*HTTPCandleSource)(nil)
