package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	pkgch "GoldPulse/pkg/clickhouse"
	applogger "GoldPulse/pkg/logger"
)

// CHCandleSource implements CandleSource backed by ClickHouse.
type CHCandleSource struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHCandleSource(ch *pkgch.Client) *CHCandleSource {
	return &CHCandleSource{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHCandleSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHCandleSource) Candles(ctx context.Context, symbol string, from, to int64, iv domrepo.Interval) ([]models.Candle, error) {
	start := time.Now()
	table, err := tableForInterval(iv)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT bucket, open, high, low, close, vol
        FROM %s
        WHERE symbol = ? AND bucket >= ? AND bucket <= ?
        ORDER BY bucket ASC
    `
	q := fmt.Sprintf(qtpl, table)
	rows, err := s.db.QueryContext(ctx, q, symbol, time.Unix(from, 0), time.Unix(to, 0))
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse candles query error",
				applogger.String("table", table),
				applogger.String("symbol", symbol),
				applogger.String("interval", string(iv)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get candles: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candle, 0, 1024)
	for rows.Next() {
		c, err := scanCandle(rows)
		if err != nil {
			if s.l != nil {
				s.l.Error("clickhouse candles scan error",
					applogger.String("table", table),
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse candles ok",
			applogger.String("table", table),
			applogger.String("symbol", symbol),
			applogger.String("interval", string(iv)),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHCandleSource) LatestCandles(ctx context.Context, symbol string, n int, iv domrepo.Interval) ([]models.Candle, error) {
	start := time.Now()
	table, err := tableForInterval(iv)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT bucket, open, high, low, close, vol
        FROM %s
        WHERE symbol = ?
        ORDER BY bucket DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, table)
	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_candles query error",
				applogger.String("table", table),
				applogger.String("symbol", symbol),
				applogger.String("interval", string(iv)),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get latest candles: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.Candle, 0, n)
	for rows.Next() {
		c, err := scanCandle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		tmp = append(tmp, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_candles ok",
			applogger.String("table", table),
			applogger.String("symbol", symbol),
			applogger.String("interval", string(iv)),
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

func scanCandle(rows *sql.Rows) (models.Candle, error) {
	var c models.Candle
	var bucket time.Time
	if err := rows.Scan(&bucket, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
		return models.Candle{}, err
	}
	c.Time = bucket.Unix()
	return c, nil
}

func tableForInterval(iv domrepo.Interval) (string, error) {
	switch iv {
	case domrepo.IV5m:
		return "goldpulse.candles_5m", nil
	case domrepo.IV15m:
		return "goldpulse.candles_15m", nil
	case domrepo.IV1h:
		return "goldpulse.candles_1h", nil
	case domrepo.IV4h:
		return "goldpulse.candles_4h", nil
	case domrepo.IV1d:
		return "goldpulse.candles_1d", nil
	default:
		return "", fmt.Errorf("unsupported interval: %s", iv)
	}
}
