package usecase

import (
	"context"

	domrepo "GoldPulse/internal/domain/repository"
	mid "GoldPulse/internal/middleware"
	"GoldPulse/internal/services/spot"
	applogger "GoldPulse/pkg/logger"
)

// TrackerProc adapts the spot tracker to the pipeline processor interface.
type TrackerProc struct {
	tracker *spot.Tracker
}

func NewTrackerProc(tracker *spot.Tracker) *TrackerProc { return &TrackerProc{tracker: tracker} }

func (p *TrackerProc) Process(_ context.Context, q *domrepo.Quote) error {
	p.tracker.Update(q)
	return nil
}

var _ mid.Proc = (*TrackerProc)(nil)

// QuoteCollector consumes the live spot stream and folds every quote
// into the tracker, reconnecting when the stream errors.
type QuoteCollector struct {
	stream  domrepo.QuoteStream
	proc    mid.Proc
	metrics domrepo.Metrics
	pipe    *mid.RealtimePipeline
	l       *applogger.Logger
}

// NewQuoteCollector creates a new QuoteCollector instance.
func NewQuoteCollector(stream domrepo.QuoteStream, proc mid.Proc, metrics domrepo.Metrics, pipe *mid.RealtimePipeline) *QuoteCollector {
	return &QuoteCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// SetLogger injects a structured logger.
func (c *QuoteCollector) SetLogger(l *applogger.Logger) { c.l = l }

// IsConnected returns true if the spot stream is connected.
func (c *QuoteCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *QuoteCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	qCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, qCh, errCh)
	return nil
}

func (c *QuoteCollector) consume(ctx context.Context, qCh <-chan *domrepo.Quote, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				if c.l != nil {
					c.l.Warn("spot stream error, reconnecting", applogger.Error(err))
				}
				_ = c.stream.Reconnect(ctx)
			}
		case q := <-qCh:
			if q == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, q)
			} else {
				_ = c.proc.Process(ctx, q)
			}
		}
	}
}

// SeedWeekly primes the tracker's weekly extremes from daily bars so the
// range position is meaningful before a full week of quotes arrives.
func (c *QuoteCollector) SeedWeekly(ctx context.Context, source domrepo.CandleSource, tracker *spot.Tracker, symbol string) {
	cs, err := source.LatestCandles(ctx, symbol, 7, domrepo.IV1d)
	if err != nil || len(cs) == 0 {
		if c.l != nil {
			c.l.Warn("weekly seed skipped", applogger.String("symbol", symbol), applogger.Error(err))
		}
		return
	}
	high, low := cs[0].High, cs[0].Low
	for _, b := range cs[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	tracker.SeedWeekly(symbol, high, low)
}

func (c *QuoteCollector) Stop() error { return c.stream.Close() }

// Shutdown stops the pipeline and closes the stream.
func (c *QuoteCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
