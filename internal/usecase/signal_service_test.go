package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"GoldPulse/internal/analysis"
	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	"GoldPulse/internal/indicators"
	"GoldPulse/pkg/cache"
)

type stubCandleSource struct {
	candles []models.Candle
	err     error
	calls   int
}

func (s *stubCandleSource) LatestCandles(_ context.Context, _ string, n int, _ domrepo.Interval) ([]models.Candle, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if n < len(s.candles) {
		return s.candles[len(s.candles)-n:], nil
	}
	return s.candles, nil
}

func (s *stubCandleSource) Candles(_ context.Context, _ string, _, _ int64, _ domrepo.Interval) ([]models.Candle, error) {
	s.calls++
	return s.candles, s.err
}

type stubNews struct{}

func (stubNews) Risk(context.Context, string) models.NewsRisk {
	return models.NewsRisk{Level: "LOW"}
}
func (stubNews) Bias(context.Context, string) models.NewsBias {
	return models.NewsBias{Bias: models.NewsBiasNeutral}
}

type stubSpot struct{}

func (stubSpot) Insights(context.Context, string) models.SpotInsights {
	return models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 50}
}

type stubNarrative struct{}

func (stubNarrative) Summarize(_ context.Context, nc models.NarrativeContext) string {
	return "summary for " + nc.Symbol
}

type recordingMetrics struct {
	mu      sync.Mutex
	signals int
	errors  []string
}

func (m *recordingMetrics) RecordSignal(string, models.Action, float64) {
	m.mu.Lock()
	m.signals++
	m.mu.Unlock()
}
func (m *recordingMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors = append(m.errors, kind)
	m.mu.Unlock()
}
func (m *recordingMetrics) RecordFallback(string)        {}
func (m *recordingMetrics) RecordLatency(string, float64) {}

func testCandles(n int) []models.Candle {
	cs := make([]models.Candle, 0, n)
	price := 2000.0
	for i := 0; i < n; i++ {
		off := float64(i%7) - 3
		cs = append(cs, models.Candle{
			Time:   1700000000 + int64(i)*3600,
			Open:   price + off,
			High:   price + off + 3,
			Low:    price + off - 3,
			Close:  price + off + 1,
			Volume: 100,
		})
	}
	return cs
}

func newTestService(src domrepo.CandleSource, m *recordingMetrics) *SignalService {
	return NewSignalService(
		src,
		stubNews{},
		stubSpot{},
		stubNarrative{},
		analysis.NewEngine(analysis.DefaultConfig()),
		indicators.DefaultConfig(),
		m,
	)
}

func TestGetSignalServesFromCache(t *testing.T) {
	src := &stubCandleSource{candles: testCandles(120)}
	m := &recordingMetrics{}
	s := NewSignalService(
		src,
		stubNews{},
		stubSpot{},
		stubNarrative{},
		analysis.NewEngine(analysis.DefaultConfig()),
		indicators.DefaultConfig(),
		m,
		WithSignalCache(cache.NewMemoryCache(), time.Minute),
	)

	p := GetSignalParams{Symbol: "XAUUSD", Interval: domrepo.IV1h}
	first, err := s.GetSignal(context.Background(), p)
	if err != nil {
		t.Fatalf("GetSignal: %v", err)
	}
	callsAfterFirst := src.calls

	second, err := s.GetSignal(context.Background(), p)
	if err != nil {
		t.Fatalf("GetSignal (cached): %v", err)
	}
	if src.calls != callsAfterFirst {
		t.Fatalf("expected cached report, source called %d more times", src.calls-callsAfterFirst)
	}
	if second.Signal.Action != first.Signal.Action {
		t.Fatalf("cached action %q != %q", second.Signal.Action, first.Signal.Action)
	}
}

func TestGetSignalProducesReport(t *testing.T) {
	src := &stubCandleSource{candles: testCandles(120)}
	m := &recordingMetrics{}
	s := newTestService(src, m)

	report, err := s.GetSignal(context.Background(), GetSignalParams{Symbol: "XAUUSD", Interval: domrepo.IV1h})
	if err != nil {
		t.Fatalf("GetSignal: %v", err)
	}
	if report.Symbol != "XAUUSD" || report.Interval != "1h" {
		t.Fatalf("report identity wrong: %s %s", report.Symbol, report.Interval)
	}
	if report.Signal.Confidence < 0 || report.Signal.Confidence > 95 {
		t.Fatalf("confidence out of range: %v", report.Signal.Confidence)
	}
	if !strings.Contains(report.Narrative, "XAUUSD") {
		t.Fatalf("narrative missing symbol: %q", report.Narrative)
	}
	if m.signals != 1 {
		t.Fatalf("expected 1 recorded signal, got %d", m.signals)
	}
}

func TestGetSignalRequiresSymbol(t *testing.T) {
	s := newTestService(&stubCandleSource{candles: testCandles(50)}, &recordingMetrics{})
	if _, err := s.GetSignal(context.Background(), GetSignalParams{}); err == nil {
		t.Fatal("expected error for empty symbol")
	}
}

func TestGetSignalNormalizesInterval(t *testing.T) {
	src := &stubCandleSource{candles: testCandles(60)}
	s := newTestService(src, &recordingMetrics{})

	report, err := s.GetSignal(context.Background(), GetSignalParams{Symbol: "XAUUSD", Interval: "17m"})
	if err != nil {
		t.Fatalf("GetSignal: %v", err)
	}
	if report.Interval != string(domrepo.DefaultInterval()) {
		t.Fatalf("expected default interval, got %s", report.Interval)
	}
}

func TestGetSignalCandleFetchError(t *testing.T) {
	src := &stubCandleSource{err: fmt.Errorf("upstream down")}
	m := &recordingMetrics{}
	s := newTestService(src, m)

	if _, err := s.GetSignal(context.Background(), GetSignalParams{Symbol: "XAUUSD"}); err == nil {
		t.Fatal("expected error when candle fetch fails")
	}
	if len(m.errors) == 0 || m.errors[0] != "candles" {
		t.Fatalf("expected candles error recorded, got %v", m.errors)
	}
}

func TestGetPhaseAndZonesAndPatterns(t *testing.T) {
	src := &stubCandleSource{candles: testCandles(120)}
	s := newTestService(src, &recordingMetrics{})
	ctx := context.Background()
	p := GetSignalParams{Symbol: "XAUUSD", Interval: domrepo.IV1h}

	phase, err := s.GetPhase(ctx, p)
	if err != nil {
		t.Fatalf("GetPhase: %v", err)
	}
	if phase.Phase == "" {
		t.Fatal("phase empty")
	}

	zones, err := s.GetZones(ctx, p)
	if err != nil {
		t.Fatalf("GetZones: %v", err)
	}
	if zones == nil {
		t.Fatal("zones nil")
	}

	patterns, err := s.GetPatterns(ctx, p)
	if err != nil {
		t.Fatalf("GetPatterns: %v", err)
	}
	if patterns == nil {
		t.Fatal("patterns nil")
	}
}

func TestGetCandlesClampsLimit(t *testing.T) {
	src := &stubCandleSource{candles: testCandles(40)}
	uc := NewCandlesUseCase(src)

	res, err := uc.GetCandles(context.Background(), GetCandlesParams{Symbol: "XAUUSD", Limit: 10})
	if err != nil {
		t.Fatalf("GetCandles: %v", err)
	}
	if res.Count != 10 || len(res.Candles) != 10 {
		t.Fatalf("expected 10 candles, got %d", res.Count)
	}
	// most recent bars are kept after clamping
	want := testCandles(40)[39].Time
	if res.Candles[len(res.Candles)-1].Time != want {
		t.Fatalf("expected newest bar retained")
	}
}

func TestGetCandlesRejectsInvertedRange(t *testing.T) {
	uc := NewCandlesUseCase(&stubCandleSource{candles: testCandles(10)})
	_, err := uc.GetCandles(context.Background(), GetCandlesParams{Symbol: "XAUUSD", From: 200, To: 100})
	if err == nil {
		t.Fatal("expected error for from > to")
	}
}
