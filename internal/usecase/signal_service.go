package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"GoldPulse/internal/analysis"
	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	domsvc "GoldPulse/internal/domain/service"
	"GoldPulse/internal/indicators"
	"GoldPulse/pkg/cache"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
)

// SignalService runs one full signal computation: fetch bars and context
// concurrently, run the synthesis engine, render the narrative and hand
// the report back. It holds no market state of its own.
type SignalService struct {
	candles   domrepo.CandleSource
	news      domsvc.NewsService
	spot      domsvc.SpotService
	narrative domsvc.NarrativeService
	engine    *analysis.Engine
	indCfg    indicators.Config
	metrics   domrepo.Metrics
	cache     cache.Service
	cacheTTL  time.Duration
	timeout   time.Duration
	bars      int
	l         *applogger.Logger
}

type SignalServiceOption func(*SignalService)

// WithSignalCache enables report caching with the given TTL.
func WithSignalCache(c cache.Service, ttl time.Duration) SignalServiceOption {
	return func(s *SignalService) {
		if c != nil && ttl > 0 {
			s.cache = c
			s.cacheTTL = ttl
		}
	}
}

// WithSignalTimeout bounds one computation end to end.
func WithSignalTimeout(d time.Duration) SignalServiceOption {
	return func(s *SignalService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSignalBars sets the candle window length.
func WithSignalBars(n int) SignalServiceOption {
	return func(s *SignalService) {
		if n > 0 {
			s.bars = n
		}
	}
}

func NewSignalService(
	candles domrepo.CandleSource,
	news domsvc.NewsService,
	spot domsvc.SpotService,
	narrative domsvc.NarrativeService,
	engine *analysis.Engine,
	indCfg indicators.Config,
	metrics domrepo.Metrics,
	opts ...SignalServiceOption,
) *SignalService {
	s := &SignalService{
		candles:   candles,
		news:      news,
		spot:      spot,
		narrative: narrative,
		engine:    engine,
		indCfg:    indCfg,
		metrics:   metrics,
		timeout:   10 * time.Second,
		bars:      200,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLogger injects a structured logger.
func (s *SignalService) SetLogger(l *applogger.Logger) { s.l = l }

type GetSignalParams struct {
	Symbol   string
	Interval domrepo.Interval
	Bars     int
}

// GetSignal computes a fresh signal report for the symbol and interval.
// Context collaborators degrade to neutral on failure; only a failed
// candle fetch is an error.
func (s *SignalService) GetSignal(ctx context.Context, p GetSignalParams) (*models.SignalReport, error) {
	if p.Symbol == "" {
		return nil, xhttp.BadRequestError("symbol required")
	}
	if !domrepo.IsValidInterval(p.Interval) {
		p.Interval = domrepo.DefaultInterval()
	}
	if p.Bars <= 0 {
		p.Bars = s.bars
	}

	cacheKey := cache.GenerateKeyWithParams("signal", p.Symbol, p.Interval, p.Bars)
	if s.cache != nil {
		var cached models.SignalReport
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached.Symbol != "" {
			return &cached, nil
		}
		// Single-flight: if another request is already computing this key,
		// give it a moment and re-check the cache before computing anyway.
		if ok, err := s.cache.TryLock(ctx, cacheKey+":lock", s.timeout); err == nil && !ok {
			time.Sleep(100 * time.Millisecond)
			if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached.Symbol != "" {
				return &cached, nil
			}
		} else if ok {
			defer func() { _ = s.cache.Unlock(context.Background(), cacheKey+":lock") }()
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()

	// Candles and context fetched concurrently; the collaborators cannot
	// fail, so only the candle slot carries an error.
	var (
		wg     sync.WaitGroup
		cs     []models.Candle
		csErr  error
		risk   models.NewsRisk
		bias   models.NewsBias
		spotIn models.SpotInsights
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		cs, csErr = s.candles.LatestCandles(ctx, p.Symbol, p.Bars, p.Interval)
	}()
	go func() {
		defer wg.Done()
		risk = s.news.Risk(ctx, p.Symbol)
	}()
	go func() {
		defer wg.Done()
		bias = s.news.Bias(ctx, p.Symbol)
	}()
	go func() {
		defer wg.Done()
		spotIn = s.spot.Insights(ctx, p.Symbol)
	}()
	wg.Wait()

	if csErr != nil {
		if s.metrics != nil {
			s.metrics.RecordError("candles")
		}
		return nil, fmt.Errorf("fetch candles: %w", csErr)
	}

	ind := indicators.Compute(s.indCfg, cs)
	result := s.engine.Analyze(analysis.Input{
		Candles:     cs,
		Indicators:  ind,
		News:        risk,
		Fundamental: bias,
		Spot:        spotIn,
	})

	report := &models.SignalReport{
		Symbol:    p.Symbol,
		Interval:  string(p.Interval),
		Generated: time.Now().Unix(),
		Signal:    result.Signal,
		Phase:     result.Phase,
		Zones:     result.Zones,
		Patterns:  result.Patterns,
		Charts:    result.Charts,
	}
	report.Narrative = s.narrative.Summarize(ctx, models.NarrativeContext{
		Symbol:     p.Symbol,
		Interval:   string(p.Interval),
		Signal:     result.Signal,
		Phase:      result.Phase,
		Zones:      result.Zones,
		Candles:    result.Patterns,
		Charts:     result.Charts,
		Indicators: ind,
		News:       risk,
		Fundamnt:   bias,
		Spot:       spotIn,
	})

	if s.metrics != nil {
		s.metrics.RecordSignal(p.Symbol, result.Signal.Action, result.Signal.Confidence)
		s.metrics.RecordLatency("signal_compute", time.Since(start).Seconds())
	}
	if s.l != nil {
		s.l.Info("signal computed",
			applogger.String("symbol", p.Symbol),
			applogger.String("interval", string(p.Interval)),
			applogger.String("action", string(result.Signal.Action)),
			applogger.Any("confidence", result.Signal.Confidence),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, report, s.cacheTTL); err != nil && s.l != nil {
			s.l.Warn("signal cache set failed", applogger.Error(err))
		}
	}
	return report, nil
}

// GetPhase classifies the current market phase without building a signal.
func (s *SignalService) GetPhase(ctx context.Context, p GetSignalParams) (*models.AMDPhase, error) {
	cs, err := s.window(ctx, p)
	if err != nil {
		return nil, err
	}
	phase := analysis.DetectPhase(s.engine.Config(), cs)
	return &phase, nil
}

// GetZones runs only the structural zone detectors.
func (s *SignalService) GetZones(ctx context.Context, p GetSignalParams) (*models.ZoneSet, error) {
	cs, err := s.window(ctx, p)
	if err != nil {
		return nil, err
	}
	cfg := s.engine.Config()
	return &models.ZoneSet{
		OrderBlocks: analysis.DetectOrderBlocks(cfg, cs),
		Gaps:        analysis.DetectImbalanceGaps(cfg, cs),
		Levels:      analysis.DetectSRLevels(cfg, cs),
		Pools:       analysis.DetectLiquidityPools(cfg, cs),
	}, nil
}

// PatternsResult pairs the two pattern detector outputs.
type PatternsResult struct {
	Candlesticks []models.Pattern
	Charts       []models.ChartPattern
}

// GetPatterns runs only the pattern detectors.
func (s *SignalService) GetPatterns(ctx context.Context, p GetSignalParams) (*PatternsResult, error) {
	cs, err := s.window(ctx, p)
	if err != nil {
		return nil, err
	}
	cfg := s.engine.Config()
	return &PatternsResult{
		Candlesticks: analysis.DetectCandlePatterns(cfg, cs),
		Charts:       analysis.DetectChartPatterns(cfg, cs),
	}, nil
}

func (s *SignalService) window(ctx context.Context, p GetSignalParams) ([]models.Candle, error) {
	if p.Symbol == "" {
		return nil, xhttp.BadRequestError("symbol required")
	}
	if !domrepo.IsValidInterval(p.Interval) {
		p.Interval = domrepo.DefaultInterval()
	}
	if p.Bars <= 0 {
		p.Bars = s.bars
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	cs, err := s.candles.LatestCandles(ctx, p.Symbol, p.Bars, p.Interval)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("candles")
		}
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	return cs, nil
}
