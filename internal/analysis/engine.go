package analysis

import (
	"math"

	"GoldPulse/internal/domain/models"
)

// Input is everything one signal computation reads. The engine performs no
// I/O: callers fetch candles, indicators and context beforehand and may do
// so concurrently.
type Input struct {
	Candles     []models.Candle
	Indicators  models.IndicatorSet
	News        models.NewsRisk
	Fundamental models.NewsBias
	Spot        models.SpotInsights
}

// Result holds the signal plus every intermediate detector output, so the
// API layer and the narrative collaborator can show the supporting data.
type Result struct {
	Signal   models.GoldSignal
	Phase    models.AMDPhase
	Zones    models.ZoneSet
	Patterns []models.Pattern
	Charts   []models.ChartPattern
}

// Engine is the stateless signal synthesis pipeline. Identical inputs
// always produce identical outputs; nothing survives between calls.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine { return &Engine{cfg: cfg} }

// Config returns the calibration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Compute runs the full pipeline and returns only the signal.
func (e *Engine) Compute(in Input) models.GoldSignal {
	return e.Analyze(in).Signal
}

// Analyze runs detectors, both signal builders, fusion and the modifier
// chain. It is total: degenerate input degrades to a neutral WAIT signal,
// never an error.
func (e *Engine) Analyze(in Input) Result {
	cfg := e.cfg

	if len(in.Candles) == 0 {
		sig := models.GoldSignal{
			Action:       models.ActionWait,
			Confidence:   0,
			Confluences:  []string{"No candle data available"},
			Invalidation: "n/a",
			SessionBias:  string(models.BiasNeutral),
		}
		return Result{
			Signal: sig,
			Phase: models.AMDPhase{
				Phase:       models.PhaseTransition,
				Bias:        models.BiasNeutral,
				Strength:    cfg.StrengthUndefined,
				Description: "No candle data",
			},
		}
	}

	price := in.Candles[len(in.Candles)-1].Close
	ind := normalizeIndicators(in.Indicators, price)

	phase := DetectPhase(cfg, in.Candles)
	zones := models.ZoneSet{
		OrderBlocks: DetectOrderBlocks(cfg, in.Candles),
		Gaps:        DetectImbalanceGaps(cfg, in.Candles),
		Levels:      DetectSRLevels(cfg, in.Candles),
		Pools:       DetectLiquidityPools(cfg, in.Candles),
	}
	patterns := DetectCandlePatterns(cfg, in.Candles)
	charts := DetectChartPatterns(cfg, in.Candles)

	primary := BuildPrimary(cfg, PrimaryInput{
		Candles:    in.Candles,
		Indicators: ind,
		Phase:      phase,
		Zones:      zones,
		Patterns:   patterns,
		Charts:     charts,
	})
	secondary := BuildSecondary(cfg, in.Candles, price, ind.ATR)

	fused := Fuse(cfg, primary, secondary)
	final := ApplyModifiers(cfg, fused, ModifierContext{
		Spot:        in.Spot,
		News:        in.News,
		Fundamental: in.Fundamental,
	})
	final.SessionBias = string(phase.Bias)

	return Result{
		Signal:   final,
		Phase:    phase,
		Zones:    zones,
		Patterns: patterns,
		Charts:   charts,
	}
}

// normalizeIndicators substitutes neutral defaults for missing or
// degenerate upstream values so the pipeline never divides by zero or
// reacts to a failed fetch.
func normalizeIndicators(ind models.IndicatorSet, price float64) models.IndicatorSet {
	out := ind
	if out.RSI <= 0 || math.IsNaN(out.RSI) {
		out.RSI = 50
	}
	if math.IsNaN(out.MACD.Line) || math.IsNaN(out.MACD.Signal) || math.IsNaN(out.MACD.Histogram) {
		out.MACD = models.MACD{}
	}
	if out.ATR <= 0 || math.IsNaN(out.ATR) {
		out.ATR = price * 0.001
		if out.ATR < 0.01 {
			out.ATR = 0.01
		}
	}
	if out.Bands.Middle <= 0 || math.IsNaN(out.Bands.Middle) {
		out.Bands = models.Bands{
			Upper:  price + 2*out.ATR,
			Middle: price,
			Lower:  price - 2*out.ATR,
		}
	}
	return out
}
