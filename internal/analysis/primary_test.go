package analysis

import (
	"strings"
	"testing"

	"GoldPulse/internal/domain/models"
)

func TestBuildPrimaryOversold(t *testing.T) {
	cfg := DefaultConfig()
	sig := BuildPrimary(cfg, PrimaryInput{
		Candles:    driftSeries(50, 2000),
		Indicators: models.IndicatorSet{RSI: 24, ATR: 5},
		Phase:      models.AMDPhase{Phase: models.PhaseAccumulation, Bias: models.BiasBullish, Strength: 70},
		Zones: models.ZoneSet{
			OrderBlocks: []models.OrderBlock{{
				ID: "ob-1", Direction: models.BiasBullish, Tier: models.TierStrong, Active: true,
			}},
		},
	})
	if sig.Action != models.ActionBuy {
		t.Fatalf("deep oversold must produce BUY, got %s", sig.Action)
	}
	// Base 65, strong block +10, phase alignment +14, zone aggregate +3.
	if !approxEq(sig.Confidence, 92) {
		t.Fatalf("unexpected confidence %.2f", sig.Confidence)
	}
	if sig.StopLoss >= sig.Entry || sig.Entry >= sig.TP1 || sig.TP1 >= sig.TP2 || sig.TP2 >= sig.TP3 {
		t.Fatalf("buy ladder out of order: stop %.2f entry %.2f tps %.2f %.2f %.2f",
			sig.StopLoss, sig.Entry, sig.TP1, sig.TP2, sig.TP3)
	}
	if !(sig.RR1 > 0 && sig.RR2 > sig.RR1 && sig.RR3 > sig.RR2) {
		t.Fatalf("risk:reward must be positive and increasing, got %.2f %.2f %.2f", sig.RR1, sig.RR2, sig.RR3)
	}
	if !approxEq(sig.RR1, cfg.TP1ATR/cfg.StopATR) {
		t.Fatalf("RR1 should equal the target/stop ATR ratio, got %.3f", sig.RR1)
	}
}

func TestBuildPrimaryOverbought(t *testing.T) {
	cfg := DefaultConfig()
	sig := BuildPrimary(cfg, PrimaryInput{
		Candles:    driftSeries(50, 2000),
		Indicators: models.IndicatorSet{RSI: 78, ATR: 5},
		Phase:      models.AMDPhase{Phase: models.PhaseDistribution, Bias: models.BiasNeutral, Strength: 70},
	})
	if sig.Action != models.ActionSell {
		t.Fatalf("deep overbought must produce SELL, got %s", sig.Action)
	}
	if !approxEq(sig.Confidence, cfg.BaseExtreme) {
		t.Fatalf("unexpected confidence %.2f", sig.Confidence)
	}
	if sig.StopLoss <= sig.Entry || sig.Entry <= sig.TP1 || sig.TP1 <= sig.TP2 || sig.TP2 <= sig.TP3 {
		t.Fatalf("sell ladder out of order: stop %.2f entry %.2f tps %.2f %.2f %.2f",
			sig.StopLoss, sig.Entry, sig.TP1, sig.TP2, sig.TP3)
	}
}

func TestBuildPrimaryPatternConfluence(t *testing.T) {
	cfg := DefaultConfig()
	base := BuildPrimary(cfg, PrimaryInput{
		Candles:    driftSeries(50, 2000),
		Indicators: models.IndicatorSet{RSI: 24, ATR: 5},
		Phase:      models.AMDPhase{Phase: models.PhaseTransition, Bias: models.BiasNeutral, Strength: 40},
	})
	withPatterns := BuildPrimary(cfg, PrimaryInput{
		Candles:    driftSeries(50, 2000),
		Indicators: models.IndicatorSet{RSI: 24, ATR: 5},
		Phase:      models.AMDPhase{Phase: models.PhaseTransition, Bias: models.BiasNeutral, Strength: 40},
		Patterns: []models.Pattern{
			{Name: "bullish_engulfing", Direction: models.BiasBullish, Strong: true, Confidence: 80},
		},
		Charts: []models.ChartPattern{
			{Name: "bull_flag", Direction: models.BiasBullish, Confidence: 70},
		},
	})
	// Strong candlestick 15 + chart pattern 10, scaled 0.3.
	if !approxEq(withPatterns.Confidence, base.Confidence+7.5) {
		t.Fatalf("aligned patterns must add scaled confluence: %.2f vs %.2f", withPatterns.Confidence, base.Confidence)
	}

	opposed := BuildPrimary(cfg, PrimaryInput{
		Candles:    driftSeries(50, 2000),
		Indicators: models.IndicatorSet{RSI: 24, ATR: 5},
		Phase:      models.AMDPhase{Phase: models.PhaseTransition, Bias: models.BiasNeutral, Strength: 40},
		Patterns: []models.Pattern{
			{Name: "shooting_star", Direction: models.BiasBearish, Strong: true, Confidence: 80},
		},
	})
	if !approxEq(opposed.Confidence, base.Confidence) {
		t.Fatalf("opposed patterns must not add confluence: %.2f vs %.2f", opposed.Confidence, base.Confidence)
	}
}

func TestBuildPrimaryMomentumBand(t *testing.T) {
	cfg := DefaultConfig()
	sig := BuildPrimary(cfg, PrimaryInput{
		Candles:    driftSeries(50, 2000),
		Indicators: models.IndicatorSet{RSI: 35, MACD: models.MACD{Histogram: 0.5}, ATR: 5},
		Phase:      models.AMDPhase{Phase: models.PhaseTransition, Bias: models.BiasNeutral},
	})
	if sig.Action != models.ActionBuy {
		t.Fatalf("low RSI with positive momentum must produce BUY, got %s", sig.Action)
	}
	if !approxEq(sig.Confidence, cfg.BaseMomentum) {
		t.Fatalf("unexpected confidence %.2f", sig.Confidence)
	}
}

func TestBuildPrimaryRegimeAdoption(t *testing.T) {
	cfg := DefaultConfig()
	sig := BuildPrimary(cfg, PrimaryInput{
		Candles:    driftSeries(50, 2000),
		Indicators: models.IndicatorSet{RSI: 45, MACD: models.MACD{Histogram: -0.1}, ATR: 5},
		Phase:      models.AMDPhase{Phase: models.PhaseAccumulation, Bias: models.BiasBullish, Strength: 70},
	})
	if sig.Action != models.ActionBuy {
		t.Fatalf("bullish regime with RSI below 50 must produce BUY, got %s", sig.Action)
	}
	// Base 55 plus the phase alignment bonus of 14.
	if !approxEq(sig.Confidence, cfg.BaseRegime+14) {
		t.Fatalf("unexpected confidence %.2f", sig.Confidence)
	}
}

func TestBuildPrimaryNoEdge(t *testing.T) {
	cfg := DefaultConfig()
	sig := BuildPrimary(cfg, PrimaryInput{
		Candles:    driftSeries(50, 2000),
		Indicators: models.IndicatorSet{RSI: 50, ATR: 5},
		Phase:      models.AMDPhase{Phase: models.PhaseTransition, Bias: models.BiasNeutral},
	})
	if sig.Action != models.ActionWait {
		t.Fatalf("neutral inputs must produce WAIT, got %s", sig.Action)
	}
	if sig.Confidence != 0 {
		t.Fatalf("WAIT should carry zero confidence, got %.2f", sig.Confidence)
	}
	found := false
	for _, c := range sig.Confluences {
		if strings.Contains(c, "No directional edge") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing the no-edge note: %v", sig.Confluences)
	}
}
