package analysis

import (
	"strings"
	"testing"

	"GoldPulse/internal/domain/models"
)

func buy70() models.GoldSignal {
	return models.GoldSignal{Action: models.ActionBuy, Confidence: 70}
}

func TestApplyModifiersWideSpread(t *testing.T) {
	cfg := DefaultConfig()
	got := ApplyModifiers(cfg, buy70(), ModifierContext{
		Spot: models.SpotInsights{SpreadQuality: models.SpreadWide, WeeklyRangePct: 50},
	})
	if !approxEq(got.Confidence, 60) {
		t.Fatalf("wide spread should cost 10, got %.2f", got.Confidence)
	}
	if got.Action != models.ActionBuy {
		t.Fatalf("spread alone must not flip the action, got %s", got.Action)
	}
}

func TestApplyModifiersWeeklyRange(t *testing.T) {
	cfg := DefaultConfig()

	high := ApplyModifiers(cfg, buy70(), ModifierContext{
		Spot: models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 85},
	})
	if !approxEq(high.Confidence, 62) {
		t.Fatalf("buying the weekly highs should cost 8, got %.2f", high.Confidence)
	}

	low := ApplyModifiers(cfg, buy70(), ModifierContext{
		Spot: models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 25},
	})
	if !approxEq(low.Confidence, 75) {
		t.Fatalf("buying the weekly lows should add 5, got %.2f", low.Confidence)
	}
}

func TestApplyModifiersNewsAvoid(t *testing.T) {
	cfg := DefaultConfig()
	got := ApplyModifiers(cfg, buy70(), ModifierContext{
		Spot: models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 50},
		News: models.NewsRisk{Level: "HIGH", Avoid: true, Reason: "FOMC in 20 minutes"},
		// Aligned fundamental bias must not resurrect the trade.
		Fundamental: models.NewsBias{Bias: models.NewsBiasBullishGold},
	})
	if got.Action != models.ActionWait {
		t.Fatalf("news avoidance must force WAIT, got %s", got.Action)
	}
	if got.Confidence > cfg.NewsCap {
		t.Fatalf("news WAIT confidence must be capped at %.0f, got %.2f", cfg.NewsCap, got.Confidence)
	}
	found := false
	for _, c := range got.Confluences {
		if strings.Contains(c, "FOMC") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing news note: %v", got.Confluences)
	}
}

func TestApplyModifiersFundamentalBias(t *testing.T) {
	cfg := DefaultConfig()

	aligned := ApplyModifiers(cfg, buy70(), ModifierContext{
		Spot:        models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 50},
		Fundamental: models.NewsBias{Bias: models.NewsBiasBullishGold},
	})
	if !approxEq(aligned.Confidence, 80) {
		t.Fatalf("aligned bias should add 10, got %.2f", aligned.Confidence)
	}

	conflicted := ApplyModifiers(cfg,
		models.GoldSignal{Action: models.ActionSell, Confidence: 25},
		ModifierContext{
			Spot:        models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 50},
			Fundamental: models.NewsBias{Bias: models.NewsBiasBullishGold},
		})
	if !approxEq(conflicted.Confidence, cfg.ConfidenceFloor) {
		t.Fatalf("conflicting bias must floor at %.0f, got %.2f", cfg.ConfidenceFloor, conflicted.Confidence)
	}
}

func TestApplyModifiersSequence(t *testing.T) {
	cfg := DefaultConfig()
	got := ApplyModifiers(cfg, buy70(), ModifierContext{
		Spot:        models.SpotInsights{SpreadQuality: models.SpreadWide, WeeklyRangePct: 85},
		News:        models.NewsRisk{Avoid: true},
		Fundamental: models.NewsBias{Bias: models.NewsBiasBullishGold},
	})
	// 70 -10 (spread) -8 (range) then capped by news; fundamentals skipped.
	if got.Action != models.ActionWait {
		t.Fatalf("expected WAIT, got %s", got.Action)
	}
	if !approxEq(got.Confidence, cfg.NewsCap) {
		t.Fatalf("expected the news cap %.0f, got %.2f", cfg.NewsCap, got.Confidence)
	}
}

func TestApplyModifiersLeavesWaitAlone(t *testing.T) {
	cfg := DefaultConfig()
	in := models.GoldSignal{Action: models.ActionWait, Confidence: 40}
	got := ApplyModifiers(cfg, in, ModifierContext{
		Spot: models.SpotInsights{SpreadQuality: models.SpreadWide, WeeklyRangePct: 85},
	})
	if got.Action != models.ActionWait || !approxEq(got.Confidence, 40) {
		t.Fatalf("a WAIT signal should pass through untouched, got %+v", got)
	}
	if len(got.Confluences) != len(in.Confluences) {
		t.Fatalf("no modifier note should be added for WAIT: %v", got.Confluences)
	}
}
