package analysis

import (
	"reflect"
	"testing"

	"GoldPulse/internal/domain/models"
)

func declineSeries(n int) []models.Candle {
	cs := make([]models.Candle, 0, n)
	price := 2200.0
	for i := 0; i < n; i++ {
		cs = append(cs, bar(i, price, price+2, price-6, price-4))
		price -= 5
	}
	return cs
}

func TestEngineDeterminism(t *testing.T) {
	e := NewEngine(DefaultConfig())
	in := Input{
		Candles:    driftSeries(60, 2000),
		Indicators: models.IndicatorSet{RSI: 27, ATR: 5},
		Spot:       models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 50},
	}
	a := e.Analyze(in)
	b := e.Analyze(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs must produce identical results")
	}
}

func TestEngineEmptyInput(t *testing.T) {
	e := NewEngine(DefaultConfig())
	got := e.Analyze(Input{})
	if got.Signal.Action != models.ActionWait || got.Signal.Confidence != 0 {
		t.Fatalf("no data must degrade to a zero WAIT, got %+v", got.Signal)
	}
	if got.Phase.Phase != models.PhaseTransition {
		t.Fatalf("no data must classify TRANSITION, got %s", got.Phase.Phase)
	}
}

func TestEngineFlatTape(t *testing.T) {
	e := NewEngine(DefaultConfig())
	got := e.Analyze(Input{Candles: flatSeries(50, 2000)})

	if got.Signal.Action != models.ActionWait {
		t.Fatalf("a dead-flat tape must produce WAIT, got %s", got.Signal.Action)
	}
	if got.Signal.Confidence != 0 {
		t.Fatalf("unexpected confidence %.2f", got.Signal.Confidence)
	}
	if got.Phase.Phase != models.PhaseTransition || got.Phase.Bias != models.BiasNeutral {
		t.Fatalf("unexpected phase %+v", got.Phase)
	}
	z := got.Zones
	if len(z.OrderBlocks)+len(z.Gaps)+len(z.Levels)+len(z.Pools) != 0 {
		t.Fatalf("a flat tape must yield no zones: %+v", z)
	}
	if len(got.Patterns) != 0 || len(got.Charts) != 0 {
		t.Fatalf("a flat tape must yield no patterns")
	}
}

func TestEngineOversoldDecline(t *testing.T) {
	e := NewEngine(DefaultConfig())
	got := e.Compute(Input{
		Candles:    declineSeries(60),
		Indicators: models.IndicatorSet{RSI: 24, ATR: 8},
		Spot:       models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 50},
	})
	if got.Action != models.ActionBuy {
		t.Fatalf("deep oversold must produce BUY, got %s (%v)", got.Action, got.Confluences)
	}
	if got.Confidence < 40 || got.Confidence > 95 {
		t.Fatalf("confidence out of range: %.2f", got.Confidence)
	}
	if got.StopLoss >= got.Entry || got.Entry >= got.TP1 {
		t.Fatalf("buy ladder out of order: %+v", got)
	}
	if got.SessionBias == "" {
		t.Fatal("session bias must be set")
	}
}

func TestEngineNewsAvoidOverridesSetup(t *testing.T) {
	e := NewEngine(DefaultConfig())
	cfg := DefaultConfig()
	got := e.Compute(Input{
		Candles:    declineSeries(60),
		Indicators: models.IndicatorSet{RSI: 24, ATR: 8},
		News:       models.NewsRisk{Level: "HIGH", Avoid: true, Reason: "NFP release"},
		Spot:       models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 50},
	})
	if got.Action != models.ActionWait {
		t.Fatalf("news avoidance must force WAIT, got %s", got.Action)
	}
	if got.Confidence > cfg.NewsCap {
		t.Fatalf("confidence above the news cap: %.2f", got.Confidence)
	}
}

func TestEngineConfidenceBounds(t *testing.T) {
	e := NewEngine(DefaultConfig())
	inputs := []Input{
		{},
		{Candles: flatSeries(50, 2000)},
		{Candles: driftSeries(60, 2000), Indicators: models.IndicatorSet{RSI: 5, ATR: 50}},
		{Candles: driftSeries(60, 2000), Indicators: models.IndicatorSet{RSI: 99, ATR: 50},
			Fundamental: models.NewsBias{Bias: models.NewsBiasBearishGold},
			Spot:        models.SpotInsights{SpreadQuality: models.SpreadTight, WeeklyRangePct: 95}},
		{Candles: declineSeries(60), Indicators: models.IndicatorSet{RSI: 24, ATR: 8},
			Spot: models.SpotInsights{SpreadQuality: models.SpreadWide, WeeklyRangePct: 85},
			Fundamental: models.NewsBias{Bias: models.NewsBiasBearishGold}},
	}
	for i, in := range inputs {
		got := e.Compute(in)
		if got.Confidence < 0 || got.Confidence > 95 {
			t.Fatalf("input %d: confidence %.2f out of [0,95]", i, got.Confidence)
		}
	}
}

func TestEngineDegenerateIndicators(t *testing.T) {
	e := NewEngine(DefaultConfig())
	// NaN-free zero indicators must be normalized, not propagated.
	got := e.Compute(Input{
		Candles: driftSeries(60, 2000),
		Spot:    models.SpotInsights{SpreadQuality: models.SpreadNormal, WeeklyRangePct: 50},
	})
	if got.StopLoss == got.Entry {
		t.Fatal("a zero ATR must be replaced, not used")
	}
}
