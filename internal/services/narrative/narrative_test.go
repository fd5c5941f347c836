package narrative

import (
	"strings"
	"testing"

	"GoldPulse/internal/domain/models"
)

func buyContext() models.NarrativeContext {
	return models.NarrativeContext{
		Symbol:   "XAUUSD",
		Interval: "1h",
		Signal: models.GoldSignal{
			Action:     models.ActionBuy,
			Confidence: 72,
			Entry:      2015.5,
			StopLoss:   2008,
			TP1:        2025,
			TP2:        2030,
			TP3:        2035,
		},
		Phase: models.AMDPhase{
			Phase:       models.PhaseAccumulation,
			Bias:        models.BiasBullish,
			Description: "Compressed range near session lows",
		},
	}
}

func TestOfflineSummaryDeterministic(t *testing.T) {
	nc := buyContext()
	if OfflineSummary(nc) != OfflineSummary(nc) {
		t.Fatal("identical contexts must render identical narratives")
	}
}

func TestOfflineSummaryBuy(t *testing.T) {
	got := OfflineSummary(buyContext())
	for _, want := range []string{"XAUUSD", "BUY at 2015.50", "confidence 72", "ACCUMULATION", "BULLISH", "Stop 2008.00"} {
		if !strings.Contains(got, want) {
			t.Fatalf("narrative missing %q: %s", want, got)
		}
	}
}

func TestOfflineSummaryWait(t *testing.T) {
	nc := buyContext()
	nc.Signal.Action = models.ActionWait
	nc.News = models.NewsRisk{Avoid: true, Reason: "CPI print"}
	got := OfflineSummary(nc)
	if !strings.Contains(got, "no trade") {
		t.Fatalf("WAIT narrative should say no trade: %s", got)
	}
	if !strings.Contains(got, "CPI print") {
		t.Fatalf("news reason should appear: %s", got)
	}
	if strings.Contains(got, "Stop ") {
		t.Fatalf("WAIT narrative must not quote a ladder: %s", got)
	}
}
