package analysis

import (
	"testing"

	"GoldPulse/internal/domain/models"
)

func TestBuildSecondaryStrongEngulfing(t *testing.T) {
	cfg := DefaultConfig()
	cs := []models.Candle{
		bar(0, 2000, 2002, 1998, 2001),
		bar(1, 2000, 2002, 1998, 2001),
		bar(2, 2000, 2002, 1998, 2001),
		bar(3, 2000.5, 2001, 1998.5, 1999),
		bar(4, 1998.5, 2003, 1998, 2002.5),
	}
	got := BuildSecondary(cfg, cs, 2002.5, 10)
	if got.Action != models.ActionBuy {
		t.Fatalf("strong engulfing must clear the gate, got %s", got.Action)
	}
	// 80 confidence, strong multiplier 1.5, score-to-confidence 0.6.
	if !approxEq(got.BullScore, 120) {
		t.Fatalf("unexpected bull score %.1f", got.BullScore)
	}
	if !approxEq(got.Confidence, 72) {
		t.Fatalf("unexpected confidence %.2f", got.Confidence)
	}
	if got.Entry != 2002.5 {
		t.Fatalf("entry should be the given price, got %.2f", got.Entry)
	}
	if !approxEq(got.Stop, 2002.5-cfg.PAStopATR*10) || !approxEq(got.TP1, 2002.5+cfg.PATP1ATR*10) {
		t.Fatalf("unexpected ladder stop %.2f tp1 %.2f", got.Stop, got.TP1)
	}
	if got.TP2 <= got.TP1 {
		t.Fatalf("targets out of order: %.2f %.2f", got.TP1, got.TP2)
	}
}

func TestBuildSecondaryQuietTape(t *testing.T) {
	cfg := DefaultConfig()
	got := BuildSecondary(cfg, flatSeries(30, 2000), 2000, 2)
	if got.Action != models.ActionWait {
		t.Fatalf("featureless tape must produce WAIT, got %s", got.Action)
	}
	if got.Confidence != 0 || got.BullScore != 0 || got.BearScore != 0 {
		t.Fatalf("unexpected scores %+v", got)
	}
}

func TestBuildSecondaryRejectionBelowGate(t *testing.T) {
	cfg := DefaultConfig()
	cs := driftSeries(30, 2000)
	// Lower-wick rejection that is not also a hammer or pin.
	cs[29] = bar(29, 2000, 2002.2, 1997.2, 2002)
	got := BuildSecondary(cfg, cs, 2002, 3)
	if got.Action != models.ActionWait {
		t.Fatalf("a lone rejection must stay below the gate, got %s", got.Action)
	}
	if !approxEq(got.BullScore, cfg.PARejectScore) {
		t.Fatalf("unexpected bull score %.1f", got.BullScore)
	}
	if !approxEq(got.Confidence, cfg.PARejectScore*cfg.PAConfScale) {
		t.Fatalf("unexpected confidence %.2f", got.Confidence)
	}
	found := false
	for _, n := range got.Notes {
		if n == "Lower-wick rejection on latest bar" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing rejection note: %v", got.Notes)
	}
}

func TestBuildSecondaryEmptyInput(t *testing.T) {
	cfg := DefaultConfig()
	got := BuildSecondary(cfg, nil, 0, 0)
	if got.Action != models.ActionWait || got.Confidence != 0 {
		t.Fatalf("empty input must produce a zero WAIT, got %+v", got)
	}
}
