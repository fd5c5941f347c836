package analysis

import (
	"strings"
	"testing"

	"GoldPulse/internal/domain/models"
)

func primaryBuy70() models.GoldSignal {
	return models.GoldSignal{
		Action:     models.ActionBuy,
		Confidence: 70,
		Entry:      2000,
		EntryZone:  [2]float64{1998, 2002},
		StopLoss:   1994,
		TP1:        2008,
		TP2:        2012,
		TP3:        2016,
	}
}

func TestFuseAgreement(t *testing.T) {
	cfg := DefaultConfig()
	s := PASignal{Action: models.ActionBuy, Confidence: 70, Entry: 2002, Stop: 1996, TP1: 2010, TP2: 2014}
	got := Fuse(cfg, primaryBuy70(), s)

	if got.Action != models.ActionBuy {
		t.Fatalf("agreement must keep the direction, got %s", got.Action)
	}
	// Equal confidences fuse to the same value regardless of weighting.
	if !approxEq(got.Confidence, 70) {
		t.Fatalf("70/70 agreement must fuse to 70, got %.2f", got.Confidence)
	}
	if !approxEq(got.Entry, 2001) || !approxEq(got.StopLoss, 1995) || !approxEq(got.TP1, 2009) {
		t.Fatalf("levels should average: entry %.2f stop %.2f tp1 %.2f", got.Entry, got.StopLoss, got.TP1)
	}
	if !approxEq(got.EntryZone[0], 1999) || !approxEq(got.EntryZone[1], 2003) {
		t.Fatalf("entry zone should recenter, got %v", got.EntryZone)
	}
	if !approxEq(got.RR1, (2009.0-2001)/(2001-1995)) {
		t.Fatalf("risk:reward should be recomputed, got %.3f", got.RR1)
	}
	found := false
	for _, c := range got.Confluences {
		if strings.Contains(c, "agree on BUY") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing agreement note: %v", got.Confluences)
	}
}

func TestFuseConflict(t *testing.T) {
	cfg := DefaultConfig()
	s := PASignal{Action: models.ActionSell, Confidence: 70, Entry: 2000, Stop: 2006, TP1: 1992}
	got := Fuse(cfg, primaryBuy70(), s)

	if got.Action != models.ActionWait {
		t.Fatalf("conflict must suppress to WAIT, got %s", got.Action)
	}
	if got.Confidence > 35 {
		t.Fatalf("conflict confidence must not exceed half the weaker side, got %.2f", got.Confidence)
	}
	found := false
	for _, c := range got.Confluences {
		if strings.Contains(c, "Conflict") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing conflict note: %v", got.Confluences)
	}
}

func TestFusePrimaryAbstains(t *testing.T) {
	cfg := DefaultConfig()
	p := models.GoldSignal{Action: models.ActionWait, Confidence: 0, EntryZone: [2]float64{1999, 2001}}
	s := PASignal{Action: models.ActionBuy, Confidence: 60, Entry: 2000, Stop: 1994, TP1: 2008, TP2: 2014}
	got := Fuse(cfg, p, s)

	if got.Action != models.ActionBuy {
		t.Fatalf("price action should be adopted, got %s", got.Action)
	}
	if !approxEq(got.Confidence, 48) {
		t.Fatalf("adoption must discount to 48, got %.2f", got.Confidence)
	}
	if !approxEq(got.TP3, 2020) {
		t.Fatalf("third target should extend the ladder spacing, got %.2f", got.TP3)
	}
	if got.StopLoss != 1994 || got.Entry != 2000 {
		t.Fatalf("adopted levels should come from price action: %+v", got)
	}
}

func TestFuseSecondaryAbstains(t *testing.T) {
	cfg := DefaultConfig()
	s := PASignal{Action: models.ActionWait, Confidence: 10}
	got := Fuse(cfg, primaryBuy70(), s)

	if got.Action != models.ActionBuy {
		t.Fatalf("primary should survive, got %s", got.Action)
	}
	if !approxEq(got.Confidence, 56) {
		t.Fatalf("primary must be discounted to 56, got %.2f", got.Confidence)
	}
	if got.Entry != 2000 || got.StopLoss != 1994 {
		t.Fatalf("primary levels should be untouched: %+v", got)
	}
}

func TestFuseBothWait(t *testing.T) {
	cfg := DefaultConfig()
	p := models.GoldSignal{Action: models.ActionWait, Confidence: 0}
	s := PASignal{Action: models.ActionWait, Confidence: 0}
	got := Fuse(cfg, p, s)
	if got.Action != models.ActionWait || got.Confidence != 0 {
		t.Fatalf("double WAIT must stay WAIT at zero, got %+v", got)
	}
}
