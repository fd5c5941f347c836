package analysis

import (
	"fmt"

	"GoldPulse/internal/domain/models"
)

// Fuse merges the primary and price-action signals. Agreement reinforces
// confidence with the primary weighted heavier; conflict suppresses to
// WAIT; a single abstain adopts the other side at a discount. The 0.6/0.4
// weighting and the 0.5/0.8 discounts encode the system's risk posture and
// are deliberate.
func Fuse(cfg Config, p models.GoldSignal, s PASignal) models.GoldSignal {
	out := p
	out.Confluences = append([]string(nil), p.Confluences...)

	switch {
	case p.Action == s.Action && p.Action != models.ActionWait:
		w := cfg.FusePrimaryWeight
		out.Confidence = minFloat(cfg.ConfidenceCap, w*p.Confidence+(1-w)*s.Confidence)
		out.Entry = (p.Entry + s.Entry) / 2
		out.StopLoss = (p.StopLoss + s.Stop) / 2
		out.TP1 = (p.TP1 + s.TP1) / 2
		half := (p.EntryZone[1] - p.EntryZone[0]) / 2
		out.EntryZone = [2]float64{out.Entry - half, out.Entry + half}
		out.RR1, out.RR2, out.RR3 = riskRewards(out.Entry, out.StopLoss, out.TP1, out.TP2, out.TP3)
		out.Invalidation = fmt.Sprintf("Close beyond %.2f invalidates the setup", out.StopLoss)
		out.Confluences = append(out.Confluences,
			fmt.Sprintf("Primary and price-action signals agree on %s", p.Action))

	case p.Action != s.Action && p.Action != models.ActionWait && s.Action != models.ActionWait:
		out.Action = models.ActionWait
		out.Confidence = cfg.FuseConflictMult * minFloat(p.Confidence, s.Confidence)
		out.Confluences = append(out.Confluences,
			fmt.Sprintf("Conflict: primary says %s, price action says %s — standing aside", p.Action, s.Action))

	case p.Action == models.ActionWait && s.Action != models.ActionWait:
		out.Action = s.Action
		out.Confidence = cfg.FuseAbstainMult * s.Confidence
		out.Entry = s.Entry
		out.StopLoss = s.Stop
		out.TP1 = s.TP1
		out.TP2 = s.TP2
		out.TP3 = s.TP2 + (s.TP2 - s.TP1)
		if s.Action == models.ActionSell {
			out.TP3 = s.TP2 - (s.TP1 - s.TP2)
		}
		half := (p.EntryZone[1] - p.EntryZone[0]) / 2
		out.EntryZone = [2]float64{out.Entry - half, out.Entry + half}
		out.RR1, out.RR2, out.RR3 = riskRewards(out.Entry, out.StopLoss, out.TP1, out.TP2, out.TP3)
		out.Invalidation = fmt.Sprintf("Close beyond %.2f invalidates the setup", out.StopLoss)
		out.Confluences = append(out.Confluences,
			fmt.Sprintf("Indicators showed consolidation; adopting %s at a discount", s.Describe()))

	case s.Action == models.ActionWait && p.Action != models.ActionWait:
		out.Confidence = cfg.FuseAbstainMult * p.Confidence
		out.Confluences = append(out.Confluences,
			"Price action showed consolidation; primary signal discounted")

	default:
		out.Confluences = append(out.Confluences,
			"Both signal engines agree: no tradeable setup")
	}

	out.Confidence = clamp(out.Confidence, 0, cfg.ConfidenceCap)
	return out
}
