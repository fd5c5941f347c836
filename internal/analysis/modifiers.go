package analysis

import (
	"fmt"

	"GoldPulse/internal/domain/models"
)

// ModifierContext carries the external risk signals applied after fusion.
type ModifierContext struct {
	Spot        models.SpotInsights
	News        models.NewsRisk
	Fundamental models.NewsBias
}

// ApplyModifiers runs the fixed post-fusion adjustment sequence: spread
// quality, weekly-range position, scheduled-news risk, fundamental bias.
// The order matters — later stages read the confidence left by earlier
// ones — and a WAIT forced here is never raised back to a direction.
func ApplyModifiers(cfg Config, sig models.GoldSignal, mc ModifierContext) models.GoldSignal {
	out := sig
	out.Confluences = append([]string(nil), sig.Confluences...)

	if mc.Spot.SpreadQuality == models.SpreadWide && out.Action != models.ActionWait {
		out.Confidence = maxFloat(cfg.ConfidenceFloor, out.Confidence-10)
		out.Confluences = append(out.Confluences, "Wide spread: confidence reduced")
	}

	pos := mc.Spot.WeeklyRangePct
	switch {
	case out.Action == models.ActionBuy && pos > 80:
		out.Confidence = maxFloat(cfg.ConfidenceFloor, out.Confidence-8)
		out.Confluences = append(out.Confluences,
			fmt.Sprintf("Buying at %.0f%% of the weekly range: confidence reduced", pos))
	case out.Action == models.ActionSell && pos < 20:
		out.Confidence = maxFloat(cfg.ConfidenceFloor, out.Confidence-8)
		out.Confluences = append(out.Confluences,
			fmt.Sprintf("Selling at %.0f%% of the weekly range: confidence reduced", pos))
	case out.Action == models.ActionBuy && pos < 30:
		out.Confidence = minFloat(cfg.ConfidenceCap, out.Confidence+5)
		out.Confluences = append(out.Confluences,
			fmt.Sprintf("Buying low in the weekly range (%.0f%%)", pos))
	case out.Action == models.ActionSell && pos > 70:
		out.Confidence = minFloat(cfg.ConfidenceCap, out.Confidence+5)
		out.Confluences = append(out.Confluences,
			fmt.Sprintf("Selling high in the weekly range (%.0f%%)", pos))
	}

	if mc.News.Avoid && out.Action != models.ActionWait {
		out.Action = models.ActionWait
		out.Confidence = minFloat(out.Confidence, cfg.NewsCap)
		reason := mc.News.Reason
		if reason == "" {
			reason = "scheduled news risk"
		}
		out.Confluences = append(out.Confluences, fmt.Sprintf("News risk: %s — standing aside", reason))
	}

	if out.Action != models.ActionWait {
		agrees := (mc.Fundamental.Bias == models.NewsBiasBullishGold && out.Action == models.ActionBuy) ||
			(mc.Fundamental.Bias == models.NewsBiasBearishGold && out.Action == models.ActionSell)
		conflicts := (mc.Fundamental.Bias == models.NewsBiasBullishGold && out.Action == models.ActionSell) ||
			(mc.Fundamental.Bias == models.NewsBiasBearishGold && out.Action == models.ActionBuy)
		switch {
		case agrees:
			out.Confidence = minFloat(cfg.ConfidenceCap, out.Confidence+10)
			out.Confluences = append(out.Confluences, "Fundamental bias aligned")
		case conflicts:
			out.Confidence = maxFloat(cfg.ConfidenceFloor, out.Confidence-15)
			out.Confluences = append(out.Confluences, "Fundamental bias against the trade")
		}
	}

	return out
}
