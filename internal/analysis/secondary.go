package analysis

import (
	"fmt"

	"GoldPulse/internal/domain/models"
)

// PASignal is the price-action builder's output: an independently computed
// directional signal derived purely from pattern scores and wick rejection.
type PASignal struct {
	Action     models.Action
	Confidence float64
	Entry      float64
	Stop       float64
	TP1        float64
	TP2        float64
	BullScore  float64
	BearScore  float64
	Notes      []string
}

// BuildSecondary scores candlestick patterns on the last three bars, chart
// patterns on the full window, and the latest bar's wick rejection, then
// converts the dominant score into a directional call.
func BuildSecondary(cfg Config, cs []models.Candle, price, atr float64) PASignal {
	out := PASignal{Action: models.ActionWait}

	var bull, bear float64
	var notes []string

	if len(cs) > 0 {
		cutoff := len(cs) - 3
		for _, p := range DetectCandlePatterns(cfg, cs) {
			if p.Index < cutoff {
				continue
			}
			w := p.Confidence
			if p.Strong {
				w *= cfg.PAStrongMult
			}
			switch p.Direction {
			case models.BiasBullish:
				bull += w
				notes = append(notes, p.Name)
			case models.BiasBearish:
				bear += w
				notes = append(notes, p.Name)
			}
		}
		for _, p := range DetectChartPatterns(cfg, cs) {
			switch p.Direction {
			case models.BiasBullish:
				bull += p.Confidence
				notes = append(notes, p.Name)
			case models.BiasBearish:
				bear += p.Confidence
				notes = append(notes, p.Name)
			}
		}
		if rej, dir := wickRejection(cs[len(cs)-1]); rej {
			if dir == models.BiasBullish {
				bull += cfg.PARejectScore
				notes = append(notes, "Lower-wick rejection on latest bar")
			} else {
				bear += cfg.PARejectScore
				notes = append(notes, "Upper-wick rejection on latest bar")
			}
		}
	}

	out.BullScore = bull
	out.BearScore = bear
	out.Notes = notes

	switch {
	case bull > bear && bull > cfg.PAScoreGate:
		out.Action = models.ActionBuy
		out.Confidence = clamp(bull*cfg.PAConfScale, 0, cfg.ConfidenceCap)
	case bear > bull && bear > cfg.PAScoreGate:
		out.Action = models.ActionSell
		out.Confidence = clamp(bear*cfg.PAConfScale, 0, cfg.ConfidenceCap)
	default:
		out.Confidence = clamp(maxFloat(bull, bear)*cfg.PAConfScale, 0, cfg.ConfidenceCap)
	}

	dir := 1.0
	if out.Action == models.ActionSell {
		dir = -1.0
	}
	out.Entry = price
	out.Stop = price - dir*cfg.PAStopATR*atr
	out.TP1 = price + dir*cfg.PATP1ATR*atr
	out.TP2 = price + dir*cfg.PATP2ATR*atr
	return out
}

// wickRejection classifies the latest bar: one wick above half the range
// while the opposite wick stays under a fifth.
func wickRejection(c models.Candle) (bool, models.Bias) {
	r := c.Range()
	if r < eps {
		return false, models.BiasNeutral
	}
	upper := c.UpperWick() / r
	lower := c.LowerWick() / r
	if upper > 0.5 && lower < 0.2 {
		return true, models.BiasBearish
	}
	if lower > 0.5 && upper < 0.2 {
		return true, models.BiasBullish
	}
	return false, models.BiasNeutral
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Describe renders a short summary for confluence notes.
func (s PASignal) Describe() string {
	return fmt.Sprintf("price action %s (bull %.0f / bear %.0f)", s.Action, s.BullScore, s.BearScore)
}
