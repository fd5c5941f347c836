package analysis

import (
	"fmt"
	"math"

	"GoldPulse/internal/domain/models"
)

// DetectChartPatterns tests the trailing window for range contraction
// (triangle), directional convergence (wedge) and pole-then-consolidation
// structure (flag). Each detection carries a breakout level and a
// measured-move target.
func DetectChartPatterns(cfg Config, cs []models.Candle) []models.ChartPattern {
	if len(cs) < cfg.ChartMinBars {
		return nil
	}
	window := cs[len(cs)-cfg.ChartMinBars:]
	price := cs[len(cs)-1].Close

	var out []models.ChartPattern
	if p, ok := triangle(cfg, window, price); ok {
		out = append(out, p)
	}
	if p, ok := wedge(cfg, window, price); ok {
		out = append(out, p)
	}
	if p, ok := flag(cfg, cs, price); ok {
		out = append(out, p)
	}
	return out
}

func halfRanges(window []models.Candle) (first, second float64, secondHigh, secondLow float64) {
	half := len(window) / 2
	fh, fl := windowExtremes(window[:half])
	sh, sl := windowExtremes(window[half:])
	return fh - fl, sh - sl, sh, sl
}

func closeTrend(window []models.Candle) float64 {
	return window[len(window)-1].Close - window[0].Close
}

func triangle(cfg Config, window []models.Candle, price float64) (models.ChartPattern, bool) {
	first, second, secondHigh, secondLow := halfRanges(window)
	if first < eps || second >= cfg.TriangleRatio*first {
		return models.ChartPattern{}, false
	}
	dir := models.BiasBullish
	breakout := secondHigh
	target := price + first
	if closeTrend(window) < 0 {
		dir = models.BiasBearish
		breakout = secondLow
		target = price - first
	}
	return models.ChartPattern{
		Name:        "Triangle",
		Direction:   dir,
		Confidence:  60,
		Breakout:    breakout,
		Target:      target,
		Description: fmt.Sprintf("Range contracted to %.0f%% of the prior half", 100*second/first),
	}, true
}

// wedge is a tighter contraction tied to a directional drift; it resolves
// against the drift.
func wedge(cfg Config, window []models.Candle, price float64) (models.ChartPattern, bool) {
	first, second, secondHigh, secondLow := halfRanges(window)
	if first < eps || second >= cfg.WedgeRatio*first {
		return models.ChartPattern{}, false
	}
	trend := closeTrend(window)
	if math.Abs(trend) < eps {
		return models.ChartPattern{}, false
	}
	if trend > 0 {
		return models.ChartPattern{
			Name:        "Rising Wedge",
			Direction:   models.BiasBearish,
			Confidence:  65,
			Breakout:    secondLow,
			Target:      price - first,
			Description: "Converging rise losing momentum",
		}, true
	}
	return models.ChartPattern{
		Name:        "Falling Wedge",
		Direction:   models.BiasBullish,
		Confidence:  65,
		Breakout:    secondHigh,
		Target:      price + first,
		Description: "Converging decline losing momentum",
	}, true
}

// flag requires a strong directional pole followed by a consolidation whose
// range stays under a fraction of the pole's magnitude.
func flag(cfg Config, cs []models.Candle, price float64) (models.ChartPattern, bool) {
	n := len(cs)
	if n < 2*cfg.FlagPoleBars+1 {
		return models.ChartPattern{}, false
	}
	poleStart := cs[n-1-2*cfg.FlagPoleBars].Close
	poleEnd := cs[n-1-cfg.FlagPoleBars].Close
	pole := poleEnd - poleStart
	mag := math.Abs(pole)
	if mag < eps {
		return models.ChartPattern{}, false
	}
	consHigh, consLow := windowExtremes(cs[n-cfg.FlagPoleBars:])
	if consHigh-consLow >= cfg.FlagRatio*mag {
		return models.ChartPattern{}, false
	}
	if pole > 0 {
		return models.ChartPattern{
			Name:        "Bull Flag",
			Direction:   models.BiasBullish,
			Confidence:  75,
			Breakout:    consHigh,
			Target:      price + mag,
			Description: "Tight consolidation after a strong advance",
		}, true
	}
	return models.ChartPattern{
		Name:        "Bear Flag",
		Direction:   models.BiasBearish,
		Confidence:  75,
		Breakout:    consLow,
		Target:      price - mag,
		Description: "Tight consolidation after a strong decline",
	}, true
}
