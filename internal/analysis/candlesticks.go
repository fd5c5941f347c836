package analysis

import (
	"fmt"

	"GoldPulse/internal/domain/models"
)

// DetectCandlePatterns slides each sub-detector across the most recent
// candleScanBars positions. Every sub-detector is a pure body/wick ratio
// test emitting at most one observation per position.
func DetectCandlePatterns(cfg Config, cs []models.Candle) []models.Pattern {
	if len(cs) < 3 {
		return nil
	}
	start := len(cs) - cfg.CandleScanBars
	if start < 2 {
		start = 2
	}

	var out []models.Pattern
	for i := start; i < len(cs); i++ {
		cur, prev, prev2 := cs[i], cs[i-1], cs[i-2]

		if p, ok := engulfing(cur, prev, i); ok {
			out = append(out, p)
		}
		if p, ok := hammer(cur, i); ok {
			out = append(out, p)
		}
		if p, ok := shootingStar(cur, i); ok {
			out = append(out, p)
		}
		if p, ok := doji(cur, i); ok {
			out = append(out, p)
		}
		if p, ok := star(cur, prev, prev2, i); ok {
			out = append(out, p)
		}
		if p, ok := pinBar(cur, i); ok {
			out = append(out, p)
		}
	}
	return out
}

func engulfing(cur, prev models.Candle, i int) (models.Pattern, bool) {
	if cur.Body() < eps || prev.Body() < eps {
		return models.Pattern{}, false
	}
	if prev.Bearish() && cur.Bullish() &&
		cur.BodyBottom() <= prev.BodyBottom() && cur.BodyTop() >= prev.BodyTop() {
		return models.Pattern{
			Name:        "Bullish Engulfing",
			Direction:   models.BiasBullish,
			Confidence:  80,
			Index:       i,
			Strong:      true,
			Description: "Bullish body fully engulfs prior bearish body",
		}, true
	}
	if prev.Bullish() && cur.Bearish() &&
		cur.BodyBottom() <= prev.BodyBottom() && cur.BodyTop() >= prev.BodyTop() {
		return models.Pattern{
			Name:        "Bearish Engulfing",
			Direction:   models.BiasBearish,
			Confidence:  80,
			Index:       i,
			Strong:      true,
			Description: "Bearish body fully engulfs prior bullish body",
		}, true
	}
	return models.Pattern{}, false
}

func hammer(c models.Candle, i int) (models.Pattern, bool) {
	r := c.Range()
	if r < eps {
		return models.Pattern{}, false
	}
	if c.LowerWick() > 2*c.Body() && c.UpperWick() < 0.1*r {
		return models.Pattern{
			Name:        "Hammer",
			Direction:   models.BiasBullish,
			Confidence:  70,
			Index:       i,
			Description: "Long lower wick rejecting the lows",
		}, true
	}
	return models.Pattern{}, false
}

func shootingStar(c models.Candle, i int) (models.Pattern, bool) {
	r := c.Range()
	if r < eps {
		return models.Pattern{}, false
	}
	if c.UpperWick() > 2*c.Body() && c.LowerWick() < 0.1*r {
		return models.Pattern{
			Name:        "Shooting Star",
			Direction:   models.BiasBearish,
			Confidence:  70,
			Index:       i,
			Description: "Long upper wick rejecting the highs",
		}, true
	}
	return models.Pattern{}, false
}

func doji(c models.Candle, i int) (models.Pattern, bool) {
	r := c.Range()
	if r < eps {
		return models.Pattern{}, false
	}
	if c.Body() < 0.1*r {
		return models.Pattern{
			Name:        "Doji",
			Direction:   models.BiasNeutral,
			Confidence:  50,
			Index:       i,
			Description: "Indecision bar: open and close nearly equal",
		}, true
	}
	return models.Pattern{}, false
}

// star detects morning and evening stars: long body, small middle body,
// opposite long body closing beyond the first body's midpoint.
func star(cur, mid, first models.Candle, i int) (models.Pattern, bool) {
	fr, mr, cr := first.Range(), mid.Range(), cur.Range()
	if fr < eps || mr < eps || cr < eps {
		return models.Pattern{}, false
	}
	longFirst := first.Body() > 0.6*fr
	smallMid := mid.Body() < 0.3*mr
	longCur := cur.Body() > 0.6*cr
	if !longFirst || !smallMid || !longCur {
		return models.Pattern{}, false
	}
	firstMid := (first.Open + first.Close) / 2
	if first.Bearish() && cur.Bullish() && cur.Close > firstMid {
		return models.Pattern{
			Name:        "Morning Star",
			Direction:   models.BiasBullish,
			Confidence:  85,
			Index:       i,
			Strong:      true,
			Description: "Three-bar reversal from the lows",
		}, true
	}
	if first.Bullish() && cur.Bearish() && cur.Close < firstMid {
		return models.Pattern{
			Name:        "Evening Star",
			Direction:   models.BiasBearish,
			Confidence:  85,
			Index:       i,
			Strong:      true,
			Description: "Three-bar reversal from the highs",
		}, true
	}
	return models.Pattern{}, false
}

func pinBar(c models.Candle, i int) (models.Pattern, bool) {
	r := c.Range()
	if r < eps {
		return models.Pattern{}, false
	}
	if c.LowerWick() > 0.66*r {
		return models.Pattern{
			Name:        "Bullish Pin Bar",
			Direction:   models.BiasBullish,
			Confidence:  75,
			Index:       i,
			Description: fmt.Sprintf("Lower wick is %.0f%% of the bar", 100*c.LowerWick()/r),
		}, true
	}
	if c.UpperWick() > 0.66*r {
		return models.Pattern{
			Name:        "Bearish Pin Bar",
			Direction:   models.BiasBearish,
			Confidence:  75,
			Index:       i,
			Description: fmt.Sprintf("Upper wick is %.0f%% of the bar", 100*c.UpperWick()/r),
		}, true
	}
	return models.Pattern{}, false
}
