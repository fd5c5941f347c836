package analysis

import (
	"fmt"

	talib "github.com/markcheno/go-talib"

	"GoldPulse/internal/domain/models"
)

const eps = 1e-9

// DetectPhase classifies the recent window into an AMD phase with a
// directional bias. Windows shorter than the session length degrade to a
// neutral TRANSITION, never an error.
func DetectPhase(cfg Config, cs []models.Candle) models.AMDPhase {
	if len(cs) < cfg.SessionBars {
		return models.AMDPhase{
			Phase:       models.PhaseTransition,
			Bias:        models.BiasNeutral,
			Strength:    cfg.StrengthUndefined,
			Description: "Insufficient data for phase classification",
		}
	}

	session := cs[len(cs)-cfg.SessionBars:]
	recent := cs
	if len(cs) > cfg.RecentBars {
		recent = cs[len(cs)-cfg.RecentBars:]
	}

	sessionHigh, sessionLow := windowExtremes(session)
	recentHigh, recentLow := windowExtremes(recent)
	lastClose := cs[len(cs)-1].Close

	sessionRange := sessionHigh - sessionLow
	recentRange := recentHigh - recentLow

	pricePosition := 0.5
	if sessionRange > eps {
		pricePosition = (lastClose - sessionLow) / sessionRange
	}
	rangeExpansion := 1.0
	if recentRange > eps {
		rangeExpansion = sessionRange / recentRange
	}

	out := models.AMDPhase{
		SessionHigh: sessionHigh,
		SessionLow:  sessionLow,
	}

	// First match wins: range compression outranks the spike and decline
	// checks, so a tight session near the lows is accumulation even when
	// it drifts lower bar over bar.
	switch {
	case pricePosition < cfg.AccumulationPos && rangeExpansion < cfg.CompressionRatio:
		out.Phase = models.PhaseAccumulation
		out.Strength = cfg.StrengthRange
		out.Description = fmt.Sprintf("Compressed range near session lows (position %.0f%%)", pricePosition*100)
	case pricePosition > cfg.DistributionPos && rangeExpansion < cfg.CompressionRatio:
		out.Phase = models.PhaseDistribution
		out.Strength = cfg.StrengthRange
		out.Description = fmt.Sprintf("Compressed range near session highs (position %.0f%%)", pricePosition*100)
	case wickSpikeReversal(cfg, cs, session):
		out.Phase = models.PhaseManipulation
		out.Strength = cfg.StrengthSpike
		out.Description = "Wick spike followed by reversal: likely stop hunt"
	case sustainedDecline(cfg, session):
		out.Phase = models.PhaseDecline
		out.Strength = cfg.StrengthDecline
		out.Description = "Sustained lower highs and lower lows"
	default:
		out.Phase = models.PhaseTransition
		out.Strength = cfg.StrengthUndefined
		out.Description = "No dominant structure; phase transition"
	}

	out.Bias = resolveBias(cfg, cs, pricePosition)
	return out
}

func windowExtremes(cs []models.Candle) (high, low float64) {
	high = cs[0].High
	low = cs[0].Low
	for _, c := range cs[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}

// wickSpikeReversal looks for an outsized wick in the last few bars whose
// extreme was rejected by subsequent closes.
func wickSpikeReversal(cfg Config, cs, session []models.Candle) bool {
	avg := averageRange(session)
	if avg < eps {
		return false
	}
	start := len(cs) - cfg.SpikeWindow
	if start < 0 {
		start = 0
	}
	lastClose := cs[len(cs)-1].Close
	for i := start; i < len(cs)-1; i++ {
		c := cs[i]
		r := c.Range()
		if r < eps || r < cfg.SpikeRangeRatio*avg {
			continue
		}
		if c.UpperWick() >= cfg.SpikeWickRatio*r && lastClose < c.BodyBottom() {
			return true
		}
		if c.LowerWick() >= cfg.SpikeWickRatio*r && lastClose > c.BodyTop() {
			return true
		}
	}
	return false
}

// sustainedDecline counts lower-high/lower-low transitions across the
// session window.
func sustainedDecline(cfg Config, session []models.Candle) bool {
	if len(session) < 2 {
		return false
	}
	down := 0
	for i := 1; i < len(session); i++ {
		if session[i].High < session[i-1].High && session[i].Low < session[i-1].Low {
			down++
		}
	}
	return float64(down) > cfg.DeclineRatio*float64(len(session)-1)
}

// resolveBias combines range position with EMA ordering. The two checks
// agree, one abstains, or the bias is neutral.
func resolveBias(cfg Config, cs []models.Candle, pricePosition float64) models.Bias {
	posBias := models.BiasNeutral
	if pricePosition > cfg.BiasBearPos {
		posBias = models.BiasBearish
	} else if pricePosition < cfg.BiasBullPos {
		posBias = models.BiasBullish
	}

	emaBias := models.BiasNeutral
	if len(cs) >= cfg.EMASlow {
		closes := make([]float64, len(cs))
		for i, c := range cs {
			closes[i] = c.Close
		}
		fast := talib.Ema(closes, cfg.EMAFast)
		slow := talib.Ema(closes, cfg.EMASlow)
		diff := fast[len(fast)-1] - slow[len(slow)-1]
		if diff > eps {
			emaBias = models.BiasBullish
		} else if diff < -eps {
			emaBias = models.BiasBearish
		}
	}

	switch {
	case posBias == emaBias:
		return posBias
	case emaBias == models.BiasNeutral:
		return posBias
	case posBias == models.BiasNeutral:
		return emaBias
	default:
		return models.BiasNeutral
	}
}
