package analysis

import (
	"fmt"

	"GoldPulse/internal/domain/models"
)

// PrimaryInput bundles everything the indicator-driven builder reads.
type PrimaryInput struct {
	Candles    []models.Candle
	Indicators models.IndicatorSet
	Phase      models.AMDPhase
	Zones      models.ZoneSet
	Patterns   []models.Pattern
	Charts     []models.ChartPattern
}

// BuildPrimary fuses regime, structural zones and indicator values into the
// first directional signal. The branch that sets the action is final; every
// later check only adds confluence and confidence.
func BuildPrimary(cfg Config, in PrimaryInput) models.GoldSignal {
	price := in.Candles[len(in.Candles)-1].Close
	rsi := in.Indicators.RSI
	hist := in.Indicators.MACD.Histogram
	atr := in.Indicators.ATR

	action := models.ActionWait
	confidence := 0.0
	var confluences []string

	switch {
	case rsi < cfg.OversoldRSI:
		action = models.ActionBuy
		confidence = cfg.BaseExtreme - 5
		if rsi < cfg.OversoldRSI-5 {
			confidence = cfg.BaseExtreme
		}
		confluences = append(confluences, fmt.Sprintf("RSI oversold at %.1f", rsi))
	case rsi > cfg.OverboughtRSI:
		action = models.ActionSell
		confidence = cfg.BaseExtreme - 5
		if rsi > cfg.OverboughtRSI+5 {
			confidence = cfg.BaseExtreme
		}
		confluences = append(confluences, fmt.Sprintf("RSI overbought at %.1f", rsi))
	case rsi <= cfg.LeanBuyRSI && hist > 0:
		action = models.ActionBuy
		confidence = cfg.BaseMomentum
		confluences = append(confluences, fmt.Sprintf("RSI %.1f with positive MACD momentum", rsi))
	case rsi >= cfg.LeanSellRSI && hist < 0:
		action = models.ActionSell
		confidence = cfg.BaseMomentum
		confluences = append(confluences, fmt.Sprintf("RSI %.1f with negative MACD momentum", rsi))
	}

	if action == models.ActionWait && in.Phase.Bias != models.BiasNeutral {
		if in.Phase.Bias == models.BiasBullish && rsi < 50 {
			action = models.ActionBuy
			confidence = cfg.BaseRegime
			confluences = append(confluences, fmt.Sprintf("%s phase bias with RSI below 50", in.Phase.Phase))
		}
		if in.Phase.Bias == models.BiasBearish && rsi > 50 {
			action = models.ActionSell
			confidence = cfg.BaseRegime
			confluences = append(confluences, fmt.Sprintf("%s phase bias with RSI above 50", in.Phase.Phase))
		}
	}

	if action != models.ActionWait {
		confidence, confluences = addZoneConfluence(cfg, action, in, confidence, confluences)
	} else {
		confluences = append(confluences, "No directional edge from indicators or regime")
	}

	confidence = clamp(confidence, 0, cfg.ConfidenceCap)

	sig := models.GoldSignal{
		Action:      action,
		Confidence:  confidence,
		Confluences: confluences,
		SessionBias: string(in.Phase.Bias),
	}
	applyLadder(cfg, &sig, price, atr)
	return sig
}

// addZoneConfluence applies the additive scoring of aligned structure.
func addZoneConfluence(cfg Config, action models.Action, in PrimaryInput, confidence float64, confluences []string) (float64, []string) {
	want := models.BiasBullish
	if action == models.ActionSell {
		want = models.BiasBearish
	}

	strongBlocks, blocks := 0, 0
	for _, ob := range in.Zones.OrderBlocks {
		if !ob.Active || ob.Direction != want {
			continue
		}
		blocks++
		if ob.Tier == models.TierStrong {
			strongBlocks++
		}
	}
	switch {
	case strongBlocks > 0:
		confidence += 10
		confluences = append(confluences, fmt.Sprintf("%d strong %s order block(s) in play", strongBlocks, want))
	case blocks > 0:
		confidence += 5
		confluences = append(confluences, fmt.Sprintf("%s order block support", want))
	}

	for _, g := range in.Zones.Gaps {
		if !g.Mitigated && g.Direction == want {
			confidence += 5
			confluences = append(confluences, fmt.Sprintf("Unmitigated %s imbalance gap at %.2f", want, g.Midpoint))
			break
		}
	}

	wantLevel := models.LevelSupport
	if action == models.ActionSell {
		wantLevel = models.LevelResistance
	}
	levels := 0
	for _, lv := range in.Zones.Levels {
		if !lv.Broken && lv.Kind == wantLevel {
			levels++
		}
	}
	if levels > 0 {
		confidence += 5 * float64(levels)
		confluences = append(confluences, fmt.Sprintf("%d intact %s level(s)", levels, wantLevel))
	}

	if in.Phase.Bias == want {
		confidence += minFloat(15, in.Phase.Strength*0.2)
		confluences = append(confluences, fmt.Sprintf("Phase strength %.0f aligned", in.Phase.Strength))
	}

	// Aggregate pattern/zone confluence across all detectors, scaled and
	// capped as one term.
	zoneScore := 10 * float64(blocks+levels)
	for _, g := range in.Zones.Gaps {
		if !g.Mitigated && g.Direction == want {
			zoneScore += 10
		}
	}
	wantPool := models.PoolBuyStops
	if action == models.ActionSell {
		wantPool = models.PoolSellStops
	}
	for _, p := range in.Zones.Pools {
		if p.Kind == wantPool && !p.Swept {
			zoneScore += 10
		}
	}
	for _, p := range in.Patterns {
		if p.Direction != want {
			continue
		}
		if p.Strong {
			zoneScore += 15
		} else {
			zoneScore += 10
		}
	}
	for _, cp := range in.Charts {
		if cp.Direction == want {
			zoneScore += 10
		}
	}
	confidence += minFloat(15, zoneScore*0.3)

	return confidence, confluences
}

// applyLadder sets entry, stop, targets and risk:reward from the ATR
// ladder. WAIT signals get a display-only ladder in the bullish shape.
func applyLadder(cfg Config, sig *models.GoldSignal, price, atr float64) {
	dir := 1.0
	if sig.Action == models.ActionSell {
		dir = -1.0
	}
	sig.Entry = price
	sig.EntryZone = [2]float64{price - cfg.EntryZoneATR*atr, price + cfg.EntryZoneATR*atr}
	sig.StopLoss = price - dir*cfg.StopATR*atr
	sig.TP1 = price + dir*cfg.TP1ATR*atr
	sig.TP2 = price + dir*cfg.TP2ATR*atr
	sig.TP3 = price + dir*cfg.TP3ATR*atr
	sig.RR1, sig.RR2, sig.RR3 = riskRewards(sig.Entry, sig.StopLoss, sig.TP1, sig.TP2, sig.TP3)
	sig.Invalidation = fmt.Sprintf("Close beyond %.2f invalidates the setup", sig.StopLoss)
}

func riskRewards(entry, stop, tp1, tp2, tp3 float64) (float64, float64, float64) {
	risk := entry - stop
	if risk < 0 {
		risk = -risk
	}
	if risk < eps {
		return 0, 0, 0
	}
	abs := func(v float64) float64 {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(tp1-entry) / risk, abs(tp2-entry) / risk, abs(tp3-entry) / risk
}
