package analysis

import (
	"fmt"

	"GoldPulse/internal/domain/models"
)

// DetectOrderBlocks finds runs of same-direction setup bars that were
// answered by an opposite impulse bar. The setup bodies mark the zone; the
// impulse/setup body ratio grades it. Windows below the minimum return an
// empty result.
func DetectOrderBlocks(cfg Config, cs []models.Candle) []models.OrderBlock {
	if len(cs) < cfg.BlockMinBars {
		return nil
	}
	lastClose := cs[len(cs)-1].Close

	var out []models.OrderBlock
	for i := cfg.BlockSetupRun; i < len(cs); i++ {
		impulse := cs[i]
		if impulse.Body() < eps {
			continue
		}
		impulseBull := impulse.Bullish()

		// Count the opposite-direction run directly before the impulse.
		run := 0
		for j := i - 1; j >= 0; j-- {
			c := cs[j]
			if (impulseBull && c.Bearish()) || (!impulseBull && c.Bullish()) {
				run++
				continue
			}
			break
		}
		if run < cfg.BlockSetupRun {
			continue
		}

		setup := cs[i-run : i]
		meanBody := 0.0
		top := setup[0].BodyTop()
		bottom := setup[0].BodyBottom()
		for _, c := range setup {
			meanBody += c.Body()
			if c.BodyTop() > top {
				top = c.BodyTop()
			}
			if c.BodyBottom() < bottom {
				bottom = c.BodyBottom()
			}
		}
		meanBody /= float64(run)
		if meanBody < eps {
			continue
		}
		ratio := impulse.Body() / meanBody
		if ratio < cfg.BlockImpulseRatio {
			continue
		}

		direction := models.BiasBearish
		if impulseBull {
			direction = models.BiasBullish
		}
		tier := models.TierWeak
		switch {
		case ratio >= cfg.BlockStrongRatio:
			tier = models.TierStrong
		case ratio >= cfg.BlockModerateRatio:
			tier = models.TierModerate
		}

		// A close fully through the zone invalidates it.
		active := true
		if impulseBull && lastClose < bottom {
			active = false
		}
		if !impulseBull && lastClose > top {
			active = false
		}

		out = append(out, models.OrderBlock{
			ID:        fmt.Sprintf("ob-%d", i),
			Direction: direction,
			Top:       top,
			Bottom:    bottom,
			Tier:      tier,
			Ratio:     ratio,
			Index:     i,
			Active:    active,
		})
	}

	if len(out) > cfg.BlockKeep {
		out = out[len(out)-cfg.BlockKeep:]
	}
	return out
}
