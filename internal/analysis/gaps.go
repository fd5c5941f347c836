package analysis

import (
	"fmt"

	"GoldPulse/internal/domain/models"
)

// DetectImbalanceGaps finds three-bar price imbalances. A gap is mitigated
// once any later bar's wick crosses its midpoint; detection over a frozen
// window is idempotent.
func DetectImbalanceGaps(cfg Config, cs []models.Candle) []models.FairValueGap {
	if len(cs) < cfg.GapMinBars {
		return nil
	}

	var out []models.FairValueGap
	for i := 0; i+2 < len(cs); i++ {
		first := cs[i]
		third := cs[i+2]

		var g models.FairValueGap
		switch {
		case first.High < third.Low:
			g = models.FairValueGap{
				Direction: models.BiasBullish,
				Top:       third.Low,
				Bottom:    first.High,
			}
		case first.Low > third.High:
			g = models.FairValueGap{
				Direction: models.BiasBearish,
				Top:       first.Low,
				Bottom:    third.High,
			}
		default:
			continue
		}

		g.ID = fmt.Sprintf("fvg-%d", i+1)
		g.Index = i + 1
		g.Midpoint = (g.Top + g.Bottom) / 2

		for k := i + 3; k < len(cs); k++ {
			if g.Direction == models.BiasBullish && cs[k].Low <= g.Midpoint {
				g.Mitigated = true
				break
			}
			if g.Direction == models.BiasBearish && cs[k].High >= g.Midpoint {
				g.Mitigated = true
				break
			}
		}

		out = append(out, g)
	}

	if len(out) > cfg.GapKeep {
		out = out[len(out)-cfg.GapKeep:]
	}
	return out
}
