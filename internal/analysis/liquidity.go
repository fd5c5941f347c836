package analysis

import (
	"fmt"
	"sort"

	"GoldPulse/internal/domain/models"
)

// DetectLiquidityPools tags swing extremes as resting stop clusters:
// buy stops under swing lows, sell stops over swing highs. Strength decays
// with recency rank; the latest bar crossing a pool price marks it swept.
func DetectLiquidityPools(cfg Config, cs []models.Candle) []models.LiquidityPool {
	if len(cs) < cfg.LevelMinBars || averageRange(cs) < eps {
		return nil
	}
	last := cs[len(cs)-1]

	var out []models.LiquidityPool
	for _, i := range swingHighIdx(cs, cfg.SwingLookback) {
		out = append(out, models.LiquidityPool{
			ID:    fmt.Sprintf("lp-%d", i),
			Kind:  models.PoolSellStops,
			Price: cs[i].High,
			Index: i,
			Swept: last.High >= cs[i].High,
		})
	}
	for _, i := range swingLowIdx(cs, cfg.SwingLookback) {
		out = append(out, models.LiquidityPool{
			ID:    fmt.Sprintf("lq-%d", i),
			Kind:  models.PoolBuyStops,
			Price: cs[i].Low,
			Index: i,
			Swept: last.Low <= cs[i].Low,
		})
	}
	if len(out) == 0 {
		return nil
	}

	sort.Slice(out, func(a, b int) bool { return out[a].Index > out[b].Index })
	if len(out) > cfg.PoolKeep {
		out = out[:cfg.PoolKeep]
	}
	for rank := range out {
		s := cfg.PoolBase - float64(rank)*cfg.PoolDecay
		if s < 10 {
			s = 10
		}
		out[rank].Strength = s
	}
	return out
}
