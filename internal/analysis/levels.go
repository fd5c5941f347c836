package analysis

import (
	"fmt"
	"sort"

	"GoldPulse/internal/domain/models"
)

type swingPoint struct {
	price  float64
	index  int
	isHigh bool
}

// DetectSRLevels clusters swing-point prices within a fixed dollar
// tolerance into support/resistance levels scored by member count.
func DetectSRLevels(cfg Config, cs []models.Candle) []models.SRLevel {
	if len(cs) < cfg.LevelMinBars || averageRange(cs) < eps {
		return nil
	}
	lastClose := cs[len(cs)-1].Close

	var points []swingPoint
	for _, i := range swingHighIdx(cs, cfg.SwingLookback) {
		points = append(points, swingPoint{price: cs[i].High, index: i, isHigh: true})
	}
	for _, i := range swingLowIdx(cs, cfg.SwingLookback) {
		points = append(points, swingPoint{price: cs[i].Low, index: i, isHigh: false})
	}
	if len(points) == 0 {
		return nil
	}
	sort.Slice(points, func(a, b int) bool { return points[a].price < points[b].price })

	type cluster struct {
		sum       float64
		touches   int
		highVotes int
		lastIndex int
	}
	var clusters []cluster
	for _, p := range points {
		if n := len(clusters); n > 0 {
			c := &clusters[n-1]
			if p.price-c.sum/float64(c.touches) <= cfg.ClusterTol {
				c.sum += p.price
				c.touches++
				if p.isHigh {
					c.highVotes++
				}
				if p.index > c.lastIndex {
					c.lastIndex = p.index
				}
				continue
			}
		}
		nc := cluster{sum: p.price, touches: 1, lastIndex: p.index}
		if p.isHigh {
			nc.highVotes = 1
		}
		clusters = append(clusters, nc)
	}

	// Keep the clusters touched most recently, then report in price order.
	sort.Slice(clusters, func(a, b int) bool { return clusters[a].lastIndex > clusters[b].lastIndex })
	if len(clusters) > cfg.LevelKeep {
		clusters = clusters[:cfg.LevelKeep]
	}
	sort.Slice(clusters, func(a, b int) bool {
		return clusters[a].sum/float64(clusters[a].touches) < clusters[b].sum/float64(clusters[b].touches)
	})

	out := make([]models.SRLevel, 0, len(clusters))
	for _, c := range clusters {
		price := c.sum / float64(c.touches)
		kind := models.LevelSupport
		if 2*c.highVotes > c.touches {
			kind = models.LevelResistance
		}
		broken := (kind == models.LevelResistance && lastClose > price) ||
			(kind == models.LevelSupport && lastClose < price)
		out = append(out, models.SRLevel{
			ID:       fmt.Sprintf("sr-%d", c.lastIndex),
			Kind:     kind,
			Price:    price,
			Touches:  c.touches,
			Strength: minFloat(cfg.StrengthCap, cfg.TouchStrength*float64(c.touches)),
			Broken:   broken,
		})
	}
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
