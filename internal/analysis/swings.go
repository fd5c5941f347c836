package analysis

import "GoldPulse/internal/domain/models"

// swingHighIdx returns indices whose high is the extreme over a symmetric
// ±lookback window.
func swingHighIdx(cs []models.Candle, lookback int) []int {
	idx := []int{}
	for i := lookback; i < len(cs)-lookback; i++ {
		high := cs[i].High
		isHigh := true
		for j := i - lookback; j <= i+lookback; j++ {
			if j != i && cs[j].High > high {
				isHigh = false
				break
			}
		}
		if isHigh {
			idx = append(idx, i)
		}
	}
	return idx
}

// swingLowIdx is symmetric to swingHighIdx.
func swingLowIdx(cs []models.Candle, lookback int) []int {
	idx := []int{}
	for i := lookback; i < len(cs)-lookback; i++ {
		low := cs[i].Low
		isLow := true
		for j := i - lookback; j <= i+lookback; j++ {
			if j != i && cs[j].Low < low {
				isLow = false
				break
			}
		}
		if isLow {
			idx = append(idx, i)
		}
	}
	return idx
}

func averageRange(cs []models.Candle) float64 {
	if len(cs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range cs {
		sum += c.Range()
	}
	return sum / float64(len(cs))
}
