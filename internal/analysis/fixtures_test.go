package analysis

import (
	"math"

	"GoldPulse/internal/domain/models"
)

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// bar builds one candle with an hourly timestamp derived from the index.
func bar(i int, o, h, l, c float64) models.Candle {
	return models.Candle{Time: int64(1700000000 + i*3600), Open: o, High: h, Low: l, Close: c, Volume: 100}
}

// flatSeries returns n identical bars at the given price.
func flatSeries(n int, price float64) []models.Candle {
	out := make([]models.Candle, n)
	for i := range out {
		out[i] = bar(i, price, price, price, price)
	}
	return out
}

// driftSeries returns n mildly oscillating bars centered on base, ending
// near base. Deterministic and gap-free.
func driftSeries(n int, base float64) []models.Candle {
	out := make([]models.Candle, n)
	for i := range out {
		off := float64(i%5) - 2 // -2..2 repeating
		o := base + off
		c := base + off + 0.5
		if i%2 == 1 {
			c = base + off - 0.5
		}
		h := maxFloat(o, c) + 1
		l := minFloat(o, c) - 1
		out[i] = bar(i, o, h, l, c)
	}
	return out
}
