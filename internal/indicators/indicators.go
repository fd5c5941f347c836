package indicators

import (
	talib "github.com/markcheno/go-talib"

	"GoldPulse/internal/domain/models"
)

// Config holds the lookback periods for the indicator set.
type Config struct {
	RSIPeriod   int `yaml:"rsi_period" default:"14"`
	MACDFast    int `yaml:"macd_fast" default:"12"`
	MACDSlow    int `yaml:"macd_slow" default:"26"`
	MACDSignal  int `yaml:"macd_signal" default:"9"`
	BandsPeriod int `yaml:"bands_period" default:"20"`
	BandsDev    float64 `yaml:"bands_dev" default:"2"`
	ATRPeriod   int `yaml:"atr_period" default:"14"`
}

func DefaultConfig() Config {
	return Config{
		RSIPeriod:   14,
		MACDFast:    12,
		MACDSlow:    26,
		MACDSignal:  9,
		BandsPeriod: 20,
		BandsDev:    2,
		ATRPeriod:   14,
	}
}

// minBars is the shortest window the slowest indicator needs to produce a
// stable value.
func (c Config) minBars() int {
	n := c.MACDSlow + c.MACDSignal
	if c.BandsPeriod > n {
		n = c.BandsPeriod
	}
	if c.ATRPeriod+1 > n {
		n = c.ATRPeriod + 1
	}
	return n
}

// Compute derives the indicator set from a candle window. Windows too
// short for the slowest lookback return neutral values; the signal engine
// treats those the same as a failed upstream fetch.
func Compute(cfg Config, cs []models.Candle) models.IndicatorSet {
	if len(cs) < cfg.minBars() {
		return Neutral(lastClose(cs))
	}

	closes := make([]float64, len(cs))
	highs := make([]float64, len(cs))
	lows := make([]float64, len(cs))
	for i, c := range cs {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
	}

	rsi := talib.Rsi(closes, cfg.RSIPeriod)
	macd, sig, hist := talib.Macd(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	upper, middle, lower := talib.BBands(closes, cfg.BandsPeriod, cfg.BandsDev, cfg.BandsDev, talib.SMA)
	atr := talib.Atr(highs, lows, closes, cfg.ATRPeriod)

	last := len(cs) - 1
	return models.IndicatorSet{
		RSI: rsi[last],
		MACD: models.MACD{
			Line:      macd[last],
			Signal:    sig[last],
			Histogram: hist[last],
		},
		Bands: models.Bands{
			Upper:  upper[last],
			Middle: middle[last],
			Lower:  lower[last],
		},
		ATR: atr[last],
	}
}

// Neutral is the indicator set used when no computation is possible.
func Neutral(price float64) models.IndicatorSet {
	atr := price * 0.001
	if atr < 0.01 {
		atr = 0.01
	}
	return models.IndicatorSet{
		RSI: 50,
		ATR: atr,
		Bands: models.Bands{
			Upper:  price + 2*atr,
			Middle: price,
			Lower:  price - 2*atr,
		},
	}
}

func lastClose(cs []models.Candle) float64 {
	if len(cs) == 0 {
		return 0
	}
	return cs[len(cs)-1].Close
}
