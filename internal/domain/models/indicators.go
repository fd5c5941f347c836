package models

// MACD holds the line/signal/histogram triple.
type MACD struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// Bands holds Bollinger-style envelope values.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// IndicatorSet bundles the indicator values the signal builders read.
// Zero values mean "upstream fetch failed"; the engine substitutes the
// neutral defaults before use.
type IndicatorSet struct {
	RSI   float64
	MACD  MACD
	Bands Bands
	ATR   float64
}
