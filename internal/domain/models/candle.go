package models

// Candle represents one OHLCV bar. Time is epoch seconds; series are
// ordered by strictly increasing Time.
type Candle struct {
	Time   int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Body returns the absolute open-close distance.
func (c Candle) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// Range returns the high-low distance.
func (c Candle) Range() float64 { return c.High - c.Low }

// UpperWick returns the distance from the body top to the high.
func (c Candle) UpperWick() float64 {
	top := c.Open
	if c.Close > top {
		top = c.Close
	}
	return c.High - top
}

// LowerWick returns the distance from the low to the body bottom.
func (c Candle) LowerWick() float64 {
	bottom := c.Open
	if c.Close < bottom {
		bottom = c.Close
	}
	return bottom - c.Low
}

func (c Candle) Bullish() bool { return c.Close > c.Open }

func (c Candle) Bearish() bool { return c.Close < c.Open }

// BodyTop returns the higher of open and close.
func (c Candle) BodyTop() float64 {
	if c.Close > c.Open {
		return c.Close
	}
	return c.Open
}

// BodyBottom returns the lower of open and close.
func (c Candle) BodyBottom() float64 {
	if c.Close < c.Open {
		return c.Close
	}
	return c.Open
}
