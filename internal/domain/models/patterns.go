package models

// Pattern is one candlestick observation: a typed, directional,
// confidence-scored detection at a bar index. Transient, produced per pass.
type Pattern struct {
	Name        string
	Direction   Bias
	Confidence  float64 // [0,100]
	Index       int
	Strong      bool // counts 1.5x in price-action scoring
	Description string
}

// ChartPattern is a multi-bar shape with a breakout level and a
// measured-move target.
type ChartPattern struct {
	Name        string
	Direction   Bias
	Confidence  float64
	Breakout    float64
	Target      float64
	Description string
}
