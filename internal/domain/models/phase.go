package models

// Phase classifies the recent candle window in AMD terms.
type Phase string

const (
	PhaseAccumulation Phase = "ACCUMULATION"
	PhaseDistribution Phase = "DISTRIBUTION"
	PhaseManipulation Phase = "MANIPULATION"
	PhaseDecline      Phase = "DECLINE"
	PhaseTransition   Phase = "TRANSITION"
)

// Bias is a coarse directional lean.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// AMDPhase is the output of the phase classifier. Derived fresh per call,
// never persisted. Strength is a heuristic confidence in the classification,
// not a probability.
type AMDPhase struct {
	Phase       Phase
	Bias        Bias
	SessionHigh float64
	SessionLow  float64
	Strength    float64 // [0,100]
	Description string
}
