package models

// Action is the final trading decision.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionWait Action = "WAIT"
)

// GoldSignal is the finished output of the synthesis pipeline. Entirely
// recomputed per invocation; it has no identity beyond one request cycle.
// For WAIT actions the level ladder is display-only.
type GoldSignal struct {
	Action       Action
	Confidence   float64 // [0,95] post-modifiers
	Entry        float64
	EntryZone    [2]float64 // [low, high]
	StopLoss     float64
	TP1          float64
	TP2          float64
	TP3          float64
	RR1          float64
	RR2          float64
	RR3          float64
	Confluences  []string
	Invalidation string
	SessionBias  string
}
