package models

// NewsRisk is the scheduled-news assessment from the calendar collaborator.
type NewsRisk struct {
	Level  string // "LOW", "MEDIUM", "HIGH"
	Avoid  bool
	Reason string
}

// News bias values for the fundamental collaborator.
const (
	NewsBiasBullishGold = "BULLISH_GOLD"
	NewsBiasBearishGold = "BEARISH_GOLD"
	NewsBiasNeutral     = "NEUTRAL"
)

// NewsBias is the fundamental lean derived from recent headlines.
type NewsBias struct {
	Bias  string
	Score float64
}

// Spread quality classifications for SpotInsights.
const (
	SpreadTight  = "TIGHT"
	SpreadNormal = "NORMAL"
	SpreadWide   = "WIDE"
)

// SpotInsights carries dealing-quality context from the spot stream:
// spread classification and where price sits inside the weekly range.
type SpotInsights struct {
	Price          float64
	SpreadQuality  string
	WeeklyRangePct float64 // [0,100], position of price in the week's range
	WeekHigh       float64
	WeekLow        float64
}

// NarrativeContext is the fully typed snapshot handed to the narrative
// collaborator. The pipeline assembles it by value; the summarizer never
// sees the live signal object.
type NarrativeContext struct {
	Symbol     string
	Interval   string
	Signal     GoldSignal
	Phase      AMDPhase
	Zones      ZoneSet
	Candles    []Pattern
	Charts     []ChartPattern
	Indicators IndicatorSet
	News       NewsRisk
	Fundamnt   NewsBias
	Spot       SpotInsights
}

// SignalReport is the composite API payload: the signal plus the supporting
// detector output and the narrative text.
type SignalReport struct {
	Symbol    string
	Interval  string
	Generated int64 // epoch seconds
	Signal    GoldSignal
	Phase     AMDPhase
	Zones     ZoneSet
	Patterns  []Pattern
	Charts    []ChartPattern
	Narrative string
}
