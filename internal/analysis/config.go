package analysis

// Config carries every calibration constant of the synthesis pipeline.
// Defaults are tuned for spot gold; other instruments should override the
// dollar-denominated values (cluster tolerance most of all) via the
// engine section of the config file.
type Config struct {
	// Phase classifier.
	SessionBars       int     // session high/low window
	RecentBars        int     // wider reference window
	AccumulationPos   float64 // price position below this
	DistributionPos   float64 // price position above this
	CompressionRatio  float64 // range expansion below this means compression
	SpikeWindow       int     // bars scanned for a wick spike
	SpikeWickRatio    float64 // wick fraction of range that counts as a spike
	SpikeRangeRatio   float64 // spike bar range vs average range
	DeclineRatio      float64 // fraction of lower-high/lower-low transitions
	BiasBearPos       float64 // price position above this leans bearish
	BiasBullPos       float64 // price position below this leans bullish
	EMAFast           int
	EMASlow           int
	StrengthRange     float64 // accumulation / distribution
	StrengthSpike     float64 // manipulation
	StrengthDecline   float64
	StrengthUndefined float64 // transition

	// Order blocks.
	BlockMinBars      int     // minimum window for detection
	BlockSetupRun     int     // minimum same-direction setup bars
	BlockImpulseRatio float64 // impulse body vs mean setup body
	BlockStrongRatio  float64
	BlockModerateRatio float64
	BlockKeep         int // most recent blocks kept

	// Imbalance gaps.
	GapMinBars int
	GapKeep    int

	// Support/resistance clusters.
	SwingLookback  int     // symmetric swing window
	ClusterTol     float64 // dollar tolerance for clustering swing prices
	LevelMinBars   int
	LevelKeep      int
	TouchStrength  float64 // strength per touch
	StrengthCap    float64

	// Liquidity pools.
	PoolKeep      int
	PoolDecay     float64 // strength lost per recency rank
	PoolBase      float64

	// Pattern detection.
	CandleScanBars  int // candlestick window
	ChartMinBars    int
	TriangleRatio   float64 // second-half range vs first-half range
	WedgeRatio      float64
	FlagPoleBars    int
	FlagRatio       float64 // consolidation range vs pole magnitude

	// Primary builder.
	OversoldRSI    float64
	OverboughtRSI  float64
	LeanBuyRSI     float64 // upper bound of the momentum-confirmed buy band
	LeanSellRSI    float64 // lower bound of the momentum-confirmed sell band
	BaseExtreme    float64 // confidence at RSI extremes
	BaseMomentum   float64 // confidence for momentum-confirmed band
	BaseRegime     float64 // confidence when adopting the phase bias
	StopATR        float64
	TP1ATR         float64
	TP2ATR         float64
	TP3ATR         float64
	EntryZoneATR   float64

	// Secondary builder.
	PAScoreGate   float64 // bull/bear score needed for a directional call
	PAStrongMult  float64
	PAConfScale   float64 // score-to-confidence scale
	PARejectScore float64 // contribution of a wick rejection
	PAStopATR     float64
	PATP1ATR      float64
	PATP2ATR      float64

	// Fusion and modifiers.
	FusePrimaryWeight float64
	FuseConflictMult  float64
	FuseAbstainMult   float64
	ConfidenceCap     float64
	ConfidenceFloor   float64
	NewsCap           float64
}

// DefaultConfig returns the gold-calibrated constants.
func DefaultConfig() Config {
	return Config{
		SessionBars:       20,
		RecentBars:        50,
		AccumulationPos:   0.35,
		DistributionPos:   0.65,
		CompressionRatio:  0.5,
		SpikeWindow:       10,
		SpikeWickRatio:    0.6,
		SpikeRangeRatio:   1.3,
		DeclineRatio:      0.6,
		BiasBearPos:       0.6,
		BiasBullPos:       0.4,
		EMAFast:           20,
		EMASlow:           50,
		StrengthRange:     70,
		StrengthSpike:     60,
		StrengthDecline:   75,
		StrengthUndefined: 40,

		BlockMinBars:       10,
		BlockSetupRun:      2,
		BlockImpulseRatio:  1.5,
		BlockStrongRatio:   2.5,
		BlockModerateRatio: 2.0,
		BlockKeep:          6,

		GapMinBars: 10,
		GapKeep:    8,

		SwingLookback: 5,
		ClusterTol:    15.0,
		LevelMinBars:  15,
		LevelKeep:     8,
		TouchStrength: 25,
		StrengthCap:   100,

		PoolKeep:  6,
		PoolDecay: 12,
		PoolBase:  90,

		CandleScanBars: 10,
		ChartMinBars:   20,
		TriangleRatio:  0.7,
		WedgeRatio:     0.6,
		FlagPoleBars:   8,
		FlagRatio:      0.4,

		OversoldRSI:  30,
		OverboughtRSI: 70,
		LeanBuyRSI:   40,
		LeanSellRSI:  60,
		BaseExtreme:  65,
		BaseMomentum: 60,
		BaseRegime:   55,
		StopATR:      1.5,
		TP1ATR:       2.0,
		TP2ATR:       3.0,
		TP3ATR:       4.0,
		EntryZoneATR: 0.3,

		PAScoreGate:   65,
		PAStrongMult:  1.5,
		PAConfScale:   0.6,
		PARejectScore: 30,
		PAStopATR:     1.5,
		PATP1ATR:      2.0,
		PATP2ATR:      3.5,

		FusePrimaryWeight: 0.6,
		FuseConflictMult:  0.5,
		FuseAbstainMult:   0.8,
		ConfidenceCap:     95,
		ConfidenceFloor:   20,
		NewsCap:           25,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
