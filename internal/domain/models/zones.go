package models

// ZoneTier grades an order block by its impulse/setup body ratio.
type ZoneTier string

const (
	TierStrong   ZoneTier = "STRONG"
	TierModerate ZoneTier = "MODERATE"
	TierWeak     ZoneTier = "WEAK"
)

// OrderBlock marks the body range of a setup run that preceded an opposite
// impulse bar. Direction is the impulse direction: a bullish order block is
// a demand zone, a bearish one supply.
type OrderBlock struct {
	ID        string
	Direction Bias
	Top       float64
	Bottom    float64
	Tier      ZoneTier
	Ratio     float64 // impulse body / mean setup body
	Index     int     // impulse bar index in the source window
	Active    bool    // false once a close crosses fully through the zone
}

// FairValueGap is a three-bar price imbalance.
type FairValueGap struct {
	ID        string
	Direction Bias
	Top       float64
	Bottom    float64
	Midpoint  float64
	Index     int // middle bar index
	Mitigated bool
}

// LevelKind distinguishes support from resistance clusters.
type LevelKind string

const (
	LevelSupport    LevelKind = "SUPPORT"
	LevelResistance LevelKind = "RESISTANCE"
)

// SRLevel is a clustered swing-point price level.
type SRLevel struct {
	ID       string
	Kind     LevelKind
	Price    float64
	Touches  int
	Strength float64 // [0,100], capped member-count score
	Broken   bool
}

// PoolKind tags which side's stops a liquidity pool holds.
type PoolKind string

const (
	PoolBuyStops  PoolKind = "BUY_STOPS"
	PoolSellStops PoolKind = "SELL_STOPS"
)

// LiquidityPool is a swing extreme treated as a resting stop cluster.
type LiquidityPool struct {
	ID       string
	Kind     PoolKind
	Price    float64
	Strength float64 // decays with recency rank
	Index    int
	Swept    bool
}

// ZoneSet bundles the four structural detector outputs for one window.
type ZoneSet struct {
	OrderBlocks []OrderBlock
	Gaps        []FairValueGap
	Levels      []SRLevel
	Pools       []LiquidityPool
}
