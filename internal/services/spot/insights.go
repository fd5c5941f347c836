package spot

import (
	"context"
	"sync"

	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
	domsvc "GoldPulse/internal/domain/service"
)

// Spread classification thresholds in dollars, tuned for spot gold.
const (
	tightSpread = 0.30
	wideSpread  = 0.80
)

// weekSeconds bounds the rolling high/low window.
const weekSeconds = 7 * 24 * 3600

type state struct {
	lastBid  float64
	lastAsk  float64
	lastTime int64
	weekHigh float64
	weekLow  float64
	seen     bool // at least one quote folded in
	ranged   bool // weekly extremes initialized (quote or seed)
}

// Tracker aggregates the live quote stream into dealing-quality context.
// It keeps one rolling state per symbol; readers get value snapshots.
type Tracker struct {
	mu     sync.RWMutex
	states map[string]*state
}

func NewTracker() *Tracker {
	return &Tracker{states: make(map[string]*state)}
}

// Update folds one quote into the tracker.
func (t *Tracker) Update(q *domrepo.Quote) {
	if q == nil || q.Bid <= 0 || q.Ask <= 0 {
		return
	}
	mid := (q.Bid + q.Ask) / 2

	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[q.Symbol]
	if !ok {
		st = &state{}
		t.states[q.Symbol] = st
	}
	if !st.ranged || (st.seen && q.Time-st.lastTime > weekSeconds) {
		st.weekHigh = mid
		st.weekLow = mid
		st.ranged = true
	} else {
		if mid > st.weekHigh {
			st.weekHigh = mid
		}
		if mid < st.weekLow {
			st.weekLow = mid
		}
	}
	st.lastBid = q.Bid
	st.lastAsk = q.Ask
	st.lastTime = q.Time
	st.seen = true
}

// SeedWeekly widens the rolling window with known weekly extremes, so the
// range position is meaningful before a full week of quotes accumulates.
func (t *Tracker) SeedWeekly(symbol string, high, low float64) {
	if high <= low {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[symbol]
	if !ok {
		st = &state{}
		t.states[symbol] = st
	}
	if !st.ranged || high > st.weekHigh {
		st.weekHigh = high
	}
	if !st.ranged || low < st.weekLow {
		st.weekLow = low
	}
	st.ranged = true
}

// Insights returns the current dealing context for a symbol. With no data
// yet it reports a neutral snapshot that leaves signal confidence alone.
func (t *Tracker) Insights(ctx context.Context, symbol string) models.SpotInsights {
	t.mu.RLock()
	st, ok := t.states[symbol]
	if !ok || !st.seen {
		t.mu.RUnlock()
		return models.SpotInsights{
			SpreadQuality:  models.SpreadNormal,
			WeeklyRangePct: 50,
		}
	}
	snap := *st
	t.mu.RUnlock()

	mid := (snap.lastBid + snap.lastAsk) / 2
	spread := snap.lastAsk - snap.lastBid

	quality := models.SpreadNormal
	switch {
	case spread <= tightSpread:
		quality = models.SpreadTight
	case spread >= wideSpread:
		quality = models.SpreadWide
	}

	pct := 50.0
	if snap.weekHigh > snap.weekLow {
		pct = 100 * (mid - snap.weekLow) / (snap.weekHigh - snap.weekLow)
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
	}

	return models.SpotInsights{
		Price:          mid,
		SpreadQuality:  quality,
		WeeklyRangePct: pct,
		WeekHigh:       snap.weekHigh,
		WeekLow:        snap.weekLow,
	}
}

var _ domsvc.SpotService = (*Tracker)(nil)
