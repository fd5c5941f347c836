package analysis

import (
	"testing"

	"GoldPulse/internal/domain/models"
)

func findPattern(ps []models.Pattern, name string) *models.Pattern {
	for i := range ps {
		if ps[i].Name == name {
			return &ps[i]
		}
	}
	return nil
}

func findChart(ps []models.ChartPattern, name string) *models.ChartPattern {
	for i := range ps {
		if ps[i].Name == name {
			return &ps[i]
		}
	}
	return nil
}

func TestDetectCandlePatternsEngulfing(t *testing.T) {
	cfg := DefaultConfig()
	cs := []models.Candle{
		bar(0, 2000, 2002, 1998, 2001),
		bar(1, 2000, 2002, 1998, 2001),
		bar(2, 2000, 2002, 1998, 2001),
		bar(3, 2000.5, 2001, 1998.5, 1999),
		bar(4, 1998.5, 2003, 1998, 2002.5),
	}
	got := DetectCandlePatterns(cfg, cs)
	if len(got) != 1 {
		t.Fatalf("expected exactly the engulfing, got %v", got)
	}
	p := got[0]
	if p.Name != "Bullish Engulfing" || p.Direction != models.BiasBullish {
		t.Fatalf("unexpected pattern %+v", p)
	}
	if !p.Strong || p.Confidence != 80 || p.Index != 4 {
		t.Fatalf("unexpected pattern %+v", p)
	}
}

func TestDetectCandlePatternsHammer(t *testing.T) {
	cfg := DefaultConfig()
	cs := []models.Candle{
		bar(0, 2000, 2002, 1998, 2001),
		bar(1, 2000, 2002, 1998, 2001),
		bar(2, 2000, 2002, 1998, 2001),
		bar(3, 2000, 2002, 1998, 2001),
		bar(4, 2000, 2001.4, 1994, 2001.2),
	}
	got := DetectCandlePatterns(cfg, cs)
	h := findPattern(got, "Hammer")
	if h == nil {
		t.Fatalf("expected a hammer, got %v", got)
	}
	if h.Direction != models.BiasBullish || h.Confidence != 70 || h.Strong {
		t.Fatalf("unexpected hammer %+v", *h)
	}
	// The bar is also a bullish pin: both observations should be reported.
	if findPattern(got, "Bullish Pin Bar") == nil {
		t.Fatalf("expected the pin bar alongside the hammer, got %v", got)
	}
}

func TestDetectCandlePatternsDoji(t *testing.T) {
	cfg := DefaultConfig()
	cs := []models.Candle{
		bar(0, 2000, 2002, 1998, 2001),
		bar(1, 2000, 2002, 1998, 2001),
		bar(2, 2000, 2002, 1998, 2001),
		bar(3, 2000, 2002, 1998, 2001),
		bar(4, 2000, 2002, 1998, 2000.05),
	}
	got := DetectCandlePatterns(cfg, cs)
	if len(got) != 1 || got[0].Name != "Doji" {
		t.Fatalf("expected exactly the doji, got %v", got)
	}
	if got[0].Direction != models.BiasNeutral || got[0].Confidence != 50 {
		t.Fatalf("unexpected doji %+v", got[0])
	}
}

func TestDetectCandlePatternsMorningStar(t *testing.T) {
	cfg := DefaultConfig()
	cs := []models.Candle{
		bar(0, 2005, 2006, 2004, 2005.5),
		bar(1, 2005, 2006, 2004, 2005.5),
		bar(2, 2010, 2010.5, 2001.5, 2002),
		bar(3, 2001, 2002, 2000, 2001.3),
		bar(4, 2002, 2009, 2001.5, 2008),
	}
	got := DetectCandlePatterns(cfg, cs)
	p := findPattern(got, "Morning Star")
	if p == nil {
		t.Fatalf("expected a morning star, got %v", got)
	}
	if p.Direction != models.BiasBullish || p.Confidence != 85 || !p.Strong || p.Index != 4 {
		t.Fatalf("unexpected morning star %+v", *p)
	}
}

func TestDetectCandlePatternsShortWindow(t *testing.T) {
	cfg := DefaultConfig()
	if got := DetectCandlePatterns(cfg, flatSeries(2, 2000)); got != nil {
		t.Fatalf("two bars should yield nothing, got %v", got)
	}
}

func TestDetectChartPatternsTriangle(t *testing.T) {
	cfg := DefaultConfig()
	cs := make([]models.Candle, 0, 20)
	for i := 0; i < 10; i++ {
		cs = append(cs, bar(i, 2000, 2020, 1980, 2000+float64(i)))
	}
	for i := 10; i < 20; i++ {
		cs = append(cs, bar(i, 2010, 2012, 2008, 2011))
	}
	got := DetectChartPatterns(cfg, cs)
	tri := findChart(got, "Triangle")
	if tri == nil {
		t.Fatalf("expected a triangle, got %v", got)
	}
	if tri.Direction != models.BiasBullish {
		t.Fatalf("rising closes should resolve bullish, got %s", tri.Direction)
	}
	if tri.Breakout != 2012 {
		t.Fatalf("breakout should be the second-half high, got %.2f", tri.Breakout)
	}
	if tri.Target != 2011+40 {
		t.Fatalf("target should project the first-half range, got %.2f", tri.Target)
	}
}

func TestDetectChartPatternsBullFlag(t *testing.T) {
	cfg := DefaultConfig()
	cs := make([]models.Candle, 0, 30)
	for i := 0; i < 13; i++ {
		cs = append(cs, bar(i, 2000, 2001, 1999, 2000))
	}
	for i := 13; i < 22; i++ {
		c := 2000 + float64(i-13)*5
		cs = append(cs, bar(i, c-5, c+1, c-6, c))
	}
	for i := 22; i < 30; i++ {
		cs = append(cs, bar(i, 2040, 2042, 2038, 2041))
	}
	got := DetectChartPatterns(cfg, cs)
	f := findChart(got, "Bull Flag")
	if f == nil {
		t.Fatalf("expected a bull flag, got %v", got)
	}
	if f.Direction != models.BiasBullish || f.Breakout != 2042 {
		t.Fatalf("unexpected flag %+v", *f)
	}
	if f.Target != 2041+40 {
		t.Fatalf("target should project the pole, got %.2f", f.Target)
	}
}

func TestDetectChartPatternsShortWindow(t *testing.T) {
	cfg := DefaultConfig()
	if got := DetectChartPatterns(cfg, flatSeries(10, 2000)); got != nil {
		t.Fatalf("short window should yield nothing, got %v", got)
	}
}
