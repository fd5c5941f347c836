package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"GoldPulse/internal/domain/models"
	domrepo "GoldPulse/internal/domain/repository"
)

type countingProc struct {
	mu   sync.Mutex
	got  []*domrepo.Quote
	fail bool
}

func (p *countingProc) Process(_ context.Context, q *domrepo.Quote) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("downstream unavailable")
	}
	p.got = append(p.got, q)
	return nil
}

func (p *countingProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.got)
}

type testMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func newTestMetrics() *testMetrics { return &testMetrics{errors: make(map[string]int)} }

func (m *testMetrics) RecordSignal(string, models.Action, float64) {}

func (m *testMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

func (m *testMetrics) RecordFallback(string)         {}
func (m *testMetrics) RecordLatency(string, float64) {}

func quote(t int64) *domrepo.Quote {
	return &domrepo.Quote{Symbol: "XAUUSD", Time: t, Bid: 2000.0, Ask: 2000.3}
}

func TestPipelineRejectsInvalidQuotes(t *testing.T) {
	proc := &countingProc{}
	p := NewRealtimePipeline(proc, newTestMetrics())

	cases := []*domrepo.Quote{
		nil,
		{Symbol: "", Time: 1, Bid: 1, Ask: 1},
		{Symbol: "XAUUSD", Time: 0, Bid: 1, Ask: 1},
		{Symbol: "XAUUSD", Time: 1, Bid: 0, Ask: 1},
	}
	for i, q := range cases {
		if err := p.Process(context.Background(), q); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if proc.count() != 0 {
		t.Fatalf("invalid quotes reached downstream: %d", proc.count())
	}
}

func TestPipelineForwardsValidQuotes(t *testing.T) {
	proc := &countingProc{}
	p := NewRealtimePipeline(proc, newTestMetrics())
	p.maxRPS = 0 // disable throttle

	for i := 0; i < 5; i++ {
		if err := p.Process(context.Background(), quote(int64(i+1))); err != nil {
			t.Fatalf("process %d: %v", i, err)
		}
	}
	if proc.count() != 5 {
		t.Fatalf("expected 5 forwarded, got %d", proc.count())
	}
}

func TestPipelineThrottlesPerSymbol(t *testing.T) {
	proc := &countingProc{}
	p := NewRealtimePipeline(proc, newTestMetrics(), WithMaxRPS(1))

	// first passes, immediate second is dropped silently
	if err := p.Process(context.Background(), quote(1)); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := p.Process(context.Background(), quote(2)); err != nil {
		t.Fatalf("throttled quote must not error: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("expected 1 forwarded, got %d", proc.count())
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &countingProc{fail: true}
	p := NewRealtimePipeline(proc, newTestMetrics(), WithBufferSize(4))
	p.maxRPS = 0

	if err := p.Process(context.Background(), quote(1)); err == nil {
		t.Fatal("expected downstream error")
	}

	// downstream recovers; Start drains the buffer
	proc.mu.Lock()
	proc.fail = false
	proc.mu.Unlock()

	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if proc.count() == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("buffered quote never flushed, forwarded=%d", proc.count())
}
