package cache

import (
	"context"
	"testing"
	"time"
)

type payload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestMemoryCacheTypedRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	in := &payload{Symbol: "XAUUSD", Price: 2000.5}
	if err := mc.Set(ctx, "k", in, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out payload
	if err := mc.Get(ctx, "k", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Symbol != "XAUUSD" || out.Price != 2000.5 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	var out payload
	if err := mc.Get(context.Background(), "missing", &out); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheTryLock(t *testing.T) {
	mc := NewMemoryCache()
	ctx := context.Background()

	ok, err := mc.TryLock(ctx, "lock", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first TryLock = (%v, %v)", ok, err)
	}
	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	if err != nil || ok {
		t.Fatalf("second TryLock = (%v, %v), want held", ok, err)
	}
	if err := mc.Unlock(ctx, "lock"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	if err != nil || !ok {
		t.Fatalf("TryLock after Unlock = (%v, %v)", ok, err)
	}
}
