package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
environment: test
server:
  port: 9090
  read_timeout: 5s
  write_timeout: 5s
  shutdown_timeout: 5s
signals:
  symbol: XAUUSD
  interval: 1h
  bars: 200
  cache_ttl: 15s
marketdata:
  base_url: https://md.example.com
  timeout: 10s
spot:
  symbols: ["OANDA:XAU_USD"]
redis:
  enabled: false
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return p
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Signals.Symbol != "XAUUSD" || cfg.Signals.Bars != 200 {
		t.Fatalf("signals = %+v", cfg.Signals)
	}
}

func TestLoadEngineOverrides(t *testing.T) {
	yml := sampleYAML + `
engine:
  cluster_tolerance: 0.05
  confidence_cap: 90
`
	cfg, err := Load(writeTemp(t, yml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.ClusterTolerance != 0.05 {
		t.Fatalf("cluster_tolerance = %v", cfg.Engine.ClusterTolerance)
	}
	if cfg.Engine.ConfidenceCap != 90 {
		t.Fatalf("confidence_cap = %v", cfg.Engine.ConfidenceCap)
	}
	if cfg.Engine.NewsCap != 0 {
		t.Fatalf("news_cap should be unset, got %v", cfg.Engine.NewsCap)
	}
}

func TestLoadRejectsMissingSymbol(t *testing.T) {
	bad := `
environment: test
signals:
  bars: 100
marketdata:
  base_url: https://md.example.com
`
	if _, err := Load(writeTemp(t, bad)); err == nil {
		t.Fatal("expected validation error for missing symbol")
	}
}

func TestLoadRejectsNoCandleBackend(t *testing.T) {
	bad := `
environment: test
signals:
  symbol: XAUUSD
  bars: 100
`
	if _, err := Load(writeTemp(t, bad)); err == nil {
		t.Fatal("expected validation error when no candle backend configured")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SIGNAL_SYMBOL", "XAGUSD")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.Signals.Symbol != "XAGUSD" {
		t.Fatalf("symbol override failed: %q", cfg.Signals.Symbol)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("broker override failed: %v", cfg.Kafka.Brokers)
	}
}
