package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"GoldPulse/internal/analysis"
	"GoldPulse/internal/domain/repository"
	"GoldPulse/internal/indicators"
	mid "GoldPulse/internal/middleware"
	internalrepo "GoldPulse/internal/repository"
	"GoldPulse/internal/service/spotstream"
	"GoldPulse/internal/services/marketdata"
	"GoldPulse/internal/services/narrative"
	"GoldPulse/internal/services/news"
	"GoldPulse/internal/services/spot"
	"GoldPulse/internal/usecase"
	pkgcache "GoldPulse/pkg/cache"
	pkgch "GoldPulse/pkg/clickhouse"
	"GoldPulse/pkg/config"
	pkgkafka "GoldPulse/pkg/kafka"
	"GoldPulse/pkg/metrics"
	"GoldPulse/pkg/server"
)

// ProvideClickHouseClient creates a ClickHouse client when enabled, nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{"CREATE DATABASE IF NOT EXISTS goldpulse"}
	for _, tbl := range []string{"candles_5m", "candles_15m", "candles_1h", "candles_4h", "candles_1d"} {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS goldpulse.%s (symbol String, bucket DateTime, open Float64, high Float64, low Float64, close Float64, vol Float64) ENGINE=MergeTree ORDER BY (symbol, bucket)",
			tbl,
		))
	}
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when publishing is enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Signals.PublishKafka {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the shared cache service. Redis when configured,
// in-process memory cache otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc), nil
}

// ProvideCandleSource builds the candle source chain: the configured
// primary (HTTP market data, optionally ClickHouse) with a deterministic
// synthetic tail so analysis never runs on an empty window.
func ProvideCandleSource(cfg *config.Config, chClient *pkgch.Client, c pkgcache.Service, m repository.Metrics) repository.CandleSource {
	chain := marketdata.NewFallbackCandleSource()
	chain.SetMetrics(m)
	if cfg.MarketData.BaseURL != "" {
		var primary repository.CandleSource = marketdata.NewHTTPCandleSource(cfg)
		if c != nil && cfg.MarketData.CacheTTL > 0 {
			primary = marketdata.NewCachedCandleSource(primary, c, cfg.MarketData.CacheTTL)
		}
		chain.Add("marketdata", primary)
	}
	if chClient != nil {
		chain.Add("clickhouse", internalrepo.NewCHCandleSource(chClient))
	}
	chain.Add("synthetic", marketdata.NewSyntheticCandleSource(2000))
	return chain
}

// ProvideSignalPublisher creates the Kafka signal publisher, nil when
// publishing is disabled.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topic)
}

// ProvideQuoteStream creates the spot WebSocket stream.
func ProvideQuoteStream(cfg *config.Config) repository.QuoteStream {
	return spotstream.New(
		cfg.Spot.APIKey,
		cfg.Spot.WebSocketURL,
		cfg.Spot.Symbols,
		cfg.Spot.ReconnectDelay,
		cfg.Spot.PingInterval,
	)
}

// ProvideTracker creates the in-memory spot insights tracker.
func ProvideTracker() *spot.Tracker {
	return spot.NewTracker()
}

// ProvideEngine creates the signal synthesis engine, applying any engine
// calibration overrides from the config file on top of the defaults.
func ProvideEngine(cfg *config.Config) *analysis.Engine {
	ec := analysis.DefaultConfig()
	if v := cfg.Engine.ClusterTolerance; v > 0 {
		ec.ClusterTol = v
	}
	if v := cfg.Engine.OversoldRSI; v > 0 {
		ec.OversoldRSI = v
	}
	if v := cfg.Engine.OverboughtRSI; v > 0 {
		ec.OverboughtRSI = v
	}
	if v := cfg.Engine.StopATR; v > 0 {
		ec.StopATR = v
		ec.PAStopATR = v
	}
	if v := cfg.Engine.ConfidenceCap; v > 0 {
		ec.ConfidenceCap = v
	}
	if v := cfg.Engine.NewsCap; v > 0 {
		ec.NewsCap = v
	}
	return analysis.NewEngine(ec)
}

// ProvideSignalService creates the signal orchestrator.
func ProvideSignalService(
	cfg *config.Config,
	source repository.CandleSource,
	tracker *spot.Tracker,
	engine *analysis.Engine,
	m repository.Metrics,
	c pkgcache.Service,
) *usecase.SignalService {
	opts := []usecase.SignalServiceOption{
		usecase.WithSignalBars(cfg.Signals.Bars),
	}
	if c != nil && cfg.Signals.CacheTTL > 0 {
		opts = append(opts, usecase.WithSignalCache(c, cfg.Signals.CacheTTL))
	}
	return usecase.NewSignalService(
		source,
		news.NewHTTPNewsService(cfg),
		tracker,
		narrative.NewHTTPNarrativeService(cfg),
		engine,
		indicators.DefaultConfig(),
		m,
		opts...,
	)
}

// ProvideCandlesUseCase creates the candle retrieval use case.
func ProvideCandlesUseCase(source repository.CandleSource) *usecase.CandlesUseCase {
	return usecase.NewCandlesUseCase(source)
}

// ProvideQuoteCollector creates the quote collector with the realtime
// pipeline between the WebSocket and the tracker.
func ProvideQuoteCollector(
	stream repository.QuoteStream,
	tracker *spot.Tracker,
	m repository.Metrics,
) *usecase.QuoteCollector {
	proc := usecase.NewTrackerProc(tracker)
	pipe := mid.NewRealtimePipeline(proc, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewQuoteCollector(stream, proc, m, pipe)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	signals *usecase.SignalService,
	candles *usecase.CandlesUseCase,
	collector *usecase.QuoteCollector,
	tracker *spot.Tracker,
	pub repository.SignalPublisher,
	source repository.CandleSource,
	m repository.Metrics,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, signals, candles, collector, tracker, pub, source, m, chClient)
}
