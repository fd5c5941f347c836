package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GoldPulse/internal/domain/repository"
	"GoldPulse/internal/handler/api"
	icache "GoldPulse/internal/service/cache"
	"GoldPulse/internal/services/spot"
	"GoldPulse/internal/usecase"
	pkgch "GoldPulse/pkg/clickhouse"
	"GoldPulse/pkg/config"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	signals     *usecase.SignalService
	candles     *usecase.CandlesUseCase
	collector   *usecase.QuoteCollector
	tracker     *spot.Tracker
	pub         repository.SignalPublisher
	source      repository.CandleSource
	metrics     repository.Metrics
	chClient    *pkgch.Client
	broadcaster *usecase.SignalBroadcaster
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	signals *usecase.SignalService,
	candles *usecase.CandlesUseCase,
	collector *usecase.QuoteCollector,
	tracker *spot.Tracker,
	pub repository.SignalPublisher,
	source repository.CandleSource,
	metrics repository.Metrics,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		signals:   signals,
		candles:   candles,
		collector: collector,
		tracker:   tracker,
		pub:       pub,
		source:    source,
		metrics:   metrics,
		chClient:  chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	a.signals.SetLogger(l)
	a.collector.SetLogger(l)
	if sl, ok := a.source.(interface{ SetLogger(*applogger.Logger) }); ok {
		sl.SetLogger(l)
	}

	// Setup Echo HTTP server using pkg/http and register routes via handler
	var httpHandler xhttp.Handler
	if a.httpHandler != nil {
		httpHandler = a.httpHandler
	} else {
		se := api.NewSignalsEchoHandler(l, a.signals, a.candles)
		se.SetCollector(a.collector)
		if a.cfg.Redis.Enabled {
			se.SetCache(icache.NewRedisCache(icache.RedisConfig{
				Addr:     a.cfg.Redis.Addr,
				Password: a.cfg.Redis.Password,
				DB:       a.cfg.Redis.DB,
			}))
		} else {
			se.SetCache(icache.NewTTLCache())
		}
		httpHandler = se
	}

	a.httpServer = xhttp.NewServer(httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start quote collector when a spot feed is configured
	if a.cfg.Spot.WebSocketURL != "" {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				l.Error("collector error", applogger.Error(err))
				return
			}
			a.collector.SeedWeekly(ctx, a.source, a.tracker, a.cfg.Signals.Symbol)
		}()
		l.Info("collector started", applogger.Strings("symbols", a.cfg.Spot.Symbols))
	}

	// Aggregate repeated error logs onto Kafka when a publisher can carry them
	if lp, ok := a.pub.(applogger.Publisher); ok {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.Topic + ".logs",
			Publisher:      lp,
		})
	}

	// Start periodic signal publishing if a sink is configured
	if a.pub != nil {
		a.broadcaster = usecase.NewSignalBroadcaster(
			a.signals,
			a.pub,
			a.metrics,
			a.cfg.Signals.Symbol,
			repository.NormalizeInterval(a.cfg.Signals.Interval),
			a.cfg.Signals.PublishEvery,
		)
		a.broadcaster.SetLogger(l)
		a.broadcaster.Start(ctx)
		l.Info("signal broadcaster started",
			applogger.String("symbol", a.cfg.Signals.Symbol),
			applogger.String("topic", a.cfg.Kafka.Topic),
		)
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Stop broadcaster first so nothing publishes during teardown
	if a.broadcaster != nil {
		a.broadcaster.Stop()
	}

	// Stop collector (pipeline + stream)
	if a.cfg.Spot.WebSocketURL != "" {
		if err := a.collector.Shutdown(ctx); err != nil {
			l.Warn("collector stop error", applogger.Error(err))
		}
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.pub != nil {
		if err := a.pub.Close(); err != nil {
			l.Warn("publisher close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
