//go:build wireinject
// +build wireinject

package di

import (
	"GoldPulse/pkg/config"
	"GoldPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability and caching
		ProvideMetrics,
		ProvideCache,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Data sources and sinks
		ProvideCandleSource,
		ProvideSignalPublisher,
		ProvideQuoteStream,
		ProvideTracker,

		// Analysis engine and use cases
		ProvideEngine,
		ProvideSignalService,
		ProvideCandlesUseCase,
		ProvideQuoteCollector,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
