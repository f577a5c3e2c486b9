// Package arbitrage implements the arbitrage bounded context: scoring
// collected listings against sold-price evidence and reporting the
// actionable ones.
package arbitrage

import (
	"context"

	"github.com/fd1az/card-arbitrage/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/card-arbitrage/business/arbitrage/di"
	"github.com/fd1az/card-arbitrage/business/arbitrage/infra"
	listingDI "github.com/fd1az/card-arbitrage/business/listing/di"
	pricingDI "github.com/fd1az/card-arbitrage/business/pricing/di"
	"github.com/fd1az/card-arbitrage/internal/config"
	"github.com/fd1az/card-arbitrage/internal/di"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/metrics"
	"github.com/fd1az/card-arbitrage/internal/monolith"
)

// Module implements the arbitrage bounded context.
type Module struct{}

// RegisterServices registers all arbitrage services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register ScoreEngine - private dependency
	di.RegisterToken(c, arbitrageDI.ScoreEngine, func(sr di.ServiceRegistry) *app.ScoreEngine {
		cfg := sr.Get("config").(*config.Config)
		return app.NewScoreEngine(app.NewScoreConfig(cfg.Arbitrage))
	})

	// Register Reporter - console for CLI runs, TUI otherwise
	di.RegisterToken(c, arbitrageDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		cfg := sr.Get("config").(*config.Config)
		if cfg.Arbitrage.TUIMode {
			return infra.NewTUIReporter()
		}
		return infra.NewConsoleReporter()
	})

	// Register ResultWriters - CSV always, postgres only when a DSN is
	// configured
	di.RegisterToken(c, arbitrageDI.ResultWriters, func(sr di.ServiceRegistry) []app.ResultWriter {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		writers := []app.ResultWriter{
			infra.NewCSVExporter(cfg.Storage.OutputDir, log),
		}

		if cfg.Storage.PostgresDSN != "" {
			store, err := infra.NewPostgresStore(cfg.Storage.PostgresDSN, log)
			if err != nil {
				panic("failed to create postgres store: " + err.Error())
			}
			writers = append(writers, store)
		}

		return writers
	})

	// Register Analyzer (public - exposed to other modules)
	di.RegisterToken(c, arbitrageDI.Analyzer, func(sr di.ServiceRegistry) *app.Analyzer {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		instruments, _ := sr.Get("instruments").(*metrics.Instruments)

		return app.NewAnalyzer(
			listingDI.GetListingService(sr),
			pricingDI.GetPricingService(sr),
			arbitrageDI.GetScoreEngine(sr),
			arbitrageDI.GetReporter(sr),
			arbitrageDI.GetResultWriters(sr),
			app.AnalyzerConfig{
				MinScreenScore: cfg.Arbitrage.MinScreenScore,
				Workers:        cfg.Arbitrage.Workers,
				FeeRate:        cfg.Arbitrage.FeeRateDecimal(),
				ShippingUSD:    cfg.Arbitrage.ShippingUSDDecimal(),
			},
			log,
			instruments,
		)
	})

	return nil
}

// Startup initializes the arbitrage module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	reporter := arbitrageDI.GetReporter(mono.Services())
	if err := reporter.Start(ctx); err != nil {
		return err
	}

	writers := arbitrageDI.GetResultWriters(mono.Services())
	mono.Logger().Info(ctx, "arbitrage module started",
		"workers", mono.Config().Arbitrage.Workers,
		"writers", len(writers),
	)
	return nil
}
