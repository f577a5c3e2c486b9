// Package listing implements the listing bounded context: collecting
// live marketplace offers and normalizing them for analysis.
package listing

import (
	"context"
	"time"

	"github.com/fd1az/card-arbitrage/business/listing/app"
	listingDI "github.com/fd1az/card-arbitrage/business/listing/di"
	"github.com/fd1az/card-arbitrage/business/listing/infra/buyee"
	"github.com/fd1az/card-arbitrage/internal/config"
	"github.com/fd1az/card-arbitrage/internal/di"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/metrics"
	"github.com/fd1az/card-arbitrage/internal/monolith"
)

// Module implements the listing bounded context.
type Module struct{}

// RegisterServices registers all listing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Collector (buyee) - private dependency
	di.RegisterToken(c, listingDI.Collector, func(sr di.ServiceRegistry) app.Collector {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return buyee.NewCollector(buyee.CollectorConfig{
			BaseURL:           cfg.Buyee.BaseURL,
			Category:          cfg.Buyee.Category,
			MaxListings:       cfg.Buyee.MaxListings,
			Headless:          cfg.Buyee.Headless,
			NavTimeout:        time.Duration(cfg.Buyee.NavTimeoutSec) * time.Second,
			RequestsPerMinute: cfg.Buyee.RequestsPerMinute,
		}, log)
	})

	// Register ListingService (public - exposed to other modules)
	di.RegisterToken(c, listingDI.ListingService, func(sr di.ServiceRegistry) *app.ListingService {
		log := sr.Get("logger").(logger.LoggerInterface)
		instruments, _ := sr.Get("instruments").(*metrics.Instruments)

		return app.NewListingService(listingDI.GetCollector(sr), log, instruments)
	})

	return nil
}

// Startup initializes the listing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()
	mono.Logger().Info(ctx, "listing module started",
		"source", cfg.Buyee.BaseURL,
		"category", cfg.Buyee.Category,
		"max_listings", cfg.Buyee.MaxListings,
	)
	return nil
}
