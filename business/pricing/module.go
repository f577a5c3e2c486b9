// Package pricing implements the pricing bounded context: sold-price
// evidence collection and per-grade reference aggregation.
package pricing

import (
	"context"

	"github.com/fd1az/card-arbitrage/business/pricing/app"
	pricingDI "github.com/fd1az/card-arbitrage/business/pricing/di"
	"github.com/fd1az/card-arbitrage/business/pricing/infra/ebay"
	"github.com/fd1az/card-arbitrage/business/pricing/infra/fx"
	"github.com/fd1az/card-arbitrage/business/pricing/infra/point130"
	"github.com/fd1az/card-arbitrage/internal/config"
	"github.com/fd1az/card-arbitrage/internal/di"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/metrics"
	"github.com/fd1az/card-arbitrage/internal/monolith"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register sold price providers - private dependency. eBay joins
	// only when credentials are configured; 130point needs none.
	di.RegisterToken(c, pricingDI.SoldPriceProviders, func(sr di.ServiceRegistry) []app.SoldPriceProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		var providers []app.SoldPriceProvider

		if cfg.Ebay.Enabled() {
			provider, err := ebay.NewProvider(ebay.ProviderConfig{
				ClientID:          cfg.Ebay.ClientID,
				ClientSecret:      cfg.Ebay.ClientSecret,
				BaseURL:           cfg.Ebay.BaseURL,
				AuthURL:           cfg.Ebay.AuthURL,
				MaxResults:        cfg.Ebay.MaxResults,
				RequestsPerMinute: cfg.Ebay.RequestsPerMinute,
			}, log)
			if err != nil {
				panic("failed to create ebay provider: " + err.Error())
			}
			providers = append(providers, provider)
		}

		provider, err := point130.NewProvider(point130.ProviderConfig{
			BaseURL:           cfg.Point130.BaseURL,
			MaxResults:        cfg.Point130.MaxResults,
			RequestsPerMinute: cfg.Point130.RequestsPerMinute,
		}, log)
		if err != nil {
			panic("failed to create 130point provider: " + err.Error())
		}
		providers = append(providers, provider)

		return providers
	})

	// Register RateProvider (fx) - private dependency
	di.RegisterToken(c, pricingDI.RateProvider, func(sr di.ServiceRegistry) app.RateProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		provider, err := fx.NewProvider(fx.ProviderConfig{
			RateURL:        cfg.FX.RateURL,
			FallbackJPYUSD: cfg.FX.FallbackJPYUSDDecimal(),
		}, log)
		if err != nil {
			panic("failed to create fx provider: " + err.Error())
		}
		return provider
	})

	// Register PricingService (public - exposed to other modules)
	di.RegisterToken(c, pricingDI.PricingService, func(sr di.ServiceRegistry) *app.PricingService {
		log := sr.Get("logger").(logger.LoggerInterface)
		instruments, _ := sr.Get("instruments").(*metrics.Instruments)

		providers := pricingDI.GetSoldPriceProviders(sr)
		rates := pricingDI.GetRateProvider(sr)
		return app.NewPricingService(providers, rates, log, instruments)
	})

	return nil
}

// Startup initializes the pricing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	providers := pricingDI.GetSoldPriceProviders(mono.Services())
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, string(p.Name()))
	}
	if !mono.Config().Ebay.Enabled() {
		log.Warn(ctx, "ebay credentials not configured, provider disabled")
	}

	log.Info(ctx, "pricing module started", "providers", names)
	return nil
}
