// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/fd1az/card-arbitrage/business/pricing/app"
	"github.com/fd1az/card-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	PricingService = di.NewToken[*app.PricingService]("pricing.PricingService")
)

// Private dependency tokens - internal to pricing module
var (
	SoldPriceProviders = di.NewToken[[]app.SoldPriceProvider]("pricing:soldPriceProviders")
	RateProvider       = di.NewToken[app.RateProvider]("pricing:rateProvider")
)

// Helper functions for type-safe access
func GetPricingService(c di.ServiceRegistry) *app.PricingService {
	return di.GetToken(c, PricingService)
}

func GetSoldPriceProviders(c di.ServiceRegistry) []app.SoldPriceProvider {
	return di.GetToken(c, SoldPriceProviders)
}

func GetRateProvider(c di.ServiceRegistry) app.RateProvider {
	return di.GetToken(c, RateProvider)
}
