// Package di contains dependency injection tokens for the listing context.
package di

import (
	"github.com/fd1az/card-arbitrage/business/listing/app"
	"github.com/fd1az/card-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ListingService = di.NewToken[*app.ListingService]("listing.ListingService")
)

// Private dependency tokens - internal to listing module
var (
	Collector = di.NewToken[app.Collector]("listing:collector")
)

// Helper functions for type-safe access
func GetListingService(c di.ServiceRegistry) *app.ListingService {
	return di.GetToken(c, ListingService)
}

func GetCollector(c di.ServiceRegistry) app.Collector {
	return di.GetToken(c, Collector)
}
