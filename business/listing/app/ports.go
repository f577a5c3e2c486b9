// Package app contains application services and port definitions for the listing context.
package app

import (
	"context"

	"github.com/fd1az/card-arbitrage/business/listing/domain"
)

// Collector defines the interface for marketplace listing sources.
type Collector interface {
	// Collect fetches up to max live listings matching the query.
	// An empty query browses the configured category instead.
	Collect(ctx context.Context, query string, max int) ([]domain.RawListing, error)
}
