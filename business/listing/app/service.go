// Package app contains application services and port definitions for the listing context.
package app

import (
	"context"

	"github.com/fd1az/card-arbitrage/business/listing/domain"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/metrics"
	"github.com/fd1az/card-arbitrage/internal/workpool"
)

// ListingService collects marketplace listings, drops invalid ones and
// deduplicates repeats across pages of the same scan.
type ListingService struct {
	collector   Collector
	logger      logger.LoggerInterface
	instruments *metrics.Instruments
}

// NewListingService creates a ListingService. instruments may be nil
// when telemetry is disabled.
func NewListingService(collector Collector, log logger.LoggerInterface, instruments *metrics.Instruments) *ListingService {
	return &ListingService{
		collector:   collector,
		logger:      log,
		instruments: instruments,
	}
}

// Collect fetches listings for the query and returns only valid,
// first-seen ones. Invalid listings are logged and skipped, never fatal.
func (s *ListingService) Collect(ctx context.Context, query string, max int) ([]domain.RawListing, error) {
	raw, err := s.collector.Collect(ctx, query, max)
	if err != nil {
		return nil, err
	}

	seen := workpool.NewSeenSet()
	listings := make([]domain.RawListing, 0, len(raw))
	for _, l := range raw {
		if err := l.Validate(); err != nil {
			s.logger.Warn(ctx, "dropping invalid listing",
				"title", l.Title, "url", l.ListingURL, "error", err)
			continue
		}
		if l.ListingURL != "" && !seen.Add(l.ListingURL) {
			continue
		}
		listings = append(listings, l)
	}

	if s.instruments != nil {
		s.instruments.ListingsCollected.Add(ctx, int64(len(listings)))
	}
	s.logger.Info(ctx, "listings collected",
		"query", query, "raw", len(raw), "kept", len(listings))
	return listings, nil
}
