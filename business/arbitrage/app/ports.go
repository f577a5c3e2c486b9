// Package app contains application services and port definitions for the arbitrage context.
package app

import (
	"context"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
)

// Reporter defines the interface for presenting scan progress and results.
type Reporter interface {
	// Start initializes the reporter.
	Start(ctx context.Context) error

	// Report hands over one scored listing.
	Report(result *domain.ArbitrageResult)

	// UpdateStatus updates a named pipeline stage display.
	UpdateStatus(name string, ok bool, detail string)

	// Summary presents the scan totals after the batch completes.
	Summary(scanned, scored, opportunities int)

	// Stop gracefully shuts down the reporter.
	Stop() error
}

// ResultWriter defines the interface for persisting scored results.
type ResultWriter interface {
	// Write persists the full batch of results.
	Write(ctx context.Context, results []*domain.ArbitrageResult) error
}
