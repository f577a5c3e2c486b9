package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments bundles the counters and histograms recorded during a scan.
type Instruments struct {
	ListingsCollected  metric.Int64Counter
	ListingsScreened   metric.Int64Counter
	ProviderRequests   metric.Int64Counter
	ProviderErrors     metric.Int64Counter
	ResultsScored      metric.Int64Counter
	OpportunitiesFound metric.Int64Counter
	ScanDuration       metric.Float64Histogram
}

// NewInstruments creates the scan instruments on the named meter.
func NewInstruments(meterName string) (*Instruments, error) {
	meter := otel.Meter(meterName)

	listings, err := meter.Int64Counter("listings_collected_total",
		metric.WithDescription("Listings collected from the marketplace"))
	if err != nil {
		return nil, err
	}
	screened, err := meter.Int64Counter("listings_screened_out_total",
		metric.WithDescription("Listings rejected by pre-screening"))
	if err != nil {
		return nil, err
	}
	requests, err := meter.Int64Counter("provider_requests_total",
		metric.WithDescription("Sold price provider requests"))
	if err != nil {
		return nil, err
	}
	provErrors, err := meter.Int64Counter("provider_errors_total",
		metric.WithDescription("Sold price provider failures"))
	if err != nil {
		return nil, err
	}
	scored, err := meter.Int64Counter("results_scored_total",
		metric.WithDescription("Listings fully scored"))
	if err != nil {
		return nil, err
	}
	opportunities, err := meter.Int64Counter("opportunities_found_total",
		metric.WithDescription("Results at CONSIDER or better"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("scan_duration_seconds",
		metric.WithDescription("Wall time of a full scan"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		ListingsCollected:  listings,
		ListingsScreened:   screened,
		ProviderRequests:   requests,
		ProviderErrors:     provErrors,
		ResultsScored:      scored,
		OpportunitiesFound: opportunities,
		ScanDuration:       duration,
	}, nil
}

// RecordProviderRequest records one provider call, tagging the provider name.
func (i *Instruments) RecordProviderRequest(ctx context.Context, provider string, failed bool) {
	attrs := metric.WithAttributes(attribute.String("provider", provider))
	i.ProviderRequests.Add(ctx, 1, attrs)
	if failed {
		i.ProviderErrors.Add(ctx, 1, attrs)
	}
}
