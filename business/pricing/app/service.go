// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/metrics"
	"github.com/fd1az/card-arbitrage/internal/money"
)

const tracerName = "github.com/fd1az/card-arbitrage/business/pricing/app"

// PricingService fans a card query out to every sold-price provider and
// aggregates the combined evidence into per-grade reference estimates.
// A provider failing is degraded evidence, not a failed lookup: as long
// as one provider answers, the caller gets an estimate built from what
// arrived.
type PricingService struct {
	providers   []SoldPriceProvider
	rates       RateProvider
	logger      logger.LoggerInterface
	instruments *metrics.Instruments
	tracer      trace.Tracer
}

// NewPricingService creates a PricingService over the given providers.
// instruments may be nil when telemetry is disabled.
func NewPricingService(providers []SoldPriceProvider, rates RateProvider, log logger.LoggerInterface, instruments *metrics.Instruments) *PricingService {
	return &PricingService{
		providers:   providers,
		rates:       rates,
		logger:      log,
		instruments: instruments,
		tracer:      otel.Tracer(tracerName),
	}
}

// ReferencePrices queries all providers for sold observations matching
// the card query and aggregates them per grade tier. It returns an
// error only when every provider failed; partial evidence is a success.
func (s *PricingService) ReferencePrices(ctx context.Context, query string) (map[domain.GradeTier]domain.ReferencePrice, error) {
	ctx, span := s.tracer.Start(ctx, "pricing.reference_prices",
		trace.WithAttributes(attribute.String("query", query)),
	)
	defer span.End()

	type providerResult struct {
		provider     domain.Provider
		observations []domain.SoldObservation
		err          error
	}

	results := make([]providerResult, len(s.providers))
	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Add(1)
		go func(i int, p SoldPriceProvider) {
			defer wg.Done()
			obs, err := p.SoldPrices(ctx, query)
			results[i] = providerResult{provider: p.Name(), observations: obs, err: err}
		}(i, p)
	}
	wg.Wait()

	var observations []domain.SoldObservation
	var failures int
	var firstErr error
	for _, r := range results {
		if s.instruments != nil {
			s.instruments.RecordProviderRequest(ctx, string(r.provider), r.err != nil)
		}
		if r.err != nil {
			failures++
			if firstErr == nil {
				firstErr = r.err
			}
			s.logger.Warn(ctx, "sold price provider failed",
				"provider", r.provider, "query", query, "error", r.err)
			span.AddEvent("provider_failed",
				trace.WithAttributes(attribute.String("provider", string(r.provider))))
			continue
		}
		s.logger.Debug(ctx, "sold prices fetched",
			"provider", r.provider, "query", query, "observations", len(r.observations))
		observations = append(observations, r.observations...)
	}

	if failures == len(s.providers) && len(s.providers) > 0 {
		span.SetStatus(codes.Error, "all providers failed")
		return nil, apperror.New(apperror.CodeAggregationFailed,
			apperror.WithCause(firstErr),
			apperror.WithContext("all sold price providers failed for query "+query))
	}

	perGrade := domain.Aggregate(observations)
	span.SetAttributes(attribute.Int("observations", len(observations)))
	span.SetStatus(codes.Ok, "aggregated")
	return perGrade, nil
}

// USDRate resolves the conversion rate from the given currency to USD.
func (s *PricingService) USDRate(ctx context.Context, from money.Currency) (money.ExchangeRate, error) {
	return s.rates.USDRate(ctx, from)
}
