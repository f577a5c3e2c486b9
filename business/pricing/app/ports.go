// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"

	"github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/money"
)

// SoldPriceProvider defines the interface for historical sold-price sources.
type SoldPriceProvider interface {
	// Name identifies the provider in logs, metrics and risk attribution.
	Name() domain.Provider

	// SoldPrices returns recent sold observations for a card query. An
	// empty slice with a nil error means the provider answered but has
	// no comparable sales.
	SoldPrices(ctx context.Context, query string) ([]domain.SoldObservation, error)
}

// RateProvider defines the interface for currency conversion sources.
type RateProvider interface {
	// USDRate returns the conversion rate from the given currency to USD.
	USDRate(ctx context.Context, from money.Currency) (money.ExchangeRate, error)
}
