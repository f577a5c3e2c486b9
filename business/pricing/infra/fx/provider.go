// Package fx implements currency conversion backed by a public
// exchange-rate API with a configured static fallback.
package fx

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/internal/apperror"
	"github.com/fd1az/card-arbitrage/internal/httpclient"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/money"
)

// rateTTL bounds how long a fetched rate is reused. FX movement within
// an hour is noise next to the spread in card prices.
const rateTTL = time.Hour

// ProviderConfig holds exchange rate settings.
type ProviderConfig struct {
	RateURL        string
	FallbackJPYUSD decimal.Decimal
}

// Provider resolves JPY→USD conversion from a live endpoint, falling
// back to a configured static rate when the endpoint is unreachable.
// The fallback keeps a scan usable offline at the cost of rate
// staleness, which the caller's risk model already absorbs.
type Provider struct {
	config ProviderConfig
	client httpclient.Client
	logger logger.LoggerInterface

	mu        sync.Mutex
	cached    decimal.Decimal
	fetchedAt time.Time
}

// NewProvider creates an fx provider.
func NewProvider(cfg ProviderConfig, log logger.LoggerInterface) (*Provider, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("fx"),
	)
	if err != nil {
		return nil, err
	}
	return &Provider{config: cfg, client: client, logger: log}, nil
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// USDRate implements app.RateProvider. USD converts at identity; JPY
// uses the live endpoint with the static fallback; other currencies
// are rejected.
func (p *Provider) USDRate(ctx context.Context, from money.Currency) (money.ExchangeRate, error) {
	switch from {
	case money.USD:
		return money.NewExchangeRate(money.USD, money.USD, decimal.NewFromInt(1))
	case money.JPY:
		return money.NewExchangeRate(money.JPY, money.USD, p.jpyUSD(ctx))
	default:
		return money.ExchangeRate{}, apperror.New(apperror.CodeFXCurrencyUnknown,
			apperror.WithContext(string(from)))
	}
}

func (p *Provider) jpyUSD(ctx context.Context) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cached.IsZero() && time.Since(p.fetchedAt) < rateTTL {
		return p.cached
	}

	var result ratesResponse
	resp, err := p.client.NewRequest().
		SetResult(&result).
		Get(ctx, p.config.RateURL)
	if err != nil || resp.IsError() {
		p.logger.Warn(ctx, "live fx rate unavailable, using fallback",
			"fallback", p.config.FallbackJPYUSD, "error", err)
		return p.config.FallbackJPYUSD
	}

	rate := decimal.NewFromFloat(result.Rates["USD"])
	if !rate.IsPositive() {
		p.logger.Warn(ctx, "live fx rate invalid, using fallback",
			"rate", rate, "fallback", p.config.FallbackJPYUSD)
		return p.config.FallbackJPYUSD
	}

	p.cached = rate
	p.fetchedAt = time.Now()
	p.logger.Debug(ctx, "fx rate refreshed", "jpy_usd", rate)
	return rate
}
