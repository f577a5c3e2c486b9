// Package point130 implements the sold-price provider backed by the
// 130point.com sales lookup endpoint.
package point130

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
	"github.com/fd1az/card-arbitrage/internal/circuitbreaker"
	"github.com/fd1az/card-arbitrage/internal/httpclient"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/ratelimit"
)

// ProviderConfig holds 130point settings.
type ProviderConfig struct {
	BaseURL           string
	MaxResults        int
	RequestsPerMinute int
}

// Provider queries the 130point sales endpoint. The endpoint answers
// with an HTML fragment of sale rows rather than JSON, so prices and
// grade labels are pulled out of the markup directly.
type Provider struct {
	config  ProviderConfig
	client  httpclient.Client
	logger  logger.LoggerInterface
	limiter *ratelimit.Limiter
	cb      *circuitbreaker.CircuitBreaker[*httpclient.Response]
}

// NewProvider creates a 130point provider.
func NewProvider(cfg ProviderConfig, log logger.LoggerInterface) (*Provider, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("130point"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithHeaders(map[string]string{
			"Accept":  "*/*",
			"Referer": "https://130point.com/",
			"Origin":  "https://130point.com",
		}),
	)
	if err != nil {
		return nil, err
	}

	cbCfg := circuitbreaker.DefaultConfig("130point-sales")
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Info(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Provider{
		config:  cfg,
		client:  client,
		logger:  log,
		limiter: ratelimit.New(cfg.RequestsPerMinute),
		cb:      circuitbreaker.New[*httpclient.Response](cbCfg),
	}, nil
}

// Name implements app.SoldPriceProvider.
func (p *Provider) Name() domain.Provider {
	return domain.ProviderPoint130
}

// Sale rows carry the final price in a bid link and the grade in the
// row text. Parsing is intentionally shallow: anything that fails a
// pattern is skipped, not an error.
var (
	priceAttrPattern = regexp.MustCompile(`data-price="([0-9][0-9.,]*)"`)
	bidLinkPattern   = regexp.MustCompile(`(?s)class="bidLink"[^>]*>\s*\$?([0-9][0-9.,]*)`)
	rowPattern       = regexp.MustCompile(`(?s)<tr[^>]*id="rowsold_dataTable[^"]*"[^>]*>(.*?)</tr>`)
)

// SoldPrices implements app.SoldPriceProvider.
func (p *Provider) SoldPrices(ctx context.Context, query string) ([]domain.SoldObservation, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("query", query)
	form.Set("type", "2")
	form.Set("subcat", "-1")

	resp, err := p.cb.Execute(func() (*httpclient.Response, error) {
		return p.client.NewRequest().
			SetFormBody(form).
			Post(ctx, "/sales/")
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			return nil, apperror.New(apperror.CodeCircuitOpen, apperror.WithContext("130point-sales"))
		}
		return nil, apperror.New(apperror.CodePoint130APIError, apperror.WithCause(err))
	}
	if resp.IsError() {
		return nil, apperror.New(apperror.CodePoint130BadResponse,
			apperror.WithContext("sales endpoint returned "+resp.Status))
	}

	observations := p.parseSales(resp.String())
	if p.config.MaxResults > 0 && len(observations) > p.config.MaxResults {
		observations = observations[:p.config.MaxResults]
	}

	p.logger.Debug(ctx, "130point sales parsed",
		"query", query, "observations", len(observations))
	return observations, nil
}

// parseSales extracts sold observations from the HTML fragment. Each
// sale row yields at most one observation; the grade tier comes from
// the row's own text (PSA labels appear next to the price).
func (p *Provider) parseSales(body string) []domain.SoldObservation {
	now := time.Now()
	var observations []domain.SoldObservation

	rows := rowPattern.FindAllStringSubmatch(body, -1)
	if len(rows) == 0 {
		// Older markup variant: no table rows, prices exposed as
		// data-price attributes on the sale links.
		for _, m := range priceAttrPattern.FindAllStringSubmatch(body, -1) {
			if obs, ok := p.observation(m[1], "", now); ok {
				observations = append(observations, obs)
			}
		}
		return observations
	}

	for _, row := range rows {
		m := bidLinkPattern.FindStringSubmatch(row[1])
		if m == nil {
			m = priceAttrPattern.FindStringSubmatch(row[1])
		}
		if m == nil {
			continue
		}
		if obs, ok := p.observation(m[1], row[1], now); ok {
			observations = append(observations, obs)
		}
	}
	return observations
}

func (p *Provider) observation(rawPrice, rowText string, at time.Time) (domain.SoldObservation, bool) {
	price, err := decimal.NewFromString(strings.ReplaceAll(rawPrice, ",", ""))
	if err != nil || !price.IsPositive() {
		return domain.SoldObservation{}, false
	}
	graded, tier := domain.ClassifyGrade(rowText)
	return domain.SoldObservation{
		Provider:   domain.ProviderPoint130,
		PriceUSD:   price,
		Graded:     graded,
		Grade:      tier,
		ObservedAt: at,
	}, true
}
