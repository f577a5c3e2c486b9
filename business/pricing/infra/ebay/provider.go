// Package ebay implements the sold-price provider backed by the eBay
// Browse API.
package ebay

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"strconv"
	"sync"
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

// Trading Cards category on eBay.
const defaultCategoryID = "31388"

// tokenExpiryMargin renews the OAuth token well before eBay invalidates it.
const tokenExpiryMargin = 5 * time.Minute

// browseTimeout caps a single Browse API call.
const browseTimeout = 20 * time.Second

// ProviderConfig holds eBay Browse API settings.
type ProviderConfig struct {
	ClientID          string
	ClientSecret      string
	BaseURL           string
	AuthURL           string
	MaxResults        int
	RequestsPerMinute int
}

// Provider fetches sold listings from the eBay Browse API using the
// client-credentials OAuth flow.
type Provider struct {
	config  ProviderConfig
	client  httpclient.Client
	logger  logger.LoggerInterface
	limiter *ratelimit.Limiter
	cb      *circuitbreaker.CircuitBreaker[*httpclient.Response]

	tokenMu      sync.Mutex
	accessToken  string
	tokenExpires time.Time
}

// NewProvider creates an eBay provider.
func NewProvider(cfg ProviderConfig, log logger.LoggerInterface) (*Provider, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("ebay"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(browseTimeout),
	)
	if err != nil {
		return nil, err
	}

	cbCfg := circuitbreaker.DefaultConfig("ebay-browse")
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
	return domain.ProviderEbay
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type searchResponse struct {
	ItemSummaries []struct {
		ItemID    string `json:"itemId"`
		Title     string `json:"title"`
		Condition string `json:"condition"`
		EndDate   string `json:"itemEndDate"`
		Price     struct {
			Value    string `json:"value"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"itemSummaries"`
}

// authenticate obtains (or reuses) an OAuth access token via the
// client-credentials grant.
func (p *Provider) authenticate(ctx context.Context) (string, error) {
	p.tokenMu.Lock()
	defer p.tokenMu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpires) {
		return p.accessToken, nil
	}

	creds := base64.StdEncoding.EncodeToString([]byte(p.config.ClientID + ":" + p.config.ClientSecret))
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "https://api.ebay.com/oauth/api_scope")

	var token tokenResponse
	resp, err := p.client.NewRequest().
		SetHeader("Authorization", "Basic "+creds).
		SetFormBody(form).
		SetResult(&token).
		Post(ctx, p.config.AuthURL)
	if err != nil {
		return "", apperror.New(apperror.CodeEbayAuthFailed, apperror.WithCause(err))
	}
	if resp.IsError() || token.AccessToken == "" {
		return "", apperror.New(apperror.CodeEbayAuthFailed,
			apperror.WithContext("token endpoint returned "+resp.Status))
	}

	p.accessToken = token.AccessToken
	p.tokenExpires = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin)
	p.logger.Debug(ctx, "ebay token refreshed", "expires", p.tokenExpires)
	return p.accessToken, nil
}

// SoldPrices implements app.SoldPriceProvider using the Browse API
// item summary search filtered to sold items.
func (p *Provider) SoldPrices(ctx context.Context, query string) ([]domain.SoldObservation, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := p.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	resp, err := p.cb.Execute(func() (*httpclient.Response, error) {
		return p.client.NewRequest().
			SetHeader("Authorization", "Bearer "+token).
			SetHeader("X-EBAY-C-MARKETPLACE-ID", "EBAY-US").
			SetQueryParam("q", query).
			SetQueryParam("category_ids", defaultCategoryID).
			SetQueryParam("limit", strconv.Itoa(p.config.MaxResults)).
			SetQueryParam("filter", "soldItems").
			SetResult(&result).
			Get(ctx, "/buy/browse/v1/item_summary/search")
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			return nil, apperror.New(apperror.CodeCircuitOpen, apperror.WithContext("ebay-browse"))
		}
		return nil, apperror.New(apperror.CodeEbayAPIError, apperror.WithCause(err))
	}
	if resp.StatusCode == 429 {
		return nil, apperror.New(apperror.CodeEbayRateLimited)
	}
	if resp.IsError() {
		return nil, apperror.New(apperror.CodeEbayBadResponse,
			apperror.WithContext("search returned "+resp.Status))
	}

	observations := make([]domain.SoldObservation, 0, len(result.ItemSummaries))
	for _, item := range result.ItemSummaries {
		if item.Price.Currency != "" && item.Price.Currency != "USD" {
			continue
		}
		price, err := decimal.NewFromString(item.Price.Value)
		if err != nil || !price.IsPositive() {
			continue
		}
		graded, tier := domain.ClassifyGrade(item.Title)
		observedAt, _ := time.Parse(time.RFC3339, item.EndDate)
		observations = append(observations, domain.SoldObservation{
			Provider:   domain.ProviderEbay,
			PriceUSD:   price,
			Graded:     graded,
			Grade:      tier,
			ObservedAt: observedAt,
		})
	}

	p.logger.Debug(ctx, "ebay sold search complete",
		"query", query, "raw_items", len(result.ItemSummaries), "observations", len(observations))
	return observations, nil
}
