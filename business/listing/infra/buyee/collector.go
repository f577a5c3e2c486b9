// Package buyee implements listing collection from buyee.jp, the proxy
// front for Yahoo Auctions Japan. Buyee renders listings client-side,
// so collection drives a headless browser rather than plain HTTP.
package buyee

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/business/listing/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/money"
	"github.com/fd1az/card-arbitrage/internal/ratelimit"
)

// priceDigits strips currency markers and separators from a rendered
// price like "1,250 円".
var priceDigits = regexp.MustCompile(`[\d,]+`)

// CollectorConfig holds Buyee collection settings.
type CollectorConfig struct {
	BaseURL           string
	Category          string
	MaxListings       int
	Headless          bool
	NavTimeout        time.Duration
	RequestsPerMinute int
}

// Collector scrapes live listings from Buyee search pages.
type Collector struct {
	config  CollectorConfig
	logger  logger.LoggerInterface
	limiter *ratelimit.Limiter
}

// NewCollector creates a Buyee collector.
func NewCollector(cfg CollectorConfig, log logger.LoggerInterface) *Collector {
	return &Collector{
		config:  cfg,
		logger:  log,
		limiter: ratelimit.New(cfg.RequestsPerMinute),
	}
}

// itemCard mirrors the fields pulled out of one rendered listing card.
type itemCard struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	Condition string `json:"condition"`
	URL       string `json:"url"`
	Image     string `json:"image"`
}

// Collect implements app.Collector. An empty query browses the
// configured trading-card category.
func (c *Collector) Collect(ctx context.Context, query string, max int) ([]domain.RawListing, error) {
	if max <= 0 || max > c.config.MaxListings {
		max = c.config.MaxListings
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := c.searchURL(query)
	c.logger.Info(ctx, "collecting buyee listings", "url", searchURL, "max", max)

	cards, err := c.fetchCards(ctx, searchURL, max)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.RawListing, 0, len(cards))
	for _, card := range cards {
		listing, ok := c.listing(ctx, card)
		if !ok {
			continue
		}
		listings = append(listings, listing)
	}

	if len(cards) > 0 && len(listings) == 0 {
		return nil, apperror.New(apperror.CodeCollectorParseFailed,
			apperror.WithMessage("no card yielded a usable listing"),
			apperror.WithContext(fmt.Sprintf("%d cards scraped", len(cards))),
		)
	}

	c.logger.Info(ctx, "buyee collection complete", "cards", len(cards), "listings", len(listings))
	return listings, nil
}

// searchURL builds the Buyee search page URL for a query, or the
// category browse page when the query is empty.
func (c *Collector) searchURL(query string) string {
	base := strings.TrimRight(c.config.BaseURL, "/")
	if query == "" {
		return fmt.Sprintf("%s/item/search/category/%s?sort=popularity", base, c.config.Category)
	}
	return fmt.Sprintf("%s/item/search/query/%s?sort=popularity&category=%s",
		base, url.PathEscape(query), c.config.Category)
}

// fetchCards drives the browser: navigate, wait for the result list to
// render, then pull the card fields out in one Evaluate.
func (c *Collector) fetchCards(ctx context.Context, pageURL string, max int) ([]itemCard, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if bin := findChromeBinary(); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, c.config.NavTimeout)
	defer cancelTimeout()

	var cards []itemCard
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("li.itemCard", chromedp.ByQuery),
		chromedp.Evaluate(`
			(function() {
				var results = [];
				var limit = `+fmt.Sprintf("%d", max)+`;
				var cards = document.querySelectorAll('li.itemCard');
				for (var i = 0; i < cards.length && results.length < limit; i++) {
					var card = cards[i];

					var titleEl = card.querySelector('div.itemCard__itemName');
					var priceEl = card.querySelector('.itemCard__itemInfo .g-price');
					var linkEl  = card.querySelector('a');
					if (!titleEl || !priceEl || !linkEl || !linkEl.href) continue;

					var condEl = card.querySelector('div.itemCard__condition');

					var image = '';
					var imgSelectors = [
						'img.lazyLoadV2.g-thumbnail__image',
						'img.g-thumbnail__image',
						'img[class*="thumbnail"]',
						'img'
					];
					for (var j = 0; j < imgSelectors.length; j++) {
						var imgEl = card.querySelector(imgSelectors[j]);
						if (!imgEl) continue;
						var src = imgEl.getAttribute('data-src') || imgEl.src || '';
						if (src && src.toLowerCase().indexOf('noimage') < 0 &&
							src.toLowerCase().indexOf('placeholder') < 0) {
							image = src;
							break;
						}
					}

					results.push({
						title:     titleEl.innerText.trim(),
						price:     priceEl.innerText.trim(),
						condition: condEl ? condEl.innerText.trim() : '',
						url:       linkEl.href,
						image:     image
					});
				}
				return results;
			})()
		`, &cards),
	)
	if err != nil {
		code := apperror.CodeCollectorNavigation
		if strings.Contains(err.Error(), "exec") {
			code = apperror.CodeCollectorBrowserFailed
		}
		return nil, apperror.New(code,
			apperror.WithMessage("loading buyee search page"),
			apperror.WithCause(err),
			apperror.WithContext(pageURL),
		)
	}

	return cards, nil
}

// listing converts one scraped card into a RawListing. Cards with an
// unparseable price are dropped, not fatal.
func (c *Collector) listing(ctx context.Context, card itemCard) (domain.RawListing, bool) {
	digits := priceDigits.FindString(card.Price)
	if digits == "" {
		c.logger.Warn(ctx, "skipping listing with unparseable price",
			"title", card.Title, "price", card.Price)
		return domain.RawListing{}, false
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(digits, ",", ""))
	if err != nil || !price.IsPositive() {
		c.logger.Warn(ctx, "skipping listing with invalid price",
			"title", card.Title, "price", card.Price)
		return domain.RawListing{}, false
	}

	return domain.RawListing{
		Title:         card.Title,
		TitleEN:       domain.TranslateTitle(card.Title),
		ListedPrice:   price,
		Currency:      money.JPY,
		ConditionText: card.Condition,
		ListingURL:    card.URL,
		ImageURL:      card.Image,
		Card:          domain.ExtractCardInfo(card.Title),
	}, true
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// CHROME_BIN override.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
