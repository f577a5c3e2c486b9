package buyee

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/money"
)

func testCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector(CollectorConfig{
		BaseURL:           "https://buyee.jp",
		Category:          "2084229064",
		MaxListings:       40,
		Headless:          true,
		NavTimeout:        30 * time.Second,
		RequestsPerMinute: 6,
	}, logger.New(&bytes.Buffer{}, logger.LevelDebug, "test", nil))
}

func TestSearchURLWithQuery(t *testing.T) {
	got := testCollector(t).searchURL("青眼の白龍 初期")
	want := "https://buyee.jp/item/search/query/%E9%9D%92%E7%9C%BC%E3%81%AE%E7%99%BD%E9%BE%8D%20%E5%88%9D%E6%9C%9F?sort=popularity&category=2084229064"
	if got != want {
		t.Errorf("searchURL = %q, want %q", got, want)
	}
}

func TestSearchURLEmptyQueryBrowsesCategory(t *testing.T) {
	got := testCollector(t).searchURL("")
	want := "https://buyee.jp/item/search/category/2084229064?sort=popularity"
	if got != want {
		t.Errorf("searchURL = %q, want %q", got, want)
	}
}

func TestListingFromCard(t *testing.T) {
	c := testCollector(t)
	listing, ok := c.listing(context.Background(), itemCard{
		Title:     "遊戯王 青眼の白龍 LOB-001 美品",
		Price:     "12,500 円",
		Condition: "中古",
		URL:       "https://buyee.jp/item/yahoo/auction/x123",
		Image:     "https://img.buyee.jp/x123.jpg",
	})
	if !ok {
		t.Fatal("listing() rejected a valid card")
	}

	if !listing.ListedPrice.Equal(decimal.RequireFromString("12500")) {
		t.Errorf("price = %s, want 12500", listing.ListedPrice)
	}
	if listing.Currency != money.JPY {
		t.Errorf("currency = %s, want JPY", listing.Currency)
	}
	if listing.Card.SetCode != "LOB" {
		t.Errorf("set code = %q, want LOB", listing.Card.SetCode)
	}
	if listing.TitleEN == listing.Title {
		t.Error("title should have been translated")
	}
}

func TestListingRejectsUnparseablePrice(t *testing.T) {
	c := testCollector(t)
	if _, ok := c.listing(context.Background(), itemCard{
		Title: "no price here",
		Price: "SOLD",
		URL:   "https://buyee.jp/item/yahoo/auction/x999",
	}); ok {
		t.Error("listing() accepted a card without a numeric price")
	}
}
