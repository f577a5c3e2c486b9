package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/business/listing/domain"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/money"
)

type fakeCollector struct {
	listings []domain.RawListing
	err      error
}

func (f *fakeCollector) Collect(_ context.Context, _ string, _ int) ([]domain.RawListing, error) {
	return f.listings, f.err
}

func testLogger() logger.LoggerInterface {
	return logger.New(&bytes.Buffer{}, logger.LevelDebug, "test", nil)
}

func rawListing(title, price, url string) domain.RawListing {
	return domain.RawListing{
		Title:       title,
		ListedPrice: decimal.RequireFromString(price),
		Currency:    money.JPY,
		ListingURL:  url,
	}
}

func TestCollectDropsInvalidAndDuplicates(t *testing.T) {
	svc := NewListingService(&fakeCollector{listings: []domain.RawListing{
		rawListing("Blue-Eyes White Dragon", "10000", "https://buyee.jp/item/a"),
		rawListing("negative price", "-50", "https://buyee.jp/item/b"),
		rawListing("Blue-Eyes duplicate", "10000", "https://buyee.jp/item/a"),
		rawListing("Dark Magician", "4000", "https://buyee.jp/item/c"),
	}}, testLogger(), nil)

	got, err := svc.Collect(context.Background(), "yugioh", 20)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kept %d listings, want 2", len(got))
	}
	if got[0].ListingURL != "https://buyee.jp/item/a" || got[1].ListingURL != "https://buyee.jp/item/c" {
		t.Errorf("unexpected survivors: %v, %v", got[0].ListingURL, got[1].ListingURL)
	}
}

func TestCollectPropagatesCollectorError(t *testing.T) {
	want := errors.New("browser crashed")
	svc := NewListingService(&fakeCollector{err: want}, testLogger(), nil)

	if _, err := svc.Collect(context.Background(), "", 10); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestCollectEmptyResultIsNotAnError(t *testing.T) {
	svc := NewListingService(&fakeCollector{}, testLogger(), nil)

	got, err := svc.Collect(context.Background(), "obscure card", 10)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d listings, want 0", len(got))
	}
}
