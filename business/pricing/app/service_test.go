package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/money"
)

type fakeProvider struct {
	name domain.Provider
	obs  []domain.SoldObservation
	err  error
}

func (f *fakeProvider) Name() domain.Provider { return f.name }

func (f *fakeProvider) SoldPrices(_ context.Context, _ string) ([]domain.SoldObservation, error) {
	return f.obs, f.err
}

type fakeRates struct{}

func (fakeRates) USDRate(_ context.Context, from money.Currency) (money.ExchangeRate, error) {
	return money.NewExchangeRate(from, money.USD, decimal.RequireFromString("0.0067"))
}

func testLogger() logger.LoggerInterface {
	return logger.New(&bytes.Buffer{}, logger.LevelDebug, "test", nil)
}

func soldAt(provider domain.Provider, price string) domain.SoldObservation {
	return domain.SoldObservation{
		Provider: provider,
		PriceUSD: decimal.RequireFromString(price),
		Grade:    domain.GradeRaw,
	}
}

func TestReferencePricesMergesProviders(t *testing.T) {
	svc := NewPricingService([]SoldPriceProvider{
		&fakeProvider{name: domain.ProviderEbay, obs: []domain.SoldObservation{
			soldAt(domain.ProviderEbay, "100"),
			soldAt(domain.ProviderEbay, "120"),
		}},
		&fakeProvider{name: domain.ProviderPoint130, obs: []domain.SoldObservation{
			soldAt(domain.ProviderPoint130, "110"),
		}},
	}, fakeRates{}, testLogger(), nil)

	perGrade, err := svc.ReferencePrices(context.Background(), "dark magician")
	if err != nil {
		t.Fatalf("ReferencePrices: %v", err)
	}

	raw := perGrade[domain.GradeRaw]
	if raw.SampleCount != 3 {
		t.Errorf("SampleCount = %d, want 3", raw.SampleCount)
	}
	if raw.SourceCount != 2 {
		t.Errorf("SourceCount = %d, want 2", raw.SourceCount)
	}
	if !raw.Median.Equal(decimal.RequireFromString("110")) {
		t.Errorf("Median = %s, want 110", raw.Median)
	}
}

func TestReferencePricesToleratesPartialFailure(t *testing.T) {
	svc := NewPricingService([]SoldPriceProvider{
		&fakeProvider{name: domain.ProviderEbay, err: errors.New("api down")},
		&fakeProvider{name: domain.ProviderPoint130, obs: []domain.SoldObservation{
			soldAt(domain.ProviderPoint130, "110"),
		}},
	}, fakeRates{}, testLogger(), nil)

	perGrade, err := svc.ReferencePrices(context.Background(), "dark magician")
	if err != nil {
		t.Fatalf("partial failure must not fail the lookup: %v", err)
	}
	if perGrade[domain.GradeRaw].SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", perGrade[domain.GradeRaw].SampleCount)
	}
}

func TestReferencePricesAllProvidersFailed(t *testing.T) {
	svc := NewPricingService([]SoldPriceProvider{
		&fakeProvider{name: domain.ProviderEbay, err: errors.New("api down")},
		&fakeProvider{name: domain.ProviderPoint130, err: errors.New("blocked")},
	}, fakeRates{}, testLogger(), nil)

	_, err := svc.ReferencePrices(context.Background(), "dark magician")
	if err == nil {
		t.Fatal("expected error when every provider failed")
	}
	if apperror.GetCode(err) != apperror.CodeAggregationFailed {
		t.Errorf("error code = %s, want %s", apperror.GetCode(err), apperror.CodeAggregationFailed)
	}
}

func TestReferencePricesEmptyEvidenceIsNotAnError(t *testing.T) {
	svc := NewPricingService([]SoldPriceProvider{
		&fakeProvider{name: domain.ProviderPoint130},
	}, fakeRates{}, testLogger(), nil)

	perGrade, err := svc.ReferencePrices(context.Background(), "obscure promo")
	if err != nil {
		t.Fatalf("ReferencePrices: %v", err)
	}
	if perGrade[domain.GradeRaw].HasEvidence() {
		t.Error("no observations must yield an absent estimate, not an error")
	}
}
