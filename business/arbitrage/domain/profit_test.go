package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
)

func ref(median string, samples int) pricingDomain.ReferencePrice {
	return pricingDomain.ReferencePrice{
		Median:      decimal.RequireFromString(median),
		SampleCount: samples,
		SourceCount: 1,
	}
}

func TestComputeProfitBasic(t *testing.T) {
	got, err := ComputeProfit(decimal.RequireFromString("67"), decimal.NewFromInt(1), ref("120", 5))
	if err != nil {
		t.Fatalf("ComputeProfit: %v", err)
	}
	if !got.HasEvidence || !got.HasMargin {
		t.Fatalf("expected evidence and margin, got %+v", got)
	}
	if !got.ProfitUSD.Equal(decimal.RequireFromString("53")) {
		t.Errorf("ProfitUSD = %s, want 53", got.ProfitUSD)
	}
	wantMargin := decimal.RequireFromString("79.1")
	if got.MarginPct.Sub(wantMargin).Abs().GreaterThan(decimal.RequireFromString("0.1")) {
		t.Errorf("MarginPct = %s, want ≈79.1", got.MarginPct)
	}
}

func TestComputeProfitAbsentReference(t *testing.T) {
	got, err := ComputeProfit(decimal.RequireFromString("67"), decimal.NewFromInt(1), pricingDomain.ReferencePrice{})
	if err != nil {
		t.Fatalf("ComputeProfit: %v", err)
	}
	if got.HasEvidence {
		t.Errorf("absent reference must yield absent profit, got %+v", got)
	}
}

func TestComputeProfitConditionPenalty(t *testing.T) {
	listed := decimal.RequireFromString("40")
	full, _ := ComputeProfit(listed, decimal.RequireFromString("1.0"), ref("120", 5))
	damaged, _ := ComputeProfit(listed, decimal.RequireFromString("0.6"), ref("120", 5))

	if !damaged.ProfitUSD.LessThan(full.ProfitUSD) {
		t.Errorf("damaged profit %s not below full-condition profit %s", damaged.ProfitUSD, full.ProfitUSD)
	}
	if !damaged.MarginPct.LessThan(full.MarginPct) {
		t.Errorf("damaged margin %s not below full-condition margin %s", damaged.MarginPct, full.MarginPct)
	}
	// 120*0.6 - 40 = 32
	if !damaged.ProfitUSD.Equal(decimal.RequireFromString("32")) {
		t.Errorf("damaged ProfitUSD = %s, want 32", damaged.ProfitUSD)
	}
}

func TestComputeProfitZeroListedPrice(t *testing.T) {
	got, err := ComputeProfit(decimal.Zero, decimal.NewFromInt(1), ref("120", 5))
	if err != nil {
		t.Fatalf("ComputeProfit: %v", err)
	}
	if !got.HasEvidence {
		t.Fatal("profit should still be computed for a zero listed price")
	}
	if got.HasMargin {
		t.Error("margin over a zero listed price must be absent")
	}
	if !got.ProfitUSD.Equal(decimal.RequireFromString("120")) {
		t.Errorf("ProfitUSD = %s, want 120", got.ProfitUSD)
	}
}

func TestComputeProfitNegativeListedPrice(t *testing.T) {
	_, err := ComputeProfit(decimal.RequireFromString("-1"), decimal.NewFromInt(1), ref("120", 5))
	if err == nil {
		t.Fatal("expected error for negative listed price")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeNegativeListedPrice {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNetProfitSubtractsCosts(t *testing.T) {
	result, _ := ComputeProfit(decimal.RequireFromString("67"), decimal.NewFromInt(1), ref("120", 5))
	net := NetProfitUSD(result, decimal.RequireFromString("67"), decimal.RequireFromString("0.15"), decimal.RequireFromString("5"))
	// 53 - 67*0.15 - 5 = 37.95
	if !net.Equal(decimal.RequireFromString("37.95")) {
		t.Errorf("NetProfitUSD = %s, want 37.95", net)
	}
}
