// Package domain contains the core domain types for the arbitrage context.
package domain

import (
	"github.com/shopspring/decimal"

	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
)

var oneHundred = decimal.NewFromInt(100)

// ProfitResult carries the profitability figures for a single listing.
// HasEvidence distinguishes "no comparable sold data" from "zero profit":
// when false, ProfitUSD and MarginPct are meaningless and must not feed
// into a recommendation.
type ProfitResult struct {
	ProfitUSD   decimal.Decimal
	MarginPct   decimal.Decimal
	HasEvidence bool
	// HasMargin is false when the listed price is zero: profit is still
	// computed against the effective reference, but a margin over a free
	// listing is undefined.
	HasMargin bool
}

// ComputeProfit derives profit and margin for a listing priced in USD
// against a reference estimate, adjusted for the listing's condition.
//
// The reference median describes top-condition sales, so it is scaled
// down by the condition factor before comparison. An absent reference
// yields an absent result rather than zero profit.
func ComputeProfit(listedUSD decimal.Decimal, conditionFactor decimal.Decimal, ref pricingDomain.ReferencePrice) (ProfitResult, error) {
	if listedUSD.IsNegative() {
		return ProfitResult{}, apperror.New(
			apperror.CodeNegativeListedPrice,
			apperror.WithMessage("listed price is negative: "+listedUSD.String()),
		)
	}
	if !ref.HasEvidence() {
		return ProfitResult{}, nil
	}

	effective := ref.Median.Mul(conditionFactor)
	profit := effective.Sub(listedUSD)

	result := ProfitResult{
		ProfitUSD:   profit,
		HasEvidence: true,
	}
	if listedUSD.IsPositive() {
		result.MarginPct = profit.Div(listedUSD).Mul(oneHundred)
		result.HasMargin = true
	}
	return result, nil
}

// NetProfitUSD applies marketplace costs on top of the gross profit:
// a proportional selling fee on the listed price plus flat shipping.
// It is a reporting figure only; recommendations are driven by the
// gross ProfitResult.
func NetProfitUSD(result ProfitResult, listedUSD, feeRate, shippingUSD decimal.Decimal) decimal.Decimal {
	if !result.HasEvidence {
		return decimal.Zero
	}
	return result.ProfitUSD.Sub(listedUSD.Mul(feeRate)).Sub(shippingUSD)
}
