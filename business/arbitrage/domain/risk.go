package domain

import (
	"github.com/shopspring/decimal"

	listingDomain "github.com/fd1az/card-arbitrage/business/listing/domain"
	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
)

// Risk weights. Sparsity dominates because a thin sample is the most
// common way a reference estimate goes wrong; the remaining weight is
// split across price disagreement, provider coverage, and the fixed
// penalties for unknown condition and fallback estimates.
var (
	riskWeightSparsity     = decimal.RequireFromString("0.55")
	riskWeightSpread       = decimal.RequireFromString("0.20")
	riskWeightSource       = decimal.RequireFromString("0.15")
	riskPenaltyUnknownCond = decimal.RequireFromString("0.10")
	riskPenaltyFallback    = decimal.RequireFromString("0.10")
)

// EstimateRisk scores the uncertainty of a reference estimate on [0,1],
// 1 being maximal. Risk only ever decreases as evidence improves: more
// samples, more providers, and tighter spread each reduce their own
// term and touch nothing else.
func EstimateRisk(ref pricingDomain.ReferencePrice, condition listingDomain.ConditionAssessment) decimal.Decimal {
	if !ref.HasEvidence() {
		return decimal.NewFromInt(1)
	}

	// 1/(1+0.5n): halves quickly for the first few observations, then
	// flattens so sample count alone never reaches zero risk.
	n := decimal.NewFromInt(int64(ref.SampleCount))
	sparsity := decimal.NewFromInt(1).Div(decimal.NewFromInt(1).Add(n.Mul(decimal.RequireFromString("0.5"))))

	spread := ref.SpreadRatio
	if spread.GreaterThan(decimal.NewFromInt(1)) {
		spread = decimal.NewFromInt(1)
	}

	source := decimal.NewFromInt(1)
	if ref.SourceCount > 1 {
		source = decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(ref.SourceCount)))
	}

	risk := riskWeightSparsity.Mul(sparsity).
		Add(riskWeightSpread.Mul(spread)).
		Add(riskWeightSource.Mul(source))

	if condition.Ordinal == listingDomain.ConditionUnknown {
		risk = risk.Add(riskPenaltyUnknownCond)
	}
	if ref.Fallback {
		risk = risk.Add(riskPenaltyFallback)
	}

	return clampUnit(risk)
}

func clampUnit(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return d
}
