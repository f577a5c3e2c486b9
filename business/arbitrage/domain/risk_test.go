package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	listingDomain "github.com/fd1az/card-arbitrage/business/listing/domain"
	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
)

func evidence(samples, sources int, spread string) pricingDomain.ReferencePrice {
	return pricingDomain.ReferencePrice{
		Median:      decimal.RequireFromString("120"),
		SampleCount: samples,
		SourceCount: sources,
		SpreadRatio: decimal.RequireFromString(spread),
	}
}

func knownCond() listingDomain.ConditionAssessment {
	return listingDomain.ConditionAssessment{Ordinal: listingDomain.ConditionGood, Factor: decimal.RequireFromString("0.8")}
}

func unknownCond() listingDomain.ConditionAssessment {
	return listingDomain.ConditionAssessment{Ordinal: listingDomain.ConditionUnknown, Factor: decimal.NewFromInt(1)}
}

func TestEstimateRiskNoEvidenceIsMaximal(t *testing.T) {
	got := EstimateRisk(pricingDomain.ReferencePrice{}, unknownCond())
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("risk without evidence = %s, want 1", got)
	}
}

func TestEstimateRiskBoundaryScenario(t *testing.T) {
	// 5 samples across 2 providers with a tight spread should land in a
	// low-moderate band even with unknown condition.
	got := EstimateRisk(evidence(5, 2, "0.15"), unknownCond())
	if got.LessThan(decimal.RequireFromString("0.30")) || got.GreaterThan(decimal.RequireFromString("0.45")) {
		t.Errorf("risk = %s, want within [0.30, 0.45]", got)
	}
	if got.GreaterThanOrEqual(decimal.RequireFromString("0.9")) {
		t.Errorf("risk = %s unexpectedly near maximum", got)
	}
}

func TestEstimateRiskMonotonicInSamples(t *testing.T) {
	prev := decimal.NewFromInt(2)
	for _, n := range []int{1, 2, 5, 10, 50, 500} {
		got := EstimateRisk(evidence(n, 1, "0.2"), knownCond())
		if got.GreaterThan(prev) {
			t.Fatalf("risk increased from %s to %s as samples grew to %d", prev, got, n)
		}
		prev = got
	}
	// Sample count alone never drives risk to zero.
	if prev.IsZero() {
		t.Error("risk reached zero from sample count alone")
	}
}

func TestEstimateRiskMonotonicInSpread(t *testing.T) {
	tight := EstimateRisk(evidence(5, 2, "0.05"), knownCond())
	loose := EstimateRisk(evidence(5, 2, "0.80"), knownCond())
	if !tight.LessThan(loose) {
		t.Errorf("tight spread risk %s not below loose spread risk %s", tight, loose)
	}
}

func TestEstimateRiskCrossProviderAgreement(t *testing.T) {
	single := EstimateRisk(evidence(6, 1, "0.2"), knownCond())
	double := EstimateRisk(evidence(6, 2, "0.2"), knownCond())
	if !double.LessThan(single) {
		t.Errorf("two-provider risk %s not below single-provider risk %s", double, single)
	}
}

func TestEstimateRiskUnknownConditionPenalty(t *testing.T) {
	known := EstimateRisk(evidence(5, 2, "0.15"), knownCond())
	unknown := EstimateRisk(evidence(5, 2, "0.15"), unknownCond())
	if !unknown.Sub(known).Equal(decimal.RequireFromString("0.10")) {
		t.Errorf("unknown condition penalty = %s, want 0.10", unknown.Sub(known))
	}
}

func TestEstimateRiskFallbackPenalty(t *testing.T) {
	direct := evidence(5, 2, "0.15")
	fallback := direct
	fallback.Fallback = true

	a := EstimateRisk(direct, knownCond())
	b := EstimateRisk(fallback, knownCond())
	if !b.GreaterThan(a) {
		t.Errorf("fallback estimate risk %s not above direct risk %s", b, a)
	}
}

func TestEstimateRiskClampedToUnit(t *testing.T) {
	// Worst realistic case: one sample, one source, huge spread, unknown
	// condition, fallback estimate.
	worst := evidence(1, 1, "5.0")
	worst.Fallback = true
	got := EstimateRisk(worst, unknownCond())
	if got.GreaterThan(decimal.NewFromInt(1)) || got.IsNegative() {
		t.Errorf("risk = %s, want within [0,1]", got)
	}
}
