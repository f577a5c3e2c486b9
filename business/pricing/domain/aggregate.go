package domain

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ReferencePrice is the synthesized sale-price belief for one grade
// population. SampleCount == 0 means the median is absent: there is no
// evidence, and that is a distinct state from a zero price.
type ReferencePrice struct {
	Median      decimal.Decimal
	SampleCount int
	SpreadRatio decimal.Decimal
	SourceCount int
	Fallback    bool
}

// HasEvidence reports whether the estimate carries a usable median.
func (r ReferencePrice) HasEvidence() bool {
	return r.SampleCount > 0
}

// Aggregate reduces sold observations into per-grade-tier reference
// estimates. Observations with non-positive prices are rejected. The
// result is a pure function of the observation multiset: permuting the
// input never changes the output.
func Aggregate(observations []SoldObservation) map[GradeTier]ReferencePrice {
	populations := make(map[GradeTier][]SoldObservation)
	for _, obs := range observations {
		if !obs.PriceUSD.IsPositive() {
			continue
		}
		tier := obs.Tier()
		populations[tier] = append(populations[tier], obs)
	}

	out := make(map[GradeTier]ReferencePrice, 4)
	for _, tier := range []GradeTier{GradeRaw, GradePSA9, GradePSA10, GradeOther} {
		out[tier] = summarize(populations[tier])
	}
	return out
}

// summarize computes the median, spread ratio and source count of one
// population.
func summarize(population []SoldObservation) ReferencePrice {
	if len(population) == 0 {
		return ReferencePrice{SpreadRatio: decimal.Zero}
	}

	prices := make([]decimal.Decimal, len(population))
	providers := make(map[Provider]struct{})
	for i, obs := range population {
		prices[i] = obs.PriceUSD
		providers[obs.Provider] = struct{}{}
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].LessThan(prices[j]) })

	median := medianOf(prices)
	spread := decimal.Zero
	if median.IsPositive() {
		spread = stddevOf(prices).Div(median)
	}

	return ReferencePrice{
		Median:      median,
		SampleCount: len(prices),
		SpreadRatio: spread,
		SourceCount: len(providers),
	}
}

// medianOf expects prices sorted ascending.
func medianOf(prices []decimal.Decimal) decimal.Decimal {
	n := len(prices)
	if n%2 == 1 {
		return prices[n/2]
	}
	return prices[n/2-1].Add(prices[n/2]).Div(decimal.NewFromInt(2))
}

// stddevOf computes the population standard deviation.
func stddevOf(prices []decimal.Decimal) decimal.Decimal {
	n := decimal.NewFromInt(int64(len(prices)))

	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
	}
	mean := sum.Div(n)

	variance := decimal.Zero
	for _, p := range prices {
		diff := p.Sub(mean)
		variance = variance.Add(diff.Mul(diff))
	}
	variance = variance.Div(n)

	// decimal has no Sqrt; go through float64. Spread feeds a bounded
	// risk term, so float precision is acceptable here.
	f, _ := variance.Float64()
	if f <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Sqrt(f))
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
