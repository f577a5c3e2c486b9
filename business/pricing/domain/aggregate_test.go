package domain

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func obs(provider Provider, price string, graded bool, grade GradeTier) SoldObservation {
	return SoldObservation{
		Provider: provider,
		PriceUSD: decimal.RequireFromString(price),
		Graded:   graded,
		Grade:    grade,
	}
}

func TestAggregatePartitionsByGradeTier(t *testing.T) {
	observations := []SoldObservation{
		obs(ProviderEbay, "100", false, ""),
		obs(ProviderEbay, "120", false, ""),
		obs(ProviderPoint130, "110", false, ""),
		obs(ProviderPoint130, "300", true, GradePSA9),
		obs(ProviderPoint130, "550", true, GradePSA10),
		obs(ProviderEbay, "200", true, GradeOther),
	}

	got := Aggregate(observations)

	raw := got[GradeRaw]
	if raw.SampleCount != 3 {
		t.Errorf("RAW SampleCount = %d, want 3", raw.SampleCount)
	}
	if !raw.Median.Equal(decimal.RequireFromString("110")) {
		t.Errorf("RAW Median = %s, want 110", raw.Median)
	}
	if raw.SourceCount != 2 {
		t.Errorf("RAW SourceCount = %d, want 2", raw.SourceCount)
	}

	if got[GradePSA9].SampleCount != 1 || got[GradePSA10].SampleCount != 1 || got[GradeOther].SampleCount != 1 {
		t.Errorf("graded populations = %d/%d/%d, want 1/1/1",
			got[GradePSA9].SampleCount, got[GradePSA10].SampleCount, got[GradeOther].SampleCount)
	}
}

func TestAggregateUsesMedianNotMean(t *testing.T) {
	// An outlier from a misclassified lot listing must not drag the
	// estimate: median of {10, 12, 500} is 12.
	observations := []SoldObservation{
		obs(ProviderEbay, "10", false, ""),
		obs(ProviderEbay, "12", false, ""),
		obs(ProviderEbay, "500", false, ""),
	}

	got := Aggregate(observations)[GradeRaw]
	if !got.Median.Equal(decimal.RequireFromString("12")) {
		t.Errorf("Median = %s, want 12", got.Median)
	}
}

func TestAggregateEvenCountMedian(t *testing.T) {
	observations := []SoldObservation{
		obs(ProviderEbay, "100", false, ""),
		obs(ProviderEbay, "200", false, ""),
	}

	got := Aggregate(observations)[GradeRaw]
	if !got.Median.Equal(decimal.RequireFromString("150")) {
		t.Errorf("Median = %s, want 150", got.Median)
	}
}

func TestAggregateRejectsNonPositivePrices(t *testing.T) {
	observations := []SoldObservation{
		obs(ProviderEbay, "0", false, ""),
		obs(ProviderEbay, "-5", false, ""),
	}

	got := Aggregate(observations)[GradeRaw]
	if got.HasEvidence() {
		t.Errorf("non-positive prices produced evidence: %+v", got)
	}
}

func TestAggregateEmptyPopulation(t *testing.T) {
	got := Aggregate(nil)

	for tier, est := range got {
		if est.HasEvidence() {
			t.Errorf("%s: empty input has evidence", tier)
		}
		if !est.SpreadRatio.IsZero() {
			t.Errorf("%s: SpreadRatio = %s, want 0", tier, est.SpreadRatio)
		}
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	observations := []SoldObservation{
		obs(ProviderEbay, "90", false, ""),
		obs(ProviderEbay, "110", false, ""),
		obs(ProviderPoint130, "100", false, ""),
		obs(ProviderPoint130, "130", false, ""),
		obs(ProviderEbay, "95", false, ""),
		obs(ProviderPoint130, "480", true, GradePSA10),
		obs(ProviderEbay, "505", true, GradePSA10),
	}

	want := Aggregate(observations)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]SoldObservation, len(observations))
		copy(shuffled, observations)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(shuffled)
		for _, tier := range []GradeTier{GradeRaw, GradePSA9, GradePSA10, GradeOther} {
			w, g := want[tier], got[tier]
			if !g.Median.Equal(w.Median) || g.SampleCount != w.SampleCount ||
				!g.SpreadRatio.Equal(w.SpreadRatio) || g.SourceCount != w.SourceCount {
				t.Fatalf("%s: permutation changed output: %+v vs %+v", tier, g, w)
			}
		}
	}
}

func TestAggregateSpreadRatio(t *testing.T) {
	// {80, 100, 120}: median 100, population stddev sqrt(800/3) ~ 16.33,
	// spread ~ 0.1633.
	observations := []SoldObservation{
		obs(ProviderEbay, "80", false, ""),
		obs(ProviderEbay, "100", false, ""),
		obs(ProviderEbay, "120", false, ""),
	}

	got := Aggregate(observations)[GradeRaw]

	want := decimal.RequireFromString("0.1633")
	tolerance := decimal.RequireFromString("0.0005")
	if got.SpreadRatio.Sub(want).Abs().GreaterThan(tolerance) {
		t.Errorf("SpreadRatio = %s, want ~%s", got.SpreadRatio, want)
	}
}

func TestClassifyGrade(t *testing.T) {
	tests := []struct {
		title      string
		wantGraded bool
		wantTier   GradeTier
	}{
		{"Blue-Eyes White Dragon PSA 10 GEM MINT", true, GradePSA10},
		{"Blue-Eyes White Dragon PSA10", true, GradePSA10},
		{"Dark Magician PSA 9 MINT", true, GradePSA9},
		{"Red-Eyes BGS 8.5", true, GradeOther},
		{"Exodia graded CGC", true, GradeOther},
		{"Blue-Eyes White Dragon LOB 1st", false, GradeRaw},
	}

	for _, tt := range tests {
		graded, tier := ClassifyGrade(tt.title)
		if graded != tt.wantGraded || tier != tt.wantTier {
			t.Errorf("ClassifyGrade(%q) = %v/%s, want %v/%s", tt.title, graded, tier, tt.wantGraded, tt.wantTier)
		}
	}
}
