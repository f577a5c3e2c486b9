package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func est(median string, samples int, spread string, sources int) ReferencePrice {
	return ReferencePrice{
		Median:      decimal.RequireFromString(median),
		SampleCount: samples,
		SpreadRatio: decimal.RequireFromString(spread),
		SourceCount: sources,
	}
}

func TestSynthesizeOwnGradeWins(t *testing.T) {
	perGrade := map[GradeTier]ReferencePrice{
		GradeRaw:   est("100", 4, "0.2", 2),
		GradePSA10: est("500", 8, "0.05", 2),
	}

	got := Synthesize(perGrade, GradePSA10)
	if !got.Median.Equal(decimal.RequireFromString("500")) || got.Fallback {
		t.Errorf("Synthesize(PSA10) = %+v, want own-grade estimate", got)
	}
}

func TestSynthesizeGradedNeverBlendsWithRaw(t *testing.T) {
	perGrade := map[GradeTier]ReferencePrice{
		GradeRaw: est("100", 10, "0.1", 2),
	}

	got := Synthesize(perGrade, GradePSA9)
	if got.HasEvidence() {
		t.Errorf("Synthesize(PSA9) with only raw evidence = %+v, want absent", got)
	}
}

func TestSynthesizeRawFallsBackToTightestGradedPopulation(t *testing.T) {
	perGrade := map[GradeTier]ReferencePrice{
		GradePSA9:  est("300", 6, "0.30", 1),
		GradePSA10: est("550", 4, "0.10", 2),
	}

	got := Synthesize(perGrade, GradeRaw)
	if !got.HasEvidence() {
		t.Fatal("fallback returned absent despite graded evidence")
	}
	if !got.Median.Equal(decimal.RequireFromString("550")) {
		t.Errorf("fallback Median = %s, want 550 (minimum spread population)", got.Median)
	}
	if !got.Fallback {
		t.Error("fallback estimate not flagged")
	}
}

func TestSynthesizeNeverFabricatesFromNothing(t *testing.T) {
	got := Synthesize(map[GradeTier]ReferencePrice{}, GradeRaw)
	if got.HasEvidence() || got.Fallback {
		t.Errorf("Synthesize with no evidence = %+v, want fully absent", got)
	}
}

func TestSynthesizeDirectHitNotFlaggedFallback(t *testing.T) {
	perGrade := map[GradeTier]ReferencePrice{
		GradeRaw: est("120", 5, "0.15", 2),
	}

	got := Synthesize(perGrade, GradeRaw)
	if got.Fallback {
		t.Error("own-population estimate must not carry the fallback flag")
	}
	if got.SampleCount != 5 {
		t.Errorf("SampleCount = %d, want 5", got.SampleCount)
	}
}
