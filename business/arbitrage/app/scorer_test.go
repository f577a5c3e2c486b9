package app

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
	listingDomain "github.com/fd1az/card-arbitrage/business/listing/domain"
	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/config"
)

func defaultEngine() *ScoreEngine {
	return NewScoreEngine(NewScoreConfig(config.ArbitrageConfig{
		MarginWeight:      40,
		ProfitWeight:      30,
		ReliabilityWeight: 20,
		RiskWeight:        10,

		MarginSaturationPct: 50,
		ProfitSaturationUSD: 100,

		StrongBuyScore:     70,
		StrongBuyMarginPct: 30,
		StrongBuyProfitUSD: 50,
		BuyScore:           50,
		BuyMarginPct:       20,
		BuyProfitUSD:       25,
		ConsiderScore:      30,
		ConsiderMarginPct:  10,
		ConsiderProfitUSD:  10,
	}))
}

func profitOf(profit, margin string) domain.ProfitResult {
	return domain.ProfitResult{
		ProfitUSD:   decimal.RequireFromString(profit),
		MarginPct:   decimal.RequireFromString(margin),
		HasEvidence: true,
		HasMargin:   true,
	}
}

func refOf(samples, sources int, spread string) pricingDomain.ReferencePrice {
	return pricingDomain.ReferencePrice{
		Median:      decimal.RequireFromString("120"),
		SampleCount: samples,
		SourceCount: sources,
		SpreadRatio: decimal.RequireFromString(spread),
	}
}

// A ¥10,000 listing at rate 0.0067 against a $120 raw median: $53
// profit at ~79.1% margin with solid two-provider evidence must come
// out a STRONG_BUY.
func TestScoreYenListingScenario(t *testing.T) {
	ref := refOf(5, 2, "0.15")
	risk := domain.EstimateRisk(ref, listingDomain.ConditionAssessment{
		Ordinal: listingDomain.ConditionUnknown,
		Factor:  decimal.NewFromInt(1),
	})

	score, action := defaultEngine().Score(profitOf("53", "79.1"), ref, risk)

	if score.LessThan(decimal.RequireFromString("70")) || score.GreaterThan(decimal.RequireFromString("100")) {
		t.Errorf("score = %s, want >= 70", score)
	}
	if action != domain.ActionStrongBuy {
		t.Errorf("action = %s, want STRONG_BUY", action)
	}
}

func TestScoreAbsentProfitIsPass(t *testing.T) {
	score, action := defaultEngine().Score(domain.ProfitResult{}, pricingDomain.ReferencePrice{}, decimal.NewFromInt(1))
	if !score.IsZero() {
		t.Errorf("score = %s, want 0", score)
	}
	if action != domain.ActionPass {
		t.Errorf("action = %s, want PASS", action)
	}
}

// A score above the STRONG_BUY bound with margin below its bound must
// fall through to BUY, not STRONG_BUY.
func TestScoreTierCascade(t *testing.T) {
	engine := defaultEngine()

	// Margin 25% fails the 30% STRONG_BUY bound even though a score of
	// 75 and $60 profit pass it.
	action := engine.action(decimal.RequireFromString("75"), profitOf("60", "25"))
	if action != domain.ActionBuy {
		t.Errorf("action = %s, want BUY", action)
	}
}

func TestScoreTierRequiresAllThreeColumns(t *testing.T) {
	engine := defaultEngine()
	ref := refOf(20, 2, "0.05")

	// Profit $8 fails even the CONSIDER bound regardless of margin.
	_, action := engine.Score(profitOf("8", "40"), ref, decimal.RequireFromString("0.2"))
	if action != domain.ActionPass {
		t.Errorf("action = %s, want PASS", action)
	}
}

func TestScoreMissingMarginNeverRecommends(t *testing.T) {
	engine := defaultEngine()
	free := domain.ProfitResult{
		ProfitUSD:   decimal.RequireFromString("120"),
		HasEvidence: true,
		HasMargin:   false,
	}
	_, action := engine.Score(free, refOf(10, 2, "0.1"), decimal.RequireFromString("0.3"))
	if action != domain.ActionPass {
		t.Errorf("action = %s, want PASS for a listing without a margin figure", action)
	}
}

func TestScoreSaturationCapsOutliers(t *testing.T) {
	engine := defaultEngine()
	ref := refOf(5, 2, "0.15")
	risk := decimal.RequireFromString("0.3")

	moderate, _ := engine.Score(profitOf("100", "50"), ref, risk)
	absurd, _ := engine.Score(profitOf("100000", "5000"), ref, risk)

	if !absurd.Equal(moderate) {
		t.Errorf("outlier score %s differs from saturated score %s", absurd, moderate)
	}
	if absurd.GreaterThan(decimal.NewFromInt(100)) {
		t.Errorf("score %s exceeds 100", absurd)
	}
}

func BenchmarkScore(b *testing.B) {
	engine := defaultEngine()
	profit := profitOf("53", "79.1")
	ref := refOf(5, 2, "0.15")
	risk := decimal.RequireFromString("0.3")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Score(profit, ref, risk)
	}
}

func TestScoreNegativeProfitPullsDown(t *testing.T) {
	engine := defaultEngine()
	ref := refOf(5, 2, "0.15")
	risk := decimal.RequireFromString("0.3")

	loss, action := engine.Score(profitOf("-40", "-40"), ref, risk)
	gain, _ := engine.Score(profitOf("40", "40"), ref, risk)

	if !loss.LessThan(gain) {
		t.Errorf("loss score %s not below gain score %s", loss, gain)
	}
	if action != domain.ActionPass {
		t.Errorf("action = %s, want PASS on a loss", action)
	}
	if loss.IsNegative() {
		t.Errorf("score %s below 0", loss)
	}
}
