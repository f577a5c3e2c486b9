// Package app contains application services and port definitions for the arbitrage context.
package app

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/config"
)

// ScoreConfig holds the weights, saturation points and recommendation
// thresholds for the score engine. It is built once from configuration
// and never mutated.
type ScoreConfig struct {
	MarginWeight      decimal.Decimal
	ProfitWeight      decimal.Decimal
	ReliabilityWeight decimal.Decimal
	RiskWeight        decimal.Decimal

	MarginSaturationPct decimal.Decimal
	ProfitSaturationUSD decimal.Decimal

	StrongBuyScore     decimal.Decimal
	StrongBuyMarginPct decimal.Decimal
	StrongBuyProfitUSD decimal.Decimal
	BuyScore           decimal.Decimal
	BuyMarginPct       decimal.Decimal
	BuyProfitUSD       decimal.Decimal
	ConsiderScore      decimal.Decimal
	ConsiderMarginPct  decimal.Decimal
	ConsiderProfitUSD  decimal.Decimal
}

// NewScoreConfig builds a ScoreConfig from the arbitrage configuration.
func NewScoreConfig(cfg config.ArbitrageConfig) ScoreConfig {
	return ScoreConfig{
		MarginWeight:      decimal.NewFromFloat(cfg.MarginWeight),
		ProfitWeight:      decimal.NewFromFloat(cfg.ProfitWeight),
		ReliabilityWeight: decimal.NewFromFloat(cfg.ReliabilityWeight),
		RiskWeight:        decimal.NewFromFloat(cfg.RiskWeight),

		MarginSaturationPct: decimal.NewFromFloat(cfg.MarginSaturationPct),
		ProfitSaturationUSD: decimal.NewFromFloat(cfg.ProfitSaturationUSD),

		StrongBuyScore:     decimal.NewFromFloat(cfg.StrongBuyScore),
		StrongBuyMarginPct: decimal.NewFromFloat(cfg.StrongBuyMarginPct),
		StrongBuyProfitUSD: decimal.NewFromFloat(cfg.StrongBuyProfitUSD),
		BuyScore:           decimal.NewFromFloat(cfg.BuyScore),
		BuyMarginPct:       decimal.NewFromFloat(cfg.BuyMarginPct),
		BuyProfitUSD:       decimal.NewFromFloat(cfg.BuyProfitUSD),
		ConsiderScore:      decimal.NewFromFloat(cfg.ConsiderScore),
		ConsiderMarginPct:  decimal.NewFromFloat(cfg.ConsiderMarginPct),
		ConsiderProfitUSD:  decimal.NewFromFloat(cfg.ConsiderProfitUSD),
	}
}

// ScoreEngine combines margin, absolute profit, reliability and risk
// into a bounded 0-100 score and a recommendation tier.
type ScoreEngine struct {
	config ScoreConfig
}

// NewScoreEngine creates a ScoreEngine.
func NewScoreEngine(cfg ScoreConfig) *ScoreEngine {
	return &ScoreEngine{config: cfg}
}

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Score computes the composite score and action for a profit result.
// Absent profit short-circuits to score 0 and PASS: no evidence is
// never an optimistic default.
//
// Margin and profit contributions are capped-linear: each climbs
// linearly to its weight and saturates at the configured point, so one
// absurd outlier margin cannot dominate the composite.
func (e *ScoreEngine) Score(profit domain.ProfitResult, ref pricingDomain.ReferencePrice, risk decimal.Decimal) (decimal.Decimal, domain.Action) {
	if !profit.HasEvidence {
		return decimal.Zero, domain.ActionPass
	}

	score := decimal.Zero

	if profit.HasMargin {
		score = score.Add(e.config.MarginWeight.Mul(saturate(profit.MarginPct, e.config.MarginSaturationPct)))
	}
	score = score.Add(e.config.ProfitWeight.Mul(saturate(profit.ProfitUSD, e.config.ProfitSaturationUSD)))

	confidence := decimal.NewFromInt(1).Sub(risk)
	sourceFactor := decimal.NewFromInt(int64(min(ref.SourceCount, 2))).Div(two)
	score = score.Add(e.config.ReliabilityWeight.Mul(confidence).Mul(sourceFactor))
	score = score.Add(e.config.RiskWeight.Mul(confidence))

	if score.IsNegative() {
		score = decimal.Zero
	}
	if score.GreaterThan(hundred) {
		score = hundred
	}

	return score, e.action(score, profit)
}

// saturate maps value onto [?,1]: linear up to the saturation point,
// capped at 1 above it. Negative values stay negative so losses pull
// the score down instead of clamping silently to zero.
func saturate(value, saturation decimal.Decimal) decimal.Decimal {
	if !saturation.IsPositive() {
		return decimal.Zero
	}
	ratio := value.Div(saturation)
	if ratio.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return ratio
}

// action resolves the recommendation tier. Rows are evaluated top-down
// and every column in a row must hold; a listing with no margin figure
// cannot satisfy any margin bound and falls through to PASS.
func (e *ScoreEngine) action(score decimal.Decimal, profit domain.ProfitResult) domain.Action {
	if !profit.HasMargin {
		return domain.ActionPass
	}

	switch {
	case score.GreaterThanOrEqual(e.config.StrongBuyScore) &&
		profit.MarginPct.GreaterThanOrEqual(e.config.StrongBuyMarginPct) &&
		profit.ProfitUSD.GreaterThanOrEqual(e.config.StrongBuyProfitUSD):
		return domain.ActionStrongBuy

	case score.GreaterThanOrEqual(e.config.BuyScore) &&
		profit.MarginPct.GreaterThanOrEqual(e.config.BuyMarginPct) &&
		profit.ProfitUSD.GreaterThanOrEqual(e.config.BuyProfitUSD):
		return domain.ActionBuy

	case score.GreaterThanOrEqual(e.config.ConsiderScore) &&
		profit.MarginPct.GreaterThanOrEqual(e.config.ConsiderMarginPct) &&
		profit.ProfitUSD.GreaterThanOrEqual(e.config.ConsiderProfitUSD):
		return domain.ActionConsider

	default:
		return domain.ActionPass
	}
}
