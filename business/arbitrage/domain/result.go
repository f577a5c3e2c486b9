package domain

import (
	"time"

	"github.com/shopspring/decimal"

	listingDomain "github.com/fd1az/card-arbitrage/business/listing/domain"
	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
)

// Action is the discrete recommendation tier for a listing.
type Action string

const (
	ActionStrongBuy Action = "STRONG_BUY"
	ActionBuy       Action = "BUY"
	ActionConsider  Action = "CONSIDER"
	ActionPass      Action = "PASS"
)

// ArbitrageResult is the full output record for one analyzed listing.
type ArbitrageResult struct {
	Listing      listingDomain.RawListing
	Condition    listingDomain.ConditionAssessment
	TargetGrade  pricingDomain.GradeTier
	ListedUSD    decimal.Decimal
	Reference    pricingDomain.ReferencePrice
	Profit       ProfitResult
	NetProfitUSD decimal.Decimal
	Score        decimal.Decimal
	Risk         decimal.Decimal
	Action       Action
	AnalyzedAt   time.Time
}
