// Package domain contains the core domain types for the pricing context.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider identifies a sold-price evidence source.
type Provider string

const (
	ProviderEbay     Provider = "ebay"
	ProviderPoint130 Provider = "130point"
)

// GradeTier classifies a sale as ungraded or a professional grading
// result.
type GradeTier string

const (
	GradeRaw   GradeTier = "RAW"
	GradePSA9  GradeTier = "PSA9"
	GradePSA10 GradeTier = "PSA10"
	GradeOther GradeTier = "OTHER"
)

// SoldObservation is one historical sale record from a reference
// provider. PriceUSD must be positive; non-positive records are rejected
// by Aggregate rather than coerced to zero.
type SoldObservation struct {
	Provider   Provider
	PriceUSD   decimal.Decimal
	Graded     bool
	Grade      GradeTier
	ObservedAt time.Time
}

// Tier resolves the population an observation belongs to. Ungraded sales
// are RAW regardless of the Grade field; graded sales without a specific
// tier fall into OTHER.
func (o SoldObservation) Tier() GradeTier {
	if !o.Graded {
		return GradeRaw
	}
	switch o.Grade {
	case GradePSA9, GradePSA10:
		return o.Grade
	default:
		return GradeOther
	}
}

// ClassifyGrade infers the grade tier of a sale from its title. PSA 10
// is checked before PSA 9 before a generic PSA marker.
func ClassifyGrade(title string) (graded bool, tier GradeTier) {
	t := normalizeTitle(title)
	switch {
	case containsAny(t, "psa 10", "psa10"):
		return true, GradePSA10
	case containsAny(t, "psa 9", "psa9"):
		return true, GradePSA9
	case containsAny(t, "psa", "bgs", "cgc", "graded"):
		return true, GradeOther
	default:
		return false, GradeRaw
	}
}
