package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ConditionOrdinal is the fixed condition scale, best to worst.
type ConditionOrdinal string

const (
	ConditionMint      ConditionOrdinal = "MINT"
	ConditionNearMint  ConditionOrdinal = "NEAR_MINT"
	ConditionExcellent ConditionOrdinal = "EXCELLENT"
	ConditionGood      ConditionOrdinal = "GOOD"
	ConditionDamaged   ConditionOrdinal = "DAMAGED"
	ConditionUnknown   ConditionOrdinal = "UNKNOWN"
)

// ConditionAssessment is the normalized condition output. Factor scales
// the expected resale value and is always in (0, 1.2].
type ConditionAssessment struct {
	Ordinal ConditionOrdinal
	Factor  decimal.Decimal
}

// conditionEntry binds a keyword to an ordinal and adjustment factor.
type conditionEntry struct {
	keyword string
	ordinal ConditionOrdinal
	factor  string
}

// conditionTable is evaluated top to bottom; the first matching keyword
// wins. Declaration order is part of the contract: damage markers are
// checked before anything else so "used, slight damage" lands on DAMAGED,
// and "near mint" is checked before "mint" because it contains it.
var conditionTable = []conditionEntry{
	{"damaged", ConditionDamaged, "0.6"},
	{"damage", ConditionDamaged, "0.6"},
	{"破損", ConditionDamaged, "0.6"},
	{"傷", ConditionDamaged, "0.6"},
	{"ジャンク", ConditionDamaged, "0.6"},
	{"poor", ConditionDamaged, "0.6"},
	{"near mint", ConditionNearMint, "0.95"},
	{"nm-mt", ConditionNearMint, "0.95"},
	{"未使用に近い", ConditionNearMint, "0.95"},
	{"mint", ConditionMint, "1.0"},
	{"new", ConditionMint, "1.0"},
	{"unused", ConditionMint, "1.0"},
	{"新品", ConditionMint, "1.0"},
	{"未使用", ConditionMint, "1.0"},
	{"excellent", ConditionExcellent, "0.9"},
	{"美品", ConditionExcellent, "0.9"},
	{"good", ConditionGood, "0.8"},
	{"used", ConditionGood, "0.8"},
	{"played", ConditionGood, "0.8"},
	{"中古", ConditionGood, "0.8"},
	{"使用済み", ConditionGood, "0.8"},
	{"プレイ済み", ConditionGood, "0.8"},
}

// NormalizeCondition maps free-text condition descriptors onto the fixed
// scale. Matching is case-insensitive. Unmatched or empty text yields
// UNKNOWN with a neutral factor of 1.0; it never fails.
func NormalizeCondition(conditionText string) ConditionAssessment {
	text := strings.ToLower(strings.TrimSpace(conditionText))
	if text == "" {
		return ConditionAssessment{Ordinal: ConditionUnknown, Factor: decimal.NewFromInt(1)}
	}

	for _, entry := range conditionTable {
		if strings.Contains(text, entry.keyword) {
			return ConditionAssessment{
				Ordinal: entry.ordinal,
				Factor:  decimal.RequireFromString(entry.factor),
			}
		}
	}

	return ConditionAssessment{Ordinal: ConditionUnknown, Factor: decimal.NewFromInt(1)}
}
