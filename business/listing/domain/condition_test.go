package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantOrdinal ConditionOrdinal
		wantFactor  string
	}{
		{name: "mint english", text: "Mint condition", wantOrdinal: ConditionMint, wantFactor: "1.0"},
		{name: "new", text: "Brand NEW in sleeve", wantOrdinal: ConditionMint, wantFactor: "1.0"},
		{name: "mint japanese", text: "新品・未開封", wantOrdinal: ConditionMint, wantFactor: "1.0"},
		{name: "unused japanese", text: "未使用", wantOrdinal: ConditionMint, wantFactor: "1.0"},
		{name: "near mint beats mint", text: "Near Mint", wantOrdinal: ConditionNearMint, wantFactor: "0.95"},
		{name: "excellent", text: "Excellent centering", wantOrdinal: ConditionExcellent, wantFactor: "0.9"},
		{name: "used english", text: "Used, lightly played", wantOrdinal: ConditionGood, wantFactor: "0.8"},
		{name: "used japanese", text: "中古", wantOrdinal: ConditionGood, wantFactor: "0.8"},
		{name: "damaged", text: "damaged corner", wantOrdinal: ConditionDamaged, wantFactor: "0.6"},
		{name: "scratch japanese", text: "傷あり", wantOrdinal: ConditionDamaged, wantFactor: "0.6"},
		{name: "damage beats used", text: "used with damage", wantOrdinal: ConditionDamaged, wantFactor: "0.6"},
		{name: "damage beats mint claim", text: "mint but 破損", wantOrdinal: ConditionDamaged, wantFactor: "0.6"},
		{name: "empty", text: "", wantOrdinal: ConditionUnknown, wantFactor: "1"},
		{name: "whitespace", text: "   ", wantOrdinal: ConditionUnknown, wantFactor: "1"},
		{name: "unmatched", text: "NPO法人出品", wantOrdinal: ConditionUnknown, wantFactor: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCondition(tt.text)
			if got.Ordinal != tt.wantOrdinal {
				t.Errorf("NormalizeCondition(%q).Ordinal = %s, want %s", tt.text, got.Ordinal, tt.wantOrdinal)
			}
			if !got.Factor.Equal(decimal.RequireFromString(tt.wantFactor)) {
				t.Errorf("NormalizeCondition(%q).Factor = %s, want %s", tt.text, got.Factor, tt.wantFactor)
			}
		})
	}
}

func TestNormalizeConditionIsDeterministic(t *testing.T) {
	// Texts matching several table entries must resolve identically on
	// every call: the first declared entry wins.
	text := "near mint, slight 傷 on back, otherwise new"
	first := NormalizeCondition(text)
	for i := 0; i < 100; i++ {
		got := NormalizeCondition(text)
		if got.Ordinal != first.Ordinal || !got.Factor.Equal(first.Factor) {
			t.Fatalf("NormalizeCondition not deterministic: %s/%s vs %s/%s",
				got.Ordinal, got.Factor, first.Ordinal, first.Factor)
		}
	}
	if first.Ordinal != ConditionDamaged {
		t.Errorf("damage marker should win by declaration order, got %s", first.Ordinal)
	}
}

func TestConditionFactorBounds(t *testing.T) {
	upper := decimal.RequireFromString("1.2")
	for _, entry := range conditionTable {
		factor := decimal.RequireFromString(entry.factor)
		if !factor.IsPositive() || factor.GreaterThan(upper) {
			t.Errorf("entry %q factor %s outside (0, 1.2]", entry.keyword, entry.factor)
		}
	}
}
