package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestScreenPromisingListing(t *testing.T) {
	listing := RawListing{
		Title:         "遊戯王 青眼の白龍 LOB-001 ウルトラ 新品",
		TitleEN:       "Blue-Eyes White Dragon LOB-001 Ultra New",
		ConditionText: "新品",
		ImageURL:      "https://img.example.com/item.jpg",
		Card:          CardInfo{Name: "Blue-Eyes White Dragon", SetCode: "LOB"},
	}

	got := Screen(listing, decimal.RequireFromString("45"))

	// price band 20 + keywords 15 + condition 10 + set 10 + image 5
	if got.Score != 60 {
		t.Errorf("Score = %d, want 60 (%v)", got.Score, got.Reasons)
	}
}

func TestScreenJunkListing(t *testing.T) {
	listing := RawListing{
		Title:         "カード まとめ売り",
		ConditionText: "破損あり",
	}

	got := Screen(listing, decimal.RequireFromString("2"))

	// price -20, keywords -10, condition -15, no set -5, no image -5
	if got.Score != -55 {
		t.Errorf("Score = %d, want -55 (%v)", got.Score, got.Reasons)
	}
	if got.Score >= 15 {
		t.Error("junk listing must fall below the default screening threshold")
	}
}

func TestScreenMidRangeUsedCard(t *testing.T) {
	listing := RawListing{
		Title:         "Dark Magician SDK-005",
		TitleEN:       "Dark Magician SDK-005",
		ConditionText: "used",
		ImageURL:      "https://img.example.com/dm.jpg",
		Card:          CardInfo{Name: "Dark Magician", SetCode: "SDK"},
	}

	got := Screen(listing, decimal.RequireFromString("120"))

	// price 20, one keyword 8, condition 5, non-valuable set 2, image 5
	if got.Score != 40 {
		t.Errorf("Score = %d, want 40 (%v)", got.Score, got.Reasons)
	}
}
