package domain

import (
	"testing"
	"unicode/utf8"
)

func TestExtractCardInfo(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		wantName    string
		wantSetCode string
		wantRarity  string
		wantRegion  string
	}{
		{
			name:        "japanese blue eyes with set number",
			title:       "遊戯王 青眼の白龍 LOB-001 ウルトラレア",
			wantName:    "Blue-Eyes White Dragon",
			wantSetCode: "LOB",
			wantRarity:  "Ultra Rare",
		},
		{
			name:        "english title with region suffix",
			title:       "Dark Magician SDK-EN005 1st Edition English",
			wantName:    "Dark Magician SDK-EN005",
			wantSetCode: "SDK",
			wantRarity:  "",
			wantRegion:  "English",
		},
		{
			name:       "katakana red eyes",
			title:      "レッドアイズ・ブラック・ドラゴン シークレット 日本語版",
			wantName:   "Red-Eyes Black Dragon",
			wantRarity: "Secret Rare",
			wantRegion: "Japanese",
		},
		{
			name:     "unknown card keeps cleaned title",
			title:    "遊戯王 カード Kuriboh まとめ 3",
			wantName: "Kuriboh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCardInfo(tt.title)
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.SetCode != tt.wantSetCode {
				t.Errorf("SetCode = %q, want %q", got.SetCode, tt.wantSetCode)
			}
			if got.Rarity != tt.wantRarity {
				t.Errorf("Rarity = %q, want %q", got.Rarity, tt.wantRarity)
			}
			if got.Region != tt.wantRegion {
				t.Errorf("Region = %q, want %q", got.Region, tt.wantRegion)
			}
		})
	}
}

func TestTranslateTitlePrefersLongestMatchFirst(t *testing.T) {
	// 青眼 alone and the full 青眼の白龍 both map to the same card; the
	// declared order guarantees the specific entry is checked first.
	if got := TranslateTitle("青眼の白龍 初期"); got != "Blue-Eyes White Dragon" {
		t.Errorf("TranslateTitle = %q", got)
	}
}

func TestTranslateTitleLengthChangingRunes(t *testing.T) {
	// U+0130 'İ' grows by a byte under case folding; offsets from a
	// lowered copy would slice mid-rune.
	tests := []struct {
		title string
		want  string
	}{
		{"İ card Blue-Eyes", "İ Blue-Eyes"},
		{"İcard", "İ"},
	}
	for _, tt := range tests {
		got := TranslateTitle(tt.title)
		if got != tt.want {
			t.Errorf("TranslateTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("TranslateTitle(%q) produced invalid UTF-8 %q", tt.title, got)
		}
	}
}

func TestSetName(t *testing.T) {
	if got := SetName("lob"); got != "Legend of Blue Eyes White Dragon" {
		t.Errorf("SetName(lob) = %q", got)
	}
	if got := SetName("ZZZ"); got != "" {
		t.Errorf("SetName(ZZZ) = %q, want empty", got)
	}
}
