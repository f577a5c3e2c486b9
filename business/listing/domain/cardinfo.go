package domain

import (
	"regexp"
	"strings"
)

// CardInfo is the structured card identity extracted from a listing title.
type CardInfo struct {
	Name    string
	SetCode string
	Rarity  string
	Region  string
}

// knownSets maps early set codes to their full names. Used both for
// set-code detection and for screening valuable sets.
var knownSets = map[string]string{
	"LOB": "Legend of Blue Eyes White Dragon",
	"SDK": "Starter Deck Kaiba",
	"MRD": "Metal Raiders",
	"SRL": "Spell Ruler",
	"PSV": "Pharaoh's Servant",
	"MFC": "Magician's Force",
	"LON": "Labyrinth of Nightmare",
}

// jpNames translates common Japanese card names. Evaluated in order so
// the output is deterministic; longer, more specific names come first.
var jpNames = []struct {
	jp string
	en string
}{
	{"ブルーアイズホワイトドラゴン", "Blue-Eyes White Dragon"},
	{"青眼の白龍", "Blue-Eyes White Dragon"},
	{"青眼", "Blue-Eyes White Dragon"},
	{"混沌の黒魔術師", "Dark Magician of Chaos"},
	{"ブラック・マジシャン", "Dark Magician"},
	{"レッドアイズ・ブラック・ドラゴン", "Red-Eyes Black Dragon"},
	{"真紅眼の黒竜", "Red-Eyes Black Dragon"},
	{"カオス・ソルジャー", "Black Luster Soldier"},
	{"エクゾディア", "Exodia"},
	{"サイバー・ドラゴン", "Cyber Dragon"},
	{"E・HERO ネオス", "Elemental HERO Neos"},
	{"スターダスト・ドラゴン", "Stardust Dragon"},
	{"ブラックローズ・ドラゴン", "Black Rose Dragon"},
}

// rarityTokens in detection order; secret before ultra so "secret rare"
// is not shadowed by a bare "rare" hit.
var rarityTokens = []struct {
	token  string
	rarity string
}{
	{"secret", "Secret Rare"},
	{"シークレット", "Secret Rare"},
	{"ultimate", "Ultimate Rare"},
	{"レリーフ", "Ultimate Rare"},
	{"ultra", "Ultra Rare"},
	{"ウルトラ", "Ultra Rare"},
	{"super", "Super Rare"},
	{"スーパー", "Super Rare"},
}

// noiseWords are stripped from titles before the card name is taken.
// Overlapping variants list the longer form first.
var noiseWords = []string{
	"遊戯王", "Yu-Gi-Oh", "yugioh", "カード", "card", "1st", "edition",
	"limited", "まとめ", "レア", "rare", "セット", "set", "パック", "pack",
	"新品", "未使用", "中古", "使用済み", "プレイ済み", "english", "japanese",
	"日本語版",
}

// noisePattern matches any noise word case-insensitively. Matching on
// the original string keeps byte offsets valid for titles whose length
// changes under case folding.
var noisePattern = func() *regexp.Regexp {
	quoted := make([]string, len(noiseWords))
	for i, w := range noiseWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
}()

var lotCountPattern = regexp.MustCompile(`\s*(x\d+|\d+枚|\d+)$`)

// knownSetOrder fixes the scan order for bare set-code detection so a
// title mentioning two sets always resolves the same way.
var knownSetOrder = []string{"LOB", "SDK", "MRD", "SRL", "PSV", "MFC", "LON"}

var setCodePattern = regexp.MustCompile(`\b([A-Z]{2,4})-?(EN|JP)?\d{3}\b`)

// ExtractCardInfo pulls the card name, set code, rarity and region out of
// a raw listing title. Every step is a pure string transformation;
// unrecognized titles come back with the cleaned title as the name and
// the other fields empty.
func ExtractCardInfo(title string) CardInfo {
	info := CardInfo{}
	upper := strings.ToUpper(title)

	// Set code: explicit card number first, then a bare known set code.
	if m := setCodePattern.FindStringSubmatch(upper); m != nil {
		if _, ok := knownSets[m[1]]; ok {
			info.SetCode = m[1]
		}
	}
	if info.SetCode == "" {
		for _, code := range knownSetOrder {
			if strings.Contains(upper, code) {
				info.SetCode = code
				break
			}
		}
	}

	lower := strings.ToLower(title)
	for _, r := range rarityTokens {
		if strings.Contains(lower, r.token) {
			info.Rarity = r.rarity
			break
		}
	}

	switch {
	case strings.Contains(title, "日本") || strings.Contains(lower, "japanese") || strings.Contains(title, "日版"):
		info.Region = "Japanese"
	case strings.Contains(lower, "english") || strings.Contains(upper, "-EN"):
		info.Region = "English"
	}

	info.Name = TranslateTitle(title)
	return info
}

// TranslateTitle maps a Japanese title onto the English card name when a
// known name appears in it; otherwise it returns the title stripped of
// noise words.
func TranslateTitle(title string) string {
	for _, entry := range jpNames {
		if strings.Contains(title, entry.jp) {
			return entry.en
		}
	}

	name := noisePattern.ReplaceAllString(title, "")
	// Trailing lot counts ("x3", "3枚") add nothing to a search query.
	name = lotCountPattern.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// SetName returns the full name of a known set code, or "".
func SetName(code string) string {
	return knownSets[strings.ToUpper(code)]
}
