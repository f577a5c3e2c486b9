package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Screening is the cheap pre-filter verdict for a listing. It mimics the
// first-pass judgement a buyer makes before pulling comps: price band,
// title keywords, condition, set and image quality.
type Screening struct {
	Score   int
	Reasons []string
}

// valuableKeywords raise a title's screening score.
var valuableKeywords = []string{
	"blue-eyes", "blue eyes", "青眼", "dark magician", "ブラック・マジシャン",
	"red-eyes", "red eyes", "レッドアイズ", "lob", "mfc", "psv",
	"1st", "first", "初版", "ultra", "secret", "シークレット",
	"mint", "new", "新品", "unused", "未使用",
}

var valuableSets = []string{"LOB", "MFC", "PSV", "MRD", "SRL", "LON"}

// Screen scores a listing for follow-up. priceUSD is the already
// converted listing price. Listings below the caller's threshold are not
// worth a provider round-trip.
func Screen(listing RawListing, priceUSD decimal.Decimal) Screening {
	var s Screening

	// Price band
	switch {
	case priceUSD.LessThan(decimal.NewFromInt(5)):
		s.add(-20, "too cheap (<$5)")
	case priceUSD.GreaterThan(decimal.NewFromInt(1000)):
		s.add(-15, "too expensive (>$1000)")
	case priceUSD.GreaterThanOrEqual(decimal.NewFromInt(10)) && priceUSD.LessThanOrEqual(decimal.NewFromInt(200)):
		s.add(20, "good price range ($10-$200)")
	}

	// Title keywords
	title := strings.ToLower(listing.Title)
	titleEN := strings.ToLower(listing.TitleEN)
	matches := 0
	for _, keyword := range valuableKeywords {
		if strings.Contains(title, keyword) || strings.Contains(titleEN, keyword) {
			matches++
		}
	}
	switch {
	case matches >= 2:
		s.add(15, fmt.Sprintf("valuable keywords found (%d)", matches))
	case matches == 1:
		s.add(8, "some valuable keywords")
	default:
		s.add(-10, "no valuable keywords")
	}

	// Condition
	switch NormalizeCondition(listing.ConditionText).Ordinal {
	case ConditionMint, ConditionNearMint:
		s.add(10, "good condition")
	case ConditionExcellent, ConditionGood:
		s.add(5, "used but acceptable")
	case ConditionDamaged:
		s.add(-15, "damaged condition")
	}

	// Set code
	if listing.Card.SetCode != "" {
		valuable := false
		for _, code := range valuableSets {
			if strings.EqualFold(listing.Card.SetCode, code) {
				valuable = true
				break
			}
		}
		if valuable {
			s.add(10, "valuable set code")
		} else {
			s.add(2, "has set code")
		}
	} else {
		s.add(-5, "no set code")
	}

	// Image quality
	if listing.ImageURL != "" && !strings.Contains(strings.ToLower(listing.ImageURL), "placeholder") {
		s.add(5, "has real image")
	} else {
		s.add(-5, "no real image")
	}

	return s
}

func (s *Screening) add(points int, reason string) {
	s.Score += points
	s.Reasons = append(s.Reasons, reason)
}
