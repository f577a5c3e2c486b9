// Package domain contains the core domain types for the listing context.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/internal/money"
)

var ErrNegativeListedPrice = errors.New("listing: listed price cannot be negative")

// RawListing is one observed live offer from the source marketplace.
// It is immutable once handed to the scoring pipeline.
type RawListing struct {
	Title         string
	TitleEN       string
	ListedPrice   decimal.Decimal
	Currency      money.Currency
	ConditionText string
	ListingURL    string
	ImageURL      string
	Card          CardInfo
}

// Validate checks the listing preconditions before scoring.
func (l RawListing) Validate() error {
	if l.ListedPrice.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeListedPrice, l.ListedPrice)
	}
	return nil
}

// Query returns the search string used against sold-price providers,
// preferring the translated title.
func (l RawListing) Query() string {
	name := l.Card.Name
	if name == "" {
		name = l.TitleEN
	}
	if name == "" {
		name = l.Title
	}
	if l.Card.SetCode != "" {
		return name + " " + l.Card.SetCode
	}
	return name
}
