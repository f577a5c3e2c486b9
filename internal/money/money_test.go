package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{name: "positive", value: "10.50"},
		{name: "zero", value: "0"},
		{name: "negative rejected", value: "-1", wantErr: ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAmount(decimal.RequireFromString(tt.value), USD)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewAmount(%s) error = %v, want %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	ten := MustAmount(decimal.RequireFromString("10"), USD)
	three := MustAmount(decimal.RequireFromString("3"), USD)
	yen := MustAmount(decimal.RequireFromString("3"), JPY)

	sum, err := ten.Add(three)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !sum.Value().Equal(decimal.RequireFromString("13")) {
		t.Errorf("Add() = %s, want 13", sum.Value())
	}

	diff, err := ten.Sub(three)
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if !diff.Value().Equal(decimal.RequireFromString("7")) {
		t.Errorf("Sub() = %s, want 7", diff.Value())
	}

	if _, err := three.Sub(ten); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("Sub() going negative: error = %v, want ErrNegativeAmount", err)
	}
	if _, err := ten.Add(yen); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Add() across currencies: error = %v, want ErrCurrencyMismatch", err)
	}
}

func TestExchangeRateConvert(t *testing.T) {
	rate, err := NewExchangeRate(JPY, USD, decimal.RequireFromString("0.0067"))
	if err != nil {
		t.Fatalf("NewExchangeRate() error = %v", err)
	}

	yen := MustAmount(decimal.RequireFromString("10000"), JPY)
	usd, err := rate.Convert(yen)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if usd.Currency() != USD {
		t.Errorf("Convert() currency = %s, want USD", usd.Currency())
	}
	if !usd.Value().Equal(decimal.RequireFromString("67")) {
		t.Errorf("Convert(10000 JPY) = %s, want 67", usd.Value())
	}

	if _, err := rate.Convert(MustAmount(decimal.RequireFromString("5"), USD)); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Convert() wrong source currency: error = %v, want ErrCurrencyMismatch", err)
	}
}

func TestExchangeRateRejectsNonPositive(t *testing.T) {
	for _, rate := range []string{"0", "-0.1"} {
		if _, err := NewExchangeRate(JPY, USD, decimal.RequireFromString(rate)); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("NewExchangeRate(rate=%s) error = %v, want ErrInvalidRate", rate, err)
		}
	}
}

func TestParseCurrency(t *testing.T) {
	if c, err := ParseCurrency(" usd "); err != nil || c != USD {
		t.Errorf("ParseCurrency(usd) = %v, %v", c, err)
	}
	if _, err := ParseCurrency("GBP"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("ParseCurrency(GBP) error = %v, want ErrUnknownCurrency", err)
	}
}
