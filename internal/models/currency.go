package models

import (
	"errors"
	"fmt"
	"math"
)

type Currency string

const (
	COP Currency = "COP"
	USD Currency = "USD"
	EUR Currency = "EUR"
	CNY Currency = "CNY"
)

// BaseCurrency is the currency the user enters amounts in.
const BaseCurrency = COP

// TargetCurrencies lists the converted-into currencies in display order.
var TargetCurrencies = []Currency{USD, EUR, CNY}

type CurrencyInfo struct {
	Code   Currency `json:"code"`
	Name   string   `json:"name"`
	Symbol string   `json:"symbol"`
}

var currencyInfo = map[Currency]CurrencyInfo{
	COP: {Code: COP, Name: "Colombian Peso", Symbol: "$"},
	USD: {Code: USD, Name: "US Dollar", Symbol: "$"},
	EUR: {Code: EUR, Name: "Euro", Symbol: "€"},
	CNY: {Code: CNY, Name: "Chinese Yuan", Symbol: "¥"},
}

// Info returns display metadata for a supported currency.
func (c Currency) Info() CurrencyInfo {
	if info, ok := currencyInfo[c]; ok {
		return info
	}
	return CurrencyInfo{Code: c, Name: string(c)}
}

// IsTarget reports whether c is one of the converted-into currencies.
func (c Currency) IsTarget() bool {
	for _, t := range TargetCurrencies {
		if t == c {
			return true
		}
	}
	return false
}

// RateUnavailableMessage is the only error text shown when rates fail to load.
const RateUnavailableMessage = "Could not load exchange rates. Please try again later."

var ErrInvalidQuotes = errors.New("invalid exchange rate quotes")

// Quotes holds base units per one unit of each target ("1 USD = 3900 COP").
type Quotes map[Currency]float64

// ExchangeRateSet holds target units per one base unit. The zero value is
// the not-loaded sentinel.
type ExchangeRateSet struct {
	rates map[Currency]float64
}

// NewExchangeRateSet validates quotes and stores their reciprocals.
func NewExchangeRateSet(quotes Quotes) (ExchangeRateSet, error) {
	if len(quotes) != len(TargetCurrencies) {
		return ExchangeRateSet{}, fmt.Errorf("%w: expected %d currencies, got %d",
			ErrInvalidQuotes, len(TargetCurrencies), len(quotes))
	}

	rates := make(map[Currency]float64, len(TargetCurrencies))
	for _, c := range TargetCurrencies {
		q, ok := quotes[c]
		if !ok {
			return ExchangeRateSet{}, fmt.Errorf("%w: missing %s", ErrInvalidQuotes, c)
		}
		if !isPositiveFinite(q) {
			return ExchangeRateSet{}, fmt.Errorf("%w: %s quote %v", ErrInvalidQuotes, c, q)
		}
		rate := 1 / q
		if !isPositiveFinite(rate) {
			return ExchangeRateSet{}, fmt.Errorf("%w: %s rate %v", ErrInvalidQuotes, c, rate)
		}
		rates[c] = rate
	}

	return ExchangeRateSet{rates: rates}, nil
}

// Loaded reports whether the set carries a positive rate for every target.
func (s ExchangeRateSet) Loaded() bool {
	if len(s.rates) != len(TargetCurrencies) {
		return false
	}
	for _, c := range TargetCurrencies {
		if !isPositiveFinite(s.rates[c]) {
			return false
		}
	}
	return true
}

// Rate returns target units per base unit, or 0 when not loaded.
func (s ExchangeRateSet) Rate(c Currency) float64 {
	return s.rates[c]
}

// Rates returns a copy of the rate map.
func (s ExchangeRateSet) Rates() map[Currency]float64 {
	out := make(map[Currency]float64, len(s.rates))
	for c, r := range s.rates {
		out[c] = r
	}
	return out
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
