package service

import (
	"math"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"currency-converter/internal/models"
)

// amountPattern accepts optional digits, at most one decimal point and
// optional fractional digits. The empty string matches.
var amountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// ValidAmount reports whether raw may be stored as amount input.
func ValidAmount(raw string) bool {
	return amountPattern.MatchString(raw)
}

// Convert derives the converted amounts from amount text and a rate set.
// Unparsable, non-positive or non-finite amounts and unloaded rates all
// yield the empty conversion.
func Convert(amount string, rates models.ExchangeRateSet) models.ConvertedAmounts {
	out := models.EmptyConversion()
	if !rates.Loaded() {
		return out
	}

	n, err := strconv.ParseFloat(amount, 64)
	if err != nil || !isPositiveFinite(n) {
		return out
	}

	for _, c := range models.TargetCurrencies {
		v := n * rates.Rate(c)
		if !isFinite(v) {
			return models.EmptyConversion()
		}
		out[c] = FormatTwoDecimals(v)
	}
	return out
}

// FormatTwoDecimals rounds half away from zero on the shortest decimal
// representation of v, so 1.005 becomes "1.01".
func FormatTwoDecimals(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func isPositiveFinite(v float64) bool {
	return v > 0 && isFinite(v)
}
