package service

import (
	"fmt"
	"strconv"
	"testing"

	"currency-converter/internal/models"
	"currency-converter/internal/provider"
)

func fmtUnavailable(err error) error {
	return fmt.Errorf("stub: %w: %w", provider.ErrRateUnavailable, err)
}

func mustParse(t *testing.T, s string) float64 {
	t.Helper()
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return n
}

func mustRates(t *testing.T) models.ExchangeRateSet {
	t.Helper()
	rates, err := models.NewExchangeRateSet(provider.DefaultQuotes)
	if err != nil {
		t.Fatalf("rates: %v", err)
	}
	return rates
}
