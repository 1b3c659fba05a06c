// Package provider supplies exchange-rate quotes for the converter. A
// provider is called once per session and never retries.
package provider

import (
	"context"
	"errors"
	"fmt"

	"currency-converter/internal/models"
)

var ErrRateUnavailable = errors.New("exchange rates unavailable")

type Provider interface {
	// LoadRates returns base units per one unit of each target currency.
	// Every error wraps ErrRateUnavailable.
	LoadRates(ctx context.Context) (models.Quotes, error)
	Name() string
}

func unavailable(source string, err error) error {
	return fmt.Errorf("%s: %w: %w", source, ErrRateUnavailable, err)
}
