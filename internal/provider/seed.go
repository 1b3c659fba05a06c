package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"currency-converter/internal/models"
	"currency-converter/internal/repository"
)

const seedSource = "seed"

type QuoteWriter interface {
	SaveQuote(ctx context.Context, q *repository.RateQuote) error
}

type HashWriter interface {
	HSet(ctx context.Context, key string, values map[string]string) error
}

// SeedPostgres inserts one quote row per target currency.
func SeedPostgres(ctx context.Context, repo QuoteWriter, base models.Currency, quotes models.Quotes) error {
	now := time.Now().UTC()
	for _, target := range models.TargetCurrencies {
		q, ok := quotes[target]
		if !ok {
			return fmt.Errorf("seed postgres: missing quote for %s", target)
		}
		err := repo.SaveQuote(ctx, &repository.RateQuote{
			BaseCurrency:   base,
			TargetCurrency: target,
			Quote:          q,
			Source:         seedSource,
			Timestamp:      now,
		})
		if err != nil {
			return fmt.Errorf("seed postgres %s: %w", target, err)
		}
	}
	return nil
}

// SeedRedis writes the rates hash read by Redis.
func SeedRedis(ctx context.Context, client HashWriter, base models.Currency, quotes models.Quotes) error {
	values := make(map[string]string, len(models.TargetCurrencies))
	for _, target := range models.TargetCurrencies {
		q, ok := quotes[target]
		if !ok {
			return fmt.Errorf("seed redis: missing quote for %s", target)
		}
		values[string(target)] = decimal.NewFromFloat(q).String()
	}
	if err := client.HSet(ctx, RatesKey(base), values); err != nil {
		return fmt.Errorf("seed redis: %w", err)
	}
	return nil
}
