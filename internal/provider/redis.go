package provider

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"currency-converter/internal/models"
)

type HashReader interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Redis reads quotes from a hash keyed "rates:<BASE>" whose fields are
// target codes and whose values are decimal strings.
type Redis struct {
	client HashReader
	base   models.Currency
}

func NewRedis(client HashReader, base models.Currency) *Redis {
	return &Redis{client: client, base: base}
}

func (r *Redis) Name() string { return "redis" }

func RatesKey(base models.Currency) string {
	return fmt.Sprintf("rates:%s", base)
}

func (r *Redis) LoadRates(ctx context.Context) (models.Quotes, error) {
	fields, err := r.client.HGetAll(ctx, RatesKey(r.base))
	if err != nil {
		return nil, unavailable(r.Name(), err)
	}

	quotes := make(models.Quotes, len(models.TargetCurrencies))
	for _, target := range models.TargetCurrencies {
		raw, ok := fields[string(target)]
		if !ok {
			return nil, unavailable(r.Name(), fmt.Errorf("missing field %s", target))
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, unavailable(r.Name(), fmt.Errorf("field %s: %w", target, err))
		}
		quotes[target] = d.InexactFloat64()
	}
	return quotes, nil
}
