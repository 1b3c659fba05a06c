package provider

import (
	"context"

	"currency-converter/internal/models"
	"currency-converter/internal/repository"
)

type QuoteReader interface {
	GetLatestQuote(ctx context.Context, base, target models.Currency) (*repository.RateQuote, error)
}

// Postgres reads the latest quote per target from the exchange_rates table.
type Postgres struct {
	repo QuoteReader
	base models.Currency
}

func NewPostgres(repo QuoteReader, base models.Currency) *Postgres {
	return &Postgres{repo: repo, base: base}
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) LoadRates(ctx context.Context) (models.Quotes, error) {
	quotes := make(models.Quotes, len(models.TargetCurrencies))
	for _, target := range models.TargetCurrencies {
		q, err := p.repo.GetLatestQuote(ctx, p.base, target)
		if err != nil {
			return nil, unavailable(p.Name(), err)
		}
		quotes[target] = q.Quote
	}
	return quotes, nil
}
