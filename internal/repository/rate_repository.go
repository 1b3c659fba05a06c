package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"currency-converter/internal/models"
)

var ErrRateNotFound = errors.New("exchange rate not found")

// RateQuote is one row of exchange_rates: base units per one target unit.
type RateQuote struct {
	BaseCurrency   models.Currency
	TargetCurrency models.Currency
	Quote          float64
	Source         string
	Timestamp      time.Time
}

type RateRepository struct {
	db *sql.DB
}

func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// EnsureSchema creates the exchange_rates table if missing
func (r *RateRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, RateSchema)
	return err
}

func (r *RateRepository) SaveQuote(ctx context.Context, q *RateQuote) error {
	query := `
		INSERT INTO exchange_rates (base_currency, target_currency, quote, source, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		string(q.BaseCurrency),
		string(q.TargetCurrency),
		q.Quote,
		q.Source,
		q.Timestamp,
	)
	return err
}

func (r *RateRepository) GetLatestQuote(ctx context.Context, base, target models.Currency) (*RateQuote, error) {
	query := `
		SELECT base_currency, target_currency, quote, source, timestamp
		FROM exchange_rates
		WHERE base_currency = $1 AND target_currency = $2
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var baseCode, targetCode string
	q := &RateQuote{}
	err := r.db.QueryRowContext(ctx, query, string(base), string(target)).Scan(
		&baseCode,
		&targetCode,
		&q.Quote,
		&q.Source,
		&q.Timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", base, target, ErrRateNotFound)
	}
	if err != nil {
		return nil, err
	}

	q.BaseCurrency = models.Currency(baseCode)
	q.TargetCurrency = models.Currency(targetCode)
	return q, nil
}

const RateSchema = `
CREATE TABLE IF NOT EXISTS exchange_rates (
    id BIGSERIAL PRIMARY KEY,
    base_currency VARCHAR(3) NOT NULL,
    target_currency VARCHAR(3) NOT NULL,
    quote DECIMAL(19, 6) NOT NULL CHECK (quote > 0),
    source VARCHAR(64) NOT NULL,
    timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_exchange_rates_pair_ts
    ON exchange_rates (base_currency, target_currency, timestamp DESC);
`
