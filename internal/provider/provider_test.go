package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-converter/internal/config"
	"currency-converter/internal/models"
	"currency-converter/internal/repository"
)

type fakeQuoteStore struct {
	quotes map[models.Currency]float64
	err    error
	saved  []*repository.RateQuote
}

func (f *fakeQuoteStore) GetLatestQuote(_ context.Context, base, target models.Currency) (*repository.RateQuote, error) {
	if f.err != nil {
		return nil, f.err
	}
	q, ok := f.quotes[target]
	if !ok {
		return nil, repository.ErrRateNotFound
	}
	return &repository.RateQuote{BaseCurrency: base, TargetCurrency: target, Quote: q}, nil
}

func (f *fakeQuoteStore) SaveQuote(_ context.Context, q *repository.RateQuote) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, q)
	return nil
}

type fakeHashStore struct {
	hashes map[string]map[string]string
	err    error
}

func (f *fakeHashStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	h, ok := f.hashes[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return h, nil
}

func (f *fakeHashStore) HSet(_ context.Context, key string, values map[string]string) error {
	if f.err != nil {
		return f.err
	}
	if f.hashes == nil {
		f.hashes = map[string]map[string]string{}
	}
	f.hashes[key] = values
	return nil
}

func TestSimulatedLoadRates(t *testing.T) {
	p := NewSimulated(WithDelay(time.Millisecond))

	quotes, err := p.LoadRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultQuotes, quotes)

	quotes[models.USD] = 1
	assert.Equal(t, 3900.0, DefaultQuotes[models.USD], "LoadRates must not hand out shared state")
}

func TestSimulatedWaitsForDelay(t *testing.T) {
	p := NewSimulated(WithDelay(20 * time.Millisecond))

	start := time.Now()
	_, err := p.LoadRates(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulatedFailure(t *testing.T) {
	boom := errors.New("boom")
	p := NewSimulated(WithDelay(0), FailWith(boom))

	_, err := p.LoadRates(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.ErrorIs(t, err, boom)
}

func TestSimulatedCancelled(t *testing.T) {
	p := NewSimulated(WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.LoadRates(ctx)
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPostgresLoadRates(t *testing.T) {
	store := &fakeQuoteStore{quotes: map[models.Currency]float64{
		models.USD: 3950, models.EUR: 4300, models.CNY: 545,
	}}
	p := NewPostgres(store, models.COP)

	quotes, err := p.LoadRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Quotes{models.USD: 3950, models.EUR: 4300, models.CNY: 545}, quotes)
}

func TestPostgresMissingQuote(t *testing.T) {
	store := &fakeQuoteStore{quotes: map[models.Currency]float64{models.USD: 3950}}
	p := NewPostgres(store, models.COP)

	_, err := p.LoadRates(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.ErrorIs(t, err, repository.ErrRateNotFound)
}

func TestRedisLoadRates(t *testing.T) {
	store := &fakeHashStore{hashes: map[string]map[string]string{
		"rates:COP": {"USD": "3900", "EUR": "4200.50", "CNY": "540"},
	}}
	p := NewRedis(store, models.COP)

	quotes, err := p.LoadRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4200.5, quotes[models.EUR])
	assert.Len(t, quotes, 3)
}

func TestRedisLoadRatesAcceptsInexactDecimals(t *testing.T) {
	store := &fakeHashStore{hashes: map[string]map[string]string{
		"rates:COP": {"USD": "3900.123456789012345678901234", "EUR": "4200.1", "CNY": "540"},
	}}

	quotes, err := NewRedis(store, models.COP).LoadRates(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 3900.123456789012, quotes[models.USD], 1e-9)
	assert.Equal(t, 4200.1, quotes[models.EUR])
}

func TestRedisLoadRatesErrors(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeHashStore
	}{
		{
			name:  "Missing hash",
			store: &fakeHashStore{},
		},
		{
			name: "Missing field",
			store: &fakeHashStore{hashes: map[string]map[string]string{
				"rates:COP": {"USD": "3900", "EUR": "4200"},
			}},
		},
		{
			name: "Unparsable value",
			store: &fakeHashStore{hashes: map[string]map[string]string{
				"rates:COP": {"USD": "3900", "EUR": "abc", "CNY": "540"},
			}},
		},
		{
			name:  "Connection error",
			store: &fakeHashStore{err: errors.New("dial tcp: refused")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRedis(tt.store, models.COP).LoadRates(context.Background())
			assert.ErrorIs(t, err, ErrRateUnavailable)
		})
	}
}

func TestSeedRoundTrip(t *testing.T) {
	ctx := context.Background()

	hashes := &fakeHashStore{}
	require.NoError(t, SeedRedis(ctx, hashes, models.COP, DefaultQuotes))
	quotes, err := NewRedis(hashes, models.COP).LoadRates(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultQuotes, quotes)

	rows := &fakeQuoteStore{}
	require.NoError(t, SeedPostgres(ctx, rows, models.COP, DefaultQuotes))
	require.Len(t, rows.saved, 3)
	for _, q := range rows.saved {
		assert.Equal(t, models.COP, q.BaseCurrency)
		assert.Equal(t, DefaultQuotes[q.TargetCurrency], q.Quote)
	}
}

func TestSeedMissingQuote(t *testing.T) {
	partial := models.Quotes{models.USD: 3900}
	assert.Error(t, SeedRedis(context.Background(), &fakeHashStore{}, models.COP, partial))
	assert.Error(t, SeedPostgres(context.Background(), &fakeQuoteStore{}, models.COP, partial))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		deps     Deps
		wantName string
		wantErr  bool
	}{
		{name: "Simulated", source: config.SourceSimulated, wantName: "simulated"},
		{name: "Postgres", source: config.SourcePostgres, deps: Deps{Quotes: &fakeQuoteStore{}}, wantName: "postgres"},
		{name: "Redis", source: config.SourceRedis, deps: Deps{Hashes: &fakeHashStore{}}, wantName: "redis"},
		{name: "Postgres without db", source: config.SourcePostgres, wantErr: true},
		{name: "Redis without client", source: config.SourceRedis, wantErr: true},
		{name: "Unknown", source: "carrier-pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{RateSource: tt.source}
			p, err := New(cfg, tt.deps)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewSimulatedFailFlag(t *testing.T) {
	cfg := &config.Config{RateSource: config.SourceSimulated}
	cfg.Simulated.Fail = true

	p, err := New(cfg, Deps{})
	require.NoError(t, err)

	_, err = p.LoadRates(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
}
