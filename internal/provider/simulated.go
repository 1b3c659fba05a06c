package provider

import (
	"context"
	"time"

	"currency-converter/internal/models"
)

const DefaultSimulatedDelay = time.Second

// DefaultQuotes are the fixed COP quotes served by Simulated.
var DefaultQuotes = models.Quotes{
	models.USD: 3900,
	models.EUR: 4200,
	models.CNY: 540,
}

// Simulated waits a fixed delay and then returns hardcoded quotes.
type Simulated struct {
	delay  time.Duration
	quotes models.Quotes
	fail   error
}

type SimulatedOption func(*Simulated)

func WithDelay(d time.Duration) SimulatedOption {
	return func(s *Simulated) { s.delay = d }
}

func WithQuotes(q models.Quotes) SimulatedOption {
	return func(s *Simulated) { s.quotes = q }
}

// FailWith makes every load fail with err after the delay.
func FailWith(err error) SimulatedOption {
	return func(s *Simulated) { s.fail = err }
}

func NewSimulated(opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		delay:  DefaultSimulatedDelay,
		quotes: DefaultQuotes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulated) Name() string { return "simulated" }

func (s *Simulated) LoadRates(ctx context.Context) (models.Quotes, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, unavailable(s.Name(), ctx.Err())
	case <-timer.C:
	}

	if s.fail != nil {
		return nil, unavailable(s.Name(), s.fail)
	}

	out := make(models.Quotes, len(s.quotes))
	for c, q := range s.quotes {
		out[c] = q
	}
	return out, nil
}
