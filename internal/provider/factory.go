package provider

import (
	"errors"
	"fmt"

	"currency-converter/internal/config"
	"currency-converter/internal/models"
)

var errSimulatedFailure = errors.New("simulated outage")

// Deps carries the backing stores; only the one matching RATE_SOURCE is needed.
type Deps struct {
	Quotes QuoteReader
	Hashes HashReader
}

func New(cfg *config.Config, deps Deps) (Provider, error) {
	switch cfg.RateSource {
	case config.SourceSimulated:
		opts := []SimulatedOption{WithDelay(cfg.Simulated.Delay)}
		if cfg.Simulated.Fail {
			opts = append(opts, FailWith(errSimulatedFailure))
		}
		return NewSimulated(opts...), nil
	case config.SourcePostgres:
		if deps.Quotes == nil {
			return nil, fmt.Errorf("rate source %q requires a database", cfg.RateSource)
		}
		return NewPostgres(deps.Quotes, models.BaseCurrency), nil
	case config.SourceRedis:
		if deps.Hashes == nil {
			return nil, fmt.Errorf("rate source %q requires a redis client", cfg.RateSource)
		}
		return NewRedis(deps.Hashes, models.BaseCurrency), nil
	default:
		return nil, fmt.Errorf("unknown rate source %q", cfg.RateSource)
	}
}
