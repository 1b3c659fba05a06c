package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"currency-converter/internal/models"
)

const namespace = "converter"

type ConverterMetrics struct {
	RateLoadsTotal    *prometheus.CounterVec
	RateLoadDuration  *prometheus.HistogramVec
	AmountInputsTotal *prometheus.CounterVec
	LoadState         *prometheus.GaugeVec
}

// NewConverterMetrics registers the collectors with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewConverterMetrics(reg prometheus.Registerer) *ConverterMetrics {
	factory := promauto.With(reg)

	return &ConverterMetrics{
		RateLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_loads_total",
				Help:      "Exchange rate loads by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		RateLoadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rate_load_duration_seconds",
				Help:      "Time spent waiting for the rate provider",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10},
			},
			[]string{"source"},
		),
		AmountInputsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "amount_inputs_total",
				Help:      "Amount submissions by outcome",
			},
			[]string{"outcome"},
		),
		LoadState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "load_state",
				Help:      "1 for the current rate load state, 0 otherwise",
			},
			[]string{"state"},
		),
	}
}

func (m *ConverterMetrics) SetLoadState(state models.LoadState) {
	for _, s := range []models.LoadState{models.LoadStateLoading, models.LoadStateReady, models.LoadStateFailed} {
		v := 0.0
		if s == state {
			v = 1
		}
		m.LoadState.WithLabelValues(string(s)).Set(v)
	}
}

func (m *ConverterMetrics) ObserveAmount(accepted bool) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	m.AmountInputsTotal.WithLabelValues(outcome).Inc()
}
