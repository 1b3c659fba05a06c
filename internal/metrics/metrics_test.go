package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"currency-converter/internal/models"
)

func TestSetLoadState(t *testing.T) {
	m := NewConverterMetrics(prometheus.NewRegistry())

	m.SetLoadState(models.LoadStateLoading)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoadState.WithLabelValues("loading")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LoadState.WithLabelValues("ready")))

	m.SetLoadState(models.LoadStateReady)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LoadState.WithLabelValues("loading")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoadState.WithLabelValues("ready")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LoadState.WithLabelValues("failed")))
}

func TestObserveAmount(t *testing.T) {
	m := NewConverterMetrics(prometheus.NewRegistry())

	m.ObserveAmount(true)
	m.ObserveAmount(true)
	m.ObserveAmount(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AmountInputsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AmountInputsTotal.WithLabelValues("rejected")))
}
