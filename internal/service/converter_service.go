package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"currency-converter/internal/metrics"
	"currency-converter/internal/models"
	"currency-converter/internal/provider"
)

// ErrLoadInFlight is returned by Initialize while another load is pending.
var ErrLoadInFlight = errors.New("rate load already in progress")

// ErrNotReady is returned by SetAmountWhenReady before rates are loaded.
var ErrNotReady = errors.New("exchange rates not loaded")

// ConverterService owns the amount input and the loaded rates and keeps the
// converted amounts derived from both.
type ConverterService struct {
	provider provider.Provider
	metrics  *metrics.ConverterMetrics
	logger   *zap.Logger

	mu        sync.RWMutex
	sessionID string
	state     models.LoadState
	errMsg    string
	amount    string
	rates     models.ExchangeRateSet
	converted models.ConvertedAmounts
	loadedAt  time.Time
	inFlight  bool
}

func NewConverterService(p provider.Provider, m *metrics.ConverterMetrics, logger *zap.Logger) *ConverterService {
	s := &ConverterService{
		provider:  p,
		metrics:   m,
		logger:    logger,
		sessionID: uuid.New().String(),
		state:     models.LoadStateLoading,
		converted: models.EmptyConversion(),
	}
	m.SetLoadState(models.LoadStateLoading)
	return s
}

// Initialize loads rates from the provider and blocks until it settles.
// Calling it again after a terminal state reinitializes the session; the
// amount input is kept.
func (s *ConverterService) Initialize(ctx context.Context) error {
	sessionID, err := s.begin()
	if err != nil {
		return err
	}
	return s.load(ctx, sessionID)
}

// Start is Initialize without blocking. It returns ErrLoadInFlight right
// away when a load is pending; otherwise done receives the outcome.
func (s *ConverterService) Start(ctx context.Context) (<-chan error, error) {
	sessionID, err := s.begin()
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.load(ctx, sessionID)
	}()
	return done, nil
}

func (s *ConverterService) begin() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		s.logger.Debug("ignoring initialize while a load is in flight")
		return "", ErrLoadInFlight
	}
	s.inFlight = true
	s.sessionID = uuid.New().String()
	s.state = models.LoadStateLoading
	s.errMsg = ""
	s.rates = models.ExchangeRateSet{}
	s.loadedAt = time.Time{}
	s.recompute()
	s.metrics.SetLoadState(models.LoadStateLoading)
	return s.sessionID, nil
}

func (s *ConverterService) load(ctx context.Context, sessionID string) error {
	s.logger.Info("loading exchange rates",
		zap.String("session_id", sessionID),
		zap.String("source", s.provider.Name()))

	start := time.Now()
	rates, err := s.loadRates(ctx)
	s.metrics.RateLoadDuration.WithLabelValues(s.provider.Name()).Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.state = models.LoadStateFailed
		s.errMsg = models.RateUnavailableMessage
		s.metrics.SetLoadState(models.LoadStateFailed)
		s.metrics.RateLoadsTotal.WithLabelValues(s.provider.Name(), "failed").Inc()
		s.logger.Error("failed to load exchange rates",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return fmt.Errorf("initialize converter: %w", err)
	}

	s.rates = rates
	s.state = models.LoadStateReady
	s.loadedAt = time.Now().UTC()
	s.recompute()
	s.metrics.SetLoadState(models.LoadStateReady)
	s.metrics.RateLoadsTotal.WithLabelValues(s.provider.Name(), "ready").Inc()
	s.logger.Info("exchange rates loaded",
		zap.String("session_id", sessionID),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *ConverterService) loadRates(ctx context.Context) (models.ExchangeRateSet, error) {
	quotes, err := s.provider.LoadRates(ctx)
	if err != nil {
		return models.ExchangeRateSet{}, err
	}
	rates, err := models.NewExchangeRateSet(quotes)
	if err != nil {
		return models.ExchangeRateSet{}, fmt.Errorf("%s: %w: %w", s.provider.Name(), provider.ErrRateUnavailable, err)
	}
	return rates, nil
}

// SetAmount stores raw and recomputes the conversion. Text that is not a
// plain decimal number is dropped and false is returned; nothing changes.
func (s *ConverterService) SetAmount(raw string) bool {
	if !ValidAmount(raw) {
		s.metrics.ObserveAmount(false)
		s.logger.Debug("amount rejected", zap.String("input", raw))
		return false
	}

	s.mu.Lock()
	s.amount = raw
	s.recompute()
	s.mu.Unlock()

	s.metrics.ObserveAmount(true)
	return true
}

// SetAmountWhenReady is SetAmount gated on LoadStateReady. The state check
// and the write happen under one lock, so a reload cannot slip between them.
func (s *ConverterService) SetAmountWhenReady(raw string) (bool, error) {
	if !ValidAmount(raw) {
		s.metrics.ObserveAmount(false)
		s.logger.Debug("amount rejected", zap.String("input", raw))
		return false, nil
	}

	s.mu.Lock()
	if s.state != models.LoadStateReady {
		state := s.state
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrNotReady, state)
	}
	s.amount = raw
	s.recompute()
	s.mu.Unlock()

	s.metrics.ObserveAmount(true)
	return true, nil
}

// recompute must be called with mu held.
func (s *ConverterService) recompute() {
	s.converted = Convert(s.amount, s.rates)
}

func (s *ConverterService) LoadState() models.LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// State returns a copy of the current view-model state.
func (s *ConverterService) State() models.ConverterState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := models.ConverterState{
		SessionID: s.sessionID,
		LoadState: s.state,
		Error:     s.errMsg,
		Amount:    s.amount,
		Converted: make(models.ConvertedAmounts, len(s.converted)),
		Source:    s.provider.Name(),
		LoadedAt:  s.loadedAt,
	}
	for c, v := range s.converted {
		st.Converted[c] = v
	}
	if s.rates.Loaded() {
		st.Rates = s.rates.Rates()
	}
	return st
}

// View renders the display contract: a symbol-prefixed amount or "0.00"
// per target, plus the base-per-target reference rate.
func (s *ConverterService) View() models.ConverterView {
	st := s.State()

	view := models.ConverterView{
		SessionID:    st.SessionID,
		Status:       st.LoadState,
		Error:        st.Error,
		BaseCurrency: models.BaseCurrency.Info(),
		Amount:       st.Amount,
	}
	if st.LoadState != models.LoadStateReady {
		return view
	}

	for _, c := range models.TargetCurrencies {
		info := c.Info()
		line := models.ConversionLine{
			Currency:      c,
			Name:          info.Name,
			Symbol:        info.Symbol,
			Converted:     st.Converted[c],
			Display:       "0.00",
			ReferenceRate: FormatTwoDecimals(1 / st.Rates[c]),
		}
		if line.Converted != "" {
			line.Display = info.Symbol + line.Converted
		}
		view.Lines = append(view.Lines, line)
	}
	return view
}

// SupportedCurrencies returns the fixed target list
func (s *ConverterService) SupportedCurrencies() []models.CurrencyInfo {
	out := make([]models.CurrencyInfo, 0, len(models.TargetCurrencies))
	for _, c := range models.TargetCurrencies {
		out = append(out, c.Info())
	}
	return out
}
