package models

import "time"

type LoadState string

const (
	LoadStateLoading LoadState = "loading"
	LoadStateReady   LoadState = "ready"
	LoadStateFailed  LoadState = "failed"
)

// ConvertedAmounts maps each target currency to a two-decimal string, or to
// "" when the amount does not convert.
type ConvertedAmounts map[Currency]string

// EmptyConversion returns the neutral "no conversion" value.
func EmptyConversion() ConvertedAmounts {
	out := make(ConvertedAmounts, len(TargetCurrencies))
	for _, c := range TargetCurrencies {
		out[c] = ""
	}
	return out
}

// IsEmpty reports whether no target carries a value.
func (c ConvertedAmounts) IsEmpty() bool {
	for _, v := range c {
		if v != "" {
			return false
		}
	}
	return true
}

// ConverterState is a point-in-time copy of the view-model.
type ConverterState struct {
	SessionID string               `json:"session_id"`
	LoadState LoadState            `json:"load_state"`
	Error     string               `json:"error,omitempty"`
	Amount    string               `json:"amount"`
	Rates     map[Currency]float64 `json:"rates,omitempty"`
	Converted ConvertedAmounts     `json:"converted"`
	Source    string               `json:"source"`
	LoadedAt  time.Time            `json:"loaded_at,omitempty"`
}

// ConversionLine is one row of the display contract.
type ConversionLine struct {
	Currency      Currency `json:"currency"`
	Name          string   `json:"name"`
	Symbol        string   `json:"symbol"`
	Converted     string   `json:"converted"`
	Display       string   `json:"display"`
	ReferenceRate string   `json:"reference_rate"`
}

type ConverterView struct {
	SessionID    string           `json:"session_id"`
	Status       LoadState        `json:"status"`
	Error        string           `json:"error,omitempty"`
	BaseCurrency CurrencyInfo     `json:"base_currency"`
	Amount       string           `json:"amount"`
	Lines        []ConversionLine `json:"lines,omitempty"`
}

type AmountRequest struct {
	Amount *string `json:"amount" binding:"required"`
}

type AmountResponse struct {
	Accepted bool          `json:"accepted"`
	View     ConverterView `json:"view"`
}
