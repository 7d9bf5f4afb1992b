package money_test

import (
	"testing"

	"github.com/commercekit/fxengine/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"two-decimal with grouping", "1234567.891", "USD", "$1,234,567.89"},
		{"pads decimal digits", "5", "USD", "$5.00"},
		{"zero-decimal currency", "1500000", "IDR", "Rp1,500,000"},
		{"zero-decimal rounds", "1500.5", "JPY", "¥1,501"},
		{"euro symbol", "99.9", "EUR", "€99.90"},
		{"letter symbol", "42", "SGD", "S$42.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.Format(decimal.RequireFromString(tt.amount), tt.currency)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_UnknownCurrencyFallback(t *testing.T) {
	got := money.Format(decimal.RequireFromString("12.34"), "ZZZ")
	assert.Equal(t, "12.34 ZZZ", got)
}
