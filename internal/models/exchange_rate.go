package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the persistence-layer shape of one stored rate row.
// Note: Rate uses github.com/shopspring/decimal; float64 never carries money.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"` // PK part, FK -> currency registry
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // PK part, FK -> currency registry
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"`
	LastUpdated      time.Time       `json:"lastUpdated"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}
