package domain

import "github.com/shopspring/decimal"

// PricedItem is one price in its native currency, e.g. a product variant.
type PricedItem struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}
