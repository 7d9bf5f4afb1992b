package dto

import (
	"github.com/shopspring/decimal"
)

// ConvertQuery binds the conversion query parameters.
type ConvertQuery struct {
	Amount decimal.Decimal `form:"amount" binding:"required"`
	From   string          `form:"from" binding:"required,len=3,uppercase"`
	To     string          `form:"to" binding:"required,len=3,uppercase"`
}

// ConvertResponse returns a converted, rounded amount plus its display form.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
	Formatted string          `json:"formatted"`
}

// PricedItemRequest is one variant price in its native currency.
type PricedItemRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required,len=3,uppercase"`
}

// PriceRangeRequest asks for the min/max of a set of priced items converted
// into a target currency.
type PriceRangeRequest struct {
	Items          []PricedItemRequest `json:"items" binding:"required,min=1,dive"`
	TargetCurrency string              `json:"targetCurrency" binding:"required,len=3,uppercase"`
}

// PriceRangeResponse returns the rounded min/max plus display forms.
type PriceRangeResponse struct {
	Currency     string          `json:"currency"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	MinFormatted string          `json:"minFormatted"`
	MaxFormatted string          `json:"maxFormatted"`
}
