package dto

import (
	"time"

	"github.com/commercekit/fxengine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"`
	LastUpdated      time.Time       `json:"lastUpdated"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		Source:           rate.Source,
		LastUpdated:      rate.LastUpdated,
		UpdatedAt:        rate.UpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToExchangeRateResponse(rate)
	}
	return responses
}

// RatesListResponse is the public rates listing: the canonical rate table
// plus its freshness.
type RatesListResponse struct {
	BaseCurrency string                 `json:"baseCurrency"`
	Fresh        bool                   `json:"fresh"`
	Rates        []ExchangeRateResponse `json:"rates"`
}

// SyncResponse reports the outcome of a refresh trigger.
type SyncResponse struct {
	RunID        string    `json:"runID"`
	Success      bool      `json:"success"`
	RatesWritten int       `json:"ratesWritten"`
	Skipped      []string  `json:"skipped,omitempty"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToSyncResponse converts a domain.SyncResult to SyncResponse DTO
func ToSyncResponse(result domain.SyncResult) SyncResponse {
	resp := SyncResponse{
		RunID:        result.RunID,
		Success:      result.Success,
		RatesWritten: result.RatesWritten,
		Skipped:      result.Skipped,
		Timestamp:    result.Timestamp,
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	return resp
}

// FreshnessResponse reports whether the stored table is within its TTL.
type FreshnessResponse struct {
	Fresh bool   `json:"fresh"`
	TTL   string `json:"ttl"`
}
