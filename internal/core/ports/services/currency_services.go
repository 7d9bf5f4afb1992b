package services

import (
	"context"

	"github.com/commercekit/fxengine/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for currency definitions
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency definition by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.CurrencyDefinition, error)

	// ListCurrencies retrieves all supported currency definitions.
	ListCurrencies(ctx context.Context) ([]domain.CurrencyDefinition, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
