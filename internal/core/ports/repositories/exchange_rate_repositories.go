package repositories

import (
	"context"

	"github.com/commercekit/fxengine/internal/core/domain"
)

// ExchangeRateReader defines read operations for stored exchange rates
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the stored rate for one ordered currency pair.
	// Returns apperrors.ErrNotFound when the pair has no row.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates returns the canonical rate table: the rows with
	// from == base and to in basket, ordered by to_currency_code ascending.
	ListExchangeRates(ctx context.Context, base string, basket []string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for stored exchange rates
type ExchangeRateWriter interface {
	// UpsertExchangeRates creates or overwrites every row in the batch, keyed
	// by (from, to), as a single atomic unit of work. Duplicate pairs within
	// one batch resolve last-write-wins. Returns the number of rows written.
	UpsertExchangeRates(ctx context.Context, rates []domain.ExchangeRate) (int, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces.
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
