package providers

import (
	"context"

	"github.com/commercekit/fxengine/internal/core/domain"
)

// RateProvider fetches live quotes for a currency basket from an upstream
// source. Implementations own the vendor-specific payload shape (pair-key
// encoding, success flags) and return only structured quotes; they perform
// no retries — retry policy is the next scheduled tick.
type RateProvider interface {
	FetchLiveQuotes(ctx context.Context, base string, basket []string) (*domain.ProviderQuotes, error)
}
