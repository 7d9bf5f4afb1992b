package services

import (
	"context"
	"time"

	"github.com/commercekit/fxengine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSyncSvc triggers a synchronization run against the upstream provider.
type RateSyncSvc interface {
	// Synchronize fetches live quotes, builds direct and inverse rows for
	// every valid basket currency and upserts them. It never returns an
	// error; failures are reported through the result.
	Synchronize(ctx context.Context) domain.SyncResult
}

// RateFreshnessSvc answers whether the stored rate table is usable without a
// refresh.
type RateFreshnessSvc interface {
	// IsFresh reports true only when every basket pair exists and every row's
	// LastUpdated is strictly more recent than now minus the configured TTL.
	IsFresh(ctx context.Context, now time.Time) (bool, error)

	// FreshnessTTL returns the configured freshness window.
	FreshnessTTL() time.Duration
}

// RateReaderSvc exposes the current rate table for display.
type RateReaderSvc interface {
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateSyncSvcFacade combines all synchronization-related service interfaces
type RateSyncSvcFacade interface {
	RateSyncSvc
	RateFreshnessSvc
	RateReaderSvc
}

// ConversionSvcFacade converts amounts between supported currencies using the
// currently committed rate table snapshot.
type ConversionSvcFacade interface {
	// ConvertAmount converts amount between two currency codes and rounds the
	// result to the target currency's precision. Returns
	// apperrors.ErrRateNotFound when a required pair is absent.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)

	// PriceRange converts and rounds every priced item into targetCode, then
	// returns the elementwise min and max of the rounded results.
	PriceRange(ctx context.Context, items []domain.PricedItem, targetCode string) (min, max decimal.Decimal, err error)
}
