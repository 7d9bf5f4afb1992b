package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/commercekit/fxengine/internal/apperrors"
	"github.com/commercekit/fxengine/internal/core/domain"
	portsprov "github.com/commercekit/fxengine/internal/core/ports/providers"
	portsrepo "github.com/commercekit/fxengine/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateSyncService orchestrates fetch -> normalize -> persist for the
// configured currency basket. It is invoked both by interactive requests and
// by the unattended scheduler, so it catches every provider/storage failure
// internally and reports through the SyncResult shape instead of raising.
type RateSyncService struct {
	provider     portsprov.RateProvider
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	baseCurrency string
	basket       []string
	ttl          time.Duration
	logger       *slog.Logger

	// inFlight is the single mutual-exclusion gate shared by scheduled and
	// manual triggers. Concurrent writers to the same pair set are a
	// correctness hazard, so an overlapping run is rejected, never queued.
	inFlight sync.Mutex
}

// NewRateSyncService creates a new RateSyncService.
func NewRateSyncService(
	provider portsprov.RateProvider,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	baseCurrency string,
	basket []string,
	ttl time.Duration,
	logger *slog.Logger,
) *RateSyncService {
	return &RateSyncService{
		provider:     provider,
		rateRepo:     rateRepo,
		baseCurrency: baseCurrency,
		basket:       basket,
		ttl:          ttl,
		logger:       logger,
	}
}

// Synchronize runs one refresh. For every basket currency X with a valid
// quote r it builds both (BASE, X, r) and (X, BASE, 1/r), stamped with the
// provider's as-of timestamp, and upserts the whole set atomically.
// Currencies with missing or non-positive quotes are skipped and reported;
// the rest of the batch proceeds.
func (s *RateSyncService) Synchronize(ctx context.Context) domain.SyncResult {
	runID := uuid.NewString()
	logger := s.logger.With(slog.String("run_id", runID))

	if !s.inFlight.TryLock() {
		logger.Warn("Synchronization skipped, previous run still in flight")
		return domain.SyncResult{
			RunID:     runID,
			Success:   false,
			Err:       apperrors.ErrSyncInProgress,
			Timestamp: time.Now().UTC(),
		}
	}
	defer s.inFlight.Unlock()

	logger.Info("Starting rate synchronization",
		slog.String("base", s.baseCurrency),
		slog.Int("basket_size", len(s.basket)),
	)

	quotes, err := s.provider.FetchLiveQuotes(ctx, s.baseCurrency, s.basket)
	if err != nil {
		logger.Error("Rate synchronization failed fetching quotes", slog.String("error", err.Error()))
		return domain.SyncResult{
			RunID:     runID,
			Success:   false,
			Err:       err,
			Timestamp: time.Now().UTC(),
		}
	}

	byTarget := make(map[string]domain.Quote, len(quotes.Quotes))
	for _, q := range quotes.Quotes {
		if q.From == s.baseCurrency {
			byTarget[q.To] = q
		}
	}

	now := time.Now().UTC()
	one := decimal.NewFromInt(1)
	rows := make([]domain.ExchangeRate, 0, 2*len(s.basket))
	var skipped []string

	for _, target := range s.basket {
		quote, ok := byTarget[target]
		if !ok {
			logger.Warn("Skipping currency with missing quote", slog.String("currency", target))
			skipped = append(skipped, target)
			continue
		}
		if quote.Rate.LessThanOrEqual(decimal.Zero) {
			logger.Warn("Skipping currency with non-positive quote",
				slog.String("currency", target),
				slog.String("rate", quote.Rate.String()),
			)
			skipped = append(skipped, target)
			continue
		}

		// The inverse is computed at write time so rate(X,BASE) is always
		// numerically 1/rate(BASE,X) within the same batch.
		rows = append(rows,
			domain.ExchangeRate{
				FromCurrencyCode: s.baseCurrency,
				ToCurrencyCode:   target,
				Rate:             quote.Rate,
				Source:           quotes.Source,
				LastUpdated:      quotes.AsOf,
				UpdatedAt:        now,
			},
			domain.ExchangeRate{
				FromCurrencyCode: target,
				ToCurrencyCode:   s.baseCurrency,
				Rate:             one.Div(quote.Rate),
				Source:           quotes.Source,
				LastUpdated:      quotes.AsOf,
				UpdatedAt:        now,
			},
		)
	}

	written, err := s.rateRepo.UpsertExchangeRates(ctx, rows)
	if err != nil {
		logger.Error("Rate synchronization failed persisting batch", slog.String("error", err.Error()))
		return domain.SyncResult{
			RunID:     runID,
			Success:   false,
			Skipped:   skipped,
			Err:       fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err),
			Timestamp: quotes.AsOf,
		}
	}

	logger.Info("Rate synchronization completed",
		slog.Int("rates_written", written),
		slog.Int("skipped", len(skipped)),
		slog.Time("as_of", quotes.AsOf),
	)
	return domain.SyncResult{
		RunID:        runID,
		Success:      true,
		RatesWritten: written,
		Skipped:      skipped,
		Timestamp:    quotes.AsOf,
	}
}

// IsFresh reports whether the stored table is usable without a refresh.
// An empty table is stale. A single missing or stale pair marks the whole
// basket stale: consumers read the table as one conceptual snapshot, so
// partial freshness is not a valid state.
func (s *RateSyncService) IsFresh(ctx context.Context, now time.Time) (bool, error) {
	rows, err := s.rateRepo.ListExchangeRates(ctx, s.baseCurrency, s.basket)
	if err != nil {
		return false, fmt.Errorf("failed to check rate freshness: %w", err)
	}
	if len(rows) == 0 {
		return false, nil
	}

	cutoff := now.Add(-s.ttl)
	byTarget := make(map[string]domain.ExchangeRate, len(rows))
	for _, row := range rows {
		byTarget[row.ToCurrencyCode] = row
	}

	for _, target := range s.basket {
		row, ok := byTarget[target]
		if !ok {
			return false, nil
		}
		if !row.LastUpdated.After(cutoff) {
			return false, nil
		}
	}
	return true, nil
}

// FreshnessTTL returns the configured freshness window.
func (s *RateSyncService) FreshnessTTL() time.Duration {
	return s.ttl
}

// ListRates returns the canonical current rate table for display.
func (s *RateSyncService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, s.baseCurrency, s.basket)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}
