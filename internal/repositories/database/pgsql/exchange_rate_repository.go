package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/commercekit/fxengine/internal/apperrors"
	"github.com/commercekit/fxengine/internal/core/domain"
	"github.com/commercekit/fxengine/internal/models"
	"github.com/commercekit/fxengine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the exchange rate repository facade
// using pgxpool. (from_currency_code, to_currency_code) is the primary key;
// refreshes upsert against it so a pair is never duplicated.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const upsertExchangeRateSQL = `
	INSERT INTO exchange_rates (
		from_currency_code, to_currency_code, rate, source, last_updated, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (from_currency_code, to_currency_code) DO UPDATE SET
		rate = EXCLUDED.rate,
		source = EXCLUDED.source,
		last_updated = EXCLUDED.last_updated,
		updated_at = EXCLUDED.updated_at`

// UpsertExchangeRates creates or overwrites every row in the batch inside a
// single transaction, so concurrent readers never observe a half-updated
// basket. Duplicate pairs within one batch resolve last-write-wins because
// statements execute in order.
func (r *PgxExchangeRateRepository) UpsertExchangeRates(ctx context.Context, rates []domain.ExchangeRate) (int, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, rate := range rates {
		modelRate := mapping.ToModelExchangeRate(rate)
		modelRate.FromCurrencyCode = strings.ToUpper(modelRate.FromCurrencyCode)
		modelRate.ToCurrencyCode = strings.ToUpper(modelRate.ToCurrencyCode)

		_, err = tx.Exec(ctx, upsertExchangeRateSQL,
			modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, modelRate.Rate,
			modelRate.Source, modelRate.LastUpdated, modelRate.UpdatedAt,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return 0, fmt.Errorf("%w: failed to upsert rate %s/%s: %v",
				apperrors.ErrStorageFailure, modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, err)
		}
		written++
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return written, nil
}

// FindExchangeRate retrieves the stored rate for one ordered currency pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT from_currency_code, to_currency_code, rate, source, last_updated, updated_at
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2;
	`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode)).Scan(
		&modelRate.FromCurrencyCode, &modelRate.ToCurrencyCode, &modelRate.Rate,
		&modelRate.Source, &modelRate.LastUpdated, &modelRate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no exchange rate for pair %s/%s",
				apperrors.ErrNotFound, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode))
		}
		return nil, fmt.Errorf("%w: failed to find exchange rate: %v", apperrors.ErrStorageFailure, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListExchangeRates returns the canonical rate table: rows with from == base
// and to in basket, ordered by to_currency_code ascending.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, base string, basket []string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT from_currency_code, to_currency_code, rate, source, last_updated, updated_at
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = ANY($2)
		ORDER BY to_currency_code ASC;
	`

	upperBasket := make([]string, len(basket))
	for i, code := range basket {
		upperBasket[i] = strings.ToUpper(code)
	}

	rows, err := r.Pool.Query(ctx, query, strings.ToUpper(base), upperBasket)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list exchange rates: %v", apperrors.ErrStorageFailure, err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var modelRate models.ExchangeRate
		err := rows.Scan(
			&modelRate.FromCurrencyCode, &modelRate.ToCurrencyCode, &modelRate.Rate,
			&modelRate.Source, &modelRate.LastUpdated, &modelRate.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan exchange rate: %v", apperrors.ErrStorageFailure, err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(modelRate))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating exchange rates: %v", apperrors.ErrStorageFailure, err)
	}

	return rates, nil
}
