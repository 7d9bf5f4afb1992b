package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/commercekit/fxengine/internal/apperrors"
	"github.com/commercekit/fxengine/internal/core/domain"
	portsrepo "github.com/commercekit/fxengine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ConvertWithTable converts amount between two currency codes against one
// rate table snapshot. When neither side is the table's base the conversion
// triangulates through it: amount / rate(from) * rate(to). A missing or zero
// rate is an error — conversion never silently falls back to the original
// amount, because an unconverted total is a financially wrong total.
func ConvertWithTable(amount decimal.Decimal, fromCode, toCode string, table domain.RateTable) (decimal.Decimal, error) {
	if fromCode == toCode {
		return amount, nil
	}

	if fromCode == table.Base {
		toRate, ok := table.Rates[toCode]
		if !ok || toRate.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: no usable rate for %s/%s", apperrors.ErrRateNotFound, table.Base, toCode)
		}
		return amount.Mul(toRate), nil
	}

	fromRate, ok := table.Rates[fromCode]
	if !ok || fromRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: no usable rate for %s/%s", apperrors.ErrRateNotFound, table.Base, fromCode)
	}
	inBase := amount.Div(fromRate)

	if toCode == table.Base {
		return inBase, nil
	}

	toRate, ok := table.Rates[toCode]
	if !ok || toRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: no usable rate for %s/%s", apperrors.ErrRateNotFound, table.Base, toCode)
	}
	return inBase.Mul(toRate), nil
}

// RoundForCurrency rounds amount to the currency's configured precision using
// half-up rounding (decimal.Round: round half away from zero), so 1.005 USD
// rounds to 1.01 and zero-decimal currencies round to whole units.
func RoundForCurrency(amount decimal.Decimal, currencyCode string) decimal.Decimal {
	return amount.Round(int32(domain.PrecisionFor(currencyCode)))
}

// PriceRangeWithTable converts and rounds every priced item into targetCode,
// then takes the elementwise min and max of the rounded results. Rounding
// happens per item before the range is taken, so the displayed range matches
// what a user sees when inspecting any single item.
func PriceRangeWithTable(items []domain.PricedItem, targetCode string, table domain.RateTable) (min, max decimal.Decimal, err error) {
	if len(items) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: price range requires at least one item", apperrors.ErrValidation)
	}

	for i, item := range items {
		converted, err := ConvertWithTable(item.Amount, item.Currency, targetCode, table)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		rounded := RoundForCurrency(converted, targetCode)
		if i == 0 {
			min, max = rounded, rounded
			continue
		}
		if rounded.LessThan(min) {
			min = rounded
		}
		if rounded.GreaterThan(max) {
			max = rounded
		}
	}
	return min, max, nil
}

// ConversionService exposes conversion over whatever rate table snapshot is
// currently committed. It reads the repository per call and never waits on an
// in-flight refresh.
type ConversionService struct {
	rateRepo     portsrepo.ExchangeRateReader
	baseCurrency string
	basket       []string
}

// NewConversionService creates a new ConversionService.
func NewConversionService(rateRepo portsrepo.ExchangeRateReader, baseCurrency string, basket []string) *ConversionService {
	return &ConversionService{
		rateRepo:     rateRepo,
		baseCurrency: baseCurrency,
		basket:       basket,
	}
}

// snapshot loads the committed rate table.
func (s *ConversionService) snapshot(ctx context.Context) (domain.RateTable, error) {
	rows, err := s.rateRepo.ListExchangeRates(ctx, s.baseCurrency, s.basket)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to load rate table: %w", err)
	}
	return domain.NewRateTable(s.baseCurrency, rows), nil
}

// ConvertAmount converts amount between two currency codes and rounds to the
// target currency's precision.
func (s *ConversionService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	table, err := s.snapshot(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	converted, err := ConvertWithTable(amount, fromCode, toCode, table)
	if err != nil {
		return decimal.Zero, err
	}
	return RoundForCurrency(converted, toCode), nil
}

// PriceRange converts and rounds every item into targetCode against a single
// snapshot and returns the min/max of the rounded results.
func (s *ConversionService) PriceRange(ctx context.Context, items []domain.PricedItem, targetCode string) (min, max decimal.Decimal, err error) {
	targetCode = strings.ToUpper(targetCode)
	if len(targetCode) != 3 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	table, err := s.snapshot(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	normalized := make([]domain.PricedItem, len(items))
	for i, item := range items {
		normalized[i] = domain.PricedItem{Amount: item.Amount, Currency: strings.ToUpper(item.Currency)}
	}
	return PriceRangeWithTable(normalized, targetCode, table)
}
