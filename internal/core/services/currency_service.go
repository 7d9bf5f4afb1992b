package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/commercekit/fxengine/internal/apperrors"
	"github.com/commercekit/fxengine/internal/core/domain"
)

// CurrencyService serves the static currency definition registry. Definitions
// are in-process configuration, not rows; there is nothing to persist.
type CurrencyService struct{}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService() *CurrencyService {
	return &CurrencyService{}
}

func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.CurrencyDefinition, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if len(currencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	def, ok := domain.DefinitionFor(currencyCode)
	if !ok {
		return nil, fmt.Errorf("%w: currency '%s' is not supported", apperrors.ErrNotFound, currencyCode)
	}
	return &def, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.CurrencyDefinition, error) {
	return domain.ListDefinitions(), nil
}
