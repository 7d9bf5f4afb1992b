package services_test

import (
	"context"
	"testing"

	"github.com/commercekit/fxengine/internal/apperrors"
	"github.com/commercekit/fxengine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyService_GetCurrencyByCode(t *testing.T) {
	svc := services.NewCurrencyService()
	ctx := context.Background()

	def, err := svc.GetCurrencyByCode(ctx, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", def.Code)
	assert.Equal(t, "$", def.Symbol)
	assert.Equal(t, 2, def.Precision)

	idr, err := svc.GetCurrencyByCode(ctx, "IDR")
	require.NoError(t, err)
	assert.Equal(t, 0, idr.Precision)
}

func TestCurrencyService_GetCurrencyByCode_Unknown(t *testing.T) {
	svc := services.NewCurrencyService()

	_, err := svc.GetCurrencyByCode(context.Background(), "ZZZ")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCurrencyService_GetCurrencyByCode_Invalid(t *testing.T) {
	svc := services.NewCurrencyService()

	_, err := svc.GetCurrencyByCode(context.Background(), "USDX")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCurrencyService_ListCurrencies(t *testing.T) {
	svc := services.NewCurrencyService()

	defs, err := svc.ListCurrencies(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	// Ordered by code, contains the full supported set.
	codes := make([]string, len(defs))
	for i, def := range defs {
		codes[i] = def.Code
	}
	assert.Equal(t, []string{"AED", "EUR", "GBP", "IDR", "JPY", "SGD", "USD"}, codes)
}
