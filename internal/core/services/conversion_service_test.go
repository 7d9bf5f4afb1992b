package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/commercekit/fxengine/internal/apperrors"
	"github.com/commercekit/fxengine/internal/core/domain"
	"github.com/commercekit/fxengine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func testRateTable() domain.RateTable {
	return domain.RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"AED": decimal.RequireFromString("3.6725"),
			"EUR": decimal.RequireFromString("0.92"),
			"IDR": decimal.RequireFromString("15600"),
			"JPY": decimal.RequireFromString("150"),
		},
	}
}

func TestConvertWithTable_Identity(t *testing.T) {
	table := testRateTable()
	amount := decimal.RequireFromString("123.45")

	for _, code := range []string{"USD", "EUR", "IDR", "ZZZ"} {
		got, err := services.ConvertWithTable(amount, code, code, table)
		require.NoError(t, err)
		assert.True(t, amount.Equal(got), "identity conversion for %s", code)
	}
}

func TestConvertWithTable_FromBase(t *testing.T) {
	table := testRateTable()

	got, err := services.ConvertWithTable(decimal.NewFromInt(100), "USD", "EUR", table)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("92").Equal(got))
}

func TestConvertWithTable_ToBase(t *testing.T) {
	table := testRateTable()

	got, err := services.ConvertWithTable(decimal.NewFromInt(92), "EUR", "USD", table)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got))
}

func TestConvertWithTable_Triangulation(t *testing.T) {
	table := testRateTable()
	amount := decimal.NewFromInt(1000)

	// EUR -> JPY directly vs. EUR -> USD -> JPY in two explicit hops.
	direct, err := services.ConvertWithTable(amount, "EUR", "JPY", table)
	require.NoError(t, err)

	inBase, err := services.ConvertWithTable(amount, "EUR", "USD", table)
	require.NoError(t, err)
	twoHop, err := services.ConvertWithTable(inBase, "USD", "JPY", table)
	require.NoError(t, err)

	tolerance := decimal.New(1, -9)
	assert.True(t, direct.Sub(twoHop).Abs().LessThan(tolerance),
		"direct %s vs two-hop %s", direct, twoHop)
}

func TestConvertWithTable_MissingRate(t *testing.T) {
	table := testRateTable()
	amount := decimal.NewFromInt(100)

	// GBP has no entry: every direction involving it must fail loudly, never
	// return the unconverted amount.
	for _, pair := range [][2]string{{"GBP", "EUR"}, {"EUR", "GBP"}, {"USD", "GBP"}, {"GBP", "USD"}} {
		got, err := services.ConvertWithTable(amount, pair[0], pair[1], table)
		require.Error(t, err, "pair %v", pair)
		assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
		assert.True(t, got.IsZero())
	}
}

func TestConvertWithTable_ZeroRateIsError(t *testing.T) {
	table := testRateTable()
	table.Rates["EUR"] = decimal.Zero

	_, err := services.ConvertWithTable(decimal.NewFromInt(10), "EUR", "USD", table)
	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
}

func TestRoundForCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"half up at two decimals", "1.005", "USD", "1.01"},
		{"plain two decimals", "2.674", "USD", "2.67"},
		{"zero-decimal currency unchanged", "1500", "IDR", "1500"},
		{"zero-decimal currency rounds", "1500.5", "IDR", "1501"},
		{"unknown currency defaults to two decimals", "9.999", "ZZZ", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.RoundForCurrency(decimal.RequireFromString(tt.amount), tt.currency)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestPriceRangeWithTable(t *testing.T) {
	table := testRateTable()
	items := []domain.PricedItem{
		{Amount: decimal.NewFromInt(10), Currency: "USD"},
		{Amount: decimal.RequireFromString("9.20"), Currency: "EUR"}, // 10 USD exactly
		{Amount: decimal.NewFromInt(156000), Currency: "IDR"},        // 10 USD exactly
		{Amount: decimal.NewFromInt(3000), Currency: "JPY"},          // 20 USD
	}

	min, max, err := services.PriceRangeWithTable(items, "USD", table)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(min), "min was %s", min)
	assert.True(t, decimal.NewFromInt(20).Equal(max), "max was %s", max)
}

func TestPriceRangeWithTable_RoundsPerItem(t *testing.T) {
	// Both items land within a rounding step of each other: after per-item
	// rounding to IDR's zero decimals they collapse to the same price, so the
	// range must be degenerate rather than show a sub-unit spread.
	table := domain.RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"IDR": decimal.RequireFromString("15600.4"),
		},
	}
	items := []domain.PricedItem{
		{Amount: decimal.NewFromInt(1), Currency: "USD"},
		{Amount: decimal.RequireFromString("15600.2"), Currency: "IDR"},
	}

	min, max, err := services.PriceRangeWithTable(items, "IDR", table)
	require.NoError(t, err)
	assert.True(t, min.Equal(max), "min %s max %s", min, max)
}

func TestPriceRangeWithTable_Empty(t *testing.T) {
	_, _, err := services.PriceRangeWithTable(nil, "USD", testRateTable())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPriceRangeWithTable_MissingRate(t *testing.T) {
	items := []domain.PricedItem{
		{Amount: decimal.NewFromInt(10), Currency: "GBP"},
	}
	_, _, err := services.PriceRangeWithTable(items, "USD", testRateTable())
	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
}

// --- ConversionService over a mock repository ---

type ConversionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExchangeRateRepository
	service  *services.ConversionService
	basket   []string
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.basket = []string{"EUR", "IDR"}
	suite.service = services.NewConversionService(suite.mockRepo, "USD", suite.basket)
}

func (suite *ConversionServiceTestSuite) tableRows() []domain.ExchangeRate {
	now := time.Now().UTC()
	return []domain.ExchangeRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.RequireFromString("0.92"), LastUpdated: now},
		{FromCurrencyCode: "USD", ToCurrencyCode: "IDR", Rate: decimal.RequireFromString("15600"), LastUpdated: now},
	}
}

func (suite *ConversionServiceTestSuite) TestConvertAmount_RoundsToTargetPrecision() {
	ctx := context.Background()
	suite.mockRepo.On("ListExchangeRates", ctx, "USD", suite.basket).
		Return(suite.tableRows(), nil).Once()

	got, err := suite.service.ConvertAmount(ctx, decimal.RequireFromString("10.555"), "usd", "eur")
	suite.Require().NoError(err)
	// 10.555 * 0.92 = 9.7106 -> 9.71 at EUR precision
	suite.True(decimal.RequireFromString("9.71").Equal(got), "got %s", got)
}

func (suite *ConversionServiceTestSuite) TestConvertAmount_InvalidCode() {
	ctx := context.Background()

	_, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(1), "US", "EUR")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvertAmount_MissingRate() {
	ctx := context.Background()
	suite.mockRepo.On("ListExchangeRates", ctx, "USD", suite.basket).
		Return(suite.tableRows(), nil).Once()

	_, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(100), "IDR", "AED")
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
