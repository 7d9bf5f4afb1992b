// Package money renders amounts as locale-correct display strings.
package money

import (
	"github.com/commercekit/fxengine/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Format renders amount with the currency's symbol, thousands grouping and
// exactly the currency's configured decimal digits.
// Example: Format(1234567.891, "USD") returns "$1,234,567.89".
// Unknown currency codes fall back to "<amount> <code>" rather than failing.
func Format(amount decimal.Decimal, currencyCode string) string {
	def, ok := domain.DefinitionFor(currencyCode)
	if !ok {
		return amount.String() + " " + currencyCode
	}

	rounded := amount.Round(int32(def.Precision))
	// float64 is display-only here; the rounded decimal remains the value of
	// record everywhere else.
	f, _ := rounded.Float64()
	grouped := printer.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(def.Precision),
		number.MaxFractionDigits(def.Precision),
	))
	return def.Symbol + grouped
}
