package domain

import "sort"

// CurrencyDefinition describes a supported currency: its display name, symbol
// and the number of decimal digits amounts are rounded to.
// Definitions are static, in-process configuration; they are independent of
// the live rate table and are never persisted.
type CurrencyDefinition struct {
	Code      string `json:"code"`      // ISO-like code (e.g., "USD")
	Name      string `json:"name"`      // e.g., "US Dollar"
	Symbol    string `json:"symbol"`    // e.g., "$"
	Precision int    `json:"precision"` // decimal digits (0 for zero-decimal currencies)
}

// currencyRegistry holds every currency the engine knows how to round and
// format. The synchronized basket is configuration (see platform/config); it
// must be a subset of this registry.
var currencyRegistry = map[string]CurrencyDefinition{
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$", Precision: 2},
	"IDR": {Code: "IDR", Name: "Indonesian Rupiah", Symbol: "Rp", Precision: 0},
	"AED": {Code: "AED", Name: "UAE Dirham", Symbol: "AED", Precision: 2},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€", Precision: 2},
	"GBP": {Code: "GBP", Name: "Pound Sterling", Symbol: "£", Precision: 2},
	"SGD": {Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", Precision: 2},
	"JPY": {Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Precision: 0},
}

// DefinitionFor returns the definition for the given currency code.
func DefinitionFor(code string) (CurrencyDefinition, bool) {
	def, ok := currencyRegistry[code]
	return def, ok
}

// PrecisionFor returns the decimal precision for a currency code, defaulting
// to 2 for codes not present in the registry.
func PrecisionFor(code string) int {
	if def, ok := currencyRegistry[code]; ok {
		return def.Precision
	}
	return 2
}

// ListDefinitions returns all registered currency definitions ordered by code.
func ListDefinitions() []CurrencyDefinition {
	defs := make([]CurrencyDefinition, 0, len(currencyRegistry))
	for _, def := range currencyRegistry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}
