package dto

import (
	"github.com/commercekit/fxengine/internal/core/domain"
)

// CurrencyResponse defines the data returned for a currency definition.
type CurrencyResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Precision int    `json:"precision"`
}

// ToCurrencyResponse converts a domain.CurrencyDefinition to CurrencyResponse DTO
func ToCurrencyResponse(def *domain.CurrencyDefinition) CurrencyResponse {
	return CurrencyResponse{
		Code:      def.Code,
		Name:      def.Name,
		Symbol:    def.Symbol,
		Precision: def.Precision,
	}
}

// ToListCurrencyResponse converts a slice of domain.CurrencyDefinition to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(defs []domain.CurrencyDefinition) []CurrencyResponse {
	res := make([]CurrencyResponse, len(defs))
	for i, def := range defs {
		res[i] = ToCurrencyResponse(&def)
	}
	return res
}
