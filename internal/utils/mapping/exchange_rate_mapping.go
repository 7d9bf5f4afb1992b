package mapping

import (
	"github.com/commercekit/fxengine/internal/core/domain"
	"github.com/commercekit/fxengine/internal/models"
)

// ToDomainExchangeRate converts a persistence model to its domain equivalent.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		Source:           m.Source,
		LastUpdated:      m.LastUpdated,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToModelExchangeRate converts a domain exchange rate to its persistence model.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		Source:           d.Source,
		LastUpdated:      d.LastUpdated,
		UpdatedAt:        d.UpdatedAt,
	}
}
