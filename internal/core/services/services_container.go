package services

import (
	"log/slog"

	portsprov "github.com/commercekit/fxengine/internal/core/ports/providers"
	portsrepo "github.com/commercekit/fxengine/internal/core/ports/repositories"
	portssvc "github.com/commercekit/fxengine/internal/core/ports/services"
	"github.com/commercekit/fxengine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	provider portsprov.RateProvider,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService()
	container.RateSync = NewRateSyncService(
		provider,
		repos.ExchangeRateRepo,
		cfg.BaseCurrency,
		cfg.CurrencyBasket,
		cfg.FreshnessTTL,
		logger,
	)
	container.Conversion = NewConversionService(
		repos.ExchangeRateRepo,
		cfg.BaseCurrency,
		cfg.CurrencyBasket,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade   = (*CurrencyService)(nil)
	_ portssvc.RateSyncSvcFacade   = (*RateSyncService)(nil)
	_ portssvc.ConversionSvcFacade = (*ConversionService)(nil)
)
