package handlers

import (
	"log"
	"time"

	portssvc "github.com/commercekit/fxengine/internal/core/ports/services"
	"github.com/commercekit/fxengine/internal/middleware"
	"github.com/commercekit/fxengine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerCurrencyRoutes(v1, services.Currency)
	registerRateRoutes(v1, services.RateSync, services.Conversion, cfg.BaseCurrency, refreshLimiter(cfg))
}

// refreshLimiter builds the IP rate limit middleware guarding the manual
// refresh trigger.
func refreshLimiter(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RefreshRateLimit)
	if err != nil {
		log.Printf("Warning: Invalid value for REFRESH_RATE_LIMIT ('%s'). Defaulting to 5-M.\n", cfg.RefreshRateLimit)
		rate = limiter.Rate{Period: time.Minute, Limit: 5}
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}
