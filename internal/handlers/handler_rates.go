package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/commercekit/fxengine/internal/apperrors"
	"github.com/commercekit/fxengine/internal/core/domain"
	portssvc "github.com/commercekit/fxengine/internal/core/ports/services"
	"github.com/commercekit/fxengine/internal/dto"
	"github.com/commercekit/fxengine/internal/middleware"
	"github.com/commercekit/fxengine/internal/utils/money"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates and conversion.
type rateHandler struct {
	rateSyncService   portssvc.RateSyncSvcFacade
	conversionService portssvc.ConversionSvcFacade
	baseCurrency      string
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rss portssvc.RateSyncSvcFacade, cs portssvc.ConversionSvcFacade, baseCurrency string) *rateHandler {
	return &rateHandler{
		rateSyncService:   rss,
		conversionService: cs,
		baseCurrency:      baseCurrency,
	}
}

// registerRateRoutes registers routes related to exchange rates.
// refreshLimiter guards the manual refresh trigger.
func registerRateRoutes(rg *gin.RouterGroup, rss portssvc.RateSyncSvcFacade, cs portssvc.ConversionSvcFacade, baseCurrency string, refreshLimiter gin.HandlerFunc) {
	h := newRateHandler(rss, cs, baseCurrency)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.POST("/refresh", refreshLimiter, h.triggerRefresh)
		rates.GET("/freshness", h.getFreshness)
		rates.GET("/convert", h.convertAmount)
		rates.POST("/price-range", h.priceRange)
	}
}

// listRates godoc
// @Summary List current exchange rates
// @Description Returns the canonical rate table (base vs basket) with its freshness
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RatesListResponse
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateSyncService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	fresh, err := h.rateSyncService.IsFresh(c.Request.Context(), time.Now().UTC())
	if err != nil {
		// The listing is still served; freshness just reads false.
		logger.Warn("Failed to evaluate rate freshness", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.RatesListResponse{
		BaseCurrency: h.baseCurrency,
		Fresh:        fresh,
		Rates:        dto.ToListExchangeRateResponse(rates),
	})
}

// triggerRefresh godoc
// @Summary Trigger an on-demand rate refresh
// @Description Runs one synchronization against the upstream provider
// @Tags rates
// @Produce json
// @Success 200 {object} dto.SyncResponse
// @Failure 409 {object} dto.SyncResponse "A refresh is already in flight"
// @Failure 502 {object} dto.SyncResponse "Upstream provider failed"
// @Router /rates/refresh [post]
func (h *rateHandler) triggerRefresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received manual refresh trigger")

	result := h.rateSyncService.Synchronize(c.Request.Context())
	if !result.Success {
		switch {
		case errors.Is(result.Err, apperrors.ErrSyncInProgress):
			c.JSON(http.StatusConflict, dto.ToSyncResponse(result))
		case errors.Is(result.Err, apperrors.ErrProviderUnavailable),
			errors.Is(result.Err, apperrors.ErrProviderRejected):
			c.JSON(http.StatusBadGateway, dto.ToSyncResponse(result))
		default:
			c.JSON(http.StatusInternalServerError, dto.ToSyncResponse(result))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncResponse(result))
}

// getFreshness godoc
// @Summary Report rate table freshness
// @Description True only when every basket pair is within the freshness TTL
// @Tags rates
// @Produce json
// @Success 200 {object} dto.FreshnessResponse
// @Failure 500 {object} map[string]string "Failed to evaluate freshness"
// @Router /rates/freshness [get]
func (h *rateHandler) getFreshness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fresh, err := h.rateSyncService.IsFresh(c.Request.Context(), time.Now().UTC())
	if err != nil {
		logger.Error("Failed to evaluate rate freshness", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate freshness"})
		return
	}

	c.JSON(http.StatusOK, dto.FreshnessResponse{
		Fresh: fresh,
		TTL:   h.rateSyncService.FreshnessTTL().String(),
	})
}

// convertAmount godoc
// @Summary Convert an amount between two currencies
// @Description Converts via the stored rate table and rounds to the target currency's precision
// @Tags rates
// @Produce json
// @Param amount query string true "Amount to convert"
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No rate stored for a required pair"
// @Router /rates/convert [get]
func (h *rateHandler) convertAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind conversion query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	converted, err := h.conversionService.ConvertAmount(c.Request.Context(), query.Amount, query.From, query.To)
	if err != nil {
		respondConversionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:    query.Amount,
		From:      query.From,
		To:        query.To,
		Converted: converted,
		Formatted: money.Format(converted, query.To),
	})
}

// priceRange godoc
// @Summary Compute a converted price range
// @Description Converts and rounds every item into the target currency, then returns min/max
// @Tags rates
// @Accept json
// @Produce json
// @Param request body dto.PriceRangeRequest true "Priced items and target currency"
// @Success 200 {object} dto.PriceRangeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No rate stored for a required pair"
// @Router /rates/price-range [post]
func (h *rateHandler) priceRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PriceRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind price range request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	items := make([]domain.PricedItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.PricedItem{Amount: item.Amount, Currency: item.Currency}
	}

	min, max, err := h.conversionService.PriceRange(c.Request.Context(), items, req.TargetCurrency)
	if err != nil {
		respondConversionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.PriceRangeResponse{
		Currency:     req.TargetCurrency,
		Min:          min,
		Max:          max,
		MinFormatted: money.Format(min, req.TargetCurrency),
		MaxFormatted: money.Format(max, req.TargetCurrency),
	})
}

// respondConversionError maps conversion errors onto HTTP statuses.
func respondConversionError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Conversion failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Conversion failed"})
	}
}
