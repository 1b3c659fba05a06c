package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"currency-converter/internal/models"
	"currency-converter/internal/service"
)

type ConverterHandler struct {
	service *service.ConverterService
	logger  *zap.Logger
	// reloadCtx outlives the request that triggers a reload.
	reloadCtx context.Context
}

func NewConverterHandler(ctx context.Context, service *service.ConverterService, logger *zap.Logger) *ConverterHandler {
	return &ConverterHandler{
		service:   service,
		logger:    logger,
		reloadCtx: ctx,
	}
}

// GetView handles GET /api/v1/converter
func (h *ConverterHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.View())
}

// SetAmount handles PUT /api/v1/converter/amount
func (h *ConverterHandler) SetAmount(c *gin.Context) {
	var req models.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accepted, err := h.service.SetAmountWhenReady(*req.Amount)
	if errors.Is(err, service.ErrNotReady) {
		c.JSON(http.StatusServiceUnavailable, h.service.View())
		return
	}
	c.JSON(http.StatusOK, models.AmountResponse{
		Accepted: accepted,
		View:     h.service.View(),
	})
}

// Reload handles POST /api/v1/converter/reload
func (h *ConverterHandler) Reload(c *gin.Context) {
	done, err := h.service.Start(h.reloadCtx)
	if errors.Is(err, service.ErrLoadInFlight) {
		c.JSON(http.StatusConflict, gin.H{"error": "Rate load already in progress"})
		return
	}
	if err != nil {
		h.logger.Error("failed to start reload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload exchange rates"})
		return
	}

	go func() {
		if err := <-done; err != nil {
			h.logger.Warn("reload finished with error", zap.Error(err))
		}
	}()

	c.JSON(http.StatusAccepted, h.service.View())
}

// GetSupportedCurrencies handles GET /api/v1/converter/currencies
func (h *ConverterHandler) GetSupportedCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"base":       models.BaseCurrency.Info(),
		"currencies": h.service.SupportedCurrencies(),
	})
}

// Ready handles GET /ready
func (h *ConverterHandler) Ready(c *gin.Context) {
	state := h.service.LoadState()
	if state != models.LoadStateReady {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": state})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": state})
}
