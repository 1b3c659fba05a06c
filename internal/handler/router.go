package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"currency-converter/pkg/middleware"
)

// NewRouter mounts the converter API plus health and metrics endpoints.
func NewRouter(h *ConverterHandler, metricsHandler http.Handler, log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", h.Ready)

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metricsHandler))

	v1 := router.Group("/api/v1")
	{
		converter := v1.Group("/converter")
		{
			converter.GET("", h.GetView)
			converter.PUT("/amount", h.SetAmount)
			converter.POST("/reload", h.Reload)
			converter.GET("/currencies", h.GetSupportedCurrencies)
		}
	}

	return router
}
