package web

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// RouterConfig configures the HTTP router
type RouterConfig struct {
	AuthToken      string
	AllowedOrigins []string

	// RateLimiter is optional; nil disables rate limiting
	RateLimiter *RateLimiter
}

// NewRouter builds the gin engine serving h
func NewRouter(h *Handler, cfg RouterConfig) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.handleError(c, fmt.Errorf("panic: %v", recovered))
	}))
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(CorrelationIDMiddleware())
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}
	router.Use(RequestLoggingMiddleware())

	router.GET("/healthz", h.Healthz)

	invoices := router.Group("/invoices/:invoiceID")
	invoices.Use(AuthMiddleware(cfg.AuthToken))
	{
		invoices.GET("", h.ShowInvoice)
		invoices.POST("", h.InvoiceAction)
		invoices.GET("/chart", h.GetChart)
		invoices.GET("/chart/stream", h.StreamChart)
	}

	return router, nil
}
