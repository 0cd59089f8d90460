package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calldesk/callcenter-backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	transferHandler *TransferHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, transferHandler *TransferHandler) *Router {
	return &Router{
		cfg:             cfg,
		transferHandler: transferHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")
	rt.setupTransferRoutes(v1)
}

// setupTransferRoutes configures warm-transfer routes
func (rt *Router) setupTransferRoutes(g *echo.Group) {
	transferGroup := g.Group("/transfers")
	transferGroup.POST("/initiate", rt.transferHandler.Initiate)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
