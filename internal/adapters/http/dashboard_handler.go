package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/ports"
)

// DashboardHandler exposes the read-only summary endpoint.
type DashboardHandler struct {
	service ports.DashboardService
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service ports.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// Summary returns the aggregate statistics. Any failure yields a single
// generic 500; there is no partial result.
func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		h.logger.Error("Dashboard aggregation failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Errore nel calcolo del riepilogo")
	}

	return c.JSON(http.StatusOK, summary)
}
