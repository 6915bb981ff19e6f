package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/ports"
)

// ProfileHandler exposes the profile singleton: GET and PUT only, no
// collection semantics and no id.
type ProfileHandler struct {
	service ports.ProfileService
	logger  *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service ports.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// Get returns the profile object, {} when never saved.
func (h *ProfileHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Get(c.Request().Context()))
}

// Update shallow-merges the body over the stored profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	patch, err := bindRecord(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Update(c.Request().Context(), patch)
	if err != nil {
		h.logger.Error("Profile update failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Errore nel salvataggio del profilo")
	}

	return c.JSON(http.StatusOK, profile)
}
