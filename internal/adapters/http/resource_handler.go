package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/ports"
)

// ResourceHandler exposes the uniform CRUD surface of one collection.
// The same handler type serves every resource; the descriptor carries
// the per-resource error messages.
type ResourceHandler struct {
	resource entities.Resource
	service  ports.ResourceService
	logger   *logger.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resource entities.Resource, service ports.ResourceService, logger *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		resource: resource,
		service:  service,
		logger:   logger.WithFields("resource", resource.Name),
	}
}

// Resource returns the descriptor this handler serves.
func (h *ResourceHandler) Resource() entities.Resource {
	return h.resource
}

// List returns the full collection. A missing data file is an empty
// collection, never an error.
func (h *ResourceHandler) List(c echo.Context) error {
	records := h.service.List(c.Request().Context())
	return c.JSON(http.StatusOK, records)
}

// Create appends a record with a server-assigned id.
func (h *ResourceHandler) Create(c echo.Context) error {
	fields, err := bindRecord(c)
	if err != nil {
		return err
	}

	record, err := h.service.Create(c.Request().Context(), fields)
	if err != nil {
		h.logger.Error("Create failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, h.resource.WriteFailedMessage)
	}

	return c.JSON(http.StatusCreated, record)
}

// Update shallow-merges the body over the record with the path id.
func (h *ResourceHandler) Update(c echo.Context) error {
	id := c.Param("id")

	patch, err := bindRecord(c)
	if err != nil {
		return err
	}

	record, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, h.resource.NotFoundMessage)
		}
		h.logger.Error("Update failed", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, h.resource.WriteFailedMessage)
	}

	return c.JSON(http.StatusOK, record)
}

// Delete removes the record with the path id and returns it.
func (h *ResourceHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	record, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, h.resource.NotFoundMessage)
		}
		h.logger.Error("Delete failed", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, h.resource.WriteFailedMessage)
	}

	return c.JSON(http.StatusOK, record)
}
