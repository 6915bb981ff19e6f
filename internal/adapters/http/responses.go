package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitaapp/core/internal/domain/entities"
)

// ErrorResponse is the canonical error envelope of the whole API surface.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries informational messages
type MessageResponse struct {
	Message string `json:"message"`
}

// bindRecord decodes the request body into a free-form record. An empty
// body reads as an empty record, matching a JSON body parser that
// defaults to {}.
func bindRecord(c echo.Context) (entities.Record, error) {
	record := entities.Record{}
	if err := json.NewDecoder(c.Request().Body).Decode(&record); err != nil {
		if errors.Is(err, io.EOF) {
			return entities.Record{}, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Formato della richiesta non valido")
	}
	if record == nil {
		record = entities.Record{}
	}
	return record, nil
}
