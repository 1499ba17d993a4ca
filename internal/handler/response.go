package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"grammarguide/internal/logger"
	"grammarguide/internal/service"
)

const (
	msgRetrieveFailed = "Failed to retrieve data."
	msgFieldsRequired = "Category, title, and definition are required."
	msgSaveRejected   = "Failed to save new content. Title may already exist."
	msgSaveFailed     = "Failed to save new content."
	msgInvalidBody    = "Invalid request body."
)

// Error codes carried in messageResponse.Error. Raw store errors never leave the server.
const (
	codeValidationFailed = "validation_failed"
	codeDuplicateTitle   = "duplicate_title"
	codeInternal         = "internal error"
)

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	Probe  string `json:"probe,omitempty"`
}

// writeCreateError maps a service error from Create onto the response envelope.
func writeCreateError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgSaveRejected, Error: codeDuplicateTitle})
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgSaveRejected, Error: codeValidationFailed})
	default:
		logger.Error("create entry failed", "module", "handler", "action", "create", "resource", "entry", "result", "failed", "error", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: msgSaveFailed, Error: codeInternal})
	}
}

// Error returns a JSON message response with the given status.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, messageResponse{Message: message})
}
