package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"credit-conveyor/internal/domain/client"
	"credit-conveyor/internal/domain/credit"
	"credit-conveyor/internal/domain/statement"
	"credit-conveyor/internal/usecase/calculator"
	"credit-conveyor/internal/usecase/deal"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// errorStatus maps the error taxonomy to distinguishable responses so a
// client can branch on retry / denial reason / not found / already settled.
func errorStatus(err error) int {
	var denied *calculator.DeniedError
	switch {
	case errors.As(err, &denied), errors.Is(err, deal.ErrSesMismatch):
		return http.StatusForbidden
	case errors.Is(err, statement.ErrChangeBlocked), errors.Is(err, deal.ErrNoAppliedOffer):
		return http.StatusConflict
	case errors.Is(err, statement.ErrNotFound),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, credit.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}
