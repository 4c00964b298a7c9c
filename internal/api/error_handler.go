package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/corpspend/expense-api/internal/api/handler"
	"github.com/corpspend/expense-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Msg string `json:"msg"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes and
//     the exact messages the API contract promises.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"msg": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Msg: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (middleware rejections, 404 from the router, bind
	// failures).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Request validation: surface the first field violation.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.First()
	}

	// Known domain errors → deterministic status codes and messages. Invalid
	// credentials and duplicate identity deliberately share the 400 class:
	// only the message distinguishes them.
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "Username, email and password are required"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid Credentials"
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, "Invalid expense category"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid expense status"
	case errors.Is(err, domain.ErrInvalidRecipient):
		return http.StatusBadRequest, "Valid email address is required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, domain.ErrExpenseNotFound):
		return http.StatusNotFound, "Expense not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrDeliveryFailed):
		// Delivery failures surface the underlying channel message; every
		// other 500 hides detail.
		return http.StatusInternalServerError, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Server error"
}
