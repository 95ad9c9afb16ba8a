// Package httperr maps domain errors to {code, detail} HTTP bodies.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stickify/stickify/internal/errs"
	"github.com/stickify/stickify/pkg/auth"
)

// Status returns the HTTP status for a domain error.
func Status(err error) int {
	var ce *errs.ConflictError
	switch {
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNotFound),
		errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrSelfFollow):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrNoToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Body builds the response payload. Conflict errors keep the driver-level
// constraint code and detail so callers see what collided.
func Body(err error) map[string]string {
	var ce *errs.ConflictError
	switch {
	case errors.As(err, &ce):
		return map[string]string{"code": ce.Code, "detail": ce.Detail}
	case errors.Is(err, errs.ErrNotFound):
		return map[string]string{"code": "not_found", "detail": err.Error()}
	case errors.Is(err, errs.ErrInvalidCredentials):
		return map[string]string{"code": "invalid_credentials", "detail": "incorrect email or password"}
	case errors.Is(err, errs.ErrSelfFollow):
		return map[string]string{"code": "bad_request", "detail": err.Error()}
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrNoToken):
		return map[string]string{"code": "unauthorized", "detail": err.Error()}
	default:
		return map[string]string{"code": "internal", "detail": "internal server error"}
	}
}

// JSON writes the mapped error response.
func JSON(c echo.Context, err error) error {
	return c.JSON(Status(err), Body(err))
}

// JSONWithStatus writes the mapped body under an endpoint-specific status,
// for contracts that fix a different code (sign-up reports duplicates as 400).
func JSONWithStatus(c echo.Context, status int, err error) error {
	return c.JSON(status, Body(err))
}
