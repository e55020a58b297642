// Package handler contains the Echo transport adapters. Handlers stay
// thin: bind and parse the request, call the service, translate the
// result envelope (or an infrastructure error) into an HTTP response.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/logger"
	"github.com/iliyamo/cinema-management/internal/repository"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	ErrorMessage string `json:"error_message"`
	StatusCode   int    `json:"status_code"`
}

// fail writes the uniform error body.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, errorBody{ErrorMessage: message, StatusCode: status})
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// statusForKind maps envelope failure kinds to HTTP statuses.
func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// respond translates a service call into an HTTP response: the envelope
// model on success, the envelope message with a mapped status on a
// business failure, 409 when a uniqueness race was lost at the store and
// a generic 500 for any other infrastructure error.
func respond[T any](c echo.Context, okStatus int, res domain.Result[T], err error) error {
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fail(c, http.StatusConflict, "resource already exists")
		}
		logger.Log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	if !res.IsSuccessful() {
		return fail(c, statusForKind(res.Kind()), res.ErrorMessage())
	}
	if okStatus == http.StatusNoContent {
		return c.NoContent(okStatus)
	}
	return c.JSON(okStatus, res.Model())
}

// respondList writes a plain list endpoint: items wrapped in an object,
// 500 on infrastructure errors.
func respondList[T any](c echo.Context, items []T, err error) error {
	if err != nil {
		logger.Log.Error("list request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// getUserID extracts the authenticated user ID placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v, nil
	}
	return 0, errors.New("no authenticated user in context")
}
