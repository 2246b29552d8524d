package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
	"blogapi/internal/logging"
	"blogapi/internal/middleware"
)

const (
	msgServerError = "Server error"
	msgInvalidBody = "Invalid request body"
)

// fail writes err as a plain-text response. Unclassified errors become a 500
// carrying fallback and are logged.
func fail(c echo.Context, log logging.Logger, err error, fallback string) error {
	httpErr := errors.MapErrorToHTTP(err, fallback)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return c.String(httpErr.StatusCode, httpErr.Message)
}

// identity returns the verified session claims, or ErrUnauthenticated when
// the route was registered without the session middleware.
func identity(c echo.Context) (*auth.Claims, error) {
	claims, ok := middleware.Identity(c)
	if !ok {
		return nil, errors.ErrUnauthenticated
	}
	return claims, nil
}
