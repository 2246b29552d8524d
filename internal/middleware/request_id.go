package middleware

import (
	"github.com/labstack/echo/v4"

	"blogapi/internal/logging"
)

// RequestContext copies the X-Request-Id response header set by echo's
// RequestID middleware into the request context for service-level logging.
// It must be registered after middleware.RequestID().
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logging.WithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}
