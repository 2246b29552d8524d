package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/logging"
	"blogapi/internal/service"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	svc service.UserService
	log logging.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log logging.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log.With("component", "users")}
}

// Profile godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security CookieAuth
// @Success 200 {object} model.User
// @Failure 401 {object} map[string]string
// @Failure 404 {string} string "User not found"
// @Failure 500 {string} string "Server error"
// @Router /profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	claims, err := identity(c)
	if err != nil {
		return fail(c, h.log, err, msgServerError)
	}

	user, err := h.svc.Profile(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(c, h.log, err, msgServerError)
	}
	return c.JSON(http.StatusOK, user)
}
