package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/logging"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	log         logging.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log.With("component", "auth")}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates the user, sets the session cookie and returns the stored record.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {string} string "User already registered!"
// @Failure 500 {string} string "Server error"
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return fail(c, h.log, err, msgServerError)
	}

	middleware.SetSessionCookie(c, token)
	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User registered",
		User:    user,
	})
}

// Login godoc
// @Summary Login user
// @Description Verifies the password and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce plain
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {string} string "Login successful"
// @Failure 400 {string} string "User not registered!"
// @Failure 401 {string} string "Invalid credentials"
// @Failure 500 {string} string "Server error"
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, h.log, err, msgServerError)
	}

	middleware.SetSessionCookie(c, token)
	return c.String(http.StatusOK, "Login successful")
}

// Logout godoc
// @Summary Logout user
// @Description Clears the session cookie. The token itself stays valid until it expires.
// @Tags auth
// @Produce plain
// @Success 200 {string} string "User logged out"
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return c.String(http.StatusOK, "User logged out")
}
