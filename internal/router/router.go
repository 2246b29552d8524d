package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/config"
	"blogapi/internal/handler"
	appmw "blogapi/internal/middleware"
)

const bannerText = "Backend is running successfully 🚀"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	verifier appmw.TokenVerifier,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(appmw.RequestContext())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if origins := corsOrigins(cfg.CORSOrigin); len(origins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     origins,
			AllowCredentials: true,
		}))
	}

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, bannerText)
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// Secured routes (require the session cookie). Attached per route so
	// unknown paths still answer 404 rather than 401.
	requireSession := appmw.Session(verifier)
	e.GET("/profile", userHandler.Profile, requireSession)
	e.POST("/post", postHandler.Create, requireSession)
	e.GET("/post", postHandler.List, requireSession)
	e.PUT("/post/:id", postHandler.Update, requireSession)
	e.DELETE("/post/:id", postHandler.Delete, requireSession)
}

func corsOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
