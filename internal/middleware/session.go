package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
)

const (
	// SessionCookieName is the http-only cookie carrying the signed token.
	SessionCookieName = "token"

	identityKey = "identity"

	msgLoginFirst   = "Please login first!"
	msgInvalidToken = "Invalid token, please login again"
)

// TokenVerifier validates a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Session returns middleware that admits requests carrying a valid session
// cookie and stores the verified claims for Identity. Missing and invalid
// tokens are rejected with 401; expired and tampered tokens look the same.
func Session(verifier TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookieName,
		ContextKey:  identityKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verifier.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if cookie, cerr := c.Cookie(SessionCookieName); cerr != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgLoginFirst)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken).SetInternal(err)
		},
	})
}

// Identity returns the claims attached by Session.
func Identity(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(identityKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// SetSessionCookie writes token as the session cookie. Expiry is carried by
// the token itself, so the cookie has no MaxAge.
func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearSessionCookie instructs the client to drop the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
