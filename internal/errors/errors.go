package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserAlreadyExists is returned when registering an email that is already taken.
	ErrUserAlreadyExists = errors.New("user already registered")
	// ErrUserNotRegistered is returned when logging in with an unknown email.
	ErrUserNotRegistered = errors.New("user not registered")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when the authenticated user has no record.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound covers both a missing post and a post owned by someone else.
	ErrPostNotFound = errors.New("post not found or unauthorized")
	// ErrHashing is returned when the password digest cannot be produced.
	ErrHashing = errors.New("error hashing password")
	// ErrUnauthenticated is returned when a request carries no usable session.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to the status and message clients see.
// Unknown errors become a 500 carrying fallback as the message.
func MapErrorToHTTP(err error, fallback string) *HTTPError {
	switch {
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, "User already registered!", "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotRegistered):
		return NewHTTPError(http.StatusBadRequest, "User not registered!", "USER_NOT_REGISTERED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found", "USER_NOT_FOUND")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, "Post not found or unauthorized", "POST_NOT_FOUND")
	case errors.Is(err, ErrHashing):
		return NewHTTPError(http.StatusInternalServerError, "Error hashing password", "HASHING_FAILED")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, "Please login first!", "UNAUTHENTICATED")
	default:
		return NewHTTPError(http.StatusInternalServerError, fallback, "INTERNAL_ERROR")
	}
}
