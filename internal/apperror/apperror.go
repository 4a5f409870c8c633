// Package apperror defines the failure taxonomy shared across features and
// its mapping to HTTP responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Features wrap these so transport code can classify any
// failure with errors.Is without knowing which layer produced it.
var (
	ErrValidation        = errors.New("validation failed")
	ErrAuthentication    = errors.New("authentication failed")
	ErrForbidden         = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate identity")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrExternalService   = errors.New("external service failure")
	ErrMalformedResponse = errors.New("malformed review response")
)

// AppError carries a classified kind plus a human-readable message.
type AppError struct {
	Err     error  // sentinel kind
	Message string // human-readable message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New wraps a sentinel kind with a message.
func New(kind error, message string) *AppError {
	return &AppError{Err: kind, Message: message}
}

// Newf wraps a sentinel kind with a formatted message.
func Newf(kind error, format string, args ...any) *AppError {
	return &AppError{Err: kind, Message: fmt.Sprintf(format, args...)}
}

// Response is the error body rendered to clients.
type Response struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
	Path   string `json:"path"`
}

// Classify maps an error to its HTTP status code and a generic message.
// Unrecognized errors fall through to 500.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity, "Invalid input data"
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized, "Authentication failed"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "Permission denied"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, ErrDuplicate):
		return http.StatusBadRequest, "Identity already registered"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
