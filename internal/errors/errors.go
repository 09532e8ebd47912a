package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect
	// or the account has been deactivated.
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUnauthenticated is returned when a protected operation is reached
	// without a valid bearer credential.
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	// ErrStaffRequired is returned when a staff-only operation is attempted
	// by a regular authenticated user.
	ErrStaffRequired = errors.New("staff access required")
	// ErrSuperuserRequired is returned when the superuser-only capability
	// probe is attempted without the superuser flag.
	ErrSuperuserRequired = errors.New("access denied")
	// ErrNotFound is returned when no record matches the request.
	ErrNotFound = errors.New("not found")
	// ErrNoArticlesFound is returned when a search yields zero matches.
	// An empty result set is an error condition here, not an empty success.
	ErrNoArticlesFound = errors.New("no articles found")
)

// ValidationError carries field level validation failures, shaped as a
// mapping from field name to one or more human readable messages.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidation creates a single-field validation error.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// Add appends another message to the error and returns it for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *ValidationError) Error() string {
	for field, messages := range e.Fields {
		if len(messages) > 0 {
			return field + ": " + messages[0]
		}
	}
	return "validation failed"
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. ValidationError is not
// handled here; handlers serialize its field map directly with status 400.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrStaffRequired):
		return NewHTTPError(http.StatusForbidden, "Staff access required.", "STAFF_REQUIRED")
	case errors.Is(err, ErrSuperuserRequired):
		return NewHTTPError(http.StatusForbidden, "Access denied.", "SUPERUSER_REQUIRED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrNoArticlesFound):
		return NewHTTPError(http.StatusNotFound, "No articles found!", "NO_ARTICLES_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
