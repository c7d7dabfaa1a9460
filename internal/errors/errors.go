package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrIssueNotFound is returned when an issue is not found.
	ErrIssueNotFound = errors.New("issue not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserBanned is returned when a banned user attempts a submission.
	ErrUserBanned = errors.New("user is banned")
	// ErrAlreadyFlagged is returned when a user flags the same issue twice.
	ErrAlreadyFlagged = errors.New("issue already flagged by this user")
	// ErrNotBanned is returned when unbanning a user who has no ban row.
	ErrNotBanned = errors.New("user is not banned")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors. Persistence failures
// fall through to a generic 500; the cause is logged server-side only.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrIssueNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ISSUE_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserBanned):
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_BANNED")
	case errors.Is(err, ErrAlreadyFlagged):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_FLAGGED")
	case errors.Is(err, ErrNotBanned):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_BANNED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
