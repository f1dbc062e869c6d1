package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoteNotFound is returned when a note does not exist.
	ErrNoteNotFound = errors.New("note not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileImageNotFound is returned when a user has no profile picture.
	ErrProfileImageNotFound = errors.New("profile image not found")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when signing up with a taken email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrStoreUnavailable is returned when the object store rejects an upload.
	ErrStoreUnavailable = errors.New("object store unavailable")
	// ErrForbidden is returned when the caller acts on another user's data.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a field-specific validation error.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
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

// MapErrorToHTTP maps domain errors to HTTP errors.
// Unknown errors surface as 500 with the underlying message.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return NewHTTPError(http.StatusBadRequest, verr.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrNoteNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNoteNotFound.Error(), "NOTE_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrProfileImageNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProfileImageNotFound.Error(), "PROFILE_IMAGE_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}
