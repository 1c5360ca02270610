package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
)

// Stable machine-readable error kinds returned to clients in the "error" field.
const (
	CodeNotFound     = "NOT_FOUND"
	CodePermission   = "FORBIDDEN"
	CodeInvalidInput = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL"
	CodeUnauthorized = "UNAUTHORIZED"
)

type AppError struct {
	BaseError error
	Code      string
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

// Is matches another *AppError carrying the same Code, so typed kinds can be
// compared with errors.Is against a template value.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// Kind returns a template error that matches, via errors.Is, any AppError
// carrying the same code.
func Kind(code string) *AppError {
	return &AppError{BaseError: errors.New(code), Code: code, Message: code}
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Code: defaultCode(base), Message: msg, Details: details, Err: err}
}

// WithCode overrides the machine-readable kind of the error.
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewConflict(resource, field, value string) *AppError {
	msg := fmt.Sprintf("%s conflict", resource)
	details := fmt.Sprintf("%s with %s '%s' already exists", resource, field, value)
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewPermissionDenied(details string) *AppError {
	return NewAppError(ErrPermission, "Permission denied", details, nil)
}

func defaultCode(base error) string {
	switch {
	case errors.Is(base, ErrNotFound):
		return CodeNotFound
	case errors.Is(base, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(base, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(base, ErrPermission):
		return CodePermission
	case errors.Is(base, ErrConflict):
		return CodeConflict
	}
	return CodeInternal
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrPermission) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	return gin.H{
		"success": false,
		"error":   e.Code,
		"message": e.Message,
	}
}
