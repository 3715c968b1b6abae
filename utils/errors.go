package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies application errors independently of transport
type ErrorKind string

const (
	KindValidation         ErrorKind = "ValidationError"
	KindDuplicateEmail     ErrorKind = "DuplicateEmail"
	KindInvalidCredentials ErrorKind = "InvalidCredentials"
	KindUnauthenticated    ErrorKind = "Unauthenticated"
	KindForbidden          ErrorKind = "Forbidden"
	KindNotFound           ErrorKind = "NotFound"
	KindInvalidStatus      ErrorKind = "InvalidStatus"
	KindUnsupportedType    ErrorKind = "UnsupportedType"
	KindTooLarge           ErrorKind = "TooLarge"
	KindConflict           ErrorKind = "Conflict"
	KindInternal           ErrorKind = "InternalError"
)

var kindStatus = map[ErrorKind]int{
	KindValidation:         http.StatusBadRequest,
	KindDuplicateEmail:     http.StatusBadRequest,
	KindInvalidCredentials: http.StatusBadRequest,
	KindUnauthenticated:    http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindNotFound:           http.StatusNotFound,
	KindInvalidStatus:      http.StatusBadRequest,
	KindUnsupportedType:    http.StatusBadRequest,
	KindTooLarge:           http.StatusBadRequest,
	KindConflict:           http.StatusConflict,
	KindInternal:           http.StatusInternalServerError,
}

// AppError represents an application error
type AppError struct {
	Code    int       `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError of the given kind
func NewAppError(kind ErrorKind, message string, err error) *AppError {
	code, ok := kindStatus[kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func ValidationError(message string) *AppError {
	return NewAppError(KindValidation, message, nil)
}

func DuplicateEmailError() *AppError {
	return NewAppError(KindDuplicateEmail, ErrDuplicateEmail, nil)
}

// InvalidCredentialsError is returned for every failed credential check so
// callers cannot tell an unknown email from a wrong password.
func InvalidCredentialsError() *AppError {
	return NewAppError(KindInvalidCredentials, ErrInvalidCredentials, nil)
}

func UnauthenticatedError(message string, err error) *AppError {
	return NewAppError(KindUnauthenticated, message, err)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(KindForbidden, message, nil)
}

func NotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, message, nil)
}

func InvalidStatusError(status string) *AppError {
	return NewAppError(KindInvalidStatus, fmt.Sprintf("%s: %q", ErrInvalidStatus, status), nil)
}

func UnsupportedTypeError(mimeType string) *AppError {
	return NewAppError(KindUnsupportedType, fmt.Sprintf("%s: %s", ErrUnsupportedType, mimeType), nil)
}

func TooLargeError(message string) *AppError {
	return NewAppError(KindTooLarge, message, nil)
}

// ConflictError reports a write that lost a race and can be retried
func ConflictError(message string, err error) *AppError {
	return NewAppError(KindConflict, message, err)
}

// InternalError wraps an unexpected failure, usually from persistence
func InternalError(message string, err error) *AppError {
	return NewAppError(KindInternal, message, err)
}

// GetAppError returns the AppError in err's chain, if any
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}
