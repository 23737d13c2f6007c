package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a domain error so the HTTP boundary can pick a status code.
// Services raise kinds; only handlers translate them.
type Kind int

const (
	KindValidation Kind = iota
	KindDuplicateEmail
	KindNotFound
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
	KindTargetMismatch
	KindOperationFailed
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two errors of the same kind, so sentinel-style checks with
// errors.Is(err, apperrors.NotFound("")) work in tests and handlers.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func DuplicateEmail(message string) *Error {
	return &Error{Kind: KindDuplicateEmail, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidCredentials(message string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func TargetMismatch(message string) *Error {
	return &Error{Kind: KindTargetMismatch, Message: message}
}

// OperationFailed hides an unexpected lower-layer failure behind a generic
// message; the cause stays attached for logging but is never serialized.
func OperationFailed(message string, cause error) *Error {
	return &Error{Kind: KindOperationFailed, Message: message, Err: cause}
}

// HTTPStatus maps an error kind to the response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicateEmail:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidCredentials, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindTargetMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes a domain error as JSON with its mapped status. Anything that
// is not an *Error becomes a plain 500 without leaking the cause.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
