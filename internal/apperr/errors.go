package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error code constants. Every error returned to a caller carries one of
// these plus a human-readable message.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeProviderError       = "PROVIDER_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternal            = "INTERNAL"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions exposes the code to GraphQL clients under the standard
// errors[].extensions key.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Code: CodeConcurrencyConflict, Message: fmt.Sprintf(format, args...)}
}

func Provider(format string, args ...any) *Error {
	return &Error{Code: CodeProviderError, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

var codeHTTPStatus = map[string]int{
	CodeNotFound:            http.StatusNotFound,
	CodeInvalidInput:        http.StatusBadRequest,
	CodeConcurrencyConflict: http.StatusConflict,
	CodeProviderError:       http.StatusBadGateway,
	CodeUnauthorized:        http.StatusUnauthorized,
	CodeForbidden:           http.StatusForbidden,
	CodeInternal:            http.StatusInternalServerError,
}

// HTTPStatus maps an error to its HTTP status. Unknown errors are 500.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		if s, ok := codeHTTPStatus[e.Code]; ok {
			return s
		}
	}
	return http.StatusInternalServerError
}

// Payload returns the structured body for an error response. Internal
// details of unknown errors are not leaked to the caller.
func Payload(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: CodeInternal, Message: "internal error"}
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
