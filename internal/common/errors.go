package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
	ErrValidation   = errors.New("validation failed")
	ErrUpstream     = errors.New("model call failed")
	ErrParse        = errors.New("model output could not be parsed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// DatabaseError tags err as a database failure.
func DatabaseError(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewAppError("DB_ERROR", op, errors.Join(ErrDatabase, err))
}

// UpstreamError tags err as a failed model call.
func UpstreamError(err error) error {
	if err == nil {
		return nil
	}
	return NewAppError("UPSTREAM_ERROR", "generate content", errors.Join(ErrUpstream, err))
}

// ParseError tags err as unparsable model output.
func ParseError(err error) error {
	if err == nil {
		return nil
	}
	return NewAppError("PARSE_ERROR", "model response", errors.Join(ErrParse, err))
}

// HTTPStatus maps an error to the status code reported to HTTP clients.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message shown to API callers: the AppError message with its
// underlying cause, without the internal code prefix.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause == nil || isSentinel(appErr.Cause) {
			return appErr.Message
		}
		return appErr.Message + ": " + rootCause(appErr.Cause).Error()
	}
	return err.Error()
}

// rootCause drops the sentinel half of an errors.Join pair.
func rootCause(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		if len(errs) > 0 {
			return errs[len(errs)-1]
		}
	}
	return err
}

func isSentinel(err error) bool {
	for _, s := range []error{ErrInvalidInput, ErrInternal, ErrDatabase, ErrValidation, ErrUpstream, ErrParse} {
		if err == s {
			return true
		}
	}
	return false
}
