package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound         = NewError("NOT_FOUND", "resource not found", http.StatusNotFound)
	ErrValidation       = NewError("VALIDATION_ERROR", "validation failed", http.StatusBadRequest)
	ErrInternal         = NewError("INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	ErrConflict         = NewError("CONFLICT", "resource conflict", http.StatusConflict)
	ErrUnknownOperation = NewError("UNKNOWN_OPERATION", "unknown operation", http.StatusNotFound)
)

type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]interface{}
	Cause   error
}

func NewError(code, message string, status int) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
		Details: make(map[string]interface{}),
	}
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		if detailMsg, ok := e.Details["message"].(string); ok && detailMsg != "" {
			msg = detailMsg
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) WithCause(cause error) *Error {
	err := *e
	err.Cause = cause
	return &err
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	err := *e
	// copy so the shared sentinel's details are never mutated
	err.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		err.Details[k] = v
	}
	err.Details[key] = value
	return &err
}

func (e *Error) WithMessage(message string) *Error {
	err := *e
	err.Message = message
	return &err
}

func Wrap(err error, appErr *Error) *Error {
	if err == nil {
		return nil
	}
	return appErr.WithCause(err)
}

func IsNotFound(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == ErrNotFound.Code
	}
	return false
}

func IsConflict(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == ErrConflict.Code
	}
	return false
}

func IsValidation(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == ErrValidation.Code
	}
	return false
}

func ToHTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Describe returns the human-readable message for an error, preferring the
// application error message over the raw error string.
func Describe(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if detailMsg, ok := appErr.Details["message"].(string); ok && detailMsg != "" {
			msg = detailMsg
		}
		return msg
	}
	return err.Error()
}

func ToErrorResponse(err error) map[string]interface{} {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = ErrInternal.WithCause(err)
	}

	response := map[string]interface{}{
		"error":      appErr.Message,
		"error_code": appErr.Code,
	}

	if len(appErr.Details) > 0 {
		response["details"] = appErr.Details
	}

	return response
}
