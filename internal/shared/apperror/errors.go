package apperror

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ============================================
// ERROR KINDS
// ============================================

// Kind phân loại lỗi theo cách boundary HTTP cần render
type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindForbidden    Kind = "FORBIDDEN"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindUnavailable  Kind = "UNAVAILABLE"
	KindTimeout      Kind = "TIMEOUT"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// Error is the single error type surfaced by managers to the HTTP layer.
type Error struct {
	Kind    Kind
	Code    string            // domain code, e.g. SERIES_NOT_FOUND
	Message string            // human-readable message
	Fields  map[string]string // field-level detail for validation errors
	Err     error             // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ============================================
// FACTORY FUNCTIONS
// ============================================

func Validation(code, message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

// FieldError tạo validation error cho đúng một field
func FieldError(field, message string) *Error {
	return Validation("VALIDATION_FAILED", "Validation failed", map[string]string{field: message})
}

// FromValidation converts ozzo-validation output into a field-level validation error.
// Non-validation errors (internal rule failures) are returned as Internal.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for field, fieldErr := range verrs {
			if fieldErr != nil {
				fields[field] = fieldErr.Error()
			}
		}
		return Validation("VALIDATION_FAILED", "Validation failed", fields)
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return Internal("validation rule failed", err)
	}

	return Validation("VALIDATION_FAILED", err.Error(), nil)
}

// Forbidden never carries detail about why access was denied.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "Access denied"}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Code: "STORE_UNAVAILABLE", Message: "Store unavailable", Err: err}
}

func Timeout(err error) *Error {
	return &Error{Kind: KindTimeout, Code: "STORE_TIMEOUT", Message: "Store operation timed out", Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: message, Err: err}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsValidation(err error) bool  { return KindOf(err) == KindValidation }
func IsForbidden(err error) bool   { return KindOf(err) == KindForbidden }
func IsNotFound(err error) bool    { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool    { return KindOf(err) == KindConflict }
func IsUnavailable(err error) bool { return KindOf(err) == KindUnavailable }
func IsTimeout(err error) bool     { return KindOf(err) == KindTimeout }

// IsAppError kiểm tra có phải *Error
func IsAppError(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr)
}

// ============================================
// HTTP MAPPING
// ============================================

// MapToHTTP chuyển error sang (status, code, message, details)
func MapToHTTP(err error) (int, string, string, interface{}) {
	if err == nil {
		return http.StatusOK, "", "", nil
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, string(KindInternal), "Internal server error", nil
	}

	switch appErr.Kind {
	case KindValidation:
		var details interface{}
		if len(appErr.Fields) > 0 {
			details = appErr.Fields
		}
		return http.StatusBadRequest, appErr.Code, appErr.Message, details
	case KindForbidden:
		return http.StatusForbidden, appErr.Code, appErr.Message, nil
	case KindUnauthorized:
		return http.StatusUnauthorized, appErr.Code, appErr.Message, nil
	case KindNotFound:
		return http.StatusNotFound, appErr.Code, appErr.Message, nil
	case KindConflict:
		return http.StatusConflict, appErr.Code, appErr.Message, nil
	case KindUnavailable:
		return http.StatusServiceUnavailable, appErr.Code, appErr.Message, nil
	case KindTimeout:
		return http.StatusGatewayTimeout, appErr.Code, appErr.Message, nil
	default:
		return http.StatusInternalServerError, string(KindInternal), "Internal server error", nil
	}
}
