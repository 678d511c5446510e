package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind separates business-rule failures from infrastructure faults. The
// legacy JSON contract renders the former as status "failed" and the
// latter as status "error".
type Kind string

const (
	KindBusiness       Kind = "business"
	KindInfrastructure Kind = "infrastructure"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Kind    Kind   `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(kind Kind, code string, status int, message string) *Error {
	return &Error{Kind: kind, Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error as an infrastructure fault.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Kind: KindInfrastructure, Code: code, Status: status, Message: message, Err: err}
}

// WrapFrom attaches a cause to a copy of the template error, keeping the
// template's Kind. Validation wrappers use it so business failures stay
// rendered as "failed".
func WrapFrom(template *Error, err error, message string) *Error {
	clone := Clone(template, message)
	if clone == nil {
		return Wrap(err, ErrInternal.Code, ErrInternal.Status, message)
	}
	clone.Err = err
	return clone
}

// Predefined errors for common scenarios.
var (
	// Invalid credentials stay HTTP 200: the legacy contract reports them
	// as a structured "failed" payload, not a transport error.
	ErrInvalidCredentials = New(KindBusiness, "INVALID_CREDENTIALS", http.StatusOK, "Invalid credentials")
	ErrNotOwner           = New(KindBusiness, "NOT_OWNER", http.StatusForbidden, "Not your note!")
	ErrValidation         = New(KindBusiness, "VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound           = New(KindBusiness, "NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal           = New(KindInfrastructure, "INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New(KindInfrastructure, "CACHE_MISS", http.StatusInternalServerError, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
