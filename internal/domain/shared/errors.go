package shared

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// DomainError represents a client-side rule violation
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrForbidden         = NewDomainError("FORBIDDEN", "Access to this page is forbidden")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrMutationPending   = NewDomainError("MUTATION_PENDING", "A submission is already in progress")
	ErrNotConfirmed      = NewDomainError("NOT_CONFIRMED", "Action was not confirmed")
	ErrInsufficientFunds = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient wallet balance")
)

// ErrorKind classifies a failed remote operation
type ErrorKind string

const (
	KindNetwork    ErrorKind = "NETWORK"
	KindValidation ErrorKind = "VALIDATION"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindAuth       ErrorKind = "AUTH"
	KindConflict   ErrorKind = "CONFLICT"
	KindServer     ErrorKind = "SERVER"
	KindUnknown    ErrorKind = "UNKNOWN"
)

// KindForStatus maps an HTTP status code onto the error taxonomy
func KindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// APIError is returned for every failed backend call. StatusCode is zero
// when the request never produced a response.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Code       string
	Message    string
	Fields     map[string][]string
	RequestID  string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(string(e.Kind)))
	b.WriteString(" error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (%d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying transport error, if any
func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the request could succeed
func (e *APIError) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindServer
}

// NewNetworkError wraps a transport failure
func NewNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: "network request failed", Err: err}
}

// KindOf returns the error kind of err, or KindUnknown
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a missing-resource error
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsAuth reports whether err is an authentication or authorization failure
func IsAuth(err error) bool { return KindOf(err) == KindAuth }

// IsConflict reports whether err is a conflict (e.g. resource still referenced)
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// ValidationError carries client-side field failures
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for a field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Field returns the message for a field
func (e *ValidationError) Field(name string) (string, bool) {
	msg, ok := e.Fields[name]
	return msg, ok
}

// Err returns e as an error, or nil when no field failed
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
