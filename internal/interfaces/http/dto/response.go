// Package dto holds the wire shapes of the stub backend: a success/error
// envelope, paged list data and error codes.
package dto

import "github.com/sooquk/dashboard/internal/domain/shared"

// Response represents a standard API response
type Response struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message,omitempty"`
	Data      any                 `json:"data,omitempty"`
	Error     *ErrorInfo          `json:"error,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListData is one page of a collection
type ListData[T any] struct {
	Items      []T               `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

// NewListData pages items. Items must already be the requested page.
func NewListData[T any](items []T, page, size int, total int64) ListData[T] {
	r := shared.NewListResponse(items, page, size, total)
	return ListData[T]{Items: r.Items, Pagination: r.Pagination}
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewMessageResponse creates a success response without data
func NewMessageResponse(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success:   false,
		Message:   message,
		Error:     &ErrorInfo{Code: code, Message: message},
		RequestID: requestID,
	}
}

// NewValidationErrorResponse creates a 400 response body listing field errors
func NewValidationErrorResponse(message, requestID string, fields map[string][]string) Response {
	resp := NewErrorResponse(ErrCodeValidation, message, requestID)
	resp.Errors = fields
	return resp
}

// PageData is the flat page shape of the order endpoints
type PageData[T any] struct {
	Data  []T   `json:"data"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
