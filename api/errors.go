package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is a non-2xx response from the Flash1 API.
type Error struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Code is the API error code, e.g. "bad_request", when the body carries one.
	Code string

	// Message is the API error message or the raw body.
	Message string

	Method string
	Path   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("flash1 API error [%d]", e.StatusCode)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Method != "" && e.Path != "" {
		msg += fmt.Sprintf(" [%s %s]", e.Method, e.Path)
	}
	return msg
}

func newError(status int, method, path string, body []byte) *Error {
	apiErr := &Error{
		StatusCode: status,
		Method:     method,
		Path:       path,
	}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && (payload.Code != "" || payload.Message != "") {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
