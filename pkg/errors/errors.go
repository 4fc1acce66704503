package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrValidation is returned when caller input is rejected before any upstream call
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUpstream is returned when Shopify answered with a non-success status
type ErrUpstream struct {
	Resource   string
	StatusCode int
	Body       []byte
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Payload returns the upstream body for relaying: decoded JSON when the body
// parses, otherwise the raw text.
func (e *ErrUpstream) Payload() interface{} {
	trimmed := strings.TrimSpace(string(e.Body))
	if trimmed == "" {
		return ""
	}
	var v json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}
	return trimmed
}

// ErrUpstreamUnreachable is returned when a request was sent but no response came back
type ErrUpstreamUnreachable struct {
	Resource string
	Err      error
}

func (e *ErrUpstreamUnreachable) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "no response received from " + e.Resource
}

func (e *ErrUpstreamUnreachable) Unwrap() error {
	return e.Err
}

// ErrRequestSetup is returned when the outbound request could not be built,
// or its response could not be understood
type ErrRequestSetup struct {
	Resource string
	Err      error
}

func (e *ErrRequestSetup) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "failed to set up request for " + e.Resource
}

func (e *ErrRequestSetup) Unwrap() error {
	return e.Err
}

// ErrRouteNotFound is returned for any request no route matched
type ErrRouteNotFound struct {
	Method string
	Path   string
}

func (e *ErrRouteNotFound) Error() string {
	return fmt.Sprintf("route not found: %s %s", e.Method, e.Path)
}

// ErrInternal collapses any failure into a single opaque server error
type ErrInternal struct {
	Err error
}

func (e *ErrInternal) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *ErrInternal) Unwrap() error {
	return e.Err
}
