// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Formatter defines how errors are formatted in HTTP responses.
//
// Example:
//
//	formatter := errors.NewRFC9457("https://example.com/problems")
//	response := formatter.Format(req, err)
//	_ = errors.Write(w, response)
type Formatter interface {
	// Format converts an error into HTTP response components.
	// req may be used for the problem instance; err must not be nil.
	Format(req *http.Request, err error) Response
}

// Response represents a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body, marshaled to JSON by [Write].
	Body any

	// Headers contains additional headers to set (optional).
	Headers http.Header
}

// ErrorType allows errors to declare their own HTTP status code.
//
// Route lookup errors implement it: a route that is not found is a 404, a
// path that cannot be generated is a 500.
type ErrorType interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrorDetails allows errors to provide additional structured information,
// such as the lookup keys of a failed route lookup.
type ErrorDetails interface {
	error
	// Details returns structured information about the error.
	Details() any
}

// ErrorCode allows errors to provide a machine-readable code.
//
// Example:
//
//	func (e *RouteNotFoundError) Code() string {
//		return "route_not_found"
//	}
type ErrorCode interface {
	error
	// Code returns a machine-readable error code.
	Code() string
}

// Format names accepted by [ForFormat].
const (
	FormatSimple  = "simple"
	FormatRFC9457 = "rfc9457"
)

// ForFormat returns the formatter for a configured format name. Besides the
// constants it accepts "problem" and "problem+json" for RFC 9457. baseURL is
// only used by RFC 9457.
//
// Example:
//
//	f, err := errors.ForFormat(cfg.ErrorFormat, "https://example.com/problems")
func ForFormat(name, baseURL string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatSimple, "json":
		return NewSimple(), nil
	case FormatRFC9457, "problem", "problem+json":
		return NewRFC9457(baseURL), nil
	}
	return nil, fmt.Errorf("unknown error format %q", name)
}

// NewRFC9457 creates a new RFC9457 formatter.
// The baseURL parameter is prepended to error codes to create problem type URIs.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// NewSimple creates a new Simple formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// Write writes response to w: extra headers, Content-Type, status and the
// JSON-encoded body, in that order.
//
// Example:
//
//	if err := errors.Write(w, formatter.Format(r, err)); err != nil {
//		logger.Error("failed to write error response", "error", err)
//	}
func Write(w http.ResponseWriter, response Response) error {
	for k, values := range response.Headers {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", response.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(response.Status)

	if response.Body == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(response.Body)
}

// StatusOf returns the status declared by err through [ErrorType], or 500.
func StatusOf(err error) int {
	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// WithStatus wraps an error with an explicit HTTP status code.
// The wrapped error implements ErrorType interface.
//
// If err is nil, the status text for the given status code is used as the error message.
//
// Example:
//
//	return errors.WithStatus(err, http.StatusNotFound)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

// statusError wraps an error with an explicit status code.
type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}
