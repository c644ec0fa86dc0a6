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

package route

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidArgument indicates a malformed route definition: a bad parameter
	// type, a placeholder/parameter mismatch, or a duplicate route name.
	// These are configuration errors detected at startup.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingParameter indicates that a value required to fill a path
	// placeholder was not supplied.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrInvalidParameter indicates that a supplied value does not satisfy the
	// parameter type of its placeholder. Only returned by strict generation.
	ErrInvalidParameter = errors.New("invalid parameter value")
)

// InvalidArgumentError describes a construction-time configuration error.
type InvalidArgumentError struct {
	Field  string // What was being validated (e.g. "param", "pattern", "route name")
	Value  string // The offending value, if any
	Reason string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns [ErrInvalidArgument].
func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgument(field, value, reason string) error {
	return &InvalidArgumentError{Field: field, Value: value, Reason: reason}
}

// MissingParameterError is returned when path generation lacks a value for
// one of the placeholders of the template.
type MissingParameterError struct {
	Param   string // Placeholder name without braces
	Pattern string // Path template that was being generated
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q for path %s", e.Param, e.Pattern)
}

// Unwrap returns [ErrMissingParameter].
func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

// HTTPStatus reports a server error: a link that cannot be built is a bug in
// the calling code, not in the client request.
func (e *MissingParameterError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code returns a machine-readable error code.
func (e *MissingParameterError) Code() string {
	return "missing_route_parameter"
}

// Details returns structured information about the error.
func (e *MissingParameterError) Details() any {
	return map[string]string{"param": e.Param, "pattern": e.Pattern}
}

// InvalidParameterError is returned by strict generation when a supplied
// value would produce a path the matcher itself rejects.
type InvalidParameterError struct {
	Param   string
	Value   string
	Kind    Kind
	Pattern string
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid value %q for %s parameter %q in path %s", e.Value, e.Kind, e.Param, e.Pattern)
}

// Unwrap returns [ErrInvalidParameter].
func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// HTTPStatus reports a server error for the same reason as [MissingParameterError].
func (e *InvalidParameterError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// Code returns a machine-readable error code.
func (e *InvalidParameterError) Code() string {
	return "invalid_route_parameter"
}
