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
	"errors"
	"net/http"
)

// Simple formats errors as simple JSON objects.
// It produces responses with Content-Type "application/json".
// Format: {"error": "message", "details": {...}, "code": "..."}
type Simple struct {
	// StatusResolver determines HTTP status from error.
	// If nil, uses [StatusOf].
	StatusResolver func(err error) int

	// HideServerErrors replaces the message and drops the details of 5xx
	// errors, so broken link generation does not leak route internals.
	HideServerErrors bool
}

// Format converts an error into a simple JSON response.
// If the error implements ErrorDetails or ErrorCode interfaces, those are included in the response.
func (f *Simple) Format(_ *http.Request, err error) Response {
	status := f.determineStatus(err)
	hide := f.HideServerErrors && status >= http.StatusInternalServerError

	body := map[string]any{
		"error": err.Error(),
	}
	if hide {
		body["error"] = http.StatusText(status)
	}

	var detailed ErrorDetails
	if !hide && errors.As(err, &detailed) {
		body["details"] = detailed.Details()
	}

	var coded ErrorCode
	if errors.As(err, &coded) {
		body["code"] = coded.Code()
	}

	return Response{
		Status:      status,
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}
}

func (f *Simple) determineStatus(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}
	return StatusOf(err)
}
