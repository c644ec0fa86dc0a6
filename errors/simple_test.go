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
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szeber/yapep-base-sub003/router"
	"github.com/szeber/yapep-base-sub003/router/route"
)

func TestSimple_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		formatter  *Simple
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "plain error",
			formatter:  NewSimple(),
			err:        lookupError("something went wrong"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "something went wrong"},
		},
		{
			name:       "error with code",
			formatter:  NewSimple(),
			err:        &codedError{msg: "bad", code: "bad_thing"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "bad", "code": "bad_thing"},
		},
		{
			name:       "route not found",
			formatter:  NewSimple(),
			err:        &router.RouteNotFoundError{Method: "POST", Path: "/foo"},
			wantStatus: http.StatusNotFound,
			wantBody: map[string]any{
				"error":   "route not found: POST /foo",
				"code":    "route_not_found",
				"details": map[string]any{"method": "POST", "path": "/foo"},
			},
		},
		{
			name:       "wrapped missing parameter",
			formatter:  NewSimple(),
			err:        fmt.Errorf("render: %w", &route.MissingParameterError{Param: "id", Pattern: "/bar/num/{id}"}),
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"error":   `render: missing required parameter "id" for path /bar/num/{id}`,
				"code":    "missing_route_parameter",
				"details": map[string]any{"param": "id", "pattern": "/bar/num/{id}"},
			},
		},
		{
			name:       "server error hidden",
			formatter:  &Simple{HideServerErrors: true},
			err:        &route.MissingParameterError{Param: "id", Pattern: "/bar/num/{id}"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "Internal Server Error", "code": "missing_route_parameter"},
		},
		{
			name:       "details dropped when hidden",
			formatter:  &Simple{HideServerErrors: true},
			err:        &detailedError{msg: "nope", details: map[string]any{"k": "v"}},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "Internal Server Error"},
		},
		{
			name:       "client error not hidden",
			formatter:  &Simple{HideServerErrors: true},
			err:        &router.RouteNotFoundError{Lookup: router.LookupByName, Name: "nonexistent"},
			wantStatus: http.StatusNotFound,
			wantBody: map[string]any{
				"error":   `route not found: no route named "nonexistent"`,
				"code":    "route_not_found",
				"details": map[string]any{"name": "nonexistent"},
			},
		},
		{
			name: "custom status resolver",
			formatter: &Simple{
				StatusResolver: func(error) int { return http.StatusTeapot },
			},
			err:        lookupError("test"),
			wantStatus: http.StatusTeapot,
			wantBody:   map[string]any{"error": "test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			response := tt.formatter.Format(req, tt.err)

			assert.Equal(t, tt.wantStatus, response.Status)
			assert.Equal(t, "application/json; charset=utf-8", response.ContentType)

			// Compare through JSON so typed details and generic maps are equal.
			raw, err := json.Marshal(response.Body)
			require.NoError(t, err)
			var got map[string]any
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}
