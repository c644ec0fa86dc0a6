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

// Package errors formats errors for HTTP responses.
//
// The package defines a Formatter interface and two implementations:
//   - RFC9457: RFC 9457 Problem Details (application/problem+json)
//   - Simple: Simple JSON error responses (application/json)
//
// Errors control the response through optional interfaces. The router's
// lookup errors implement all three:
//
//   - ErrorType: HTTPStatus() int
//   - ErrorDetails: Details() any
//   - ErrorCode: Code() string
//
// # Quick Start
//
//	import apperrors "github.com/szeber/yapep-base-sub003/errors"
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		ca, err := rt.ControllerActionByRequest(dispatch.NewRequest(r))
//		if err != nil {
//			_ = apperrors.Write(w, apperrors.NewSimple().Format(r, err))
//			return
//		}
//		// ...
//	}
//
// A not-found lookup renders as:
//
//	{"error": "route not found: GET /x", "code": "route_not_found", "details": {"method": "GET", "path": "/x"}}
package errors
