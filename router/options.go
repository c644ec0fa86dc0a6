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

package router

// Option configures a Router.
type Option func(*Router)

// WithDiagnostics sets a diagnostic handler for the router.
//
// Diagnostic events are emitted while the route table is built and describe
// registrations and anomalies such as shadowed paths. The router routes the
// same way whether diagnostics are collected or not.
//
// Example with logging:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r, err := router.New(routes, router.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithStrictGeneration makes the reverse lookups check every supplied value
// against its parameter type. A path whose values do not match is skipped
// like a path with a missing value, and if no path can be built the error
// wraps [ErrInvalidParameter] or [ErrMissingParameter].
//
// By default values are substituted verbatim.
func WithStrictGeneration() Option {
	return func(r *Router) {
		r.strict = true
	}
}
