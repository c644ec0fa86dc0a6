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

// Package tracing creates OpenTelemetry server spans for dispatched
// requests.
//
// A [Tracer] continues traces propagated with W3C trace context headers,
// starts one server span per request and, once the router has matched,
// renames it after the route ("GET bar") and records the controller, the
// action and the captured parameters.
//
// Providers:
//
//   - noop (default): spans are sampled and recorded but not exported
//   - stdout: finished spans are written as JSON
//   - otlp and otlp-http: spans are exported to a collector
//
// Basic usage:
//
//	tracer := tracing.MustNew(tracing.WithOTLPHTTP("http://localhost:4318"))
//	defer tracer.Shutdown(context.Background())
//
// The global provider is left alone unless [WithGlobalTracerProvider] is
// given. Every method is a no-op on a nil *Tracer.
package tracing
