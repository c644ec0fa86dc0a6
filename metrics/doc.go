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

// Package metrics records routing and dispatch metrics with OpenTelemetry.
//
// A [Recorder] owns four instruments, all prefixed with a namespace
// ("yapep" by default):
//
//   - <ns>_route_lookups_total: forward lookups by outcome
//   - <ns>_dispatch_total: dispatched requests by controller, action and outcome
//   - <ns>_dispatch_duration_seconds: dispatch latency histogram
//   - <ns>_dispatch_active: requests in flight
//
// Three providers are available. Prometheus (the default) keeps a private
// registry and serves it through [Recorder.Handler]; OTLP pushes to an HTTP
// collector; stdout prints periodically. A caller can also pass its own
// provider with [WithMeterProvider].
//
// Basic usage:
//
//	recorder := metrics.MustNew(metrics.WithNamespace("shop"))
//	defer recorder.Shutdown(context.Background())
//
//	mux.Handle("/metrics", recorder.Handler())
//
// Every method is a no-op on a nil *Recorder.
package metrics
