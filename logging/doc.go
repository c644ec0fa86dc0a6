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

// Package logging provides the structured logger shared by the router
// collector, the dispatch layer and the yapep-routes command.
//
// It wraps [log/slog] with functional options, JSON, text and console
// handlers, key redaction and OpenTelemetry trace correlation.
//
// # Basic Usage
//
//	logger := logging.MustNew(logging.WithConsoleHandler())
//	defer logger.Shutdown(context.Background())
//	logger.Info("routes loaded", "count", 12)
//
// # Configuration
//
// Level and format names read from configuration are resolved with
// [ParseLevel] and [ParseHandlerType]:
//
//	level, err := logging.ParseLevel(settings.Log.Level)
//	if err != nil {
//	    return err
//	}
//	logger, err := logging.New(logging.WithLevel(level))
//
// The level can be changed at runtime with [Logger.SetLevel].
//
// # Sensitive Data Redaction
//
// Values of the keys password, token, secret, api_key and authorization are
// replaced in every handler. [WithRedactedKeys] adds more keys.
//
// # Trace Correlation
//
// [NewContextLogger] adds trace_id and span_id when the context carries a
// valid OpenTelemetry span:
//
//	log := logging.NewContextLogger(r.Context(), logger)
//	log.Info("dispatching", "route", "bar")
//
// # Testing
//
// [NewTestHelper] captures JSON output in memory:
//
//	th := logging.NewTestHelper(t)
//	th.Logger.Info("matched", "route", "bar")
//	th.AssertLog(t, "INFO", "matched", map[string]any{"route": "bar"})
package logging
