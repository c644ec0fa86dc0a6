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

// Package dispatch serves HTTP requests from a [router.Router].
//
// A [Handler] resolves each request with a forward lookup, invokes the
// [Action] registered for the matched controller action in [Controllers],
// and renders lookup failures and action errors with an errors.Formatter.
// Metrics and tracing are optional and recorded per request.
//
//	controllers := dispatch.NewControllers().
//	    MustRegister("Bar", "index", func(w http.ResponseWriter, r *http.Request, ca router.ControllerAction) error {
//	        _, err := fmt.Fprintf(w, "bar %s", ca.Param("id"))
//	        return err
//	    })
//
//	h, err := dispatch.New(rt, controllers,
//	    dispatch.WithLogger(logger),
//	    dispatch.WithMetrics(recorder),
//	    dispatch.WithTracer(tracer),
//	)
//
// Unmatched requests answer 404. A matched route without a registered
// action answers 501. [URLs] builds links from route names for views.
package dispatch
