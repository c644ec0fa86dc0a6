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

// Package router resolves requests to controller actions and builds URLs
// from route names, in both directions over one route table.
//
// # Key Features
//
//   - Forward lookup: method + path to (controller, action, params)
//   - Reverse lookup by route name or by (controller, action)
//   - Typed path parameters: numeric, alpha, alphanumeric, UUID, regex, enum
//   - Several paths per route, chosen for URLs by the supplied parameter names
//   - Diagnostics for shadowed paths and duplicate actions
//
// # Matching Rules
//
// Routes are tried in registration order and the first match wins. A route
// with no methods accepts any method. Paths are compiled to anchored,
// case-sensitive regular expressions; "/foo" and "/foo/" are different
// paths.
//
// # Constructor Pattern
//
// New validates the whole table and compiles nothing lazily. A router that
// was built successfully is immutable and all lookups are safe for
// concurrent use. MustNew panics instead of returning an error and is meant
// for tables defined in code.
//
// # Quick Start
//
//	r := router.MustNew([]*route.Route{
//	    route.MustNew("foo", "Foo", "index", []string{"GET"}, route.MustPath("/foo")),
//	    route.MustNew("bar", "Bar", "index", []string{"GET"},
//	        route.MustPath("/bar"),
//	        route.MustPath("/bar/num/{id}", route.MustParam(route.Numeric("id"))),
//	    ),
//	})
//
//	ca, err := r.ControllerActionByMethodAndPath("GET", "/bar/num/42")
//	// ca.Controller == "Bar", ca.Action == "index", ca.Params["id"] == "42"
//
//	path, err := r.PathByName("bar", map[string]string{"id": "42"})
//	// path == "/bar/num/42"
//
// # Generated Values
//
// Reverse lookups substitute values verbatim. They do not escape them and
// do not check them against the parameter type, so a generated path may not
// route back to the same action. Use WithStrictGeneration to reject such
// values.
//
// # Errors
//
// Lookups fail with *RouteNotFoundError (wrapping ErrRouteNotFound) or
// *route.MissingParameterError (wrapping ErrMissingParameter). Both
// implement HTTPStatus, Code and Details, so the errors package can render
// them. The router never logs.
package router
