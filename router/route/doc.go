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

// Package route provides the building blocks of a route table: typed path
// parameters, compiled path templates and named routes.
//
// This package contains:
//   - Param: a typed placeholder (numeric, alpha, alphanumeric, UUID, regex, enum)
//   - Path: a template such as "/bar/num/{id}" compiled to an anchored matcher
//   - Route: a named (controller, action) binding with methods and paths
//
// All values are validated and compiled when they are created, so a route
// table that builds without error cannot fail later because of its own
// definition. Values are immutable and safe for concurrent use.
//
// # Parameters
//
// Each placeholder in a template is bound to exactly one Param:
//
//	id := route.MustParam(route.Numeric("id"))
//	state := route.MustParam(route.Enum("state", "active", "pending"))
//
// # Paths
//
// A Path matches a candidate request path and generates a path from values:
//
//	p := route.MustPath("/bar/num/{id}", id)
//	values, ok := p.Match("/bar/num/42") // {"id": "42"}, true
//	out, err := p.Generate(map[string]string{"id": "42"})
//
// Generate does not check values against the parameter type. GenerateStrict
// does.
//
// # Routes
//
//	r := route.MustNew("bar", "Bar", "index", []string{"GET"}, p)
//
// The router package assembles routes into a lookup table.
package route
