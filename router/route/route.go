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

package route

import (
	"fmt"
	"slices"
)

// Route is a named binding of a (controller, action) pair to an optional set
// of HTTP methods and an ordered list of paths.
//
// Paths are tried in declaration order in both directions. An empty method
// set accepts any method. Routes are immutable once created.
type Route struct {
	name       string
	controller string
	action     string
	methods    []string
	paths      []*Path
}

// New creates a route.
//
// Errors:
//   - [ErrInvalidArgument] if name, controller or action is empty
//   - [ErrInvalidArgument] if no paths are given, a path is nil, or a method is empty
//
// Method tokens are case-sensitive and duplicates are collapsed.
//
// Example:
//
//	r, err := route.New("bar", "Bar", "index", []string{http.MethodGet},
//	    route.MustPath("/bar"),
//	    route.MustPath("/bar/num/{id}", route.MustParam(route.Numeric("id"))),
//	)
func New(name, controller, action string, methods []string, paths ...*Path) (*Route, error) {
	switch {
	case name == "":
		return nil, invalidArgument("route name", "", "must not be empty")
	case controller == "":
		return nil, invalidArgument("controller", "", fmt.Sprintf("must not be empty for route %s", name))
	case action == "":
		return nil, invalidArgument("action", "", fmt.Sprintf("must not be empty for route %s", name))
	case len(paths) == 0:
		return nil, invalidArgument("route", name, "at least one path is required")
	}

	for i, p := range paths {
		if p == nil {
			return nil, invalidArgument("route", name, fmt.Sprintf("path %d is nil", i))
		}
	}

	var ms []string
	for _, m := range methods {
		if m == "" {
			return nil, invalidArgument("route", name, "method must not be empty")
		}
		if !slices.Contains(ms, m) {
			ms = append(ms, m)
		}
	}

	return &Route{
		name:       name,
		controller: controller,
		action:     action,
		methods:    ms,
		paths:      slices.Clone(paths),
	}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(name, controller, action string, methods []string, paths ...*Path) *Route {
	r, err := New(name, controller, action, methods, paths...)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the unique route name.
func (r *Route) Name() string {
	return r.name
}

// Controller returns the controller identifier.
func (r *Route) Controller() string {
	return r.controller
}

// Action returns the action identifier.
func (r *Route) Action() string {
	return r.action
}

// Methods returns a copy of the accepted methods. An empty result means any
// method is accepted.
func (r *Route) Methods() []string {
	return slices.Clone(r.methods)
}

// Paths returns a copy of the route's paths in declaration order.
func (r *Route) Paths() []*Path {
	return slices.Clone(r.paths)
}

// AllowsMethod reports whether method passes the route's method gate.
func (r *Route) AllowsMethod(method string) bool {
	return len(r.methods) == 0 || slices.Contains(r.methods, method)
}

// Match runs the method gate and then tries each path in order. It returns
// the captured values of the first matching path.
func (r *Route) Match(method, path string) (map[string]string, bool) {
	if !r.AllowsMethod(method) {
		return nil, false
	}
	for _, p := range r.paths {
		if values, ok := p.Match(path); ok {
			return values, true
		}
	}
	return nil, false
}

// Generate builds a path from the most specific of the route's paths that
// params can fill: the one with the most placeholders, ties going to the
// earlier path. Keys no placeholder uses are ignored. When no path can be
// filled the error of the last path tried is returned, a
// [*MissingParameterError] for a missing value.
//
// With strict set, values must also match their parameter types. A path
// with a mismatching value is skipped, and if that leaves no path the
// [*InvalidParameterError] is preferred over missing values.
func (r *Route) Generate(params map[string]string, strict bool) (string, error) {
	var (
		best    string
		bestLen = -1
		lastErr error
		invalid error
	)
	for _, p := range r.paths {
		var (
			out string
			err error
		)
		if strict {
			out, err = p.GenerateStrict(params)
		} else {
			out, err = p.Generate(params)
		}
		if err != nil {
			lastErr = err
			if _, ok := err.(*InvalidParameterError); ok && invalid == nil {
				invalid = err
			}
			continue
		}
		if n := len(p.params); n > bestLen {
			best, bestLen = out, n
		}
	}

	switch {
	case bestLen >= 0:
		return best, nil
	case invalid != nil:
		return "", invalid
	default:
		return "", lastErr
	}
}

// String returns a readable form such as "bar [GET] Bar#index".
func (r *Route) String() string {
	methods := "*"
	if len(r.methods) > 0 {
		methods = fmt.Sprint(r.methods)
	}
	return fmt.Sprintf("%s %s %s#%s", r.name, methods, r.controller, r.action)
}

// Info contains route information for introspection.
type Info struct {
	Name       string     // Unique route name
	Controller string     // Controller identifier
	Action     string     // Action identifier
	Methods    []string   // Accepted methods, empty means any
	Paths      []PathInfo // Paths in declaration order
}

// PathInfo describes one path of a route.
type PathInfo struct {
	Pattern string            // Path template, e.g. "/bar/num/{id}"
	Regexp  string            // Compiled matcher source
	Params  map[string]string // Placeholder name -> parameter kind
}

// Info returns an introspection snapshot of the route.
func (r *Route) Info() Info {
	paths := make([]PathInfo, 0, len(r.paths))
	for _, p := range r.paths {
		params := make(map[string]string, len(p.params))
		for _, prm := range p.params {
			params[prm.name] = prm.kind.String()
		}
		paths = append(paths, PathInfo{
			Pattern: p.pattern,
			Regexp:  p.re.String(),
			Params:  params,
		})
	}
	return Info{
		Name:       r.name,
		Controller: r.controller,
		Action:     r.action,
		Methods:    slices.Clone(r.methods),
		Paths:      paths,
	}
}
