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

import (
	"fmt"
	"slices"

	"github.com/szeber/yapep-base-sub003/router/route"
)

// actionKey identifies a (controller, action) pair.
type actionKey struct {
	controller string
	action     string
}

// Router resolves requests to controller actions and builds paths from route
// names or actions.
//
// A Router is built once from a complete route table and is never modified
// afterwards, so all lookup methods are safe for concurrent use without
// locking.
type Router struct {
	routes   []*route.Route // registration order
	byName   map[string]*route.Route
	byAction map[actionKey]*route.Route // first registered route per pair

	strict      bool
	diagnostics DiagnosticHandler
}

// New builds a router from routes. Registration order is significant:
// forward lookups return the first route that matches.
//
// Errors:
//   - [ErrInvalidArgument] if a route is nil
//   - [ErrInvalidArgument] if two routes share a name
//
// Example:
//
//	r, err := router.New([]*route.Route{
//	    route.MustNew("foo", "Foo", "index", []string{"GET"}, route.MustPath("/foo")),
//	})
func New(routes []*route.Route, opts ...Option) (*Router, error) {
	r := &Router{
		routes:   make([]*route.Route, 0, len(routes)),
		byName:   make(map[string]*route.Route, len(routes)),
		byAction: make(map[actionKey]*route.Route, len(routes)),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, rt := range routes {
		if rt == nil {
			return nil, &route.InvalidArgumentError{
				Field:  "route",
				Reason: fmt.Sprintf("route %d is nil", i),
			}
		}
		if prev, dup := r.byName[rt.Name()]; dup {
			return nil, &route.InvalidArgumentError{
				Field: "route name",
				Value: rt.Name(),
				Reason: fmt.Sprintf("registered twice (%s#%s and %s#%s)",
					prev.Controller(), prev.Action(), rt.Controller(), rt.Action()),
			}
		}

		r.diagnoseShadowing(r.routes, rt)

		key := actionKey{controller: rt.Controller(), action: rt.Action()}
		if first, dup := r.byAction[key]; dup {
			r.emit(DiagDuplicateAction, "action already has a route, reverse lookups use the first", map[string]any{
				"route":      rt.Name(),
				"controller": rt.Controller(),
				"action":     rt.Action(),
				"first":      first.Name(),
			})
		} else {
			r.byAction[key] = rt
		}

		r.byName[rt.Name()] = rt
		r.routes = append(r.routes, rt)

		r.emit(DiagRouteRegistered, "route registered", map[string]any{
			"route":      rt.Name(),
			"controller": rt.Controller(),
			"action":     rt.Action(),
			"methods":    rt.Methods(),
			"paths":      len(rt.Paths()),
		})
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
// It is meant for route tables defined in code.
func MustNew(routes []*route.Route, opts ...Option) *Router {
	r, err := New(routes, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// ControllerActionByMethodAndPath returns the controller action of the first
// route, in registration order, whose method gate admits method and one of
// whose paths matches path.
//
// Matching is exact: case-sensitive, anchored, and without trailing slash
// or percent-decoding normalization.
//
// Errors:
//   - [*RouteNotFoundError] wrapping [ErrRouteNotFound] if nothing matches
func (r *Router) ControllerActionByMethodAndPath(method, path string) (ControllerAction, error) {
	for _, rt := range r.routes {
		if params, ok := rt.Match(method, path); ok {
			return ControllerAction{
				Controller: rt.Controller(),
				Action:     rt.Action(),
				Route:      rt.Name(),
				Params:     params,
			}, nil
		}
	}
	return ControllerAction{}, &RouteNotFoundError{Lookup: LookupForward, Method: method, Path: path}
}

// ControllerActionByRequest is [Router.ControllerActionByMethodAndPath] with
// the method and target taken from req.
func (r *Router) ControllerActionByRequest(req Request) (ControllerAction, error) {
	return r.ControllerActionByMethodAndPath(req.Method(), req.Target())
}

// PathByName builds a path for the named route from the most specific of
// its paths that params can fill (see [route.Route.Generate]). Keys no
// placeholder uses are ignored.
//
// Errors:
//   - [*RouteNotFoundError] if there is no route with that name
//   - [*route.MissingParameterError] for the last path tried if none could be built
//   - [*route.InvalidParameterError] under [WithStrictGeneration]
//
// Example:
//
//	path, err := r.PathByName("bar", map[string]string{"id": "123"})
func (r *Router) PathByName(name string, params map[string]string) (string, error) {
	rt, ok := r.byName[name]
	if !ok {
		return "", &RouteNotFoundError{Lookup: LookupByName, Name: name}
	}
	return rt.Generate(params, r.strict)
}

// PathByControllerAndAction is like [Router.PathByName] but selects the first
// registered route for the (controller, action) pair.
func (r *Router) PathByControllerAndAction(controller, action string, params map[string]string) (string, error) {
	rt, ok := r.byAction[actionKey{controller: controller, action: action}]
	if !ok {
		return "", &RouteNotFoundError{Lookup: LookupByAction, Controller: controller, Action: action}
	}
	return rt.Generate(params, r.strict)
}

// Route returns the route registered under name.
func (r *Router) Route(name string) (*route.Route, bool) {
	rt, ok := r.byName[name]
	return rt, ok
}

// Routes returns an introspection snapshot of all routes in registration order.
//
// Example:
//
//	for _, info := range r.Routes() {
//	    fmt.Printf("%s %v %s#%s\n", info.Name, info.Methods, info.Controller, info.Action)
//	}
func (r *Router) Routes() []route.Info {
	infos := make([]route.Info, 0, len(r.routes))
	for _, rt := range r.routes {
		infos = append(infos, rt.Info())
	}
	return infos
}

// Len returns the number of routes.
func (r *Router) Len() int {
	return len(r.routes)
}

// Names returns the route names in registration order.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		names = append(names, rt.Name())
	}
	return slices.Clip(names)
}

// Strict reports whether reverse lookups validate values.
func (r *Router) Strict() bool {
	return r.strict
}
