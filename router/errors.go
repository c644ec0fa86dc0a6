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
	"errors"
	"fmt"
	"net/http"

	"github.com/szeber/yapep-base-sub003/router/route"
)

var (
	// ErrRouteNotFound indicates that no route satisfies a forward or reverse lookup.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingParameter indicates that a value required to build a path was not supplied.
	ErrMissingParameter = route.ErrMissingParameter

	// ErrInvalidArgument indicates a malformed route table.
	ErrInvalidArgument = route.ErrInvalidArgument

	// ErrInvalidParameter indicates a value rejected by strict generation.
	ErrInvalidParameter = route.ErrInvalidParameter
)

// LookupKind names the lookup a [RouteNotFoundError] came from.
type LookupKind string

const (
	LookupForward  LookupKind = "forward"
	LookupByName   LookupKind = "name"
	LookupByAction LookupKind = "action"
)

// RouteNotFoundError describes a failed lookup. Lookup selects which fields
// are meaningful: Method and Path for forward lookups, Name for lookups by
// name, Controller and Action for lookups by action. An empty Lookup is
// treated as [LookupForward].
type RouteNotFoundError struct {
	Lookup     LookupKind
	Method     string
	Path       string
	Name       string
	Controller string
	Action     string
}

// Error implements the error interface.
func (e *RouteNotFoundError) Error() string {
	switch e.Lookup {
	case LookupByName:
		return fmt.Sprintf("route not found: no route named %q", e.Name)
	case LookupByAction:
		return fmt.Sprintf("route not found: no route for %s#%s", e.Controller, e.Action)
	default:
		return fmt.Sprintf("route not found: %s %s", e.Method, e.Path)
	}
}

// Unwrap returns [ErrRouteNotFound].
func (e *RouteNotFoundError) Unwrap() error {
	return ErrRouteNotFound
}

// HTTPStatus returns 404.
func (e *RouteNotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// Code returns a machine-readable error code.
func (e *RouteNotFoundError) Code() string {
	return "route_not_found"
}

// Details returns the keys of the failed lookup.
func (e *RouteNotFoundError) Details() any {
	switch e.Lookup {
	case LookupByName:
		return map[string]string{"name": e.Name}
	case LookupByAction:
		return map[string]string{"controller": e.Controller, "action": e.Action}
	default:
		return map[string]string{"method": e.Method, "path": e.Path}
	}
}
