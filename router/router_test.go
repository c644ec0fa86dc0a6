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
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szeber/yapep-base-sub003/router/route"
)

// testRoutes returns the foo and bar routes used throughout these tests.
func testRoutes() []*route.Route {
	return []*route.Route{
		route.MustNew("foo", "Foo", "index", []string{http.MethodGet},
			route.MustPath("/foo"),
		),
		route.MustNew("bar", "Bar", "index", []string{http.MethodGet},
			route.MustPath("/bar"),
			route.MustPath("/bar/num/{id}", route.MustParam(route.Numeric("id"))),
			route.MustPath("/bar/multi/{alpha}/{enum}",
				route.MustParam(route.Alpha("alpha")),
				route.MustParam(route.Enum("enum", "one", "two")),
			),
		),
	}
}

func newTestRouter(t *testing.T, opts ...Option) *Router {
	t.Helper()

	r, err := New(testRoutes(), opts...)
	require.NoError(t, err)
	return r
}

// Forward lookup Tests

func TestControllerActionByMethodAndPath(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		controller string
		routeName  string
		params     map[string]string
	}{
		{"static", http.MethodGet, "/foo", "Foo", "foo", map[string]string{}},
		{"first path of route", http.MethodGet, "/bar", "Bar", "bar", map[string]string{}},
		{"numeric", http.MethodGet, "/bar/num/1", "Bar", "bar", map[string]string{"id": "1"}},
		{"alpha and enum", http.MethodGet, "/bar/multi/abc/one", "Bar", "bar", map[string]string{"alpha": "abc", "enum": "one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ca, err := r.ControllerActionByMethodAndPath(tt.method, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.controller, ca.Controller)
			assert.Equal(t, "index", ca.Action)
			assert.Equal(t, tt.routeName, ca.Route)
			assert.Equal(t, tt.params, ca.Params)
		})
	}
}

func TestControllerActionByMethodAndPath_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"method not allowed", http.MethodPost, "/foo"},
		{"enum mismatch", http.MethodGet, "/bar/multi/abc/three"},
		{"numeric mismatch", http.MethodGet, "/bar/num/abc"},
		{"trailing slash", http.MethodGet, "/foo/"},
		{"case differs", http.MethodGet, "/Foo"},
		{"lowercase method", "get", "/foo"},
		{"unknown path", http.MethodGet, "/nowhere"},
		{"empty path", http.MethodGet, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ca, err := r.ControllerActionByMethodAndPath(tt.method, tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRouteNotFound)
			assert.Equal(t, ControllerAction{}, ca)

			var notFound *RouteNotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, tt.method, notFound.Method)
			assert.Equal(t, tt.path, notFound.Path)
			assert.Equal(t, LookupForward, notFound.Lookup)
		})
	}
}

func TestControllerActionByMethodAndPath_AnyMethod(t *testing.T) {
	t.Parallel()

	r := MustNew([]*route.Route{
		route.MustNew("any", "Any", "index", nil, route.MustPath("/any")),
	})

	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodDelete, "PURGE"} {
		ca, err := r.ControllerActionByMethodAndPath(m, "/any")
		require.NoError(t, err, m)
		assert.Equal(t, "Any", ca.Controller)
	}
}

func TestControllerActionByMethodAndPath_FirstMatchWins(t *testing.T) {
	t.Parallel()

	r := MustNew([]*route.Route{
		route.MustNew("specific", "Item", "byID", nil,
			route.MustPath("/item/{id}", route.MustParam(route.Numeric("id")))),
		route.MustNew("general", "Item", "bySlug", nil,
			route.MustPath("/item/{slug}", route.MustParam(route.AlphaNumericExtended("slug")))),
	})

	ca, err := r.ControllerActionByMethodAndPath(http.MethodGet, "/item/42")
	require.NoError(t, err)
	assert.Equal(t, "byID", ca.Action)
	assert.Equal(t, map[string]string{"id": "42"}, ca.Params)

	ca, err = r.ControllerActionByMethodAndPath(http.MethodGet, "/item/blue-shoe")
	require.NoError(t, err)
	assert.Equal(t, "bySlug", ca.Action)
}

func TestControllerActionByMethodAndPath_MethodGateFallsThrough(t *testing.T) {
	t.Parallel()

	r := MustNew([]*route.Route{
		route.MustNew("show", "Item", "show", []string{http.MethodGet}, route.MustPath("/item")),
		route.MustNew("update", "Item", "update", []string{http.MethodPut, http.MethodPatch}, route.MustPath("/item")),
	})

	ca, err := r.ControllerActionByMethodAndPath(http.MethodPatch, "/item")
	require.NoError(t, err)
	assert.Equal(t, "update", ca.Action)

	_, err = r.ControllerActionByMethodAndPath(http.MethodDelete, "/item")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestControllerActionByMethodAndPath_FreshParams(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	first, err := r.ControllerActionByMethodAndPath(http.MethodGet, "/bar/num/5")
	require.NoError(t, err)
	first.Params["id"] = "changed"

	second, err := r.ControllerActionByMethodAndPath(http.MethodGet, "/bar/num/5")
	require.NoError(t, err)
	assert.Equal(t, "5", second.Param("id"))
}

func TestControllerActionByRequest(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	ca, err := r.ControllerActionByRequest(NewRequest(http.MethodGet, "/bar/num/7"))
	require.NoError(t, err)
	assert.Equal(t, "Bar#index", ca.String())
	assert.Equal(t, "7", ca.Param("id"))

	_, err = r.ControllerActionByRequest(NewRequest(http.MethodPost, "/foo"))
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

// Reverse lookup Tests

func TestPathByName(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{"no params", map[string]string{}, "/bar"},
		{"nil params", nil, "/bar"},
		{"id", map[string]string{"id": "1"}, "/bar/num/1"},
		{"alpha and enum", map[string]string{"alpha": "abc", "enum": "one"}, "/bar/multi/abc/one"},
		{"extra key on static", map[string]string{"page": "2"}, "/bar"},
		{"extra key beside id", map[string]string{"id": "1", "page": "2"}, "/bar/num/1"},
		{"partial multi uses id", map[string]string{"id": "1", "alpha": "abc"}, "/bar/num/1"},
		{"widest satisfiable", map[string]string{"id": "1", "alpha": "abc", "enum": "two"}, "/bar/multi/abc/two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.PathByName("bar", tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathByName_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	_, err := r.PathByName("nonexistent", map[string]string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteNotFound)

	var notFound *RouteNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "nonexistent", notFound.Name)
}

func TestPathByName_MissingParameter(t *testing.T) {
	t.Parallel()

	r := MustNew(append(testRoutes(),
		route.MustNew("multi", "Bar", "multi", nil,
			route.MustPath("/multi/{alpha}/{enum}",
				route.MustParam(route.Alpha("alpha")),
				route.MustParam(route.Enum("enum", "one", "two")),
			),
		),
	))

	_, err := r.PathByName("multi", map[string]string{"alpha": "abc", "unrelated": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.NotErrorIs(t, err, ErrRouteNotFound)

	var missing *route.MissingParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "enum", missing.Param)
}

func TestPathByName_ExtraKeys(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	got, err := r.PathByName("foo", map[string]string{"page": "2"})
	require.NoError(t, err)
	assert.Equal(t, "/foo", got)

	got, err = r.PathByControllerAndAction("Foo", "index", map[string]string{"page": "2", "sort": "asc"})
	require.NoError(t, err)
	assert.Equal(t, "/foo", got)
}

func TestPathByName_EmptyName(t *testing.T) {
	t.Parallel()

	_, err := newTestRouter(t).PathByName("", nil)
	require.Error(t, err)

	var notFound *RouteNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, LookupByName, notFound.Lookup)
	assert.Equal(t, `route not found: no route named ""`, err.Error())
	assert.Equal(t, map[string]string{"name": ""}, notFound.Details())
}

func TestPathByName_DoesNotValidateByDefault(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	got, err := r.PathByName("bar", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/bar/num/abc", got)

	// The generated path does not route back.
	_, err = r.ControllerActionByMethodAndPath(http.MethodGet, got)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestPathByName_Strict(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, WithStrictGeneration())
	assert.True(t, r.Strict())

	got, err := r.PathByName("bar", map[string]string{"id": "12"})
	require.NoError(t, err)
	assert.Equal(t, "/bar/num/12", got)

	// The invalid multi path is skipped for the static one.
	got, err = r.PathByName("bar", map[string]string{"alpha": "abc", "enum": "three"})
	require.NoError(t, err)
	assert.Equal(t, "/bar", got)

	strict := MustNew([]*route.Route{
		route.MustNew("multi", "Bar", "multi", nil,
			route.MustPath("/multi/{alpha}/{enum}",
				route.MustParam(route.Alpha("alpha")),
				route.MustParam(route.Enum("enum", "one", "two")),
			),
		),
	}, WithStrictGeneration())
	_, err = strict.PathByName("multi", map[string]string{"alpha": "abc", "enum": "three"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	var invalid *route.InvalidParameterError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "enum", invalid.Param)
}

func TestPathByControllerAndAction(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	got, err := r.PathByControllerAndAction("Bar", "index", map[string]string{"alpha": "abc", "enum": "two"})
	require.NoError(t, err)
	assert.Equal(t, "/bar/multi/abc/two", got)

	got, err = r.PathByControllerAndAction("Foo", "index", nil)
	require.NoError(t, err)
	assert.Equal(t, "/foo", got)
}

func TestPathByControllerAndAction_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	_, err := r.PathByControllerAndAction("Foo", "missing", nil)
	require.Error(t, err)

	var notFound *RouteNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Foo", notFound.Controller)
	assert.Equal(t, "missing", notFound.Action)
}

func TestPathByControllerAndAction_UsesFirstRoute(t *testing.T) {
	t.Parallel()

	r := MustNew([]*route.Route{
		route.MustNew("list", "Item", "list", nil, route.MustPath("/items")),
		route.MustNew("list-legacy", "Item", "list", nil, route.MustPath("/legacy/items")),
	})

	got, err := r.PathByControllerAndAction("Item", "list", nil)
	require.NoError(t, err)
	assert.Equal(t, "/items", got)

	got, err = r.PathByName("list-legacy", nil)
	require.NoError(t, err)
	assert.Equal(t, "/legacy/items", got)
}

// Round trip Tests

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	r := MustNew(append(testRoutes(),
		route.MustNew("order", "Order", "show", []string{http.MethodGet, http.MethodHead},
			route.MustPath("/orders/{id}/{state}",
				route.MustParam(route.UUID("id")),
				route.MustParam(route.Enum("state", "open", "closed")),
			),
		),
	))

	tests := []struct {
		name   string
		route  string
		params map[string]string
	}{
		{"static", "foo", map[string]string{}},
		{"numeric", "bar", map[string]string{"id": "99"}},
		{"multi", "bar", map[string]string{"alpha": "xyz", "enum": "two"}},
		{"uuid", "order", map[string]string{"id": uuid.NewString(), "state": "closed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, err := r.PathByName(tt.route, tt.params)
			require.NoError(t, err)

			rt, ok := r.Route(tt.route)
			require.True(t, ok)

			ca, err := r.ControllerActionByMethodAndPath(http.MethodGet, path)
			require.NoError(t, err)
			assert.Equal(t, rt.Controller(), ca.Controller)
			assert.Equal(t, rt.Action(), ca.Action)
			assert.Equal(t, tt.params, ca.Params)
		})
	}
}

// Construction Tests

func TestNew_DuplicateName(t *testing.T) {
	t.Parallel()

	_, err := New([]*route.Route{
		route.MustNew("foo", "Foo", "index", nil, route.MustPath("/foo")),
		route.MustNew("foo", "Other", "show", nil, route.MustPath("/other")),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "Foo#index")
	assert.Contains(t, err.Error(), "Other#show")
}

func TestNew_NilRoute(t *testing.T) {
	t.Parallel()

	_, err := New([]*route.Route{nil})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	r, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())

	_, err = r.ControllerActionByMethodAndPath(http.MethodGet, "/")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew([]*route.Route{nil})
	})
}

func TestNew_InputSliceIsCopied(t *testing.T) {
	t.Parallel()

	routes := testRoutes()
	r := MustNew(routes)
	routes[0] = route.MustNew("other", "Other", "index", nil, route.MustPath("/other"))

	ca, err := r.ControllerActionByMethodAndPath(http.MethodGet, "/foo")
	require.NoError(t, err)
	assert.Equal(t, "Foo", ca.Controller)
}

// Introspection Tests

func TestRoutes(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	infos := r.Routes()
	require.Len(t, infos, 2)
	assert.Equal(t, "foo", infos[0].Name)
	assert.Equal(t, "bar", infos[1].Name)
	require.Len(t, infos[1].Paths, 3)
	assert.Equal(t, "/bar/multi/{alpha}/{enum}", infos[1].Paths[2].Pattern)

	assert.Equal(t, []string{"foo", "bar"}, r.Names())
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.Strict())
}

func TestRoute(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	rt, ok := r.Route("bar")
	require.True(t, ok)
	assert.Equal(t, "Bar", rt.Controller())

	_, ok = r.Route("missing")
	assert.False(t, ok)
}

// Concurrency Tests

func TestConcurrentLookups(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 200 {
				if i%2 == 0 {
					ca, err := r.ControllerActionByMethodAndPath(http.MethodGet, "/bar/multi/abc/two")
					if err != nil || ca.Params["enum"] != "two" {
						t.Errorf("unexpected forward lookup result: %v %v", ca, err)
						return
					}
					continue
				}
				path, err := r.PathByName("bar", map[string]string{"id": "3"})
				if err != nil || path != "/bar/num/3" {
					t.Errorf("unexpected reverse lookup result: %q %v", path, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
