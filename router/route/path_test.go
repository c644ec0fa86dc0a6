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
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ParseSegments Tests

func TestParseSegments(t *testing.T) {
	t.Parallel()

	segments, err := ParseSegments("/users/{id}/posts")
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, Segment{Static: true, Value: "/users/"}, segments[0])
	assert.Equal(t, Segment{Static: false, Value: "id"}, segments[1])
	assert.Equal(t, Segment{Static: true, Value: "/posts"}, segments[2])
}

func TestParseSegments_PlaceholderAtStart(t *testing.T) {
	t.Parallel()

	segments, err := ParseSegments("{lang}/{a}-{b}")
	require.NoError(t, err)
	assert.Equal(t, []Segment{
		{Static: false, Value: "lang"},
		{Static: true, Value: "/"},
		{Static: false, Value: "a"},
		{Static: true, Value: "-"},
		{Static: false, Value: "b"},
	}, segments)
}

func TestParseSegments_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
	}{
		{"unclosed brace", "/a/{id"},
		{"stray closing brace", "/a/id}"},
		{"closing before opening", "/a/}{id}"},
		{"empty name", "/a/{}"},
		{"name starts with digit", "/a/{1id}"},
		{"name with dash", "/a/{user-id}"},
		{"nested braces", "/a/{{id}}"},
		{"duplicate placeholder", "/a/{id}/b/{id}"},
		{"adjacent placeholders", "/x/{a}{b}"},
		{"adjacent placeholders at end", "/x/{a}/{b}{c}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseSegments(tt.pattern)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

// NewPath Tests

func TestNewPath_Static(t *testing.T) {
	t.Parallel()

	p, err := NewPath("/foo")
	require.NoError(t, err)
	assert.Equal(t, "/foo", p.Pattern())
	assert.Equal(t, "/foo", p.String())
	assert.True(t, p.IsStatic())
	assert.Empty(t, p.ParamNames())
	assert.Equal(t, `^/foo$`, p.Regexp().String())
}

func TestNewPath_CompilesNamedGroups(t *testing.T) {
	t.Parallel()

	p, err := NewPath("/bar/num/{id}", MustParam(Numeric("id")))
	require.NoError(t, err)
	assert.Equal(t, `^/bar/num/(?P<id>[0-9]+)$`, p.Regexp().String())
	assert.False(t, p.IsStatic())
}

func TestNewPath_ParamNamesFollowTemplateOrder(t *testing.T) {
	t.Parallel()

	p, err := NewPath("/bar/multi/{alpha}/{enum}",
		MustParam(Enum("enum", "one", "two")),
		MustParam(Alpha("alpha")),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "enum"}, p.ParamNames())
	require.Len(t, p.Params(), 2)
	assert.Equal(t, "enum", p.Params()[0].Name())
}

func TestNewPath_Mismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		params  []Param
		field   string
	}{
		{
			name:    "placeholder without param",
			pattern: "/a/{id}",
			field:   "placeholder",
		},
		{
			name:    "param without placeholder",
			pattern: "/a",
			params:  []Param{MustParam(Numeric("id"))},
			field:   "param",
		},
		{
			name:    "duplicate param",
			pattern: "/a/{id}",
			params:  []Param{MustParam(Numeric("id")), MustParam(Alpha("id"))},
			field:   "param",
		},
		{
			name:    "zero value param",
			pattern: "/a/{id}",
			params:  []Param{{}},
			field:   "param",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewPath(tt.pattern, tt.params...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)

			var invalid *InvalidArgumentError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestNewPath_ErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := NewPath("/a/{id}")
	require.Error(t, err)
	assert.Equal(t, `invalid placeholder "id": no parameter declared for it in path /a/{id}`, err.Error())
}

func TestMustPath_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustPath("/a/{id}")
	})
}

// Match Tests

func TestPath_MatchStatic(t *testing.T) {
	t.Parallel()

	p := MustPath("/foo")

	values, ok := p.Match("/foo")
	require.True(t, ok)
	assert.NotNil(t, values)
	assert.Empty(t, values)

	for _, candidate := range []string{"/foo/", "/FOO", "/foo/bar", "foo", "", "/fo"} {
		_, ok := p.Match(candidate)
		assert.False(t, ok, candidate)
	}
}

func TestPath_MatchEscapesLiterals(t *testing.T) {
	t.Parallel()

	p := MustPath("/feed.json")

	_, ok := p.Match("/feed.json")
	assert.True(t, ok)
	_, ok = p.Match("/feedxjson")
	assert.False(t, ok)
}

func TestPath_MatchParams(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()

	tests := []struct {
		name      string
		path      *Path
		candidate string
		want      map[string]string
	}{
		{
			name:      "numeric",
			path:      MustPath("/bar/num/{id}", MustParam(Numeric("id"))),
			candidate: "/bar/num/42",
			want:      map[string]string{"id": "42"},
		},
		{
			name: "alpha and enum",
			path: MustPath("/bar/multi/{alpha}/{enum}",
				MustParam(Alpha("alpha")), MustParam(Enum("enum", "one", "two"))),
			candidate: "/bar/multi/abc/two",
			want:      map[string]string{"alpha": "abc", "enum": "two"},
		},
		{
			name:      "alphanumeric extended",
			path:      MustPath("/p/{slug}", MustParam(AlphaNumericExtended("slug"))),
			candidate: "/p/my-post_2",
			want:      map[string]string{"slug": "my-post_2"},
		},
		{
			name:      "uuid",
			path:      MustPath("/u/{id}", MustParam(UUID("id"))),
			candidate: "/u/" + id,
			want:      map[string]string{"id": id},
		},
		{
			name:      "regex alternation stays inside its group",
			path:      MustPath("/r/{code}/x", MustParam(Regex("code", "a|b"))),
			candidate: "/r/b/x",
			want:      map[string]string{"code": "b"},
		},
		{
			name:      "placeholder inside a segment",
			path:      MustPath("/img/{name}.png", MustParam(AlphaNumeric("name"))),
			candidate: "/img/logo2.png",
			want:      map[string]string{"name": "logo2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.path.Match(tt.candidate)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPath_MatchRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      *Path
		candidate string
	}{
		{"numeric gets letters", MustPath("/bar/num/{id}", MustParam(Numeric("id"))), "/bar/num/abc"},
		{"empty value", MustPath("/bar/num/{id}", MustParam(Numeric("id"))), "/bar/num/"},
		{"trailing slash", MustPath("/bar/num/{id}", MustParam(Numeric("id"))), "/bar/num/42/"},
		{"enum outside set", MustPath("/e/{e}", MustParam(Enum("e", "one", "two"))), "/e/three"},
		{"enum is anchored", MustPath("/e/{e}", MustParam(Enum("e", "one", "two"))), "/e/onetwo"},
		{"alpha gets digits", MustPath("/a/{a}", MustParam(Alpha("a"))), "/a/ab1"},
		{"regex is anchored", MustPath("/r/{code}", MustParam(Regex("code", "a|b"))), "/r/ab"},
		{"uuid too short", MustPath("/u/{id}", MustParam(UUID("id"))), "/u/1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.path.Match(tt.candidate)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestPath_MatchReturnsFreshMap(t *testing.T) {
	t.Parallel()

	p := MustPath("/bar/num/{id}", MustParam(Numeric("id")))

	first, ok := p.Match("/bar/num/1")
	require.True(t, ok)
	first["id"] = "changed"

	second, ok := p.Match("/bar/num/1")
	require.True(t, ok)
	assert.Equal(t, "1", second["id"])
}

// Generate Tests

func TestPath_Generate(t *testing.T) {
	t.Parallel()

	p := MustPath("/bar/multi/{alpha}/{enum}",
		MustParam(Alpha("alpha")), MustParam(Enum("enum", "one", "two")))

	got, err := p.Generate(map[string]string{"alpha": "test", "enum": "one", "unused": "x"})
	require.NoError(t, err)
	assert.Equal(t, "/bar/multi/test/one", got)
}

func TestPath_GenerateStatic(t *testing.T) {
	t.Parallel()

	got, err := MustPath("/foo").Generate(nil)
	require.NoError(t, err)
	assert.Equal(t, "/foo", got)
}

func TestPath_GenerateMissing(t *testing.T) {
	t.Parallel()

	p := MustPath("/bar/num/{id}", MustParam(Numeric("id")))

	_, err := p.Generate(map[string]string{"test": "test"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParameter)

	var missing *MissingParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "id", missing.Param)
	assert.Equal(t, "/bar/num/{id}", missing.Pattern)
	assert.Equal(t, `missing required parameter "id" for path /bar/num/{id}`, missing.Error())
	assert.Equal(t, http.StatusInternalServerError, missing.HTTPStatus())
	assert.Equal(t, "missing_route_parameter", missing.Code())
	assert.Equal(t, map[string]string{"param": "id", "pattern": "/bar/num/{id}"}, missing.Details())
}

func TestPath_GenerateDoesNotValidate(t *testing.T) {
	t.Parallel()

	p := MustPath("/bar/num/{id}", MustParam(Numeric("id")))

	got, err := p.Generate(map[string]string{"id": "not/a/number"})
	require.NoError(t, err)
	assert.Equal(t, "/bar/num/not/a/number", got)

	_, ok := p.Match(got)
	assert.False(t, ok)
}

func TestPath_GenerateStrict(t *testing.T) {
	t.Parallel()

	p := MustPath("/bar/num/{id}", MustParam(Numeric("id")))

	got, err := p.GenerateStrict(map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/bar/num/7", got)

	_, err = p.GenerateStrict(map[string]string{"id": "abc"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	var invalid *InvalidParameterError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "id", invalid.Param)
	assert.Equal(t, "abc", invalid.Value)
	assert.Equal(t, KindNumeric, invalid.Kind)
	assert.Equal(t, "invalid_route_parameter", invalid.Code())

	_, err = p.GenerateStrict(nil)
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestPath_GenerateStrictAnchorsAlternation(t *testing.T) {
	t.Parallel()

	p := MustPath("/r/{code}", MustParam(Regex("code", "a|b")))

	_, err := p.GenerateStrict(map[string]string{"code": "ab"})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPath_RoundTrip(t *testing.T) {
	t.Parallel()

	p := MustPath("/shop/{category}/{id}/{state}",
		MustParam(AlphaNumericExtended("category")),
		MustParam(UUID("id")),
		MustParam(Enum("state", "new", "used")),
	)
	params := map[string]string{"category": "home-garden", "id": uuid.NewString(), "state": "used"}

	generated, err := p.Generate(params)
	require.NoError(t, err)

	matched, ok := p.Match(generated)
	require.True(t, ok)
	assert.Equal(t, params, matched)
}

func TestPath_ConcurrentUse(t *testing.T) {
	t.Parallel()

	p := MustPath("/bar/num/{id}", MustParam(Numeric("id")))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				values, ok := p.Match("/bar/num/12")
				if !ok || values["id"] != "12" {
					t.Error("unexpected match result")
					return
				}
				if _, err := p.Generate(values); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
