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
	"regexp"
	"slices"
	"strings"
)

// placeholderName is the accepted syntax for the text between braces.
var placeholderName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Segment is a piece of a path template: either literal text or a placeholder.
type Segment struct {
	Static bool   // true if literal text, false if placeholder
	Value  string // literal text or placeholder name
}

// Path is one concrete URL template, such as "/bar/num/{id}", together with
// the typed parameters bound to its placeholders.
//
// The matcher is compiled when the path is created, so a Path is immutable
// and safe for concurrent use without locking.
type Path struct {
	pattern    string
	params     []Param
	segments   []Segment
	re         *regexp.Regexp
	validators map[string]*regexp.Regexp // anchored per-parameter matchers for strict generation
}

// NewPath parses and compiles a path template.
//
// Every {name} placeholder must have exactly one parameter with the same name
// and every parameter must be used by a placeholder. Literal text is matched
// verbatim and case-sensitively; "/foo" and "/foo/" are different templates.
//
// Example:
//
//	p, err := route.NewPath("/bar/num/{id}", route.MustParam(route.Numeric("id")))
func NewPath(pattern string, params ...Param) (*Path, error) {
	segments, err := ParseSegments(pattern)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Param, len(params))
	for _, p := range params {
		if p.name == "" {
			return nil, invalidArgument("param", "", "name must not be empty")
		}
		if _, dup := byName[p.name]; dup {
			return nil, invalidArgument("param", p.name, fmt.Sprintf("declared more than once for path %s", pattern))
		}
		byName[p.name] = p
	}

	var expr strings.Builder
	expr.WriteByte('^')
	used := make(map[string]struct{}, len(params))
	for _, seg := range segments {
		if seg.Static {
			expr.WriteString(regexp.QuoteMeta(seg.Value))
			continue
		}
		p, ok := byName[seg.Value]
		if !ok {
			return nil, invalidArgument("placeholder", seg.Value, fmt.Sprintf("no parameter declared for it in path %s", pattern))
		}
		used[seg.Value] = struct{}{}
		expr.WriteString("(?P<")
		expr.WriteString(seg.Value)
		expr.WriteByte('>')
		expr.WriteString(p.pattern)
		expr.WriteByte(')')
	}
	expr.WriteByte('$')

	for _, p := range params {
		if _, ok := used[p.name]; !ok {
			return nil, invalidArgument("param", p.name, fmt.Sprintf("not used by any placeholder in path %s", pattern))
		}
	}

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, invalidArgument("pattern", pattern, err.Error())
	}

	validators := make(map[string]*regexp.Regexp, len(params))
	for _, p := range params {
		v, err := regexp.Compile("^(?:" + p.pattern + ")$")
		if err != nil {
			return nil, invalidArgument("param", p.name, err.Error())
		}
		validators[p.name] = v
	}

	return &Path{
		pattern:    pattern,
		params:     slices.Clone(params),
		segments:   segments,
		re:         re,
		validators: validators,
	}, nil
}

// MustPath is like [NewPath] but panics on error.
func MustPath(pattern string, params ...Param) *Path {
	p, err := NewPath(pattern, params...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseSegments splits a template into literal and placeholder segments.
// Example: "/users/{id}/posts" -> [{static:"/users/"}, {param:"id"}, {static:"/posts"}]
//
// Unbalanced braces, invalid placeholder names, placeholders used twice and
// placeholders with no literal text between them are rejected with
// [ErrInvalidArgument].
func ParseSegments(pattern string) ([]Segment, error) {
	segments := make([]Segment, 0, 4)
	seen := make(map[string]struct{})

	rest := pattern
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if closeBrace := strings.IndexByte(rest, '}'); closeBrace >= 0 && (open < 0 || closeBrace < open) {
			return nil, invalidArgument("pattern", pattern, "unbalanced '}'")
		}
		if open < 0 {
			segments = append(segments, Segment{Static: true, Value: rest})
			break
		}
		if open > 0 {
			segments = append(segments, Segment{Static: true, Value: rest[:open]})
		} else if n := len(segments); n > 0 && !segments[n-1].Static {
			return nil, invalidArgument("pattern", pattern, "placeholders must be separated by literal text")
		}

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return nil, invalidArgument("pattern", pattern, "unbalanced '{'")
		}
		name := rest[open+1 : open+end]
		if !placeholderName.MatchString(name) {
			return nil, invalidArgument("placeholder", name, fmt.Sprintf("invalid placeholder name in path %s", pattern))
		}
		if _, dup := seen[name]; dup {
			return nil, invalidArgument("placeholder", name, fmt.Sprintf("used more than once in path %s", pattern))
		}
		seen[name] = struct{}{}
		segments = append(segments, Segment{Static: false, Value: name})

		rest = rest[open+end+1:]
	}

	return segments, nil
}

// Pattern returns the path template.
func (p *Path) Pattern() string {
	return p.pattern
}

// String returns the path template.
func (p *Path) String() string {
	return p.pattern
}

// Params returns a copy of the parameters bound to this path.
func (p *Path) Params() []Param {
	return slices.Clone(p.params)
}

// ParamNames returns the placeholder names in template order.
func (p *Path) ParamNames() []string {
	names := make([]string, 0, len(p.params))
	for _, seg := range p.segments {
		if !seg.Static {
			names = append(names, seg.Value)
		}
	}
	return names
}

// Segments returns a copy of the parsed template.
func (p *Path) Segments() []Segment {
	return slices.Clone(p.segments)
}

// Regexp returns the compiled matcher. It must not be modified.
func (p *Path) Regexp() *regexp.Regexp {
	return p.re
}

// IsStatic reports whether the template has no placeholders.
func (p *Path) IsStatic() bool {
	return len(p.params) == 0
}

// Match tests candidate against the compiled template. On success it returns
// the captured values keyed by placeholder name; the map is empty, not nil,
// for templates without placeholders. A non-matching candidate is not an error.
func (p *Path) Match(candidate string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(candidate)
	if m == nil {
		return nil, false
	}

	values := make(map[string]string, len(p.params))
	for i, name := range p.re.SubexpNames() {
		if name != "" {
			values[name] = m[i]
		}
	}
	return values, true
}

// Generate fills the placeholders with values from params and returns the
// resulting path. Keys without a placeholder are ignored.
//
// Values are written verbatim: they are neither escaped nor checked against
// the parameter type, so a value the matcher would reject produces a path
// that does not route back. Use [Path.GenerateStrict] to check values.
//
// Errors:
//   - [*MissingParameterError] if a placeholder has no value in params
func (p *Path) Generate(params map[string]string) (string, error) {
	return p.build(params, false)
}

// GenerateStrict is like [Path.Generate] but also requires every value to
// fully match its parameter type.
//
// Errors:
//   - [*MissingParameterError] if a placeholder has no value in params
//   - [*InvalidParameterError] if a value does not match its parameter type
func (p *Path) GenerateStrict(params map[string]string) (string, error) {
	return p.build(params, true)
}

func (p *Path) build(params map[string]string, strict bool) (string, error) {
	if p.IsStatic() {
		return p.pattern, nil
	}

	var buf strings.Builder
	buf.Grow(len(p.pattern))

	for _, seg := range p.segments {
		if seg.Static {
			buf.WriteString(seg.Value)
			continue
		}
		val, ok := params[seg.Value]
		if !ok {
			return "", &MissingParameterError{Param: seg.Value, Pattern: p.pattern}
		}
		if strict && !p.validators[seg.Value].MatchString(val) {
			return "", &InvalidParameterError{
				Param:   seg.Value,
				Value:   val,
				Kind:    p.param(seg.Value).kind,
				Pattern: p.pattern,
			}
		}
		buf.WriteString(val)
	}

	return buf.String(), nil
}

// param returns the parameter bound to name. name must be a placeholder of p.
func (p *Path) param(name string) Param {
	for _, prm := range p.params {
		if prm.name == name {
			return prm
		}
	}
	return Param{}
}
