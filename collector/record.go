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

package collector

import (
	"errors"
	"fmt"

	"dario.cat/mergo"

	"github.com/szeber/yapep-base-sub003/config"
	"github.com/szeber/yapep-base-sub003/router/route"
)

// Record is one route as declared in a route document, after defaults
// are applied.
type Record struct {
	Name       string       `config:"name" json:"name" validate:"required"`
	Controller string       `config:"controller" json:"controller" validate:"required"`
	Action     string       `config:"action" json:"action" validate:"required"`
	Methods    []string     `config:"methods" json:"methods,omitempty" validate:"dive,required"`
	Paths      []PathRecord `config:"paths" json:"paths" validate:"min=1,dive"`

	// Source names the document the record came from.
	Source string `config:"-" json:"-"`
}

// PathRecord declares one path template of a route.
type PathRecord struct {
	PathPattern string        `config:"pathPattern" json:"pathPattern" validate:"required"`
	Params      []ParamRecord `config:"params" json:"params,omitempty" validate:"dive"`
}

// ParamRecord declares the parameter bound to one placeholder. The kind is
// taken from Type, or from ParamClass when Type is empty.
type ParamRecord struct {
	Name       string   `config:"name" json:"name" validate:"required"`
	Type       string   `config:"type" json:"type,omitempty" validate:"required_without=ParamClass"`
	ParamClass string   `config:"paramClass" json:"paramClass,omitempty"`
	Pattern    string   `config:"pattern" json:"pattern,omitempty"`
	Values     []string `config:"values" json:"values,omitempty"`
}

// Kind resolves the parameter kind.
func (p ParamRecord) Kind() (route.Kind, error) {
	switch {
	case p.Type != "" && p.ParamClass != "":
		kt, err := route.ParseKind(p.Type)
		if err != nil {
			return 0, err
		}
		kc, err := route.ParseKind(p.ParamClass)
		if err != nil {
			return 0, err
		}
		if kt != kc {
			return 0, fmt.Errorf("%w: param %q: type %q and paramClass %q disagree",
				route.ErrInvalidArgument, p.Name, p.Type, p.ParamClass)
		}
		return kt, nil
	case p.Type != "":
		return route.ParseKind(p.Type)
	default:
		return route.ParseKind(p.ParamClass)
	}
}

// Param builds the route parameter.
func (p ParamRecord) Param() (route.Param, error) {
	kind, err := p.Kind()
	if err != nil {
		return route.Param{}, err
	}

	return route.NewParam(kind, p.Name, p.Pattern, p.Values)
}

// Path compiles the path template.
func (p PathRecord) Path() (*route.Path, error) {
	params := make([]route.Param, 0, len(p.Params))
	for _, pr := range p.Params {
		param, err := pr.Param()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}

	return route.NewPath(p.PathPattern, params...)
}

// Validate checks that every required field of the record is set. The
// error wraps [route.ErrInvalidArgument] and joins one [*config.Error] per
// failing field, named by its document key, e.g. "paths[0].pathPattern".
func (r Record) Validate() error {
	if err := config.ValidateStruct("route", r); err != nil {
		return fmt.Errorf("%w: %w", route.ErrInvalidArgument, err)
	}

	return nil
}

// Route validates the record and builds the immutable route.
func (r Record) Route() (*route.Route, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	paths := make([]*route.Path, 0, len(r.Paths))
	for _, pr := range r.Paths {
		p, err := pr.Path()
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	return route.New(r.Name, r.Controller, r.Action, r.Methods, paths...)
}

// Build compiles records in order. Every failing record is reported; the
// returned error joins one [*Error] per record.
func Build(records []Record) ([]*route.Route, error) {
	routes := make([]*route.Route, 0, len(records))
	var errs []error
	for _, rec := range records {
		rt, err := rec.Route()
		if err != nil {
			errs = append(errs, &Error{Source: rec.Source, Route: rec.Name, Operation: "build", Err: err})
			continue
		}
		routes = append(routes, rt)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return routes, nil
}

// decodeRecords turns a validated document into records. Defaults fill
// fields the route leaves unset; a path given as a plain string is a
// template without parameters.
func decodeRecords(doc map[string]any, sourceName string) ([]Record, error) {
	defaults, _ := doc["defaults"].(map[string]any)
	routes, _ := doc["routes"].([]any)

	records := make([]Record, 0, len(routes))
	for i, raw := range routes {
		fields, ok := raw.(map[string]any)
		if !ok {
			return nil, &Error{Source: sourceName, Operation: "decode", Err: fmt.Errorf("routes[%d] is not an object", i)}
		}
		name, _ := fields["name"].(string)

		merged := make(map[string]any, len(fields)+len(defaults))
		for k, v := range fields {
			merged[k] = v
		}
		if len(defaults) > 0 {
			if err := mergo.Map(&merged, defaults); err != nil {
				return nil, &Error{Source: sourceName, Route: name, Operation: "decode", Err: err}
			}
		}
		merged["paths"] = expandPaths(merged["paths"])

		rec := Record{Source: sourceName}
		if err := config.Decode(merged, &rec); err != nil {
			return nil, &Error{Source: sourceName, Route: name, Operation: "decode", Err: err}
		}
		records = append(records, rec)
	}

	return records, nil
}

func expandPaths(v any) any {
	paths, ok := v.([]any)
	if !ok {
		return v
	}

	out := make([]any, len(paths))
	for i, p := range paths {
		if pattern, isString := p.(string); isString {
			out[i] = map[string]any{"pathPattern": pattern}
			continue
		}
		out[i] = p
	}

	return out
}
