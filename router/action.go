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

	"github.com/spf13/cast"
)

// ControllerAction is the result of a forward lookup.
type ControllerAction struct {
	Controller string
	Action     string
	Route      string            // Name of the matched route
	Params     map[string]string // Captured values, empty for static paths
}

// String returns "Controller#action".
func (ca ControllerAction) String() string {
	return ca.Controller + "#" + ca.Action
}

// Param returns the captured value for name, or "" if there is none.
func (ca ControllerAction) Param(name string) string {
	return ca.Params[name]
}

// ParamsFrom converts loosely typed values into the string map the reverse
// lookups take, so callers holding {"id": 1} need not format values
// themselves. Values are converted with [cast.ToStringE]; nil values are
// rejected.
//
// Example:
//
//	params, err := router.ParamsFrom(map[string]any{"id": 42, "enum": "one"})
//	path, err := r.PathByName("bar", params)
func ParamsFrom(values map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if v == nil {
			return nil, fmt.Errorf("parameter %q: %w", k, ErrInvalidParameter)
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w: %w", k, ErrInvalidParameter, err)
		}
		out[k] = s
	}
	return out, nil
}
