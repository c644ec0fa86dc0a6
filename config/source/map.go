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

package source

import (
	"context"
	"maps"
)

// Map serves a fixed map, typically built-in defaults.
type Map struct {
	name   string
	values map[string]any
}

// NewMap creates a Map source. Load returns a fresh copy of values on every
// call, nested maps included.
func NewMap(name string, values map[string]any) *Map {
	return &Map{name: name, values: copyMap(values)}
}

// Name describes the source for error messages.
func (m *Map) Name() string {
	return m.name
}

// Load returns a copy of the map.
func (m *Map) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return copyMap(m.values), nil
}

func copyMap(in map[string]any) map[string]any {
	out := maps.Clone(in)
	if out == nil {
		return make(map[string]any)
	}
	for k, v := range out {
		if nested, ok := v.(map[string]any); ok {
			out[k] = copyMap(nested)
		}
	}

	return out
}
