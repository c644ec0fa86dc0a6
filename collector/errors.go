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
)

// ErrNoMatches is returned when a [WithGlob] pattern matches no file.
var ErrNoMatches = errors.New("pattern matches no files")

// Error reports a failure to load a route document or to build a route
// from it.
type Error struct {
	Source    string // file path, "content" or "source[i]"
	Route     string // route name, when the failure belongs to one route
	Operation string // "load", "normalize", "validate", "decode" or "build"
	Err       error
}

func (e *Error) Error() string {
	if e.Route != "" {
		return fmt.Sprintf("collector: %s: route %q: %s: %v", e.Source, e.Route, e.Operation, e.Err)
	}

	return fmt.Sprintf("collector: %s: %s: %v", e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
