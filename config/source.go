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

package config

import (
	"context"
	"fmt"
)

// Source loads configuration data. Load must be safe to call concurrently.
type Source interface {
	Load(ctx context.Context) (map[string]any, error)
}

// NamedSource is a Source that can describe itself in error messages.
// All sources in the source package implement it.
type NamedSource interface {
	Source
	Name() string
}

// SourceName returns the name of a [NamedSource], or "source[i]".
func SourceName(i int, src Source) string {
	if named, ok := src.(NamedSource); ok {
		if name := named.Name(); name != "" {
			return name
		}
	}

	return fmt.Sprintf("source[%d]", i)
}
