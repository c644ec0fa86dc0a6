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
	"fmt"
	"os"
	"strings"

	"github.com/szeber/yapep-base-sub003/config/codec"
)

// OSEnvVar loads the environment variables that start with a prefix.
//
// With prefix "YAPEP_", YAPEP_LISTEN_ADDR becomes listen_addr and
// YAPEP_LOG__LEVEL becomes log.level.
type OSEnvVar struct {
	prefix  string
	decoder codec.Decoder
	environ func() []string
}

// NewOSEnvVar creates an OSEnvVar source with the specified prefix.
func NewOSEnvVar(prefix string) *OSEnvVar {
	return &OSEnvVar{prefix: prefix, decoder: codec.EnvVarCodec{}, environ: os.Environ}
}

// NewEnvList creates an OSEnvVar source over a fixed KEY=value list
// instead of the process environment.
func NewEnvList(prefix string, env []string) *OSEnvVar {
	env = append([]string(nil), env...)
	return &OSEnvVar{prefix: prefix, decoder: codec.EnvVarCodec{}, environ: func() []string { return env }}
}

// Name describes the source for error messages.
func (e *OSEnvVar) Name() string {
	return "env:" + e.prefix + "*"
}

// Load decodes the matching variables with the prefix stripped.
func (e *OSEnvVar) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lines []string
	for _, env := range e.environ() {
		if rest, ok := strings.CutPrefix(env, e.prefix); ok {
			lines = append(lines, rest)
		}
	}

	var conf map[string]any
	if err := e.decoder.Decode([]byte(strings.Join(lines, "\n")), &conf); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}

	return conf, nil
}
