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
	"errors"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"

	"github.com/szeber/yapep-base-sub003/config/codec"
	"github.com/szeber/yapep-base-sub003/config/source"
)

// TagName is the struct tag read by [Decode].
const TagName = "config"

// Option configures [Load].
type Option func(l *loader) error

type loader struct {
	sources   []Source
	envPrefix string
	overrides map[string]any
}

// WithFile loads a settings file, detecting the format from its extension.
// ${VAR} references in the path are expanded.
func WithFile(path string) Option {
	return func(l *loader) error {
		t, err := codec.TypeForPath(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}
		return WithFileAs(path, t)(l)
	}
}

// WithFileAs loads a settings file with an explicit format.
func WithFileAs(path string, codecType codec.Type) Option {
	return func(l *loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}
		l.sources = append(l.sources, source.NewFile(path, decoder))
		return nil
	}
}

// WithContent loads settings from data in the given format.
func WithContent(data []byte, codecType codec.Type) Option {
	return func(l *loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		l.sources = append(l.sources, source.NewFileContent(data, decoder))
		return nil
	}
}

// WithSource adds a custom source after the ones already configured.
func WithSource(src Source) Option {
	return func(l *loader) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithEnvPrefix changes the environment variable prefix (default
// [EnvPrefix]). An empty prefix disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(l *loader) error {
		l.envPrefix = prefix
		return nil
	}
}

// WithOverrides sets values applied after every other layer, such as
// command line flags. Keys use dotted paths: "log.level".
func WithOverrides(values map[string]any) Option {
	return func(l *loader) error {
		for key, v := range values {
			setPath(l.overrides, key, v)
		}
		return nil
	}
}

func setPath(m map[string]any, key string, v any) {
	parts := strings.Split(strings.ToLower(key), ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

// Merge loads every source in order and merges the results, later sources
// overriding earlier ones. Keys are lowercased so merging is
// case-insensitive.
func Merge(ctx context.Context, sources ...Source) (map[string]any, error) {
	merged := make(map[string]any)
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(SourceName(i, src), "load", err)
		}
		if err = mergo.Map(&merged, normalizeMapKeys(conf), mergo.WithOverride); err != nil {
			return nil, NewError(SourceName(i, src), "merge", err)
		}
	}

	return merged, nil
}

func normalizeMapKeys(m map[string]any) map[string]any {
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeMapKeys(nested)
		}
		normalized[strings.ToLower(k)] = v
	}

	return normalized
}

// Decode binds values to the struct pointed to by target using the
// "config" tag. Input is weakly typed: "true" binds to a bool, "5s" to a
// time.Duration and "a,b" to a []string.
func Decode(values map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	return nil
}
