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
	"io"
	"time"

	"github.com/szeber/yapep-base-sub003/config/source"
	apperrors "github.com/szeber/yapep-base-sub003/errors"
	"github.com/szeber/yapep-base-sub003/logging"
)

// EnvPrefix is the default prefix of environment overrides.
const EnvPrefix = "YAPEP_"

// Settings configures the yapep-routes command and the dispatch server.
type Settings struct {
	// RoutesFiles lists route documents, loaded in order.
	RoutesFiles []string `config:"routes_files" validate:"dive,required"`

	ListenAddr        string        `config:"listen_addr" validate:"required"`
	ReadHeaderTimeout time.Duration `config:"read_header_timeout" validate:"gte=0s"`

	Log    LogSettings   `config:"log"`
	Errors ErrorSettings `config:"errors"`

	// Strict makes reverse lookups validate parameter values.
	Strict bool `config:"strict"`

	Metrics     MetricsSettings     `config:"metrics"`
	Tracing     TracingSettings     `config:"tracing"`
	Compression CompressionSettings `config:"compression"`
}

// LogSettings selects the logger level and handler.
type LogSettings struct {
	Level  string `config:"level"`
	Format string `config:"format"`
}

// ErrorSettings selects how the dispatch layer renders failures.
type ErrorSettings struct {
	Format  string `config:"format"`
	BaseURL string `config:"base_url"`
}

// CompressionSettings controls response compression in the dispatch server.
type CompressionSettings struct {
	Enabled bool `config:"enabled"`
	// MinSize is the smallest body, in bytes, that gets compressed.
	MinSize int `config:"min_size" validate:"gte=0"`
}

// Defaults returns the built-in settings layer.
func Defaults() map[string]any {
	return map[string]any{
		"listen_addr":         ":8080",
		"read_header_timeout": "5s",
		"log": map[string]any{
			"level":  "info",
			"format": "json",
		},
		"errors": map[string]any{
			"format": apperrors.FormatSimple,
		},
		"metrics": map[string]any{
			"provider":  "prometheus",
			"namespace": "yapep",
		},
		"tracing": map[string]any{
			"provider":    "noop",
			"sample_rate": 1.0,
			"insecure":    true,
		},
		"compression": map[string]any{
			"enabled":  true,
			"min_size": 1024,
		},
	}
}

// Load builds Settings from, in increasing precedence: [Defaults], the
// configured files and sources in option order, environment variables
// with the [EnvPrefix] prefix, and [WithOverrides]. The result is
// validated before it is returned.
//
// Errors:
//   - [*Error] for option, load, merge, decode and validation failures
func Load(ctx context.Context, opts ...Option) (*Settings, error) {
	l := &loader{envPrefix: EnvPrefix, overrides: make(map[string]any)}

	var errs error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		errs = errors.Join(errs, opt(l))
	}
	if errs != nil {
		return nil, errs
	}

	sources := append([]Source{source.NewMap("defaults", Defaults())}, l.sources...)
	if l.envPrefix != "" {
		sources = append(sources, source.NewOSEnvVar(l.envPrefix))
	}
	if len(l.overrides) > 0 {
		sources = append(sources, source.NewMap("overrides", l.overrides))
	}

	values, err := Merge(ctx, sources...)
	if err != nil {
		return nil, err
	}

	s := &Settings{}
	if err = Decode(values, s); err != nil {
		return nil, NewError("settings", "decode", err)
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks every field and joins all failures. Struct tags cover
// the shape of each value; level, handler and error format names are
// checked by the packages that parse them.
func (s *Settings) Validate() error {
	errs := []error{ValidateStruct("settings", s)}
	fail := func(field string, err error) {
		errs = append(errs, NewFieldError("settings", field, "validate", err))
	}

	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		fail("log.level", err)
	}
	if _, err := logging.ParseHandlerType(s.Log.Format); err != nil {
		fail("log.format", err)
	}
	if _, err := apperrors.ForFormat(s.Errors.Format, s.Errors.BaseURL); err != nil {
		fail("errors.format", err)
	}

	return errors.Join(errs...)
}

// NewLogger builds the logger described by s.Log writing to out.
func (s *Settings) NewLogger(out io.Writer, opts ...logging.Option) (*logging.Logger, error) {
	level, err := logging.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, NewFieldError("settings", "log.level", "validate", err)
	}
	handler, err := logging.ParseHandlerType(s.Log.Format)
	if err != nil {
		return nil, NewFieldError("settings", "log.format", "validate", err)
	}

	base := []logging.Option{
		logging.WithOutput(out),
		logging.WithLevel(level),
		logging.WithHandlerType(handler),
	}

	return logging.New(append(base, opts...)...)
}

// ErrorFormatter builds the formatter described by s.Errors.
func (s *Settings) ErrorFormatter() (apperrors.Formatter, error) {
	f, err := apperrors.ForFormat(s.Errors.Format, s.Errors.BaseURL)
	if err != nil {
		return nil, NewFieldError("settings", "errors.format", "validate", err)
	}

	return f, nil
}
