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
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/szeber/yapep-base-sub003/config"
	"github.com/szeber/yapep-base-sub003/config/codec"
	"github.com/szeber/yapep-base-sub003/config/source"
	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/router"
	"github.com/szeber/yapep-base-sub003/router/route"
)

// Option configures a [Collector].
type Option func(c *Collector) error

// Collector loads route documents and builds routes from them. Sources are
// read in the order they were added and routes keep document order, so
// the first source declares the routes tried first.
type Collector struct {
	sources    []config.Source
	logger     *logging.Logger
	routerOpts []router.Option
}

// New creates a Collector. Option errors are joined.
func New(opts ...Option) (*Collector, error) {
	c := &Collector{logger: logging.Discard()}

	var errs error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		errs = errors.Join(errs, opt(c))
	}
	if errs != nil {
		return nil, errs
	}

	return c, nil
}

// WithFile adds a route document, detecting the format from its extension.
func WithFile(path string) Option {
	return func(c *Collector) error {
		decoder, err := codec.DecoderForPath(path)
		if err != nil {
			return &Error{Source: path, Operation: "load", Err: err}
		}
		c.sources = append(c.sources, source.NewFile(path, decoder))
		return nil
	}
}

// WithFileAs adds a route document with an explicit format.
func WithFileAs(path string, codecType codec.Type) Option {
	return func(c *Collector) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return &Error{Source: path, Operation: "load", Err: err}
		}
		c.sources = append(c.sources, source.NewFile(path, decoder))
		return nil
	}
}

// WithFiles adds several route documents in order.
func WithFiles(paths ...string) Option {
	return func(c *Collector) error {
		var errs error
		for _, p := range paths {
			errs = errors.Join(errs, WithFile(p)(c))
		}
		return errs
	}
}

// WithGlob adds every document matching pattern, in lexical order.
// A pattern matching nothing fails with [ErrNoMatches].
func WithGlob(pattern string) Option {
	return func(c *Collector) error {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return &Error{Source: pattern, Operation: "load", Err: err}
		}
		if len(matches) == 0 {
			return &Error{Source: pattern, Operation: "load", Err: ErrNoMatches}
		}
		return WithFiles(matches...)(c)
	}
}

// WithContent adds an in-memory route document.
func WithContent(data []byte, codecType codec.Type) Option {
	return func(c *Collector) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return &Error{Source: "content", Operation: "load", Err: err}
		}
		c.sources = append(c.sources, source.NewFileContent(data, decoder))
		return nil
	}
}

// WithSource adds a custom document source.
func WithSource(src config.Source) Option {
	return func(c *Collector) error {
		if src == nil {
			return errors.New("collector: source cannot be nil")
		}
		c.sources = append(c.sources, src)
		return nil
	}
}

// WithLogger logs loaded documents at debug level.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Collector) error {
		if logger == nil {
			return logging.ErrNilLogger
		}
		c.logger = logger
		return nil
	}
}

// WithRouterOptions sets the options [LoadRouter] passes to [router.New].
func WithRouterOptions(opts ...router.Option) Option {
	return func(c *Collector) error {
		c.routerOpts = append(c.routerOpts, opts...)
		return nil
	}
}

// Records loads, validates and decodes every document.
//
// Errors:
//   - [*Error] naming the source and the failed operation
func (c *Collector) Records(ctx context.Context) ([]Record, error) {
	var records []Record
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := config.SourceName(i, src)
		recs, err := loadDocument(ctx, src, name)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("route document loaded", "source", name, "routes", len(recs))
		records = append(records, recs...)
	}

	return records, nil
}

func loadDocument(ctx context.Context, src config.Source, name string) ([]Record, error) {
	doc, err := src.Load(ctx)
	if err != nil {
		return nil, &Error{Source: name, Operation: "load", Err: err}
	}

	normalized, err := normalize(doc)
	if err != nil {
		return nil, &Error{Source: name, Operation: "normalize", Err: err}
	}
	if err = validate(normalized); err != nil {
		return nil, &Error{Source: name, Operation: "validate", Err: err}
	}

	m, ok := normalized.(map[string]any)
	if !ok {
		return nil, &Error{Source: name, Operation: "decode", Err: fmt.Errorf("document is a %T, not an object", normalized)}
	}

	return decodeRecords(m, name)
}

// Collect loads every document and builds the routes.
func (c *Collector) Collect(ctx context.Context) ([]*route.Route, error) {
	start := time.Now()

	records, err := c.Records(ctx)
	if err != nil {
		return nil, err
	}
	routes, err := Build(records)
	if err != nil {
		return nil, err
	}
	c.logger.LogDuration("routes collected", start, "sources", len(c.sources), "routes", len(routes))

	return routes, nil
}

// Router collects the routes and builds a router with the options from
// [WithRouterOptions]. Router diagnostics go to the collector's logger
// unless those options install their own handler.
func (c *Collector) Router(ctx context.Context) (*router.Router, error) {
	routes, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}

	opts := append([]router.Option{router.WithDiagnostics(LogDiagnostics(c.logger))}, c.routerOpts...)

	return router.New(routes, opts...)
}

// LogDiagnostics returns a [router.DiagnosticHandler] writing events to
// logger. Registrations are logged at debug level, anomalies at warn.
func LogDiagnostics(logger *logging.Logger) router.DiagnosticHandler {
	return router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
		args := make([]any, 0, 2+2*len(e.Fields))
		args = append(args, "kind", string(e.Kind))
		for k, v := range e.Fields {
			args = append(args, k, v)
		}
		if e.Kind == router.DiagRouteRegistered {
			logger.Debug(e.Message, args...)
			return
		}
		logger.Warn(e.Message, args...)
	})
}

// LoadRouter is shorthand for [New] followed by [Collector.Router].
func LoadRouter(ctx context.Context, opts ...Option) (*router.Router, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return c.Router(ctx)
}
