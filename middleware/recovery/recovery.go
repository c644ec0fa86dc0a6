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

// Package recovery turns panics in HTTP handlers into error responses so a
// failing controller action does not take the server down.
//
// The panic is logged with the request and, by default, a stack trace. The
// response goes through an [errors.Formatter]; the default hides the panic
// value from clients.
//
// Basic usage:
//
//	handler := recovery.New(recovery.WithLogger(logger))(dispatcher)
//
// [http.ErrAbortHandler] is re-panicked so net/http can abort the
// connection as usual.
package recovery

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"

	apperrors "github.com/szeber/yapep-base-sub003/errors"
	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/middleware"
	"github.com/szeber/yapep-base-sub003/middleware/requestid"
)

// ErrPanic is wrapped by the error handed to the formatter.
var ErrPanic = errors.New("handler panicked")

const defaultStackSize = 4 << 10

// Option configures the middleware.
type Option func(*config)

type config struct {
	logger     *logging.Logger
	formatter  apperrors.Formatter
	handler    func(w http.ResponseWriter, r *http.Request, recovered any)
	stackTrace bool
	stackSize  int
}

func defaultConfig() *config {
	return &config{
		logger:     logging.Discard(),
		formatter:  &apperrors.Simple{HideServerErrors: true},
		stackTrace: true,
		stackSize:  defaultStackSize,
	}
}

// WithLogger sets the logger panics are reported to.
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithoutLogging disables panic logging.
func WithoutLogging() Option {
	return func(c *config) {
		c.logger = logging.Discard()
	}
}

// WithFormatter sets the formatter used for the 500 response.
func WithFormatter(f apperrors.Formatter) Option {
	return func(c *config) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithHandler replaces the response writing entirely.
//
// Example:
//
//	recovery.New(recovery.WithHandler(func(w http.ResponseWriter, r *http.Request, v any) {
//	    http.Error(w, "oops", http.StatusInternalServerError)
//	}))
func WithHandler(fn func(w http.ResponseWriter, r *http.Request, recovered any)) Option {
	return func(c *config) {
		c.handler = fn
	}
}

// WithStackTrace enables or disables stack capture. Default: true.
func WithStackTrace(enabled bool) Option {
	return func(c *config) {
		c.stackTrace = enabled
	}
}

// WithStackSize sets the maximum stack trace size in bytes. Default: 4KB.
func WithStackSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.stackSize = size
		}
	}
}

// New returns the middleware.
func New(opts ...Option) middleware.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := middleware.NewResponseWriter(w)
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
					panic(recovered)
				}
				cfg.recover(rw, r, recovered)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

func (c *config) recover(w *middleware.ResponseWriter, r *http.Request, recovered any) {
	args := []any{
		"panic", fmt.Sprint(recovered),
		"method", r.Method,
		"path", r.URL.Path,
	}
	if id := requestid.Get(r.Context()); id != "" {
		args = append(args, "request_id", id)
	}
	if c.stackTrace {
		buf := make([]byte, c.stackSize)
		args = append(args, "stack", string(buf[:runtime.Stack(buf, false)]))
	}
	logging.NewContextLogger(r.Context(), c.logger).Error("panic recovered", args...)

	if w.Written() {
		return
	}
	if c.handler != nil {
		c.handler(w, r, recovered)
		return
	}

	resp := c.formatter.Format(r, apperrors.WithStatus(fmt.Errorf("%w: %v", ErrPanic, recovered), http.StatusInternalServerError))
	if err := apperrors.Write(w, resp); err != nil {
		c.logger.LogError(err, "failed to write panic response")
	}
}
