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

// Package accesslog writes one structured log entry per HTTP request.
//
// Entries carry the method, path, status, response size, duration, client
// address, user agent and, when the requestid middleware ran first, the
// request ID. 5xx responses are logged at error level, 4xx at warn, the
// rest at info. Requests slower than [WithSlowThreshold] are logged at
// warn at least.
//
// Basic usage:
//
//	handler := accesslog.New(
//	    accesslog.WithLogger(logger),
//	    accesslog.WithExcludePaths("/metrics"),
//	)(dispatcher)
package accesslog

import (
	"net"
	"net/http"
	"time"

	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/middleware"
	"github.com/szeber/yapep-base-sub003/middleware/requestid"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	logger        *logging.Logger
	excludePaths  map[string]struct{}
	slowThreshold time.Duration
}

// WithLogger sets the logger entries are written to.
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExcludePaths skips logging for exact request paths.
func WithExcludePaths(paths ...string) Option {
	return func(c *config) {
		for _, p := range paths {
			c.excludePaths[p] = struct{}{}
		}
	}
}

// WithSlowThreshold logs requests taking longer than d at warn level with
// "slow" set.
func WithSlowThreshold(d time.Duration) Option {
	return func(c *config) {
		c.slowThreshold = d
	}
}

// New returns the middleware.
func New(opts ...Option) middleware.Middleware {
	cfg := &config{
		logger:       logging.Discard(),
		excludePaths: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := cfg.excludePaths[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := middleware.NewResponseWriter(w)
			next.ServeHTTP(rw, r)
			cfg.log(r, rw, time.Since(start))
		})
	}
}

func (c *config) log(r *http.Request, rw *middleware.ResponseWriter, elapsed time.Duration) {
	status := rw.StatusCode()
	args := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"bytes", rw.Size(),
		"duration_ms", elapsed.Milliseconds(),
		"client_ip", clientIP(r.RemoteAddr),
		"user_agent", r.UserAgent(),
	}
	if id := requestid.Get(r.Context()); id != "" {
		args = append(args, "request_id", id)
	}

	slow := c.slowThreshold > 0 && elapsed > c.slowThreshold
	if slow {
		args = append(args, "slow", true)
	}

	cl := logging.NewContextLogger(r.Context(), c.logger)
	switch {
	case status >= http.StatusInternalServerError:
		cl.Error("request", args...)
	case status >= http.StatusBadRequest || slow:
		cl.Warn("request", args...)
	default:
		cl.Info("request", args...)
	}
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}

	return host
}
