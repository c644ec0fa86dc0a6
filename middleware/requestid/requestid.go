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

// Package requestid assigns every request an ID, stores it in the request
// context and echoes it in a response header.
//
// IDs are UUID v7 by default, which sort by creation time. [WithULID]
// switches to the shorter 26-character ULID.
//
// Basic usage:
//
//	handler := requestid.New()(dispatcher)
//
// Reading the ID downstream:
//
//	id := requestid.Get(r.Context())
package requestid

import (
	"context"
	"crypto/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/szeber/yapep-base-sub003/middleware"
)

// DefaultHeader is the header read and written by default.
const DefaultHeader = "X-Request-ID"

// maxClientIDLength bounds the length of an accepted client-supplied ID.
const maxClientIDLength = 128

type contextKey struct{}

// Option configures the middleware.
type Option func(*config)

type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		headerName:    DefaultHeader,
		generator:     generateUUIDv7,
		allowClientID: true,
	}
}

func generateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

var (
	ulidEntropy     = ulid.Monotonic(rand.Reader, 0)
	ulidEntropyLock sync.Mutex
)

func generateULID() string {
	ulidEntropyLock.Lock()
	defer ulidEntropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// WithHeader sets the header name.
func WithHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.headerName = name
		}
	}
}

// WithULID generates ULIDs instead of UUID v7.
func WithULID() Option {
	return func(c *config) {
		c.generator = generateULID
	}
}

// WithGenerator sets a custom ID generator.
func WithGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generator = fn
		}
	}
}

// WithAllowClientID controls whether an ID sent by the client is kept.
// Default: true. Client IDs longer than 128 bytes are replaced.
func WithAllowClientID(allow bool) Option {
	return func(c *config) {
		c.allowClientID = allow
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
			var id string
			if cfg.allowClientID {
				if v := r.Header.Get(cfg.headerName); len(v) <= maxClientIDLength {
					id = v
				}
			}
			if id == "" {
				id = cfg.generator()
			}

			w.Header().Set(cfg.headerName, id)
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Get returns the request ID stored in ctx, or "".
func Get(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
