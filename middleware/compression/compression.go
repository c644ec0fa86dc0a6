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

// Package compression encodes response bodies with Brotli or gzip, chosen
// from the request's Accept-Encoding header.
//
// Bodies are buffered until they reach the minimum size; shorter bodies are
// sent as they are. 204, 206 and 304 responses and event streams are never
// encoded.
//
// Basic usage:
//
//	handler := compression.New(compression.WithMinSize(1024))(dispatcher)
package compression

import (
	"compress/gzip"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"

	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/middleware"
)

const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	logger       *logging.Logger
	gzipLevel    int
	brotliLevel  int
	minSize      int
	enableBrotli bool
	excludePaths []string
}

func defaultConfig() *config {
	return &config{
		gzipLevel:    gzip.DefaultCompression,
		brotliLevel:  4,
		enableBrotli: true,
	}
}

// WithMinSize sets the smallest body, in bytes, that is encoded.
// Default: 0, every body is encoded.
func WithMinSize(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.minSize = n
		}
	}
}

// WithGzipLevel sets the gzip level (see [gzip.NewWriterLevel]).
func WithGzipLevel(level int) Option {
	return func(c *config) {
		if level >= gzip.HuffmanOnly && level <= gzip.BestCompression {
			c.gzipLevel = level
		}
	}
}

// WithBrotliLevel sets the Brotli level, 0 to 11. Default: 4.
func WithBrotliLevel(level int) Option {
	return func(c *config) {
		if level >= brotli.BestSpeed && level <= brotli.BestCompression {
			c.brotliLevel = level
		}
	}
}

// WithBrotliDisabled restricts encoding to gzip.
func WithBrotliDisabled() Option {
	return func(c *config) {
		c.enableBrotli = false
	}
}

// WithExcludePaths leaves responses for the given request paths alone.
func WithExcludePaths(paths ...string) Option {
	return func(c *config) {
		c.excludePaths = append(c.excludePaths, paths...)
	}
}

// WithLogger sets the logger used for finalization failures.
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New returns the middleware.
func New(opts ...Option) middleware.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	gzipPool := &sync.Pool{New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, cfg.gzipLevel)
		return w
	}}
	brotliPool := &sync.Pool{New: func() any {
		return brotli.NewWriterLevel(io.Discard, cfg.brotliLevel)
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(cfg.excludePaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			var pool *sync.Pool
			encoding := chooseEncoding(r.Header.Get("Accept-Encoding"), cfg.enableBrotli)
			switch encoding {
			case encodingBrotli:
				pool = brotliPool
			case encodingGzip:
				pool = gzipPool
			default:
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")
			cw := &compressWriter{
				ResponseWriter: w,
				encoding:       encoding,
				pool:           pool,
				threshold:      cfg.minSize,
				statusCode:     http.StatusOK,
			}
			next.ServeHTTP(cw, r)

			if err := cw.Close(); err != nil && cfg.logger != nil {
				cfg.logger.LogError(err, "compression finalization failed", "encoding", encoding)
			}
		})
	}
}

// compressWriter holds the body back until threshold bytes are buffered,
// then commits to encoding it or passing it through.
type compressWriter struct {
	http.ResponseWriter
	encoding  string
	pool      *sync.Pool
	threshold int

	statusCode  int
	headersSent bool
	decided     bool
	compress    bool
	buffer      []byte
	writer      io.WriteCloser
}

// WriteHeader records the status. Responses that are never encoded send
// their header immediately.
func (cw *compressWriter) WriteHeader(code int) {
	if cw.headersSent || cw.decided {
		return
	}
	cw.statusCode = code
	if skipStatus(code) || skipContentType(cw.Header().Get("Content-Type")) || cw.Header().Get("Content-Encoding") != "" {
		cw.decided = true
		cw.sendHeader()
	}
}

// Write buffers or encodes data.
func (cw *compressWriter) Write(data []byte) (int, error) {
	if !cw.decided {
		cw.buffer = append(cw.buffer, data...)
		if len(cw.buffer) < cw.threshold {
			return len(data), nil
		}
		if err := cw.start(true); err != nil {
			return 0, err
		}
		return len(data), nil
	}
	if cw.compress {
		return cw.writer.Write(data)
	}
	if !cw.headersSent {
		cw.sendHeader()
	}

	return cw.ResponseWriter.Write(data)
}

// start commits to a decision and flushes the buffered bytes.
func (cw *compressWriter) start(compress bool) error {
	cw.decided = true
	cw.compress = compress &&
		!skipContentType(cw.Header().Get("Content-Type")) &&
		cw.Header().Get("Content-Encoding") == ""

	if cw.compress {
		h := cw.Header()
		h.Del("Content-Length")
		h.Set("Content-Encoding", cw.encoding)

		switch cw.encoding {
		case encodingBrotli:
			bw := cw.pool.Get().(*brotli.Writer)
			bw.Reset(cw.ResponseWriter)
			cw.writer = bw
		case encodingGzip:
			gw := cw.pool.Get().(*gzip.Writer)
			gw.Reset(cw.ResponseWriter)
			cw.writer = gw
		}
	}
	cw.sendHeader()

	buf := cw.buffer
	cw.buffer = nil
	if len(buf) == 0 {
		return nil
	}
	if cw.compress {
		_, err := cw.writer.Write(buf)
		return err
	}
	_, err := cw.ResponseWriter.Write(buf)

	return err
}

func (cw *compressWriter) sendHeader() {
	if cw.headersSent {
		return
	}
	cw.headersSent = true
	cw.ResponseWriter.WriteHeader(cw.statusCode)
}

// Close flushes a body that never reached the threshold and finishes the
// encoder, returning it to its pool.
func (cw *compressWriter) Close() error {
	if !cw.decided {
		return cw.start(false)
	}
	if !cw.compress || cw.writer == nil {
		if !cw.headersSent {
			cw.sendHeader()
		}
		return nil
	}

	err := cw.writer.Close()
	switch w := cw.writer.(type) {
	case *brotli.Writer:
		w.Reset(io.Discard)
	case *gzip.Writer:
		w.Reset(io.Discard)
	}
	cw.pool.Put(cw.writer)
	cw.writer = nil

	return err
}

// Unwrap returns the wrapped writer for [http.ResponseController].
func (cw *compressWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

func skipStatus(code int) bool {
	return code == http.StatusNoContent ||
		code == http.StatusNotModified ||
		code == http.StatusPartialContent
}

func skipContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/event-stream") ||
		strings.Contains(ct, "application/grpc") ||
		strings.Contains(ct, "application/octet-stream")
}

// chooseEncoding prefers Brotli over gzip at equal quality. A q of 0 marks
// an encoding unacceptable.
func chooseEncoding(accept string, brotliEnabled bool) string {
	if accept == "" {
		return ""
	}
	brQ, gzipQ := -1.0, -1.0
	for _, part := range strings.Split(strings.ToLower(accept), ",") {
		name, q := parseCoding(part)
		switch name {
		case encodingBrotli:
			brQ = q
		case encodingGzip:
			gzipQ = q
		case "*":
			if brQ < 0 {
				brQ = q
			}
			if gzipQ < 0 {
				gzipQ = q
			}
		}
	}

	switch {
	case brotliEnabled && brQ > 0 && brQ >= gzipQ:
		return encodingBrotli
	case gzipQ > 0:
		return encodingGzip
	default:
		return ""
	}
}

func parseCoding(part string) (string, float64) {
	name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
	q := 1.0
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || k != "q" {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			q = f
		}
	}

	return strings.TrimSpace(name), q
}
