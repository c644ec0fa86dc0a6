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

//go:build integration

// This file serves a collected route table through the full middleware
// chain and checks that links built by URLs route back to their actions.

package dispatch_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/szeber/yapep-base-sub003/collector"
	"github.com/szeber/yapep-base-sub003/config/codec"
	"github.com/szeber/yapep-base-sub003/dispatch"
	apperrors "github.com/szeber/yapep-base-sub003/errors"
	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/middleware"
	"github.com/szeber/yapep-base-sub003/middleware/accesslog"
	"github.com/szeber/yapep-base-sub003/middleware/compression"
	"github.com/szeber/yapep-base-sub003/middleware/recovery"
	"github.com/szeber/yapep-base-sub003/middleware/requestid"
	"github.com/szeber/yapep-base-sub003/router"
)

const routeDocument = `
defaults:
  methods: [GET]

routes:
  - name: foo
    controller: Foo
    action: index
    paths:
      - /foo

  - name: bar
    controller: Bar
    action: index
    paths:
      - pathPattern: /bar
      - pathPattern: /bar/num/{id}
        params:
          - name: id
            type: numeric
      - pathPattern: /bar/multi/{alpha}/{enum}
        params:
          - name: alpha
            type: alpha
          - name: enum
            type: enum
            values: [one, two]

  - name: panic
    controller: Panic
    action: index
    methods: [POST]
    paths:
      - /panic
`

// lockedBuffer collects log output written from handler goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) entries() []logging.LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries, err := logging.ParseJSONLogEntries(b.buf.Bytes())
	Expect(err).NotTo(HaveOccurred())
	return entries
}

func echoAction(w http.ResponseWriter, r *http.Request, ca router.ControllerAction) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{
		"controller": ca.Controller,
		"action":     ca.Action,
		"params":     ca.Params,
		"request_id": requestid.Get(r.Context()),
	})
}

var _ = Describe("Dispatch Integration", Label("integration", "dispatch"), func() {
	var (
		logs    *lockedBuffer
		routes  *router.Router
		urls    *dispatch.URLs
		handler http.Handler
	)

	BeforeEach(func() {
		logs = &lockedBuffer{}
		logger, err := logging.New(
			logging.WithJSONHandler(),
			logging.WithOutput(logs),
			logging.WithLevel(logging.LevelDebug),
		)
		Expect(err).NotTo(HaveOccurred())

		routes, err = collector.LoadRouter(context.Background(),
			collector.WithContent([]byte(routeDocument), codec.TypeYAML),
			collector.WithLogger(logger),
		)
		Expect(err).NotTo(HaveOccurred())

		controllers := dispatch.NewControllers().
			MustRegister("Foo", "index", echoAction).
			MustRegister("Bar", "index", echoAction).
			MustRegister("Panic", "index", func(http.ResponseWriter, *http.Request, router.ControllerAction) error {
				panic("controller exploded")
			})

		formatter := apperrors.NewRFC9457("https://errors.example.com")
		d, err := dispatch.New(routes, controllers,
			dispatch.WithLogger(logger),
			dispatch.WithFormatter(formatter),
		)
		Expect(err).NotTo(HaveOccurred())

		urls = dispatch.NewURLs(routes, logger)
		handler = middleware.Chain(d,
			requestid.New(),
			accesslog.New(accesslog.WithLogger(logger)),
			recovery.New(recovery.WithLogger(logger), recovery.WithFormatter(formatter)),
			compression.New(compression.WithMinSize(64)),
		)
	})

	serve := func(method, target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]any {
		var body map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	Describe("links built by URLs", func() {
		DescribeTable("route back to the action they were built for",
			func(name string, params map[string]any, wantPath string, wantParams map[string]any) {
				path := urls.Name(name, params)
				Expect(path).To(Equal(wantPath))

				w := serve(http.MethodGet, path)
				Expect(w.Code).To(Equal(http.StatusOK))

				body := decode(w)
				Expect(body["params"]).To(Equal(wantParams))
				Expect(body["request_id"]).To(Equal(w.Header().Get(requestid.DefaultHeader)))
			},
			Entry("static path", "foo", nil, "/foo", map[string]any{}),
			Entry("no parameters", "bar", nil, "/bar", map[string]any{}),
			Entry("numeric id", "bar", map[string]any{"id": 7}, "/bar/num/7", map[string]any{"id": "7"}),
			Entry("alpha and enum", "bar", map[string]any{"alpha": "abc", "enum": "one"},
				"/bar/multi/abc/one", map[string]any{"alpha": "abc", "enum": "one"}),
		)

		It("renders the fallback and logs a warning for unknown routes", func() {
			Expect(urls.Name("nonexistent", nil)).To(Equal(dispatch.DefaultFallbackURL))

			var warned bool
			for _, e := range logs.entries() {
				if e.Level == "WARN" && e.Message == "url generation failed" {
					warned = true
				}
			}
			Expect(warned).To(BeTrue())
		})

		It("builds links by controller and action", func() {
			Expect(urls.Action("Bar", "index", map[string]any{"id": "3"})).To(Equal("/bar/num/3"))
		})
	})

	Describe("failed lookups", func() {
		It("answers 404 problem details for an enum mismatch", func() {
			w := serve(http.MethodGet, "/bar/multi/abc/three")
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix("application/problem+json"))
		})

		It("gates routes by method", func() {
			Expect(serve(http.MethodPost, "/foo").Code).To(Equal(http.StatusNotFound))
			Expect(serve(http.MethodGet, "/panic").Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("panicking actions", func() {
		It("are recovered into a 500 and logged", func() {
			w := serve(http.MethodPost, "/panic")
			Expect(w.Code).To(Equal(http.StatusInternalServerError))

			var errorLogged bool
			for _, e := range logs.entries() {
				if e.Level == "ERROR" {
					errorLogged = true
				}
			}
			Expect(errorLogged).To(BeTrue())
		})
	})

	Describe("access log", func() {
		It("records each request with its request ID", func() {
			w := serve(http.MethodGet, "/bar/num/9")
			Expect(w.Code).To(Equal(http.StatusOK))

			var found bool
			for _, e := range logs.entries() {
				if e.Message == "request" && e.Attrs["path"] == "/bar/num/9" {
					found = true
					Expect(e.Attrs["request_id"]).To(Equal(w.Header().Get(requestid.DefaultHeader)))
					Expect(fmt.Sprint(e.Attrs["status"])).To(Equal("200"))
				}
			}
			Expect(found).To(BeTrue())
		})
	})

	Describe("compression", func() {
		It("encodes bodies over the threshold when the client accepts gzip", func() {
			req := httptest.NewRequest(http.MethodGet, "/bar/multi/abc/two", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Encoding")).To(Equal("gzip"))

			gr, err := gzip.NewReader(w.Body)
			Expect(err).NotTo(HaveOccurred())
			raw, err := io.ReadAll(gr)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`"enum":"two"`))
		})
	})

	Describe("the router behind the handler", func() {
		It("reports typed errors for reverse lookups", func() {
			_, err := routes.PathByName("nonexistent", nil)
			Expect(errors.Is(err, router.ErrRouteNotFound)).To(BeTrue())

			_, err = routes.PathByName("panic", map[string]string{"unrelated": "x"})
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
