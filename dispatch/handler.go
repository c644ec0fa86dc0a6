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

package dispatch

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/szeber/yapep-base-sub003/errors"
	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/metrics"
	"github.com/szeber/yapep-base-sub003/middleware"
	"github.com/szeber/yapep-base-sub003/router"
	"github.com/szeber/yapep-base-sub003/tracing"
)

// ErrNilRouter is returned by [New] without a router.
var ErrNilRouter = errors.New("dispatch: router is nil")

// Handler resolves each request to a controller action and invokes the
// registered [Action]. Lookup failures and action errors are rendered with
// the configured [apperrors.Formatter].
type Handler struct {
	router      *router.Router
	controllers *Controllers
	formatter   apperrors.Formatter
	logger      *logging.Logger
	metrics     *metrics.Recorder
	tracer      *tracing.Tracer
}

// Option configures a [Handler].
type Option func(*Handler)

// WithFormatter sets the error formatter. The default is [apperrors.NewSimple].
func WithFormatter(f apperrors.Formatter) Option {
	return func(h *Handler) { h.formatter = f }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithMetrics records lookups and dispatches on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(h *Handler) { h.metrics = rec }
}

// WithTracer starts a server span per request.
func WithTracer(t *tracing.Tracer) Option {
	return func(h *Handler) { h.tracer = t }
}

// New creates a dispatching handler. A nil controllers registry is treated
// as empty, so every matched route answers 501.
func New(r *router.Router, controllers *Controllers, opts ...Option) (*Handler, error) {
	if r == nil {
		return nil, ErrNilRouter
	}
	if controllers == nil {
		controllers = NewControllers()
	}

	h := &Handler{router: r, controllers: controllers}
	for _, opt := range opts {
		opt(h)
	}
	if h.formatter == nil {
		h.formatter = apperrors.NewSimple()
	}
	if h.logger == nil {
		h.logger = logging.Discard()
	}

	return h, nil
}

// ServeHTTP implements [http.Handler].
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx, span := h.tracer.StartRequestSpan(req)
	req = req.WithContext(ctx)
	m := h.metrics.Begin(ctx)
	rw := middleware.NewResponseWriter(w)

	var ca router.ControllerAction
	outcome := metrics.OutcomePanic
	defer func() {
		status := rw.StatusCode()
		if outcome == metrics.OutcomePanic {
			status = http.StatusInternalServerError
		}
		h.metrics.Finish(ctx, m, ca.Controller, ca.Action, outcome)
		h.tracer.FinishRequestSpan(span, status)
	}()

	outcome = h.dispatch(rw, req, span, &ca)
}

// dispatch stores the matched controller action in found before invoking
// it, so a panicking action is still attributed.
func (h *Handler) dispatch(w *middleware.ResponseWriter, req *http.Request, span trace.Span, found *router.ControllerAction) string {
	ctx := req.Context()
	log := logging.NewContextLogger(ctx, h.logger)

	ca, err := h.router.ControllerActionByRequest(NewRequest(req))
	if err != nil {
		h.metrics.RecordLookup(ctx, metrics.OutcomeNotFound)
		log.Debug("no route matched", "method", req.Method, "path", req.URL.Path)
		h.writeError(w, req, err)
		return metrics.OutcomeNotFound
	}
	*found = ca
	h.metrics.RecordLookup(ctx, metrics.OutcomeOK)
	h.tracer.SetRoute(span, req.Method, ca)

	action, err := h.controllers.Lookup(ca.Controller, ca.Action)
	if err != nil {
		log.Warn("no action registered", "route", ca.Route, "controller", ca.Controller, "action", ca.Action)
		h.tracer.RecordError(span, err)
		h.writeError(w, req, err)
		return metrics.OutcomeUnregistered
	}

	log.Debug("dispatching", "route", ca.Route, "controller", ca.Controller, "action", ca.Action)
	req = req.WithContext(WithControllerAction(ctx, ca))
	if err := action(w, req, ca); err != nil {
		status := apperrors.StatusOf(err)
		if status >= http.StatusInternalServerError {
			log.Error("action failed", "route", ca.Route, "error", err)
			h.tracer.RecordError(span, err)
		} else {
			log.Debug("action rejected request", "route", ca.Route, "status", status, "error", err)
		}
		if !w.Written() {
			h.writeError(w, req, err)
		}
		return metrics.OutcomeError
	}

	return metrics.OutcomeOK
}

func (h *Handler) writeError(w http.ResponseWriter, req *http.Request, err error) {
	if werr := apperrors.Write(w, h.formatter.Format(req, err)); werr != nil {
		h.logger.LogError(werr, "failed to write error response")
	}
}
