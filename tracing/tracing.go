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

package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/router"
)

const tracerName = "github.com/szeber/yapep-base-sub003/tracing"

// Span attribute keys set for matched routes.
const (
	AttrRoute      = "yapep.route"
	AttrController = "yapep.controller"
	AttrAction     = "yapep.action"
)

// Provider represents the available tracing providers.
type Provider string

const (
	// NoopProvider records spans in process without exporting them (default).
	NoopProvider Provider = "noop"
	// StdoutProvider writes finished spans as JSON.
	StdoutProvider Provider = "stdout"
	// OTLPProvider exports over OTLP gRPC.
	OTLPProvider Provider = "otlp"
	// OTLPHTTPProvider exports over OTLP HTTP.
	OTLPHTTPProvider Provider = "otlp-http"
)

// Tracer starts and finishes dispatch spans. All methods are no-ops on a
// nil *Tracer.
type Tracer struct {
	tracer         trace.Tracer
	tracerProvider trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider // nil when the provider is the caller's
	propagator     propagation.TextMapPropagator
	logger         *logging.Logger

	serviceName    string
	serviceVersion string
	sampleRate     float64
	stdoutWriter   io.Writer
	otlpEndpoint   string
	otlpInsecure   bool

	provider             Provider
	providerSetCount     int
	customTracerProvider bool
	registerGlobal       bool
}

// New creates a [Tracer].
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		serviceName:    "yapep",
		serviceVersion: "dev",
		sampleRate:     1.0,
		provider:       NoopProvider,
		propagator:     propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
		logger:         logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid tracing configuration: %w", err)
	}
	if err := t.initializeProvider(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	return t, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize tracing: %v", err))
	}

	return t
}

func (t *Tracer) validate() error {
	if t.providerSetCount > 1 {
		return errors.New("conflicting provider options: only one provider can be configured")
	}
	if t.sampleRate < 0 || t.sampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1, got %v", t.sampleRate)
	}
	if t.serviceName == "" {
		return errors.New("service name cannot be empty")
	}

	return nil
}

// Tracer returns the underlying OpenTelemetry tracer.
func (t *Tracer) Tracer() trace.Tracer {
	if t == nil {
		return noop.NewTracerProvider().Tracer(tracerName)
	}

	return t.tracer
}

// Provider returns the configured provider.
func (t *Tracer) Provider() Provider {
	if t == nil {
		return ""
	}

	return t.provider
}

// ExtractTraceContext returns ctx carrying the remote span context found
// in headers, if any.
func (t *Tracer) ExtractTraceContext(ctx context.Context, headers http.Header) context.Context {
	if t == nil {
		return ctx
	}

	return t.propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

// InjectTraceContext writes the span context of ctx into headers.
func (t *Tracer) InjectTraceContext(ctx context.Context, headers http.Header) {
	if t == nil {
		return
	}
	t.propagator.Inject(ctx, propagation.HeaderCarrier(headers))
}

// StartRequestSpan starts a server span for req, continuing a trace
// propagated in its headers. The span is named after the method until
// [Tracer.SetRoute] names the matched route.
func (t *Tracer) StartRequestSpan(req *http.Request) (context.Context, trace.Span) {
	ctx := req.Context()
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	ctx = t.ExtractTraceContext(ctx, req.Header)
	ctx, span := t.tracer.Start(ctx, req.Method, trace.WithSpanKind(trace.SpanKindServer))
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.target", req.URL.Path),
			attribute.String("http.host", req.Host),
			attribute.String("http.user_agent", req.UserAgent()),
			attribute.String("service.name", t.serviceName),
			attribute.String("service.version", t.serviceVersion),
		)
	}

	return ctx, span
}

// SetRoute renames span after the matched route and records the controller
// action.
func (t *Tracer) SetRoute(span trace.Span, method string, ca router.ControllerAction) {
	if t == nil || span == nil || !span.IsRecording() {
		return
	}
	span.SetName(method + " " + ca.Route)
	span.SetAttributes(
		attribute.String(AttrRoute, ca.Route),
		attribute.String(AttrController, ca.Controller),
		attribute.String(AttrAction, ca.Action),
	)
	for name, value := range ca.Params {
		span.SetAttributes(attribute.String("yapep.param."+name, value))
	}
}

// RecordError marks span as failed with err.
func (t *Tracer) RecordError(span trace.Span, err error) {
	if t == nil || span == nil || err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// FinishRequestSpan records the response status and ends span. Statuses of
// 500 and above mark the span as failed; a status already set by
// [Tracer.RecordError] is kept.
func (t *Tracer) FinishRequestSpan(span trace.Span, statusCode int) {
	if t == nil || span == nil || !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.Int("http.status_code", statusCode))
	if statusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
	}
	span.End()
}

// Shutdown flushes and stops the provider the Tracer created.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.sdkProvider == nil {
		return nil
	}
	if err := t.sdkProvider.Shutdown(ctx); err != nil {
		t.logger.LogError(err, "tracing shutdown failed", "provider", string(t.provider))
		return fmt.Errorf("tracing shutdown: %w", err)
	}
	t.logger.Debug("tracing shut down", "provider", string(t.provider))

	return nil
}

// TraceID returns the trace ID of the span in ctx, or "".
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}

// SpanID returns the span ID of the span in ctx, or "".
func SpanID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasSpanID() {
		return sc.SpanID().String()
	}

	return ""
}

func (t *Tracer) setGlobal() {
	if t.registerGlobal {
		otel.SetTracerProvider(t.tracerProvider)
		otel.SetTextMapPropagator(t.propagator)
	}
}
