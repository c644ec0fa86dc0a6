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
	"io"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/szeber/yapep-base-sub003/logging"
)

// Option configures a [Tracer].
type Option func(*Tracer)

// WithTracerProvider uses a caller-managed provider. Provider options are
// ignored and [Tracer.Shutdown] does not stop it.
//
// Example:
//
//	recorder := tracetest.NewSpanRecorder()
//	tracer := tracing.MustNew(tracing.WithTracerProvider(
//	    sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)),
//	))
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(t *Tracer) {
		t.tracerProvider = provider
		t.customTracerProvider = true
	}
}

// WithGlobalTracerProvider registers the provider and propagator globally.
func WithGlobalTracerProvider() Option {
	return func(t *Tracer) {
		t.registerGlobal = true
	}
}

// WithServiceName sets the service name resource attribute.
func WithServiceName(name string) Option {
	return func(t *Tracer) {
		t.serviceName = name
	}
}

// WithServiceVersion sets the service version resource attribute.
func WithServiceVersion(version string) Option {
	return func(t *Tracer) {
		t.serviceVersion = version
	}
}

// WithSampleRate samples the given fraction of new traces. Requests that
// continue a propagated trace follow the caller's decision.
func WithSampleRate(rate float64) Option {
	return func(t *Tracer) {
		t.sampleRate = rate
	}
}

// WithPropagator replaces the default W3C trace context and baggage
// propagator.
func WithPropagator(propagator propagation.TextMapPropagator) Option {
	return func(t *Tracer) {
		if propagator != nil {
			t.propagator = propagator
		}
	}
}

// WithLogger logs provider lifecycle events.
func WithLogger(logger *logging.Logger) Option {
	return func(t *Tracer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithNoop records spans without exporting them.
func WithNoop() Option {
	return func(t *Tracer) {
		t.provider = NoopProvider
		t.providerSetCount++
	}
}

// WithStdout writes finished spans to w, or standard output when w is nil.
func WithStdout(w io.Writer) Option {
	return func(t *Tracer) {
		t.provider = StdoutProvider
		t.providerSetCount++
		t.stdoutWriter = w
	}
}

// WithOTLP exports over gRPC to endpoint ("host:port").
func WithOTLP(endpoint string, insecure bool) Option {
	return func(t *Tracer) {
		t.provider = OTLPProvider
		t.providerSetCount++
		t.otlpEndpoint = endpoint
		t.otlpInsecure = insecure
	}
}

// WithOTLPHTTP exports over HTTP to endpoint, such as
// "http://localhost:4318". A plain http URL disables TLS.
func WithOTLPHTTP(endpoint string) Option {
	return func(t *Tracer) {
		t.provider = OTLPHTTPProvider
		t.providerSetCount++
		t.otlpEndpoint = endpoint
	}
}
