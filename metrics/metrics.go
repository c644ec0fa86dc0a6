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

package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/szeber/yapep-base-sub003/logging"
)

// DefaultDurationBuckets are histogram boundaries for dispatch duration in
// seconds. Route matching is cheap, so the low end is finer than usual.
var DefaultDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider exposes metrics through [Recorder.Handler] (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes metrics to an OTLP HTTP collector.
	OTLPProvider Provider = "otlp"
	// StdoutProvider writes metrics periodically, for development.
	StdoutProvider Provider = "stdout"
)

// Outcome label values.
const (
	OutcomeOK           = "ok"
	OutcomeNotFound     = "not_found"
	OutcomeUnregistered = "unregistered"
	OutcomeError        = "error"
	OutcomePanic        = "panic"
)

// ErrInvalidNamespace is returned by [New] for a namespace that is not a
// valid Prometheus metric name prefix.
var ErrInvalidNamespace = errors.New("invalid metrics namespace")

var namespaceRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Recorder records routing and dispatch metrics through OpenTelemetry.
// All methods are safe for concurrent use, and all of them are no-ops on a
// nil *Recorder, so callers can leave metrics unconfigured.
//
// The global meter provider is not touched unless [WithGlobalMeterProvider]
// is given.
type Recorder struct {
	meter         metric.Meter
	meterProvider metric.MeterProvider
	sdkProvider   *sdkmetric.MeterProvider // nil when the provider is the caller's
	registry      *promclient.Registry
	handler       http.Handler
	logger        *logging.Logger

	lookups    metric.Int64Counter
	dispatches metric.Int64Counter
	duration   metric.Float64Histogram
	active     metric.Int64UpDownCounter

	namespace       string
	serviceName     string
	serviceVersion  string
	otlpEndpoint    string
	stdoutWriter    io.Writer
	exportInterval  time.Duration
	durationBuckets []float64
	serviceAttrs    []attribute.KeyValue

	provider            Provider
	providerSetCount    int
	customMeterProvider bool
	registerGlobal      bool
}

// New creates a [Recorder]. Without a provider option metrics are exposed
// for Prometheus scraping through [Recorder.Handler].
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		namespace:       "yapep",
		serviceName:     "yapep",
		serviceVersion:  "dev",
		provider:        PrometheusProvider,
		exportInterval:  30 * time.Second,
		durationBuckets: DefaultDurationBuckets,
		logger:          logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid metrics configuration: %w", err)
	}

	r.serviceAttrs = []attribute.KeyValue{
		attribute.String("service.name", r.serviceName),
		attribute.String("service.version", r.serviceVersion),
	}

	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize metrics: %v", err))
	}

	return r
}

func (r *Recorder) validate() error {
	if r.providerSetCount > 1 {
		return errors.New("conflicting provider options: only one of WithPrometheus, WithOTLP or WithStdout can be used")
	}
	if !namespaceRegex.MatchString(r.namespace) {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, r.namespace)
	}
	if r.serviceName == "" {
		return errors.New("service name cannot be empty")
	}
	if r.exportInterval <= 0 {
		return fmt.Errorf("export interval must be positive, got %s", r.exportInterval)
	}
	switch r.provider {
	case PrometheusProvider, StdoutProvider:
	case OTLPProvider:
		if r.otlpEndpoint == "" {
			r.otlpEndpoint = "http://localhost:4318"
		}
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}

	return nil
}

// initializeInstruments creates the instruments under the namespace.
func (r *Recorder) initializeInstruments() error {
	var err error

	r.lookups, err = r.meter.Int64Counter(
		r.namespace+"_route_lookups_total",
		metric.WithDescription("Forward route lookups by outcome"),
	)
	if err != nil {
		return fmt.Errorf("failed to create lookup counter: %w", err)
	}

	r.dispatches, err = r.meter.Int64Counter(
		r.namespace+"_dispatch_total",
		metric.WithDescription("Dispatched requests by controller, action and outcome"),
	)
	if err != nil {
		return fmt.Errorf("failed to create dispatch counter: %w", err)
	}

	r.duration, err = r.meter.Float64Histogram(
		r.namespace+"_dispatch_duration_seconds",
		metric.WithDescription("Time spent resolving and running controller actions"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create dispatch duration histogram: %w", err)
	}

	r.active, err = r.meter.Int64UpDownCounter(
		r.namespace+"_dispatch_active",
		metric.WithDescription("Requests currently being dispatched"),
	)
	if err != nil {
		return fmt.Errorf("failed to create active dispatch gauge: %w", err)
	}

	return nil
}

// Measurement is an in-flight dispatch started by [Recorder.Begin].
type Measurement struct {
	start time.Time
}

// Begin starts timing a dispatch. It returns nil on a nil Recorder.
func (r *Recorder) Begin(ctx context.Context) *Measurement {
	if r == nil {
		return nil
	}
	r.active.Add(ctx, 1, metric.WithAttributes(r.serviceAttrs...))

	return &Measurement{start: time.Now()}
}

// Finish records a dispatch started by [Recorder.Begin]. controller and
// action are empty when no route matched.
func (r *Recorder) Finish(ctx context.Context, m *Measurement, controller, action, outcome string) {
	if r == nil || m == nil {
		return
	}

	attrs := metric.WithAttributes(append(r.serviceAttrs[:len(r.serviceAttrs):len(r.serviceAttrs)],
		attribute.String("controller", controller),
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	)...)
	r.duration.Record(ctx, time.Since(m.start).Seconds(), attrs)
	r.dispatches.Add(ctx, 1, attrs)
	r.active.Add(ctx, -1, metric.WithAttributes(r.serviceAttrs...))
}

// RecordLookup counts one forward lookup.
func (r *Recorder) RecordLookup(ctx context.Context, outcome string) {
	if r == nil {
		return
	}
	r.lookups.Add(ctx, 1, metric.WithAttributes(append(r.serviceAttrs[:len(r.serviceAttrs):len(r.serviceAttrs)],
		attribute.String("outcome", outcome),
	)...))
}

// Handler returns the Prometheus scrape handler. For other providers it
// answers 404.
func (r *Recorder) Handler() http.Handler {
	if r == nil || r.handler == nil {
		return http.NotFoundHandler()
	}

	return r.handler
}

// Registry returns the Prometheus registry, or nil for other providers.
func (r *Recorder) Registry() *promclient.Registry {
	if r == nil {
		return nil
	}

	return r.registry
}

// Provider returns the configured provider.
func (r *Recorder) Provider() Provider {
	if r == nil {
		return ""
	}

	return r.provider
}

// Namespace returns the metric name prefix.
func (r *Recorder) Namespace() string {
	if r == nil {
		return ""
	}

	return r.namespace
}

// Shutdown flushes and stops the meter provider the Recorder created.
// A caller-supplied provider is left alone.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil || r.sdkProvider == nil {
		return nil
	}
	if err := r.sdkProvider.Shutdown(ctx); err != nil {
		r.logger.LogError(err, "metrics shutdown failed", "provider", string(r.provider))
		return fmt.Errorf("metrics shutdown: %w", err)
	}
	r.logger.Debug("metrics shut down", "provider", string(r.provider))

	return nil
}
