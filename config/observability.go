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

package config

import (
	"fmt"
	"io"

	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/metrics"
	"github.com/szeber/yapep-base-sub003/tracing"
)

// MetricsSettings selects the metrics exporter.
type MetricsSettings struct {
	// Provider is one of "prometheus", "otlp" or "stdout".
	Provider  string `config:"provider" validate:"oneof=prometheus otlp stdout"`
	Namespace string `config:"namespace" validate:"metric_name"`
	// Endpoint is the OTLP collector address, host:port.
	Endpoint string `config:"endpoint"`
}

// TracingSettings selects the span exporter.
type TracingSettings struct {
	// Provider is one of "noop", "stdout", "otlp" or "otlp-http".
	Provider   string  `config:"provider" validate:"oneof=noop stdout otlp otlp-http"`
	Endpoint   string  `config:"endpoint"`
	SampleRate float64 `config:"sample_rate" validate:"gte=0,lte=1"`
	// Insecure disables TLS for the OTLP gRPC exporter.
	Insecure bool `config:"insecure"`
}

// NewRecorder builds the metrics recorder described by s.Metrics. The stdout
// exporter writes to out.
func (s *Settings) NewRecorder(logger *logging.Logger, out io.Writer, opts ...metrics.Option) (*metrics.Recorder, error) {
	base := []metrics.Option{
		metrics.WithNamespace(s.Metrics.Namespace),
		metrics.WithLogger(logger),
	}
	switch metrics.Provider(s.Metrics.Provider) {
	case metrics.PrometheusProvider:
		base = append(base, metrics.WithPrometheus())
	case metrics.OTLPProvider:
		base = append(base, metrics.WithOTLP(s.Metrics.Endpoint))
	case metrics.StdoutProvider:
		base = append(base, metrics.WithStdout(out))
	default:
		return nil, NewFieldError("settings", "metrics.provider", "validate",
			fmt.Errorf("unknown provider %q", s.Metrics.Provider))
	}

	rec, err := metrics.New(append(base, opts...)...)
	if err != nil {
		return nil, NewFieldError("settings", "metrics", "build", err)
	}

	return rec, nil
}

// NewTracer builds the tracer described by s.Tracing. The stdout exporter
// writes to out.
func (s *Settings) NewTracer(logger *logging.Logger, out io.Writer, opts ...tracing.Option) (*tracing.Tracer, error) {
	base := []tracing.Option{
		tracing.WithSampleRate(s.Tracing.SampleRate),
		tracing.WithLogger(logger),
	}
	switch tracing.Provider(s.Tracing.Provider) {
	case tracing.NoopProvider:
		base = append(base, tracing.WithNoop())
	case tracing.StdoutProvider:
		base = append(base, tracing.WithStdout(out))
	case tracing.OTLPProvider:
		base = append(base, tracing.WithOTLP(s.Tracing.Endpoint, s.Tracing.Insecure))
	case tracing.OTLPHTTPProvider:
		base = append(base, tracing.WithOTLPHTTP(s.Tracing.Endpoint))
	default:
		return nil, NewFieldError("settings", "tracing.provider", "validate",
			fmt.Errorf("unknown provider %q", s.Tracing.Provider))
	}

	t, err := tracing.New(append(base, opts...)...)
	if err != nil {
		return nil, NewFieldError("settings", "tracing", "build", err)
	}

	return t, nil
}
