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
	"fmt"
	"os"
	"strings"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/szeber/yapep-base-sub003/metrics"

func (r *Recorder) initializeProvider() error {
	if r.customMeterProvider {
		if r.meterProvider == nil {
			return fmt.Errorf("custom meter provider is nil")
		}
		r.logger.Debug("using caller-supplied meter provider")
		return r.finishProvider()
	}

	var (
		reader sdkmetric.Reader
		err    error
	)
	switch r.provider {
	case PrometheusProvider:
		reader, err = r.prometheusReader()
	case OTLPProvider:
		reader, err = r.otlpReader()
	case StdoutProvider:
		reader, err = r.stdoutReader()
	default:
		err = fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
	if err != nil {
		return err
	}

	r.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	r.meterProvider = r.sdkProvider

	return r.finishProvider()
}

func (r *Recorder) finishProvider() error {
	if r.registerGlobal {
		otel.SetMeterProvider(r.meterProvider)
	}
	r.meter = r.meterProvider.Meter(meterName)
	if err := r.initializeInstruments(); err != nil {
		return err
	}
	r.logger.Info("metrics initialized", "provider", string(r.provider), "namespace", r.namespace)

	return nil
}

func (r *Recorder) prometheusReader() (sdkmetric.Reader, error) {
	r.registry = promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(r.registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})

	return exporter, nil
}

func (r *Recorder) otlpReader() (sdkmetric.Reader, error) {
	endpoint, insecure := otlpHost(r.otlpEndpoint)
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval)), nil
}

func (r *Recorder) stdoutReader() (sdkmetric.Reader, error) {
	w := r.stdoutWriter
	if w == nil {
		w = os.Stdout
	}

	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval)), nil
}

// otlpHost reduces a collector URL to host:port. Plain http means insecure.
func otlpHost(endpoint string) (host string, insecure bool) {
	host = endpoint
	if trimmed, ok := strings.CutPrefix(host, "http://"); ok {
		host = trimmed
		insecure = true
	} else if trimmed, ok = strings.CutPrefix(host, "https://"); ok {
		host = trimmed
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}

	return host, insecure
}
