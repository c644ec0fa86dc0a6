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
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// initializeProvider builds the tracer provider. ctx bounds exporter
// construction only.
func (t *Tracer) initializeProvider(ctx context.Context) error {
	if t.customTracerProvider {
		if t.tracerProvider == nil {
			return fmt.Errorf("custom tracer provider is nil")
		}
		t.tracer = t.tracerProvider.Tracer(tracerName)
		t.setGlobal()
		t.logger.Debug("using caller-supplied tracer provider")
		return nil
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(createResource(t.serviceName, t.serviceVersion)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.sampleRate))),
	}

	switch t.provider {
	case NoopProvider:
	case StdoutProvider:
		w := t.stdoutWriter
		if w == nil {
			w = os.Stdout
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	case OTLPProvider:
		grpcOpts := []otlptracegrpc.Option{}
		if t.otlpEndpoint != "" {
			grpcOpts = append(grpcOpts, otlptracegrpc.WithEndpoint(t.otlpEndpoint))
		}
		if t.otlpInsecure {
			grpcOpts = append(grpcOpts, otlptracegrpc.WithInsecure())
		}
		exporter, err := otlptracegrpc.New(ctx, grpcOpts...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP gRPC exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	case OTLPHTTPProvider:
		httpOpts := []otlptracehttp.Option{}
		if t.otlpEndpoint != "" {
			host, insecure := otlpHost(t.otlpEndpoint)
			httpOpts = append(httpOpts, otlptracehttp.WithEndpoint(host))
			if insecure {
				httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
			}
		}
		exporter, err := otlptracehttp.New(ctx, httpOpts...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	default:
		return fmt.Errorf("unsupported tracing provider: %s", t.provider)
	}

	t.sdkProvider = sdktrace.NewTracerProvider(opts...)
	t.tracerProvider = t.sdkProvider
	t.tracer = t.sdkProvider.Tracer(tracerName)
	t.setGlobal()
	t.logger.Info("tracing initialized", "provider", string(t.provider), "service", t.serviceName)

	return nil
}

// createResource creates an OpenTelemetry resource with service information.
func createResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)
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
