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
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestingRecorder creates a [Recorder] backed by a manual reader, so tests
// can inspect recorded values with [CounterValue] and [HistogramCount].
//
// Example:
//
//	recorder, reader := metrics.TestingRecorder(t)
//	// exercise code using recorder...
//	assert.EqualValues(t, 1, metrics.CounterValue(t, reader, "yapep_dispatch_total"))
func TestingRecorder(t testing.TB, opts ...Option) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	recorder, err := New(append([]Option{WithMeterProvider(provider)}, opts...)...)
	require.NoError(t, err)

	return recorder, reader
}

// CounterValue sums the data points of the named sum instrument whose
// attributes include attrs. A missing instrument counts as zero.
func CounterValue(t testing.TB, reader *sdkmetric.ManualReader, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()

	var total int64
	for _, m := range collect(t, reader) {
		if m.Name != name {
			continue
		}
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.Truef(t, ok, "%s is a %T, not an int64 sum", name, m.Data)
		for _, dp := range sum.DataPoints {
			if hasAttributes(dp.Attributes, attrs) {
				total += dp.Value
			}
		}
	}

	return total
}

// HistogramCount returns the number of observations of the named histogram
// whose attributes include attrs.
func HistogramCount(t testing.TB, reader *sdkmetric.ManualReader, name string, attrs ...attribute.KeyValue) uint64 {
	t.Helper()

	var total uint64
	for _, m := range collect(t, reader) {
		if m.Name != name {
			continue
		}
		hist, ok := m.Data.(metricdata.Histogram[float64])
		require.Truef(t, ok, "%s is a %T, not a float64 histogram", name, m.Data)
		for _, dp := range hist.DataPoints {
			if hasAttributes(dp.Attributes, attrs) {
				total += dp.Count
			}
		}
	}

	return total
}

func collect(t testing.TB, reader *sdkmetric.ManualReader) []metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var out []metricdata.Metrics
	for _, sm := range rm.ScopeMetrics {
		out = append(out, sm.Metrics...)
	}

	return out
}

func hasAttributes(set attribute.Set, want []attribute.KeyValue) bool {
	for _, kv := range want {
		v, ok := set.Value(kv.Key)
		if !ok || v.Emit() != kv.Value.Emit() {
			return false
		}
	}

	return true
}
