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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printBanner(&buf, bannerInfo{
		Addr:        ":8080",
		Routes:      3,
		Metrics:     "prometheus",
		Tracing:     "noop",
		Compression: true,
	}, false)

	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "http://0.0.0.0:8080\n")
	assert.Contains(t, out, "http://0.0.0.0:8080/metrics [prometheus]")

	fields := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		name, value, ok := strings.Cut(strings.TrimSpace(line), ":  ")
		if ok {
			fields[name] = strings.TrimSpace(value)
		}
	}
	assert.Equal(t, "3", fields["Routes"])
	assert.Equal(t, "enabled", fields["Compression"])
	assert.Equal(t, "disabled", fields["Strict URLs"])
	assert.Equal(t, "noop", fields["Tracing"])

	// The ASCII art comes first and spans several lines.
	art := strings.SplitN(strings.TrimLeft(out, "\n"), "\n\n", 2)
	require.Len(t, art, 2)
	assert.GreaterOrEqual(t, strings.Count(art[0], "\n"), 3)
}

func TestPrintBanner_MetricsDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printBanner(&buf, bannerInfo{Addr: "127.0.0.1:9000", Tracing: "otlp"}, false)

	assert.Contains(t, buf.String(), "http://127.0.0.1:9000\n")
	assert.Regexp(t, `Metrics:\s+disabled`, buf.String())
}

func TestTerminal_NotAFile(t *testing.T) {
	t.Parallel()

	_, ok := terminal(&bytes.Buffer{})
	assert.False(t, ok)
}
