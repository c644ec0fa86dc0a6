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

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelInfo, false},
		{"debug", LevelDebug, false},
		{" INFO ", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"Warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidLevel)
				assert.Contains(t, err.Error(), tt.in)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHandlerType(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]HandlerType{
		"":        JSONHandler,
		"json":    JSONHandler,
		"TEXT":    TextHandler,
		"console": ConsoleHandler,
	} {
		got, err := ParseHandlerType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseHandlerType("xml")
	require.ErrorIs(t, err, ErrInvalidHandler)
}

func TestNew_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	_, err := New(WithHandlerType("xml"))
	require.ErrorIs(t, err, ErrInvalidHandler)

	_, err = New(WithOutput(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = New(WithCustomLogger(nil))
	require.ErrorIs(t, err, ErrNilLogger)

	assert.Panics(t, func() { MustNew(WithHandlerType("xml")) })
}

func TestLogger_Redaction(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t, WithRedactedKeys("Session"))
	th.Logger.Info("login",
		"password", "hunter2",
		"Token", "abc",
		"session", "s-1",
		"user", "alice",
	)

	th.AssertLog(t, "INFO", "login", map[string]any{
		"password": redactedValue,
		"Token":    redactedValue,
		"session":  redactedValue,
		"user":     "alice",
	})
	assert.NotContains(t, th.Output(), "hunter2")
}

func TestLogger_ReplaceAttr(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t, WithReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == "internal" {
			return slog.Attr{}
		}
		return a
	}))
	th.Logger.Info("matched", "internal", "x", "route", "bar")

	entries, err := th.Logs()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Attrs, "internal")
	assert.Equal(t, "bar", entries[0].Attrs["route"])
}

func TestLogger_ServiceAttributes(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t,
		WithServiceName("yapep-routes"),
		WithServiceVersion("1.2.3"),
		WithEnvironment("test"),
	)
	th.Logger.Info("started")

	th.AssertLog(t, "INFO", "started", map[string]any{
		"service": "yapep-routes",
		"version": "1.2.3",
		"env":     "test",
	})
	assert.Equal(t, "yapep-routes", th.Logger.ServiceName())
	assert.Equal(t, "1.2.3", th.Logger.ServiceVersion())
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)
	th.Logger.Debug("first")
	require.NoError(t, th.Logger.SetLevel(LevelWarn))
	assert.Equal(t, LevelWarn, th.Logger.Level())

	th.Logger.Debug("second")
	th.Logger.Info("third")
	th.Logger.Warn("fourth")
	th.Logger.Error("fifth")

	assert.True(t, th.ContainsLog("first"))
	assert.False(t, th.ContainsLog("second"))
	assert.False(t, th.ContainsLog("third"))
	assert.Equal(t, 1, th.CountLevel("WARN"))
	assert.Equal(t, 1, th.CountLevel("ERROR"))
}

func TestLogger_SetLevelCustomLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := MustNew(WithCustomLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.ErrorIs(t, logger.SetLevel(LevelDebug), ErrCannotChangeLevel)

	logger.Info("custom")
	assert.Contains(t, buf.String(), "msg=custom")
}

func TestLogger_Shutdown(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)
	th.Logger.Info("before")
	require.NoError(t, th.Logger.Shutdown(context.Background()))
	th.Logger.Info("after")

	assert.False(t, th.Logger.IsEnabled())
	assert.True(t, th.ContainsLog("before"))
	assert.False(t, th.ContainsLog("after"))
	require.ErrorIs(t, th.Logger.SetLevel(LevelDebug), ErrLoggerShutdown)
}

func TestLogger_LogError(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)
	th.Logger.LogError(errors.New("route not found"), "lookup failed", "name", "nonexistent")
	th.Logger.LogError(nil, "no cause")

	th.AssertLog(t, "ERROR", "lookup failed", map[string]any{
		"error": "route not found",
		"name":  "nonexistent",
	})
	th.AssertLog(t, "ERROR", "no cause", nil)
}

func TestLogger_LogDuration(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)
	th.Logger.LogDuration("routes compiled", time.Now().Add(-25*time.Millisecond), "count", 3)

	entries, err := th.Logs()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "routes compiled", entries[0].Message)
	assert.GreaterOrEqual(t, entries[0].Attrs["duration_ms"], float64(25))
	assert.Contains(t, entries[0].Attrs, "duration")
	assert.InDelta(t, 3, entries[0].Attrs["count"], 0)
}

func TestLogger_TextHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := MustNew(WithTextHandler(), WithOutput(&buf))
	logger.With("route", "bar").Info("matched", "api_key", "k")

	out := buf.String()
	assert.Contains(t, out, "msg=matched")
	assert.Contains(t, out, "route=bar")
	assert.Contains(t, out, "api_key="+redactedValue)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := Discard()
	assert.NotPanics(t, func() { logger.Error("dropped") })
	assert.True(t, logger.IsEnabled())
}
