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
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// LogEntry represents a parsed log entry for testing.
type LogEntry struct {
	Level   string
	Message string
	Attrs   map[string]any
}

// syncBuffer is a [bytes.Buffer] safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) snapshot() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

func (b *syncBuffer) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// ParseJSONLogEntries parses newline-delimited JSON log output.
func ParseJSONLogEntries(data []byte) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		var raw map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			return nil, err
		}

		le := LogEntry{Attrs: make(map[string]any, len(raw))}
		for k, v := range raw {
			switch k {
			case "time":
			case "level":
				le.Level = fmt.Sprint(v)
			case "msg":
				le.Message = fmt.Sprint(v)
			default:
				le.Attrs[k] = v
			}
		}
		entries = append(entries, le)
	}

	return entries, scanner.Err()
}

// TestHelper captures the JSON output of a debug-level [Logger].
type TestHelper struct {
	Logger *Logger
	buf    *syncBuffer
}

// NewTestHelper creates a [TestHelper] with in-memory logging.
// Additional [Option] values can be passed to customize the logger.
func NewTestHelper(t *testing.T, opts ...Option) *TestHelper {
	t.Helper()

	buf := &syncBuffer{}
	all := append([]Option{WithJSONHandler(), WithOutput(buf), WithLevel(LevelDebug)}, opts...)
	logger, err := New(all...)
	require.NoError(t, err)

	return &TestHelper{Logger: logger, buf: buf}
}

// Output returns the raw bytes written so far.
func (th *TestHelper) Output() string {
	return string(th.buf.snapshot())
}

// Logs returns all parsed log entries.
func (th *TestHelper) Logs() ([]LogEntry, error) {
	return ParseJSONLogEntries(th.buf.snapshot())
}

// ContainsLog reports whether any entry has the given message.
func (th *TestHelper) ContainsLog(msg string) bool {
	entries, err := th.Logs()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Message == msg {
			return true
		}
	}

	return false
}

// CountLevel returns the number of log entries at the given level.
func (th *TestHelper) CountLevel(level string) int {
	entries, err := th.Logs()
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if entry.Level == level {
			count++
		}
	}

	return count
}

// Reset clears the captured output.
func (th *TestHelper) Reset() {
	th.buf.reset()
}

// AssertLog fails t unless an entry exists with the given level, message
// and attributes. Values are compared by their fmt.Sprint form, so an int
// matches the float64 JSON decodes into.
func (th *TestHelper) AssertLog(t *testing.T, level, msg string, attrs map[string]any) {
	t.Helper()

	entries, err := th.Logs()
	require.NoError(t, err, "failed to parse logs")

	for _, entry := range entries {
		if entry.Level != level || entry.Message != msg {
			continue
		}
		if attrsMatch(entry.Attrs, attrs) {
			return
		}
	}

	require.Fail(t, "log entry not found", "level=%s msg=%s attrs=%v\noutput:\n%s", level, msg, attrs, th.Output())
}

func attrsMatch(got, want map[string]any) bool {
	for k, expected := range want {
		actual, ok := got[k]
		if !ok || fmt.Sprint(actual) != fmt.Sprint(expected) {
			return false
		}
	}

	return true
}
