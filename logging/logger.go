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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// ParseHandlerType resolves a configured format name.
// The empty string selects [JSONHandler].
func ParseHandlerType(s string) (HandlerType, error) {
	switch t := HandlerType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return JSONHandler, nil
	case JSONHandler, TextHandler, ConsoleHandler:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHandler, s)
	}
}

// Level represents log level.
type Level = slog.Level

const (
	// LevelDebug is the debug log level.
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ParseLevel resolves a configured level name such as "debug" or "WARN".
// The empty string selects [LevelInfo].
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// redactedValue replaces the value of every redacted attribute.
const redactedValue = "***REDACTED***"

// defaultRedactKeys are redacted from every handler built by this package.
var defaultRedactKeys = []string{"password", "token", "secret", "api_key", "authorization"}

var bgCtx = context.Background()

// Logger wraps an [slog.Logger] built from functional options.
//
// All methods are safe for concurrent use. The level is held in an
// [slog.LevelVar] so [Logger.SetLevel] never rebuilds the handler.
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       slog.LevelVar

	serviceName    string
	serviceVersion string
	environment    string

	addSource   bool
	redactKeys  map[string]struct{}
	replaceAttr func(groups []string, a slog.Attr) slog.Attr

	customLogger *slog.Logger
	useCustom    bool

	registerGlobal bool

	slogger        atomic.Pointer[slog.Logger]
	mu             sync.Mutex
	isShuttingDown atomic.Bool
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

func defaultLogger() *Logger {
	l := &Logger{
		handlerType: JSONHandler,
		output:      os.Stdout,
		redactKeys:  make(map[string]struct{}, len(defaultRedactKeys)),
	}
	l.level.Set(LevelInfo)
	for _, k := range defaultRedactKeys {
		l.redactKeys[k] = struct{}{}
	}

	return l
}

// New creates a new Logger with the given options.
//
// The global slog default is left untouched unless [WithGlobalLogger] is
// passed, so several loggers can coexist in one process.
func New(opts ...Option) (*Logger, error) {
	l := defaultLogger()
	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.initializeHandler(); err != nil {
		return nil, err
	}

	return l, nil
}

// MustNew creates a new Logger or panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}

	return l
}

// Validate checks if the configuration is valid.
func (l *Logger) Validate() error {
	if l.useCustom {
		if l.customLogger == nil {
			return ErrNilLogger
		}
		return nil
	}
	if l.output == nil {
		return errors.New("output writer cannot be nil")
	}

	return nil
}

// initializeHandler must be called with mu held.
func (l *Logger) initializeHandler() error {
	if l.useCustom {
		l.slogger.Store(l.customLogger)
		if l.registerGlobal {
			slog.SetDefault(l.customLogger)
		}
		return nil
	}

	opts := &slog.HandlerOptions{
		Level:       &l.level,
		AddSource:   l.addSource,
		ReplaceAttr: l.buildReplaceAttr(),
	}

	var handler slog.Handler
	switch l.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(l.output, opts)
	case TextHandler:
		handler = slog.NewTextHandler(l.output, opts)
	case ConsoleHandler:
		handler = newConsoleHandler(l.output, opts)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidHandler, l.handlerType)
	}

	sl := slog.New(handler)

	var attrs []any
	if l.serviceName != "" {
		attrs = append(attrs, "service", l.serviceName)
	}
	if l.serviceVersion != "" {
		attrs = append(attrs, "version", l.serviceVersion)
	}
	if l.environment != "" {
		attrs = append(attrs, "env", l.environment)
	}
	if len(attrs) > 0 {
		sl = sl.With(attrs...)
	}

	l.slogger.Store(sl)
	if l.registerGlobal {
		slog.SetDefault(sl)
	}

	return nil
}

func (l *Logger) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if _, ok := l.redactKeys[strings.ToLower(a.Key)]; ok {
			return slog.String(a.Key, redactedValue)
		}
		if l.replaceAttr != nil {
			return l.replaceAttr(groups, a)
		}
		return a
	}
}

// Logger returns the underlying [slog.Logger].
func (l *Logger) Logger() *slog.Logger {
	return l.slogger.Load()
}

// With returns a [slog.Logger] with additional attributes.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.Logger().With(args...)
}

// WithGroup returns a [slog.Logger] with a group name.
func (l *Logger) WithGroup(name string) *slog.Logger {
	return l.Logger().WithGroup(name)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if l.isShuttingDown.Load() {
		return
	}

	logger := l.Logger()
	if !logger.Enabled(bgCtx, level) {
		return
	}
	logger.Log(bgCtx, level, msg, args...)
}

// Debug logs a debug message with structured attributes.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// Info logs an informational message with structured attributes.
func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with structured attributes.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs an error message with structured attributes.
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

// LogError logs err at error level under the "error" key followed by extra.
func (l *Logger) LogError(err error, msg string, extra ...any) {
	if err == nil {
		l.Error(msg, extra...)
		return
	}
	l.Error(msg, append([]any{"error", err.Error()}, extra...)...)
}

// LogDuration logs msg at info level with the time elapsed since start,
// as "duration_ms" and a human readable "duration".
func (l *Logger) LogDuration(msg string, start time.Time, extra ...any) {
	d := time.Since(start)
	attrs := append([]any{"duration_ms", d.Milliseconds(), "duration", d.String()}, extra...)
	l.Info(msg, attrs...)
}

// Shutdown stops the logger. Later log calls are dropped.
func (l *Logger) Shutdown(_ context.Context) error {
	l.isShuttingDown.Store(true)

	if logger := l.Logger(); logger != nil {
		if flusher, ok := logger.Handler().(interface{ Flush() error }); ok {
			return flusher.Flush()
		}
	}

	return nil
}

// SetLevel changes the minimum level at runtime.
// It returns [ErrCannotChangeLevel] for loggers built with [WithCustomLogger]
// and [ErrLoggerShutdown] after [Logger.Shutdown].
func (l *Logger) SetLevel(level Level) error {
	if l.useCustom {
		return ErrCannotChangeLevel
	}
	if l.isShuttingDown.Load() {
		return ErrLoggerShutdown
	}
	l.level.Set(level)

	return nil
}

// Level returns the current minimum log level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// ServiceName returns the service name.
func (l *Logger) ServiceName() string {
	return l.serviceName
}

// ServiceVersion returns the service version.
func (l *Logger) ServiceVersion() string {
	return l.serviceVersion
}

// IsEnabled returns true if logging is enabled and not shutting down.
func (l *Logger) IsEnabled() bool {
	return !l.isShuttingDown.Load()
}

// Discard returns a logger that writes nowhere. Packages use it when the
// caller supplies no logger.
func Discard() *Logger {
	return MustNew(WithOutput(io.Discard), WithLevel(LevelError+4))
}
