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

package router

import (
	"regexp"
	"slices"
	"strings"

	"github.com/szeber/yapep-base-sub003/router/route"
)

// DiagnosticEvent represents a route table anomaly found while the router
// is built. Events never change routing behavior; a table that produces
// diagnostics still routes exactly as declared.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteRegistered is emitted once per route, in registration order.
	DiagRouteRegistered DiagnosticKind = "route_registered"

	// DiagShadowedPath is emitted when a path can never win a forward
	// lookup: earlier routes with an identical matcher together accept every
	// method the path's route accepts.
	DiagShadowedPath DiagnosticKind = "route_path_shadowed"

	// DiagDuplicateAction is emitted when a second route maps to a
	// (controller, action) pair that already has a route. Reverse lookups by
	// action keep using the first one.
	DiagDuplicateAction DiagnosticKind = "route_action_duplicate"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, or ignore them.
//
// If no handler is configured, diagnostics are silently dropped.
//
// Example with logging:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    logger.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r, err := router.New(routes, router.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

func (r *Router) emit(kind DiagnosticKind, msg string, fields map[string]any) {
	if r.diagnostics == nil {
		return
	}
	r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: msg, Fields: fields})
}

// diagnoseShadowing reports paths of rt that no forward lookup can reach
// because routes registered before it take every method it accepts.
func (r *Router) diagnoseShadowing(earlier []*route.Route, rt *route.Route) {
	for _, p := range rt.Paths() {
		sig := matcherSignature(p)

		var (
			covered   []string
			first     string
			anyMethod bool
		)
		for _, prev := range earlier {
			if !slices.ContainsFunc(prev.Paths(), func(q *route.Path) bool {
				return matcherSignature(q) == sig
			}) {
				continue
			}
			if first == "" {
				first = prev.Name()
			}
			if len(prev.Methods()) == 0 {
				anyMethod = true
				break
			}
			covered = append(covered, prev.Methods()...)
		}
		if first == "" || !anyMethod && !methodsCovered(covered, rt.Methods()) {
			continue
		}

		r.emit(DiagShadowedPath, "path is shadowed by an earlier route with the same matcher", map[string]any{
			"route":      rt.Name(),
			"pattern":    p.Pattern(),
			"shadowedBy": first,
		})
	}
}

// matcherSignature returns the matcher source of p without group names, so
// "/x/{id}" and "/x/{num}" with the same parameter type compare equal.
func matcherSignature(p *route.Path) string {
	fragments := make(map[string]string)
	for _, prm := range p.Params() {
		fragments[prm.Name()] = prm.Pattern()
	}

	var b strings.Builder
	for _, seg := range p.Segments() {
		if seg.Static {
			b.WriteString(regexp.QuoteMeta(seg.Value))
			continue
		}
		b.WriteString("(?:")
		b.WriteString(fragments[seg.Value])
		b.WriteByte(')')
	}
	return b.String()
}

// methodsCovered reports whether every method accepted by want is in
// covered. An empty want accepts any method, which no finite set covers.
func methodsCovered(covered, want []string) bool {
	if len(want) == 0 {
		return false
	}
	for _, m := range want {
		if !slices.Contains(covered, m) {
			return false
		}
	}
	return true
}
