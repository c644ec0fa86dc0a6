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

package dispatch

import (
	"context"
	"net/http"

	"github.com/szeber/yapep-base-sub003/router"
)

// Request adapts an [*http.Request] to [router.Request]. The target is the
// decoded URL path; the query string is never part of it.
type Request struct {
	req *http.Request
}

// NewRequest wraps r.
func NewRequest(r *http.Request) Request {
	return Request{req: r}
}

// Method returns the request method.
func (r Request) Method() string {
	return r.req.Method
}

// Target returns the URL path.
func (r Request) Target() string {
	return r.req.URL.Path
}

var _ router.Request = Request{}

type contextKey struct{}

// WithControllerAction returns a copy of ctx carrying ca.
func WithControllerAction(ctx context.Context, ca router.ControllerAction) context.Context {
	return context.WithValue(ctx, contextKey{}, ca)
}

// FromContext returns the controller action the request was dispatched to.
func FromContext(ctx context.Context) (router.ControllerAction, bool) {
	ca, ok := ctx.Value(contextKey{}).(router.ControllerAction)
	return ca, ok
}
