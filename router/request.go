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

// Request is the part of an incoming request the router needs.
//
// Target must return the path only, without query string or fragment.
// The dispatch package adapts *http.Request to this interface.
type Request interface {
	Method() string
	Target() string
}

type request struct {
	method string
	target string
}

func (r request) Method() string { return r.method }
func (r request) Target() string { return r.target }

// NewRequest returns a Request with fixed values, for callers that do not
// have an HTTP request at hand (tests, CLI tools).
func NewRequest(method, target string) Request {
	return request{method: method, target: target}
}
