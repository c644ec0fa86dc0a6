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

package errors

// Stand-ins for the router and dispatch errors the formatters render.

// lookupError carries only a message.
type lookupError string

func (e lookupError) Error() string { return string(e) }

// codedError mimics an error that names its kind, like an unregistered
// controller action.
type codedError struct {
	msg  string
	code string
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Code() string  { return e.code }

// detailedError mimics a failed lookup that reports what was searched.
type detailedError struct {
	msg     string
	details map[string]any
}

func (e *detailedError) Error() string { return e.msg }
func (e *detailedError) Details() any  { return e.details }
