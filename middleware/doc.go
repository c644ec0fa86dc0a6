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

// Package middleware holds the net/http middleware put in front of the
// dispatch handler, plus [Chain] and a status-capturing [ResponseWriter]
// shared by them.
//
// Subpackages:
//
//   - requestid: assigns a request ID (UUID v7 or ULID) and echoes it in a header
//   - accesslog: one structured log entry per request
//   - compression: Brotli or gzip response bodies, negotiated per request
//   - recovery: turns handler panics into formatted 500 responses
package middleware
