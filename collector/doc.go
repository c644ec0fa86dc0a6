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

// Package collector builds route tables from route documents.
//
// A route document is a YAML, JSON, TOML or MessagePack file with an
// optional defaults block and a list of routes:
//
//	defaults:
//	  methods: [GET]
//	routes:
//	  - name: bar
//	    controller: Bar
//	    action: index
//	    paths:
//	      - /bar
//	      - pathPattern: /bar/num/{id}
//	        params:
//	          - {name: id, type: numeric}
//
// Every document is checked against the embedded JSON Schema ([Schema])
// before it is decoded. A path may be given as a plain string when it has
// no placeholders. A parameter names its kind with "type" or with
// "paramClass"; class-style names such as
// `\YapepBase\Router\Entity\Param\Numeric` are accepted. Defaults fill
// only the fields a route leaves unset.
//
// Documents are read in the order their options were given and routes
// keep document order, which is the order the router tries them in.
//
// Usage:
//
//	r, err := collector.LoadRouter(ctx,
//	    collector.WithGlob("routes/*.yaml"),
//	    collector.WithRouterOptions(router.WithStrictGeneration()),
//	)
//
// Errors are [*Error] values naming the document and the failing step. A
// document whose routes fail to build reports every failing route.
package collector
