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

// Package config loads the settings of the yapep-routes command and the
// dispatch server.
//
// Settings are merged from layers, later layers overriding earlier ones:
//
//  1. built-in [Defaults]
//  2. files and sources, in option order (YAML, JSON or TOML)
//  3. environment variables starting with [EnvPrefix]
//  4. [WithOverrides], usually command line flags
//
// Keys are case-insensitive. In environment variables a double underscore
// separates nesting levels, so YAPEP_LOG__LEVEL sets log.level and
// YAPEP_LISTEN_ADDR sets listen_addr.
//
// # Quick Start
//
//	settings, err := config.Load(ctx,
//	    config.WithFile("/etc/yapep/yapep.yaml"),
//	    config.WithOverrides(map[string]any{"log.level": "debug"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger, err := settings.NewLogger(os.Stderr)
//
// A settings file:
//
//	routes_files:
//	  - routes/web.yaml
//	listen_addr: ":8080"
//	read_header_timeout: 5s
//	strict: false
//	log:
//	  level: info
//	  format: console
//	errors:
//	  format: rfc9457
//	  base_url: https://example.com/problems
//
// # Building Blocks
//
// [Merge] and [Decode] are exported for other document loaders: Merge
// layers any [Source] values with dario.cat/mergo and Decode binds the
// result to a struct through go-viper/mapstructure using the "config" tag.
//
// # Errors
//
// Failures are reported as [*Error] carrying the source, the field when
// known and the operation. Validation failures are joined so every invalid
// field is reported at once.
package config
