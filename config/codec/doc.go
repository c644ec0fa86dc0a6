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

// Package codec provides the encoders and decoders used for route documents
// and application settings.
//
// Built-in codecs:
//
//   - YAML ([TypeYAML]) via github.com/goccy/go-yaml
//   - JSON ([TypeJSON]) via encoding/json
//   - TOML ([TypeTOML]) via github.com/BurntSushi/toml
//   - MessagePack ([TypeMsgPack]) via github.com/vmihailenco/msgpack/v5
//   - environment variables ([TypeEnvVar]), decode only
//
// [TypeForPath] picks a codec from a file extension:
//
//	decoder, err := codec.DecoderForPath("routes.yaml")
//	if err != nil {
//	    return err
//	}
//	var doc map[string]any
//	err = decoder.Decode(data, &doc)
//
// Custom codecs are registered with [RegisterEncoder] and [RegisterDecoder].
package codec
