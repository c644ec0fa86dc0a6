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

package codec

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Document formats.
const (
	TypeYAML Type = "yaml"
	TypeJSON Type = "json"
	TypeTOML Type = "toml"

	// TypeMsgPack is binary; encoded output is not meant for terminals.
	TypeMsgPack Type = "msgpack"
)

func init() {
	for t, c := range map[Type]Codec{
		TypeYAML: YAMLCodec{},
		TypeJSON: JSONCodec{},
		TypeTOML: TOMLCodec{},

		TypeMsgPack: MsgPackCodec{},
	} {
		RegisterEncoder(t, c)
		RegisterDecoder(t, c)
	}
}

// YAMLCodec handles YAML documents with goccy/go-yaml. Encoded sequences
// are indented under their key.
type YAMLCodec struct{}

func (YAMLCodec) Encode(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
}

// Decode leaves the target map untouched for an empty document.
func (YAMLCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// JSONCodec handles JSON documents. Encoded output is indented for display.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// TOMLCodec handles TOML documents with BurntSushi/toml. The top level value
// of an encoded document must be a table.
type TOMLCodec struct{}

func (TOMLCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (TOMLCodec) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// MsgPackCodec handles MessagePack documents with vmihailenco/msgpack.
// Struct fields are named by their json tags.
type MsgPackCodec struct{}

func (MsgPackCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (MsgPackCodec) Decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")

	return dec.Decode(v)
}
