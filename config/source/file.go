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

package source

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/szeber/yapep-base-sub003/config/codec"
)

// File loads one document from a file path or from in-memory content.
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile creates a File source reading path with decoder.
// Environment references such as ${ROUTES_DIR} in path are expanded.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{path: os.ExpandEnv(path), decoder: decoder}
}

// NewFileContent creates a File source decoding data.
func NewFileContent(data []byte, decoder codec.Decoder) *File {
	return &File{data: bytes.Clone(data), decoder: decoder}
}

// Name describes the source for error messages: the path, or "content".
func (f *File) Name() string {
	if f.path != "" {
		return f.path
	}

	return "content"
}

// Load reads and decodes the document. A blank document yields an empty
// map. Load is safe to call concurrently.
func (f *File) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := f.data
	if f.path != "" {
		var err error
		if data, err = os.ReadFile(f.path); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	doc := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := f.decoder.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.Name(), err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}

	return doc, nil
}
