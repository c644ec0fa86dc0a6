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
	"bytes"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szeber/yapep-base-sub003/logging"
)

func TestURLs_Name(t *testing.T) {
	t.Parallel()

	th := logging.NewTestHelper(t)
	urls := NewURLs(testRouter(t), th.Logger)

	assert.Equal(t, "/foo", urls.Name("foo", nil))
	assert.Equal(t, "/bar/num/7", urls.Name("bar", map[string]any{"id": 7}))
	assert.Equal(t, "#", urls.Name("missing", nil))
	assert.Equal(t, "#", urls.Name("bar", map[string]any{"id": nil}))

	th.AssertLog(t, "WARN", "url generation failed", map[string]any{"route": "missing"})
	assert.Equal(t, 2, th.CountLevel("WARN"))
}

func TestURLs_Action(t *testing.T) {
	t.Parallel()

	urls := NewURLs(testRouter(t), nil).WithFallback("/")

	assert.Equal(t, "/bar/num/12", urls.Action("Bar", "index", map[string]any{"id": int64(12)}))
	assert.Equal(t, "/bar", urls.Action("Bar", "index", nil))
	assert.Equal(t, "/", urls.Action("Bar", "show", nil))
}

func TestURLs_FuncMap(t *testing.T) {
	t.Parallel()

	urls := NewURLs(testRouter(t), nil)
	tmpl := template.Must(template.New("page").Funcs(urls.FuncMap()).Parse(
		`{{ url "foo" }} {{ url "bar" "id" 7 }} {{ actionURL "Bar" "index" "id" 8 }} {{ url "bar" "id" }} {{ url "bar" 1 2 }}`,
	))

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, nil))
	assert.Equal(t, "/foo /bar/num/7 /bar/num/8 # #", buf.String())
}
