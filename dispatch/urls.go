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
	"fmt"

	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/router"
)

// DefaultFallbackURL is rendered when a URL cannot be generated.
const DefaultFallbackURL = "#"

// URLs builds links for views. Failed lookups are logged at warn level and
// render the fallback URL so a page with one stale link still renders.
type URLs struct {
	router   *router.Router
	logger   *logging.Logger
	fallback string
}

// NewURLs creates a URL builder. A nil logger discards warnings.
func NewURLs(r *router.Router, logger *logging.Logger) *URLs {
	if logger == nil {
		logger = logging.Discard()
	}

	return &URLs{router: r, logger: logger, fallback: DefaultFallbackURL}
}

// WithFallback returns a copy of u rendering fallback for failed lookups.
func (u *URLs) WithFallback(fallback string) *URLs {
	clone := *u
	clone.fallback = fallback

	return &clone
}

// Name returns the path of the named route.
func (u *URLs) Name(name string, params map[string]any) string {
	values, err := router.ParamsFrom(params)
	if err == nil {
		var path string
		if path, err = u.router.PathByName(name, values); err == nil {
			return path
		}
	}
	u.logger.Warn("url generation failed", "route", name, "error", err)

	return u.fallback
}

// Action returns the path of the route serving controller#action.
func (u *URLs) Action(controller, action string, params map[string]any) string {
	values, err := router.ParamsFrom(params)
	if err == nil {
		var path string
		if path, err = u.router.PathByControllerAndAction(controller, action, values); err == nil {
			return path
		}
	}
	u.logger.Warn("url generation failed", "controller", controller, "action", action, "error", err)

	return u.fallback
}

// FuncMap returns template functions backed by u:
//
//	{{ url "bar" "id" 7 }}
//	{{ actionURL "Bar" "index" "id" 7 }}
//
// Trailing arguments are name/value pairs. The map works with both
// text/template and html/template.
func (u *URLs) FuncMap() map[string]any {
	return map[string]any{
		"url": func(name string, pairs ...any) string {
			params, err := pairsToMap(pairs)
			if err != nil {
				u.logger.Warn("url generation failed", "route", name, "error", err)
				return u.fallback
			}
			return u.Name(name, params)
		},
		"actionURL": func(controller, action string, pairs ...any) string {
			params, err := pairsToMap(pairs)
			if err != nil {
				u.logger.Warn("url generation failed", "controller", controller, "action", action, "error", err)
				return u.fallback
			}
			return u.Action(controller, action, params)
		},
	}
}

func pairsToMap(pairs []any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of name/value arguments", router.ErrInvalidParameter)
	}
	params := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: parameter name %v is not a string", router.ErrInvalidParameter, pairs[i])
		}
		params[name] = pairs[i+1]
	}

	return params, nil
}
