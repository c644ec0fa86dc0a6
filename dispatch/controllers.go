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
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/szeber/yapep-base-sub003/router"
)

var (
	// ErrActionNotRegistered indicates a matched route whose controller
	// action has no implementation.
	ErrActionNotRegistered = errors.New("action not registered")

	// ErrInvalidAction indicates a registration with an empty name or a nil
	// function.
	ErrInvalidAction = errors.New("invalid action registration")

	// ErrDuplicateAction indicates a second registration for the same
	// controller action.
	ErrDuplicateAction = errors.New("action already registered")
)

// Action handles a request dispatched to a controller action. An error is
// rendered through the handler's formatter unless the action has already
// written a response.
type Action func(w http.ResponseWriter, r *http.Request, ca router.ControllerAction) error

// ActionNotRegisteredError is returned by [Controllers.Lookup].
type ActionNotRegisteredError struct {
	Controller string
	Action     string
}

// Error implements the error interface.
func (e *ActionNotRegisteredError) Error() string {
	return fmt.Sprintf("action not registered: %s#%s", e.Controller, e.Action)
}

// Unwrap returns [ErrActionNotRegistered].
func (e *ActionNotRegisteredError) Unwrap() error {
	return ErrActionNotRegistered
}

// HTTPStatus returns 501: the route exists but nothing implements it.
func (e *ActionNotRegisteredError) HTTPStatus() int {
	return http.StatusNotImplemented
}

// Code returns a machine-readable error code.
func (e *ActionNotRegisteredError) Code() string {
	return "action_not_registered"
}

type actionKey struct {
	controller string
	action     string
}

// Controllers maps (controller, action) pairs to their implementations.
// It is safe for concurrent use.
type Controllers struct {
	mu      sync.RWMutex
	actions map[actionKey]Action
}

// NewControllers creates an empty registry.
func NewControllers() *Controllers {
	return &Controllers{actions: make(map[actionKey]Action)}
}

// Register adds the implementation of controller#action.
func (c *Controllers) Register(controller, action string, fn Action) error {
	if controller == "" || action == "" || fn == nil {
		return fmt.Errorf("%w: %q#%q", ErrInvalidAction, controller, action)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := actionKey{controller: controller, action: action}
	if _, dup := c.actions[key]; dup {
		return fmt.Errorf("%w: %s#%s", ErrDuplicateAction, controller, action)
	}
	c.actions[key] = fn

	return nil
}

// MustRegister is like [Controllers.Register] but panics on error.
func (c *Controllers) MustRegister(controller, action string, fn Action) *Controllers {
	if err := c.Register(controller, action, fn); err != nil {
		panic(err)
	}

	return c
}

// Lookup returns the implementation of controller#action.
//
// Errors:
//   - [*ActionNotRegisteredError] wrapping [ErrActionNotRegistered]
func (c *Controllers) Lookup(controller, action string) (Action, error) {
	c.mu.RLock()
	fn, ok := c.actions[actionKey{controller: controller, action: action}]
	c.mu.RUnlock()
	if !ok {
		return nil, &ActionNotRegisteredError{Controller: controller, Action: action}
	}

	return fn, nil
}

// Missing returns "Controller#action" for every route of r that has no
// registered implementation, sorted.
func (c *Controllers) Missing(r *router.Router) []string {
	seen := make(map[string]struct{})
	var missing []string
	for _, info := range r.Routes() {
		if _, err := c.Lookup(info.Controller, info.Action); err == nil {
			continue
		}
		id := info.Controller + "#" + info.Action
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}
	sort.Strings(missing)

	return missing
}
