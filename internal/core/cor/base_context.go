// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cor (Chain of Responsibility) provides the building blocks for
// composing the parse pipeline. This file defines BaseContext, the default
// Context implementation: a property bag shared by every command in one parse
// execution, plus the error map and the ordered diagnostics sink. A fresh
// context is created per parse call, so nothing is shared across concurrent
// parses.
package cor

import (
	"context"
)

// BaseContext is the default implementation of the Context interface.
type BaseContext struct {
	data     map[string]interface{} // Arbitrary key-value data shared between commands.
	errors   map[string]error       // Errors keyed by the command name that produced them.
	warnings []string               // Ordered non-fatal diagnostics for the parse envelope.
	context  context.Context        // Standard Go context for cancellation and trace propagation.
}

// NewBaseContext returns a new, empty context object ready for one parse
// execution.
func NewBaseContext() Context {
	return &BaseContext{
		data:     make(map[string]interface{}),
		errors:   make(map[string]error),
		warnings: make([]string, 0),
	}
}

// SetContext sets the underlying standard Go context. The BaseChain uses this
// to keep OpenTelemetry spans nested correctly.
func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

// GetContext retrieves the underlying standard Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Add stores a key-value pair in the context's data map.
func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// Get retrieves a value from the context by its key.
func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

// Remove deletes a key-value pair from the context.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// AddError adds an error to the context's error map, keyed by command name.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns the map of all errors collected during the workflow.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// HasErrors checks if any errors have been recorded in the context.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}

// AddWarning appends a non-fatal diagnostic message. The parser reports
// conditions like unresolved dialogue attribution this way instead of
// failing.
func (c *BaseContext) AddWarning(message string) {
	c.warnings = append(c.warnings, message)
}

// GetWarnings returns all diagnostics recorded so far, in order.
func (c *BaseContext) GetWarnings() []string {
	return c.warnings
}
