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
// composing the parse pipeline as a sequence of commands. This file defines
// the core interfaces. Commands stay small and individually testable; a chain
// wires them together and pipes the primary output of one step into the
// primary input of the next.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys that manage the primary data flow within a
// BaseChain: the chain moves the value a command stored under CtxOut into
// CtxIn before running the next command.
const (
	CtxIn  = "__IN__"
	CtxOut = "__OUT__"
)

// Context is the shared state object passed through a chain of commands for
// one parse execution. It carries data between steps, accumulates errors, and
// collects the non-fatal diagnostics (such as unresolved dialogue
// attributions) that the parser reports without failing.
type Context interface {
	// SetContext sets the standard Go context, used for cancellation signals
	// and OpenTelemetry trace propagation.
	SetContext(context context.Context)

	// GetContext retrieves the standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair. Returns the Context for fluent chaining.
	Add(key string, value interface{}) Context

	// Get retrieves a value by key, or nil when absent.
	Get(key string) interface{}

	// Remove deletes a key-value pair.
	Remove(key string)

	// AddError records an error under the name of the command that produced it.
	AddError(key string, err error)

	// GetErrors returns all errors collected during the workflow.
	GetErrors() map[string]error

	// HasErrors reports whether any command recorded an error.
	HasErrors() bool

	// AddWarning records a non-fatal diagnostic message. Warnings never stop
	// the chain; they surface in the parse envelope for the caller.
	AddWarning(message string)

	// GetWarnings returns all diagnostics recorded so far, in order.
	GetWarnings() []string
}

// Executable is any object with a core execution step.
type Executable interface {
	// Execute performs the object's work, reading inputs from and writing
	// outputs to the shared Context.
	Execute(context Context)
}

// Command is an atomic, testable unit of work within a parse pipeline.
type Command interface {
	Executable

	// GetName returns the command's unique name for logging and telemetry.
	GetName() string

	// GetInputParam returns the context key of the command's primary input.
	GetInputParam() string

	// GetOutputParam returns the context key of the command's primary output.
	GetOutputParam() string

	// IsExecutable is the precondition check run before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the OpenTelemetry tracer for this command.
	GetTracer() trace.Tracer

	// GetMeter returns the OpenTelemetry meter for creating metrics.
	GetMeter() metric.Meter

	// GetSuccessCounter returns the counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns the counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. A Chain is itself a Command, so chains can
// nest (Composite pattern).
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after a
	// command records an error.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
